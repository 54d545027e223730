package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohdrazakhan/oneroom/internal/auth"
	"github.com/mohdrazakhan/oneroom/internal/middleware"
	"github.com/mohdrazakhan/oneroom/internal/storage/sqlite"
	"github.com/mohdrazakhan/oneroom/pkg/api/apiconnect"
	"github.com/mohdrazakhan/oneroom/pkg/logging"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that puts the user named
// in the X-Test-User header on the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := req.Header().Get(testUserHeader); user != "" {
				ctx = context.WithValue(ctx, middleware.UserIDKey, user)
			}
			return next(ctx, req)
		}
	}
}

type testClients struct {
	auth    *apiconnect.AuthServiceClient
	rooms   *apiconnect.RoomServiceClient
	expense *apiconnect.ExpenseServiceClient
	tasks   *apiconnect.TaskServiceClient
	store   *sqlite.SQLiteStore
}

// setupTestServer creates a test server over a temp-file SQLite database.
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := logging.Discard()
	jwtManager := auth.NewJWTManager("test-secret-0123456789", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewRoomServiceHandler(NewRoomService(store, logger), authInterceptor))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, logger), authInterceptor))
	mux.Handle(apiconnect.NewTaskServiceHandler(NewTaskService(store, logger), authInterceptor))

	server := httptest.NewServer(mux)

	clients := &testClients{
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		rooms:   apiconnect.NewRoomServiceClient(http.DefaultClient, server.URL),
		expense: apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		tasks:   apiconnect.NewTaskServiceClient(http.DefaultClient, server.URL),
		store:   store,
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

// as builds a request sent on behalf of user.
func as[T any](user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, user)
	return req
}

// expectCode fails the test unless err is a Connect error with code.
func expectCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != code {
		t.Fatalf("expected code %v, got %v (%v)", code, connectErr.Code(), err)
	}
}

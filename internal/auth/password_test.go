package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
	"github.com/mohdrazakhan/oneroom/internal/storage/mocks"
)

func TestPasswordAuthenticator_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash under the normalized email", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserStore(ctrl)
		a := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)

		users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(nil, storage.ErrNotFound)

		var stored *models.User
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			stored = u
			return nil
		})

		user, err := a.Register(ctx, " Alice@Example.COM ", " Alice ", "correct horse")
		req.NoError(err)
		req.Same(stored, user)
		req.NotEmpty(user.ID)
		req.Equal("alice@example.com", user.Email)
		req.Equal("Alice", user.DisplayName)
		req.NotEqual("correct horse", user.PasswordHash)
		req.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserStore(ctrl)
		a := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)

		users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(&models.User{ID: "u1"}, nil)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		_, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
		req.ErrorIs(err, ErrEmailExists)
	})

	t.Run("never touches storage for a bad password", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserStore(ctrl)
		a := NewPasswordAuthenticator(users)

		_, err := a.Register(ctx, "alice@example.com", "Alice", "short")
		req.ErrorIs(err, ErrWeakPassword)

		_, err = a.Register(ctx, "alice@example.com", "Alice", strings.Repeat("x", 73))
		req.ErrorIs(err, ErrPasswordTooLong)
	})

	t.Run("surfaces storage failures", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserStore(ctrl)
		a := NewPasswordAuthenticator(users)

		boom := errors.New("disk full")
		users.EXPECT().GetUserByEmail(ctx, gomock.Any()).Return(nil, boom)

		_, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
		req.ErrorIs(err, boom)
		req.NotErrorIs(err, ErrEmailExists)
	})
}

func TestPasswordAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		found    *models.User
		lookup   error
		wantErr  error
	}{
		{name: "valid", email: "ALICE@example.com", password: "correct horse", found: alice},
		{name: "wrong password", email: "alice@example.com", password: "wrong horse", found: alice, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "alice@example.com", password: "correct horse", lookup: storage.ErrNotFound, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			users := mocks.NewMockUserStore(ctrl)

			users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(tt.found, tt.lookup)

			user, err := NewPasswordAuthenticator(users).Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				req.Nil(user)
				return
			}
			req.NoError(err)
			req.Equal("u1", user.ID)
		})
	}
}

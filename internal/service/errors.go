package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mohdrazakhan/oneroom/internal/auth"
	"github.com/mohdrazakhan/oneroom/internal/calculator"
	"github.com/mohdrazakhan/oneroom/internal/rotation"
	"github.com/mohdrazakhan/oneroom/internal/storage"
	"github.com/mohdrazakhan/oneroom/pkg/api"
)

var (
	errUnauthenticated = errors.New("authentication required")
	errNotMember       = errors.New("you are not a member of this room")
	errNotAdmin        = errors.New("only room admins can do this")
	errNotPayer        = errors.New("only the payer can change this expense")
)

// Error kinds reported in the error detail, so clients can branch without
// parsing messages.
const (
	kindInvalidInput     = "invalid_input"
	kindNoMembers        = "no_members"
	kindNotFound         = "not_found"
	kindAlreadyMember    = "already_member"
	kindAlreadyCompleted = "already_completed"
	kindPermission       = "permission_denied"
	kindUnauthenticated  = "unauthenticated"
	kindEmailExists      = "email_exists"
	kindInternal         = "internal"
)

// classify maps an error to its Connect code and kind.
func classify(err error) (connect.Code, string) {
	switch {
	case errors.Is(err, api.ErrInvalidRequest),
		errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrPasswordTooLong):
		return connect.CodeInvalidArgument, kindInvalidInput
	case errors.Is(err, rotation.ErrNoMembers):
		return connect.CodeFailedPrecondition, kindNoMembers
	case errors.Is(err, storage.ErrTaskAlreadyCompleted):
		return connect.CodeFailedPrecondition, kindAlreadyCompleted
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound, kindNotFound
	case errors.Is(err, storage.ErrAlreadyMember):
		return connect.CodeAlreadyExists, kindAlreadyMember
	case errors.Is(err, auth.ErrEmailExists):
		return connect.CodeAlreadyExists, kindEmailExists
	case errors.Is(err, errNotMember), errors.Is(err, errNotAdmin), errors.Is(err, errNotPayer):
		return connect.CodePermissionDenied, kindPermission
	case errors.Is(err, errUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return connect.CodeUnauthenticated, kindUnauthenticated
	}
	return connect.CodeInternal, kindInternal
}

// toConnectError converts a service error for the wire and logs it.
// Internal errors are logged at ERROR, client errors at DEBUG since the
// logging interceptor already reports them.
func toConnectError(logger *slog.Logger, op string, err error) error {
	code, kind := classify(err)
	if code == connect.CodeInternal {
		logger.Error(op+" failed", "error", err)
	} else {
		logger.Debug(op+" rejected", "code", code, "error", err)
	}

	connectErr := connect.NewError(code, err)
	if detail, derr := kindDetail(kind); derr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func kindDetail(kind string) (*connect.ErrorDetail, error) {
	st, err := structpb.NewStruct(map[string]any{"kind": kind})
	if err != nil {
		return nil, err
	}
	return connect.NewErrorDetail(st)
}

// ErrorKind returns the kind carried by a Connect error, or "" when absent.
func ErrorKind(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	for _, detail := range connectErr.Details() {
		msg, derr := detail.Value()
		if derr != nil {
			continue
		}
		if st, ok := msg.(*structpb.Struct); ok {
			if v, ok := st.GetFields()["kind"]; ok {
				return v.GetStringValue()
			}
		}
	}
	return ""
}

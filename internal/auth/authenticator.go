// Package auth handles OneRoom account credentials and session tokens.
package auth

import (
	"context"

	"github.com/mohdrazakhan/oneroom/internal/models"
)

// Authenticator registers and verifies room members.
// PasswordAuthenticator is the only implementation; the interface keeps
// AuthService independent of how credentials are checked.
type Authenticator interface {
	// Register creates an account. Email is matched case-insensitively.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email when credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that may not be stored.
	ValidateCredential(credential string) error
}

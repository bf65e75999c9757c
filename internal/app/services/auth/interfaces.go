package auth

import (
	"context"

	"clinrec-service/internal/app/models"
	"clinrec-service/internal/app/services/shared/sessions"
)

type AuthUsecase interface {
	// Register creates a local account. Role decides which of patientPN and
	// doctorID must be supplied to link the account to its clinical record.
	Register(ctx context.Context, username, password, role, patientPN, doctorID string) (*models.User, error)
	// Login verifies the credentials and opens a session, returning its id.
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser resolves a session id back to the logged-in identity.
	CurrentUser(ctx context.Context, sessionID string) (*sessions.Session, error)
}

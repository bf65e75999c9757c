package sessions

import (
	"context"
	"time"
)

// Session is the logged-in state kept in Redis between CLI commands.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	PatientPN string `json:"patient_pn,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
}

type SessionRepository interface {
	Save(ctx context.Context, session *Session, expiry time.Duration) error
	Find(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

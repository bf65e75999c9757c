package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/config"
	"clinrec-service/internal/app/models"
	"clinrec-service/internal/app/services/auth"
	"clinrec-service/internal/app/services/shared/sessions"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
)

type memoryUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *memoryUserRepo) CreateUser(_ context.Context, user *models.User) (string, error) {
	id := time.Now().Format("150405") + string(rune('a'+r.nextID))
	r.nextID++
	stored := *user
	stored.ID = id
	r.users[user.Username] = &stored
	return id, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.users[username], nil
}

func (r *memoryUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepo) DeleteUser(_ context.Context, _ string) error { return nil }

type memorySessionRepo struct {
	store map[string]*sessions.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{store: make(map[string]*sessions.Session)}
}

func (r *memorySessionRepo) Save(_ context.Context, session *sessions.Session, _ time.Duration) error {
	r.store[session.SessionID] = session
	return nil
}

func (r *memorySessionRepo) Find(_ context.Context, sessionID string) (*sessions.Session, error) {
	session, ok := r.store[sessionID]
	if !ok {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	return session, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.store, sessionID)
	return nil
}

func newUsecase() auth.AuthUsecase {
	internalConfig := &config.InternalConfig{
		Session: config.Session{ExpiredTimeInHours: 1},
	}
	return auth.NewAuthUsecase(newMemoryUserRepo(), newMemorySessionRepo(), internalConfig, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	usecase := newUsecase()
	ctx := context.Background()

	user, err := usecase.Register(ctx, "anna", "hunter22", constvars.RolePatient, "19900101-1234", "")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.Password, "passwords are stored hashed")

	sessionID, err := usecase.Login(ctx, "anna", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	session, err := usecase.CurrentUser(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "anna", session.Username)
	assert.Equal(t, constvars.RolePatient, session.Role)
	assert.Equal(t, "19900101-1234", session.PatientPN)
}

func TestRegisterRoleRequiresLinkedID(t *testing.T) {
	usecase := newUsecase()
	ctx := context.Background()

	_, err := usecase.Register(ctx, "anna", "hunter22", constvars.RolePatient, "", "")
	assert.True(t, exceptions.IsInvalidArgument(err))

	_, err = usecase.Register(ctx, "erik", "hunter22", constvars.RolePractitioner, "", "")
	assert.True(t, exceptions.IsInvalidArgument(err))

	_, err = usecase.Register(ctx, "root", "hunter22", "superuser", "", "")
	assert.True(t, exceptions.IsInvalidArgument(err))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	usecase := newUsecase()
	ctx := context.Background()

	_, err := usecase.Register(ctx, "anna", "hunter22", constvars.RolePatient, "19900101-1234", "")
	require.NoError(t, err)

	_, err = usecase.Login(ctx, "anna", "wrong")
	assert.Error(t, err)

	_, err = usecase.Login(ctx, "nobody", "hunter22")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestLogoutEndsSession(t *testing.T) {
	usecase := newUsecase()
	ctx := context.Background()

	_, err := usecase.Register(ctx, "anna", "hunter22", constvars.RolePatient, "19900101-1234", "")
	require.NoError(t, err)
	sessionID, err := usecase.Login(ctx, "anna", "hunter22")
	require.NoError(t, err)

	require.NoError(t, usecase.Logout(ctx, sessionID))
	_, err = usecase.CurrentUser(ctx, sessionID)
	assert.True(t, exceptions.IsNotFound(err))
}

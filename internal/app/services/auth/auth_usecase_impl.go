package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinrec-service/internal/app/config"
	"clinrec-service/internal/app/models"
	"clinrec-service/internal/app/services/shared/sessions"
	"clinrec-service/internal/app/services/users"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/utils"
)

type authUsecase struct {
	UserRepo       users.UserRepository
	SessionRepo    sessions.SessionRepository
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewAuthUsecase(
	userRepo users.UserRepository,
	sessionRepo sessions.SessionRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) AuthUsecase {
	return &authUsecase{
		UserRepo:       userRepo,
		SessionRepo:    sessionRepo,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, username, password, role, patientPN, doctorID string) (*models.User, error) {
	u.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingUsernameKey, username),
	)

	if utils.IsBlank(username) {
		return nil, exceptions.ErrBlankField("username")
	}
	if utils.IsBlank(password) {
		return nil, exceptions.ErrBlankField("password")
	}
	switch role {
	case constvars.RolePatient:
		if utils.IsBlank(patientPN) {
			return nil, exceptions.ErrBlankField("patientPN")
		}
	case constvars.RolePractitioner:
		if utils.IsBlank(doctorID) {
			return nil, exceptions.ErrBlankField("doctorID")
		}
	case constvars.RoleAdmin:
	default:
		return nil, exceptions.ErrBlankField("role")
	}

	existing, err := u.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Username:  username,
		Password:  hashed,
		Role:      role,
		PatientPN: patientPN,
		DoctorID:  doctorID,
	}
	userID, err := u.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	u.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingUsernameKey, username),
	)
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	u.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingUsernameKey, username),
	)

	if utils.IsBlank(username) || utils.IsBlank(password) {
		return "", exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	user, err := u.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", exceptions.ErrUserNotExist(nil)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	session := &sessions.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		PatientPN: user.PatientPN,
		DoctorID:  user.DoctorID,
	}
	expiry := time.Duration(u.InternalConfig.Session.ExpiredTimeInHours) * time.Hour
	if err := u.SessionRepo.Save(ctx, session, expiry); err != nil {
		return "", err
	}

	u.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingUsernameKey, username),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return session.SessionID, nil
}

func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if utils.IsBlank(sessionID) {
		return exceptions.ErrSessionNotFound(nil)
	}
	if err := u.SessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	u.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	return nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*sessions.Session, error) {
	if utils.IsBlank(sessionID) {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	return u.SessionRepo.Find(ctx, sessionID)
}

package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"
	"institute-admin-console/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrNotAnAdmin         = errors.New("account is not an admin")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrentAdmin(ctx context.Context, sessionID string) (*dto.AdminResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	authRepo    repository.AdminAuthRepository
	sessionRepo repository.SessionRepository
	jwtService  *jwt.JWTService
	// sessionState is discarded on logout (mirrors, cursors, action markers)
	sessionState []service.SessionState
}

func NewAuthUsecase(
	log *logrus.Logger,
	authRepo repository.AdminAuthRepository,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	sessionState ...service.SessionState,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		authRepo:     authRepo,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		sessionState: sessionState,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	backendToken, profile, err := u.authRepo.Login(ctx, req.Email, req.Password)
	if err != nil {
		if remote.IsUnauthorized(err) || isBadRequest(err) || remote.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to login at institute backend: %+v", err)
		return nil, err
	}

	if profile.Role == "" {
		profile.Role = entity.RoleAdmin
	}
	if profile.Role != entity.RoleAdmin && profile.Role != entity.RoleSuperAdmin {
		return nil, ErrNotAnAdmin
	}
	if profile.Email == "" {
		profile.Email = req.Email
	}

	session := &entity.AdminSession{
		ID:        jwt.NewSessionID(),
		Token:     backendToken,
		Profile:   *profile,
		CreatedAt: time.Now(),
	}

	accessToken, err := u.jwtService.GenerateAccessToken(session.ID, profile.ID, profile.Email, profile.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.sessionRepo.Save(ctx, session, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store session in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		Admin:       converter.AdminToResponse(profile),
	}, nil
}

// Logout deletes the session and everything the console holds for it
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	for _, state := range u.sessionState {
		state.Drop(sessionID)
	}

	return nil
}

func (u *authUsecase) GetCurrentAdmin(ctx context.Context, sessionID string) (*dto.AdminResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	admin := converter.AdminToResponse(&session.Profile)
	return &admin, nil
}

func isBadRequest(err error) bool {
	remoteErr, ok := remote.AsError(err)
	return ok && remoteErr.Kind == remote.KindStatus && remoteErr.StatusCode == http.StatusBadRequest
}

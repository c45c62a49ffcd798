package service

import (
	"context"
	"time"

	"village_rides_backend/internal/auth/password"
	"village_rides_backend/internal/auth/repository"
	"village_rides_backend/internal/auth/transport"
	"village_rides_backend/internal/events"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SeedAdmin makes sure the bootstrap admin from the environment exists. The
// password is stored as a bcrypt hash; an already-seeded admin is left alone.
func (s *Service) SeedAdmin(ctx context.Context) error {
	username := s.cfg.GetAdminUsername()
	plain := s.cfg.GetAdminPassword()
	if username == "" || plain == "" {
		return nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	return s.repo.EnsureSeed(ctx, username, hash)
}

// Login verifies admin credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err == repository.ErrNotFound {
		s.log.AuthEvent("login", req.Username, false, "unknown username")
		return transport.LoginResponse{}, apperr.Unauthorized("Невалидни данни за вход.")
	}
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load admin user", err)
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		s.log.AuthEvent("login", req.Username, false, "wrong password")
		return transport.LoginResponse{}, apperr.Unauthorized("Невалидни данни за вход.")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	token, err := s.signJWT(user, ttl)
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	s.log.AuthEvent("login", user.Username, true, "")
	s.bus.Publish(ctx, events.AdminLoggedIn{
		BaseEvent: events.NewBaseEvent(),
		AdminID:   user.ID,
		Username:  user.Username,
	})

	return transport.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

// Logout ends an admin session. Access tokens are stateless and simply
// discarded client-side; the server's part is the audit trail entry.
func (s *Service) Logout(ctx context.Context, adminID uuid.UUID, username string) transport.LogoutResponse {
	s.log.AuthEvent("logout", username, true, "")
	s.bus.Publish(ctx, events.AdminLoggedOut{
		BaseEvent: events.NewBaseEvent(),
		AdminID:   adminID,
		Username:  username,
	})
	return transport.LogoutResponse{Message: "Излязохте успешно."}
}

func (s *Service) signJWT(user repository.AdminUser, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"type":     accessTokenType,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}

package staff

import (
	"context"
	"strings"
	"time"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, username, pin string) (string, *Staff, error)
}

type service struct {
	repo   Repository
	secret string
	now    func() time.Time
}

func NewService(repo Repository, secret string) Service {
	return &service{repo: repo, secret: secret, now: time.Now}
}

// Login checks the PIN and returns a signed access token.
func (s *service) Login(ctx context.Context, username, pin string) (string, *Staff, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || pin == "" {
		return "", nil, apperr.Invalid("credentials", "username and PIN are required")
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, apperr.Storage("find staff", err)
	}
	if account == nil || !account.Active || !CheckPIN(pin, account.PINHash) {
		log.Warn("login rejected")
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(s.secret, account, s.now())
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", nil, err
	}

	log.Info("staff logged in", zap.String("staff_id", account.ID))
	return token, account, nil
}

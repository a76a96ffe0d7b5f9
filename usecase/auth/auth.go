package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/internal/metrics"
	"github.com/piar/gateway/repository"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, time.Time, error)
}

type UseCase struct {
	users   repository.UserRepository
	tokens  TokenIssuer
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func New(users repository.UserRepository, tokens TokenIssuer, m *metrics.Metrics, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Login matches the credential against active users and issues a session token.
// Passwords are compared as stored; the user table keeps them in plain text.
func (uc *UseCase) Login(ctx context.Context, cred domain.Credential) (*domain.Session, error) {
	if !cred.IsComplete() {
		uc.metrics.ObserveLogin(metrics.OutcomeRejected)
		return nil, domain.ErrInvalidLogin
	}

	user, err := uc.users.FindActiveByCredential(ctx, cred)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.metrics.ObserveLogin(metrics.OutcomeRejected)
			uc.logger.Warn("login rejected", zap.String("username", cred.Username))
			return nil, domain.ErrInvalidCredentials
		}
		uc.metrics.ObserveLogin(metrics.OutcomeError)
		uc.logger.Error("user lookup failed", zap.Error(err))
		return nil, domain.Internal(err)
	}

	issuedAt := uc.now()
	signed, expiresAt, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.OutcomeError)
		return nil, domain.Internal(err)
	}

	uc.metrics.ObserveLogin(metrics.OutcomeOK)
	return &domain.Session{
		Token:     signed,
		User:      *user,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

package repository

import (
	"context"

	"github.com/piar/gateway/domain"
)

type UserRepository interface {
	// FindActiveByCredential returns domain.ErrUserNotFound when no active row matches.
	FindActiveByCredential(ctx context.Context, cred domain.Credential) (*domain.User, error)
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/repository"
)

type userRepository struct {
	db DB
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(db DB) repository.UserRepository {
	return &userRepository{db: db}
}

const findActiveUserQuery = `
	SELECT usuario_id, nombre, apellido, correo
	FROM usuarios
	WHERE correo = $1 AND contrasena = $2 AND activo = true
	LIMIT 1
`

func (r *userRepository) FindActiveByCredential(ctx context.Context, cred domain.Credential) (*domain.User, error) {
	row := r.db.QueryRow(ctx, findActiveUserQuery, cred.Username, cred.Password)

	var user domain.User
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

// Accounts are provisioned outside this service; it only reads them.
type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, has_license, is_admin, created_on`

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.HasLicense, &u.IsAdmin, &u.CreatedOn)
	return u, err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	logger.DatabaseCall("SELECT", "users", "userID", id)
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %d", id))
	}
	return u, nil
}

// GetByEmail matches case-insensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	logger.DatabaseCall("SELECT", "users", "email", email)
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, translate(err, "user "+email)
	}
	return u, nil
}

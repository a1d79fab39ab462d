package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()
	cols := []string{"id", "name", "email", "password_hash", "has_license", "is_admin", "created_on"}

	t.Run("GetByEmail", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WithArgs("Rita@Example.com").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(20, "Rita Renter", "rita@example.com", "hash", true, false, time.Now()))

		u, err := repo.GetByEmail(ctx, "Rita@Example.com")
		require.NoError(t, err)
		assert.Equal(t, int32(20), u.ID)
		assert.True(t, u.HasLicense)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

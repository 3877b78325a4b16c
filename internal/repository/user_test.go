package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("matches name, email, and bio and excludes the requester", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			`LOWER(bio) LIKE $3) AND users.id != $4 AND is_active = $5`,
		)).
			WithArgs("%maya%", "%maya%", "%maya%", 7, true, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Maya"))

		users, err := repo.Search(ctx, "Maya", 7, 20, 0)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, uint(4), users[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lowercases the query for matching", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(name) LIKE $1`)).
			WithArgs("%chem lab%", "%chem lab%", "%chem lab%", 1, true, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		users, err := repo.Search(ctx, "Chem Lab", 1, 20, 0)
		require.NoError(t, err)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

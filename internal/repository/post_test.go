package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("new like inserts a row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id, post_id) DO NOTHING`)).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.Like(ctx, 1, 10)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat like is absorbed by the unique index", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id, post_id) DO NOTHING`)).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.Like(ctx, 1, 10)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Unlike(t *testing.T) {
	ctx := context.Background()

	t.Run("existing like is removed", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 10)
		assert.NoError(t, err)
		assert.True(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing like removes nothing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 10)
		assert.NoError(t, err)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_IncrementLikes(t *testing.T) {
	ctx := context.Background()

	t.Run("increment adds delta", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`likes_count + $1`)).
			WithArgs(1, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.IncrementLikes(ctx, 10, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("decrement clamps at zero in SQL", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`CASE WHEN likes_count >= $1 THEN likes_count - $2 ELSE 0 END`)).
			WithArgs(1, 1, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.IncrementLikes(ctx, 10, -1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero delta touches nothing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		assert.NoError(t, repo.IncrementLikes(ctx, 10, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package repository

import (
	"context"
	"regexp"
	"testing"

	"zord/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNotificationRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found maps to domain error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewNotificationRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications"`)).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(ctx, 99)

		var appErr *models.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationRepository_MarkSeen(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "seen"=$1 WHERE id = $2`)).
		WithArgs(true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.MarkSeen(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllSeen(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "seen"=$1 WHERE receiver_id = $2 AND seen = $3`)).
		WithArgs(true, 2, false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	assert.NoError(t, repo.MarkAllSeen(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_DeleteForPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "notifications" WHERE post_id = $1`)).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	assert.NoError(t, repo.DeleteForPost(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_CountUnseen(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notifications" WHERE receiver_id = $1 AND seen = $2 AND is_active = $3`)).
		WithArgs(2, false, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountUnseen(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

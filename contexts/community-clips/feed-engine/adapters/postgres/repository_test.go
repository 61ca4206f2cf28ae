package postgresadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestGetClipMapsMissingRowToNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "clips" WHERE clip_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id"}))

	_, err := repo.GetClip(context.Background(), " missing ")
	assert.ErrorIs(t, err, domainerrors.ErrClipNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClipResolvesNullSubmittedAtToEpoch(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "clips" WHERE clip_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "status", "submitted_at", "likes"}).
			AddRow("clip-a", "approved", nil, 3))

	clip, err := repo.GetClip(context.Background(), "clip-a")
	require.NoError(t, err)
	assert.Equal(t, entities.ClipStatusApproved, clip.Status)
	assert.True(t, clip.SubmittedAt.Equal(time.Unix(0, 0)))
	assert.EqualValues(t, 3, clip.Likes)
}

func TestListClipsWrapsTransientErrors(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "clips" WHERE status = \$1`).
		WithArgs("approved").
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"})

	_, err := repo.ListClips(context.Background(), entities.ClipStatusApproved)
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestListClipsKeepsLogicErrorsUnwrapped(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT \* FROM "clips"`).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})

	_, err := repo.ListClips(context.Background(), "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
}

func TestIncrementViewCountIsAtomicUpdate(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(`UPDATE "clips" SET "views"=views \+ \$1 WHERE clip_id = \$2`).
		WithArgs(1, "clip-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "clips" SET "views"=views \+ \$1 WHERE clip_id = \$2`).
		WithArgs(1, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViewCount(context.Background(), "clip-a"))
	assert.ErrorIs(t, repo.IncrementViewCount(context.Background(), "missing"), domainerrors.ErrClipNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLikeBumpsCounterOnlyForNewRecords(t *testing.T) {
	repo, mock := newMockRepository(t)
	like := entities.Like{ClipID: "clip-a", UserID: "user-1", CreatedAt: time.Now()}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "clip_likes" .* ON CONFLICT .* DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "clips" SET "likes"=likes \+ \$1 WHERE clip_id = \$2`).
		WithArgs(1, "clip-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateLike(context.Background(), like)
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "clip_likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	created, err = repo.CreateLike(context.Background(), like)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

const lockClipQuery = `SELECT "clip_id","likes" FROM "clips" WHERE clip_id = \$1 .*FOR UPDATE`

func TestDeleteLikeClampsCounterAtZero(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}).AddRow("clip-a", 0))
	mock.ExpectExec(`DELETE FROM "clip_likes" WHERE clip_id = \$1 AND user_id = \$2`).
		WithArgs("clip-a", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "clips" SET "likes"=GREATEST\(likes - \$1, 0\) WHERE clip_id = \$2`).
		WithArgs(1, "clip-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteLike(context.Background(), "clip-a", "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLikeOnMissingClipReportsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}))
	mock.ExpectRollback()

	deleted, err := repo.DeleteLike(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, domainerrors.ErrClipNotFound)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLikeWithoutRecordLeavesCounter(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}).AddRow("clip-a", 3))
	mock.ExpectExec(`DELETE FROM "clip_likes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.DeleteLike(context.Background(), "clip-a", "user-1")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusLosingRaceReportsInvalidTransition(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(`UPDATE "clips" SET .* WHERE clip_id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "clips" WHERE clip_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "status"}).AddRow("clip-a", "approved"))

	_, err := repo.SetStatus(context.Background(), ports.StatusChange{
		ClipID:     "clip-a",
		Status:     entities.ClipStatusRejected,
		ReviewedBy: "mod-2",
		ReviewedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClipRollsBackWhenMissing(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "clip_likes"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "clip_comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "clips"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteClip(context.Background(), "clip-a")
	assert.ErrorIs(t, err, domainerrors.ErrClipNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileLikeCountsRecountsUnderRowLock(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .*clip_id.* FROM clips AS c LEFT JOIN clip_likes AS l .*HAVING c.likes <> COUNT\(l.id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id"}).
			AddRow("clip-a").
			AddRow("clip-b").
			AddRow("clip-c"))

	// clip-a drifted: counter says 5, four records exist.
	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}).AddRow("clip-a", 5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clip_likes" WHERE clip_id = \$1`).
		WithArgs("clip-a").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec(`UPDATE "clips" SET "likes"=\$1 WHERE clip_id = \$2`).
		WithArgs(4, "clip-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// clip-b was deleted after the scan.
	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}))
	mock.ExpectRollback()

	// clip-c caught up with a like that committed while the lock was awaited.
	mock.ExpectBegin()
	mock.ExpectQuery(lockClipQuery).
		WillReturnRows(sqlmock.NewRows([]string{"clip_id", "likes"}).AddRow("clip-c", 7))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clip_likes" WHERE clip_id = \$1`).
		WithArgs("clip-c").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectCommit()

	repaired, err := repo.ReconcileLikeCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileLikeCountsWrapsScanFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT .* FROM clips AS c`).
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection"})

	_, err := repo.ReconcileLikeCounts(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestIsTransientClassification(t *testing.T) {
	assert.True(t, isTransient(context.DeadlineExceeded))
	assert.True(t, isTransient(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isTransient(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isTransient(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransient(errors.New("boom")))
}

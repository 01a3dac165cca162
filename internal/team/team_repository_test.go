package team

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (TeamRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewTeamRepository(db), mock
}

func TestIncrementIfOpen_IsConditionalOnCapacity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "teams" SET "current_players"=current_players \+ \$1 WHERE \(id = \$2 AND is_active = \$3 AND current_players < max_players\)`).
		WithArgs(1, 7, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.IncrementIfOpen(7)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementIfOpen_NoRowMeansFull(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "teams" SET "current_players"=current_players \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.IncrementIfOpen(7)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementCount_NeverGoesNegative(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "teams" SET "current_players"=current_players - \$1 WHERE \(id = \$2 AND current_players > 0\)`).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DecrementCount(7))
	require.NoError(t, mock.ExpectationsWereMet())
}

package game

import (
	"testing"
	"time"

	"Kiadisa/services/retry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a GORM handle over a sqlmock connection. The default
// transaction wrap is off so expectations stay one-to-one with the
// statements the code issues.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func sessionRows(id uint, code, host, status, phase string, round, total int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "host_username", "status", "phase", "current_round", "total_rounds", "settings",
	}).AddRow(id, code, host, status, phase, round, total, []byte(`{}`))
}

func TestNextPhaseSequence(t *testing.T) {
	cases := []struct {
		phase     string
		round     int
		total     int
		wantPhase string
		wantRound int
	}{
		{PhaseIntro, 1, 3, PhaseAnswer, 1},
		{PhaseAnswer, 1, 3, PhaseVote, 1},
		{PhaseVote, 1, 3, PhaseReveal, 1},
		{PhaseReveal, 1, 3, PhaseResults, 1},
		// Results wraps to the next round's intro
		{PhaseResults, 1, 3, PhaseIntro, 2},
		{PhaseResults, 2, 3, PhaseIntro, 3},
		// Last round's results ends the game
		{PhaseResults, 3, 3, PhaseEnded, 3},
		// Unknown phases restart the round at intro
		{"garbage", 2, 3, PhaseIntro, 2},
	}

	for _, tc := range cases {
		gotPhase, gotRound := NextPhase(tc.phase, tc.round, tc.total)
		assert.Equal(t, tc.wantPhase, gotPhase, "phase after %s (round %d)", tc.phase, tc.round)
		assert.Equal(t, tc.wantRound, gotRound, "round after %s (round %d)", tc.phase, tc.round)
	}
}

func TestAdvancePhaseRejectsNonHost(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "active", PhaseIntro, 1, 5))

	_, err := AdvancePhase(db, nil, 7, "mallory")
	assert.ErrorIs(t, err, ErrNotHost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvancePhaseEndedGame(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "ended", PhaseEnded, 3, 3))

	_, err := AdvancePhase(db, nil, 7, "alice")
	assert.ErrorIs(t, err, ErrGameEnded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvancePhaseNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	// No row behind the id
	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := AdvancePhase(db, nil, 42, "alice")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvancePhaseIntroToAnswer(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "active", PhaseIntro, 1, 5))

	mock.ExpectExec(`UPDATE "game_sessions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	adv, err := AdvancePhase(db, nil, 7, "alice")
	assert.NoError(t, err)
	assert.Equal(t, PhaseAnswer, adv.Phase)
	assert.Equal(t, 1, adv.Round)
	assert.False(t, adv.RoundScored)
	assert.False(t, adv.GameEnded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvancePhaseConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "active", PhaseVote, 2, 5))

	// Another advance got there first: the guarded update matches no rows
	mock.ExpectExec(`UPDATE "game_sessions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := AdvancePhase(db, nil, 7, "alice")
	assert.ErrorIs(t, err, ErrPhaseConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvancePhaseConflictIsNotRetried(t *testing.T) {
	db, mock := newMockDB(t)

	// Only one attempt's worth of statements: a replay after the lost
	// guard would re-read the winner's new phase and advance it again,
	// skipping a phase
	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "active", PhaseIntro, 1, 5))

	mock.ExpectExec(`UPDATE "game_sessions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result := retry.ExecuteWithRetry(func() (*AdvanceResult, error) {
		return AdvancePhase(db, nil, 7, "alice")
	}, retry.Options{MaxRetries: 2, RetryDelay: time.Millisecond, IsPermanent: IsPermanent})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, ErrPhaseConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

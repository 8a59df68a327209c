package game

import (
	"testing"

	game_constants "Kiadisa/constants/game"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func roundRows(id, sessionID uint, number int, miniGame, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "session_id", "number", "mini_game", "question_id", "status",
	}).AddRow(id, sessionID, number, miniGame, 1, status)
}

func TestJoinGameInvalidCode(t *testing.T) {
	db, mock := newMockDB(t)

	// Validation fires before any storage call
	_, err := JoinGame(db, nil, "alice", "short")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinGameNotAuthenticated(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := JoinGame(db, nil, "", "AB12CD")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestJoinGameNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE code = \$1 AND status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := JoinGame(db, nil, "alice", "AB12CD")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinGameIdempotent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "game_sessions" WHERE code = \$1 AND status = \$2`).
		WillReturnRows(sessionRows(7, "AB12CD", "alice", "waiting", PhaseIntro, 1, 5))

	// The player row already exists: no insert, the session comes back
	mock.ExpectQuery(`SELECT count\(\*\) FROM "game_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	session, err := JoinGame(db, nil, "bob", "AB12CD")
	assert.NoError(t, err)
	assert.Equal(t, "AB12CD", session.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerValidatesBeforeStorage(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := SubmitAnswer(db, 3, "alice", "   ", false)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	// No query was issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerWrongPhase(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "rounds" WHERE id = \$1`).
		WillReturnRows(roundRows(3, 7, 1, game_constants.MiniGameKikadi, game_constants.RoundCompleted))

	_, err := SubmitAnswer(db, 3, "alice", "an answer", false)
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "rounds" WHERE id = \$1`).
		WillReturnRows(roundRows(3, 7, 1, game_constants.MiniGameKikadi, game_constants.RoundPlaying))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "answers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := SubmitAnswer(db, 3, "alice", "an answer", false)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitVoteValidatesBeforeStorage(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := SubmitVote(db, 3, "alice", "", 0, game_constants.VoteGuess)
	assert.ErrorIs(t, err, ErrIncompleteVote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitVoteRoundNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "rounds" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := SubmitVote(db, 3, "alice", "bob", 1, game_constants.VoteGuess)
	assert.ErrorIs(t, err, ErrRoundNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitVoteUpsertsOnConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "rounds" WHERE id = \$1`).
		WillReturnRows(roundRows(3, 7, 1, game_constants.MiniGameKidenous, game_constants.RoundPlaying))

	// A repeat vote from the same player in the same round replaces the
	// first row instead of tripping the unique index
	mock.ExpectQuery(`INSERT INTO "votes" .* ON CONFLICT \("round_id","username"\) DO UPDATE SET .*"vote_type"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	vote, err := SubmitVote(db, 3, "alice", "bob", 5, game_constants.VoteGuess)
	assert.NoError(t, err)
	assert.Equal(t, uint(11), vote.ID)
	assert.Equal(t, "bob", vote.TargetUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(ErrNotHost))
	assert.True(t, IsPermanent(ErrInvalidSettings))
	assert.True(t, IsPermanent(ErrGameEnded))
	// A lost phase conflict must surface to the caller, not be replayed
	// against the winner's new phase
	assert.True(t, IsPermanent(ErrPhaseConflict))

	// Storage failures are worth retrying
	assert.False(t, IsPermanent(assert.AnError))
}

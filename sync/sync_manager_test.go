package sync

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGameRedisKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT gp.username FROM game_players gp JOIN game_sessions gs ON gs.id = gp.session_id WHERE gs.code = \\$1").
		WithArgs("AB12CD").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).
			AddRow("alice").
			AddRow("bob"))

	sm := NewSyncManager(nil, db)
	keys, err := sm.gameRedisKeys("AB12CD")
	assert.NoError(t, err)

	// Snapshot key first, then one presence key per player
	assert.Equal(t, []string{
		"game:AB12CD",
		"player:alice:presence",
		"player:bob:presence",
	}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGameRedisKeysNoPlayers(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT gp.username FROM game_players gp").
		WithArgs("ZZ99ZZ").
		WillReturnRows(sqlmock.NewRows([]string{"username"}))

	sm := NewSyncManager(nil, db)
	keys, err := sm.gameRedisKeys("ZZ99ZZ")
	assert.NoError(t, err)

	// Even with no players left the snapshot key itself is cleaned
	assert.Equal(t, []string{"game:ZZ99ZZ"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

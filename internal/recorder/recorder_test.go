package recorder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/storage"
)

func newTestSession(t *testing.T) (*Session, *storage.DB, *StateFile) {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())

	sf, err := NewStateFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	game, err := trichess.NewGame()
	require.NoError(t, err)

	return NewSession(db, sf, game, zerolog.Nop()), db, sf
}

func pawnStep(p trichess.Player) (from, to trichess.Cube) {
	from = trichess.HomeSquare(p, 2, 0)
	dirs, _, _ := trichess.PossibleDirections(p, trichess.Pawn)
	return from, from.Add(dirs[1])
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	sf, err := NewStateFile(path)
	require.NoError(t, err)
	assert.False(t, sf.HasActiveGame())

	st := trichess.TurnState{Player: trichess.Black, Counter: 6}
	require.NoError(t, sf.Track("abc", st, 4))

	loaded, err := NewStateFile(path)
	require.NoError(t, err)
	active, ok := loaded.Active()
	require.True(t, ok)
	assert.Equal(t, "abc", active.GameID)
	assert.Equal(t, trichess.Black, active.Player)
	assert.Equal(t, "black", active.ToMove())
	assert.Equal(t, 6, active.Turn)
	assert.Equal(t, 4, active.Moves)
	assert.False(t, active.UpdatedAt.IsZero())

	// Another game id leaves the active game alone.
	require.NoError(t, loaded.Forget("other"))
	assert.Equal(t, "abc", loaded.ActiveGameID())

	require.NoError(t, loaded.Forget("abc"))
	assert.False(t, loaded.HasActiveGame())
	assert.Equal(t, "", loaded.ActiveGameID())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStateFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := NewStateFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"active":{"game_id":"x","player":9}}`), 0644))
	_, err = NewStateFile(path)
	assert.ErrorIs(t, err, trichess.ErrInvalidPlayer)
}

func TestSessionRequiresStart(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.ErrorIs(t, s.Select(trichess.HomeStart(trichess.White)), ErrNotRecording)
	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrNotRecording)
	assert.ErrorIs(t, s.End(), ErrNotRecording)
}

func TestSessionRecordsTurns(t *testing.T) {
	s, db, sf := newTestSession(t)

	gameID, err := s.Start("test")
	require.NoError(t, err)
	assert.Equal(t, StateRecording, s.State())
	active, ok := sf.Active()
	require.True(t, ok)
	assert.Equal(t, gameID, active.GameID)
	assert.Equal(t, trichess.White, active.Player)
	assert.Equal(t, 1, active.Turn)

	_, err = s.Start("again")
	assert.ErrorIs(t, err, ErrAlreadyRecording)

	// Opponent piece: rejected but recorded.
	err = s.Select(trichess.HomeStart(trichess.Brown))
	assert.True(t, trichess.IsInvalidSelection(err))

	from, to := pawnStep(trichess.White)
	require.NoError(t, s.Select(from))
	rec, err := s.Move(to)
	require.NoError(t, err)
	assert.Equal(t, trichess.White, rec.Player)
	assert.Equal(t, 1, s.MoveCount())

	require.NoError(t, s.Select(trichess.HomeStart(trichess.Brown)))
	require.NoError(t, s.Cancel())

	_, err = s.Capture(trichess.HomeStart(trichess.Black))
	require.NoError(t, err)

	st, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, trichess.Black, st.Player)

	active, _ = sf.Active()
	assert.Equal(t, trichess.Black, active.Player)
	assert.Equal(t, 3, active.Turn)
	assert.Equal(t, 1, active.Moves)

	events := storage.NewEventRepository(db)
	all, err := events.GetByGame(gameID)
	require.NoError(t, err)

	var types []string
	for _, e := range all {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []string{
		storage.EventSelectInvalid,
		storage.EventSelect,
		storage.EventMove,
		storage.EventSelect,
		storage.EventCancel,
		storage.EventCapture,
		storage.EventAdvance,
	}, types)

	var sel SelectEvent
	require.NoError(t, all[0].Decode(&sel))
	assert.Equal(t, "white", sel.Player)
	assert.NotEmpty(t, sel.Error)

	moves, err := storage.NewMoveRepository(db).GetByGame(gameID)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, rec, moves[0].Record)
	require.NotNil(t, moves[0].SourceEventID)
	assert.Equal(t, all[2].EventID, *moves[0].SourceEventID)

	require.NoError(t, s.End())
	assert.Equal(t, StateEnded, s.State())
	assert.False(t, sf.HasActiveGame())

	g, err := storage.NewGameRepository(db).Get(gameID)
	require.NoError(t, err)
	assert.NotNil(t, g.EndedAt)
}

func TestSessionResume(t *testing.T) {
	s, db, sf := newTestSession(t)

	gameID, err := s.Start("")
	require.NoError(t, err)

	for _, p := range []trichess.Player{trichess.White, trichess.Brown} {
		from, to := pawnStep(p)
		require.NoError(t, s.Select(from))
		_, err := s.Move(to)
		require.NoError(t, err)
	}
	_, err = s.Capture(trichess.HomeStart(trichess.White))
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)

	// A second process picks the game up from the database.
	game, err := trichess.NewGame()
	require.NoError(t, err)
	resumed := NewSession(db, sf, game, zerolog.Nop())
	require.NoError(t, resumed.Resume(gameID))

	assert.Equal(t, StateRecording, resumed.State())
	assert.Equal(t, 2, resumed.MoveCount())

	st := game.State()
	assert.Equal(t, trichess.White, st.Player)
	assert.Equal(t, 4, st.Counter)

	_, to := pawnStep(trichess.Brown)
	p, ok := game.PieceAt(to)
	require.True(t, ok)
	assert.Equal(t, trichess.Brown, p.Owner)

	_, ok = game.PieceAt(trichess.HomeStart(trichess.White))
	assert.False(t, ok, "captured rook should be gone")

	// Recording continues with the next index.
	from := trichess.HomeSquare(trichess.White, 2, 1)
	dirs, _, err := trichess.PossibleDirections(trichess.White, trichess.Pawn)
	require.NoError(t, err)
	require.NoError(t, resumed.Select(from))
	_, err = resumed.Move(from.Add(dirs[1]))
	require.NoError(t, err)
	assert.Equal(t, 3, resumed.MoveCount())
}

func TestSessionResumeErrors(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.ErrorIs(t, s.Resume("missing"), ErrGameNotFound)

	gameID, err := s.Start("")
	require.NoError(t, err)
	require.NoError(t, s.End())

	assert.ErrorIs(t, s.Resume(gameID), ErrGameEnded)
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "recording", StateRecording.String())
	assert.Equal(t, "ended", StateEnded.String())
}

func TestStatePathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "state.json"), StatePathFor("/data/trichess.db"))
}

func TestSessionMoveStoreFailureKeepsBoard(t *testing.T) {
	s, db, _ := newTestSession(t)

	gameID, err := s.Start("")
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TRIGGER fail_moves BEFORE INSERT ON moves
		BEGIN SELECT RAISE(ABORT, 'disk full'); END
	`)
	require.NoError(t, err)

	from, to := pawnStep(trichess.White)
	require.NoError(t, s.Select(from))
	_, err = s.Move(to)
	require.Error(t, err)

	// Nothing moved and nothing orphaned.
	st := s.Game().State()
	assert.Equal(t, trichess.White, st.Player)
	assert.Equal(t, 1, st.Counter)
	assert.Equal(t, trichess.PhasePieceSelected, st.Phase)
	_, ok := s.Game().PieceAt(from)
	assert.True(t, ok)
	assert.Equal(t, 0, s.MoveCount())

	events := storage.NewEventRepository(db)
	moveEvents, err := events.GetByType(gameID, storage.EventMove)
	require.NoError(t, err)
	assert.Empty(t, moveEvents)

	// Once storage recovers the same move goes through, and a resumed game
	// agrees with the move table.
	_, err = db.Exec(`DROP TRIGGER fail_moves`)
	require.NoError(t, err)
	_, err = s.Move(to)
	require.NoError(t, err)

	game, err := trichess.NewGame()
	require.NoError(t, err)
	resumed := NewSession(db, nil, game, zerolog.Nop())
	require.NoError(t, resumed.Resume(gameID))
	assert.Equal(t, 1, resumed.MoveCount())
	assert.Equal(t, s.Game().State(), game.State())
}

func TestSessionRuleErrorsLeaveNoEvent(t *testing.T) {
	s, db, _ := newTestSession(t)

	gameID, err := s.Start("")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Cancel(), trichess.ErrNoSelection)

	_, err = s.Capture(trichess.HomeStart(trichess.White))
	assert.True(t, trichess.IsInvalidSelection(err), "own piece: %v", err)

	_, err = s.Capture(trichess.MustCube(0, 0, 0))
	assert.ErrorIs(t, err, trichess.ErrNoPiece)

	n, err := storage.NewEventRepository(db).Count(gameID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

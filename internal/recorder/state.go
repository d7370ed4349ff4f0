// Package recorder persists trichess game sessions.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/trichess"
)

const stateFileName = "state.json"

// ActiveGame is the unfinished game `play --resume` picks up, with the
// turn it was left at.
type ActiveGame struct {
	GameID    string          `json:"game_id"`
	Player    trichess.Player `json:"player"`
	Turn      int             `json:"turn"`
	Moves     int             `json:"moves"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToMove names the player whose turn it is.
func (a ActiveGame) ToMove() string {
	return a.Player.String()
}

// StateFile is the small JSON file kept next to the database that remembers
// the active game between runs.
type StateFile struct {
	path   string
	active *ActiveGame
}

// StatePathFor returns the state file path kept next to the database at dbPath.
func StatePathFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), stateFileName)
}

// NewStateFile opens the state file at path. A missing file is an empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return sf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var onDisk struct {
		Active *ActiveGame `json:"active,omitempty"`
	}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if onDisk.Active != nil && !onDisk.Active.Player.Valid() {
		return nil, fmt.Errorf("state file: %w: %d", trichess.ErrInvalidPlayer, onDisk.Active.Player)
	}
	sf.active = onDisk.Active
	return sf, nil
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// Active returns the active game, if any.
func (sf *StateFile) Active() (ActiveGame, bool) {
	if sf.active == nil {
		return ActiveGame{}, false
	}
	return *sf.active, true
}

// HasActiveGame reports whether an unfinished game is remembered.
func (sf *StateFile) HasActiveGame() bool {
	return sf.active != nil
}

// ActiveGameID returns the active game ID, or "".
func (sf *StateFile) ActiveGameID() string {
	if sf.active == nil {
		return ""
	}
	return sf.active.GameID
}

// Track remembers gameID as the active game at turn state st after moves
// recorded moves.
func (sf *StateFile) Track(gameID string, st trichess.TurnState, moves int) error {
	sf.active = &ActiveGame{
		GameID:    gameID,
		Player:    st.Player,
		Turn:      st.Counter,
		Moves:     moves,
		UpdatedAt: time.Now().UTC(),
	}
	return sf.save()
}

// Forget clears the active game when it is gameID. An empty gameID clears
// whatever is active.
func (sf *StateFile) Forget(gameID string) error {
	if sf.active == nil || (gameID != "" && sf.active.GameID != gameID) {
		return nil
	}
	sf.active = nil
	return sf.save()
}

// save writes through a temp file so a crash never leaves half a file.
func (sf *StateFile) save() error {
	data, err := json.MarshalIndent(struct {
		Active *ActiveGame `json:"active,omitempty"`
	}{sf.active}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := sf.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, sf.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/recorder"
	"github.com/SeamusWaldron/trichess/internal/render"
)

var (
	playResume  bool
	playNotes   string
	playNoColor bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive game mode",
	Long: `Start an interactive TUI that drives the turn controller. Every selection,
move, capture and turn change is recorded to the database.

Keyboard shortcuts:
  arrows/hjkl  - Move the cursor
  enter/space  - Select the piece under the cursor, or move the selected
                 piece there (capturing an opponent piece)
  c/esc        - Cancel the selection
  t            - Pass the turn to the next player
  n            - End this game and start a new one
  q/ctrl+c     - Quit (the game stays active and can be resumed)`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playResume, "resume", false, "Resume the active game")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes stored with a new game")
	playCmd.Flags().BoolVar(&playNoColor, "no-color", false, "Disable board colors")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// cursorSteps maps a key to the neighbor steps tried in order. Up and down
// change A, so they alternate between the two neighbors in the next row.
var cursorSteps = map[string][]trichess.Cube{
	"up":    {trichess.MustCube(1, -1, 0), trichess.MustCube(1, 0, -1)},
	"k":     {trichess.MustCube(1, -1, 0), trichess.MustCube(1, 0, -1)},
	"down":  {trichess.MustCube(-1, 1, 0), trichess.MustCube(-1, 0, 1)},
	"j":     {trichess.MustCube(-1, 1, 0), trichess.MustCube(-1, 0, 1)},
	"left":  {trichess.MustCube(0, -1, 1)},
	"h":     {trichess.MustCube(0, -1, 1)},
	"right": {trichess.MustCube(0, 1, -1)},
	"l":     {trichess.MustCube(0, 1, -1)},
}

// Model
type playModel struct {
	session *recorder.Session
	game    *trichess.Game
	notes   string
	noColor bool

	cursor  trichess.Cube
	message string
	err     error

	quitting bool
}

func newPlayModel(session *recorder.Session, notes string, noColor bool) *playModel {
	return &playModel{
		session: session,
		game:    session.Game(),
		notes:   notes,
		noColor: noColor,
		cursor:  trichess.HomeStart(trichess.White),
	}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch k := key.String(); k {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "down", "left", "right", "h", "j", "k", "l":
		m.moveCursor(cursorSteps[k])

	case "enter", " ":
		m.activate()

	case "c", "esc":
		if err := m.session.Cancel(); err != nil {
			m.err = err
		} else {
			m.message = "Selection cancelled"
		}

	case "t":
		st, err := m.session.Advance()
		if err != nil {
			m.err = err
		} else {
			m.message = fmt.Sprintf("Turn passed to %s", st.Player)
			m.cursor = trichess.HomeStart(st.Player)
		}

	case "n":
		if err := m.session.End(); err != nil {
			m.err = err
			break
		}
		id, err := m.session.Start(m.notes)
		if err != nil {
			m.err = err
			break
		}
		m.message = fmt.Sprintf("New game %s", shortID(id))
		m.cursor = trichess.HomeStart(trichess.White)
	}

	return m, nil
}

func (m *playModel) moveCursor(steps []trichess.Cube) {
	for _, step := range steps {
		next := m.cursor.Add(step)
		if _, ok := m.game.TileAt(next); ok {
			m.cursor = next
			return
		}
	}
}

// activate selects the piece under the cursor, or moves the selected piece
// to the cursor, capturing an opponent piece standing there.
func (m *playModel) activate() {
	st := m.game.State()

	if st.Phase == trichess.PhaseIdle {
		if err := m.session.Select(m.cursor); err != nil {
			m.err = err
			return
		}
		p, _ := m.game.Selected()
		m.message = fmt.Sprintf("Selected %s", p.String())
		return
	}

	if target, ok := m.game.PieceAt(m.cursor); ok {
		if target.Owner == st.Player {
			m.err = fmt.Errorf("%s is your own piece", target.String())
			return
		}
		if _, err := m.session.Capture(m.cursor); err != nil {
			m.err = err
			return
		}
	}

	rec, err := m.session.Move(m.cursor)
	if err != nil {
		m.err = err
		return
	}
	m.message = rec.Notation()
	m.cursor = trichess.HomeStart(m.game.State().Player)
}

// highlights returns the one-step targets of the selected piece.
func (m *playModel) highlights() map[trichess.Cube]bool {
	p, ok := m.game.Selected()
	if !ok {
		return nil
	}
	dirs, _, err := trichess.PossibleDirections(p.Owner, p.Kind)
	if err != nil {
		return nil
	}

	var out map[trichess.Cube]bool
	m.game.View(func(b *trichess.Board) {
		out = render.Targets(b, p.Position, dirs)
	})
	return out
}

func (m *playModel) View() string {
	if m.quitting {
		return fmt.Sprintf("Game %s saved. Resume with 'trichess play --resume'.\n", shortID(m.session.GameID()))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("trichess"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("game %s  moves %d", shortID(m.session.GameID()), m.session.MoveCount())))
	b.WriteString("\n\n")

	st := m.game.State()
	b.WriteString(turnStyle.Render(fmt.Sprintf("Turn %d: %s", st.Counter, st.Player)))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  [%s]", st.Phase)))
	b.WriteString("\n")

	if p, ok := m.game.Selected(); ok {
		dirs, sliding, err := trichess.PossibleDirections(p.Owner, p.Kind)
		switch {
		case errors.Is(err, trichess.ErrUnspecifiedPieceKind):
			b.WriteString(statusStyle.Render("No movement rule for " + p.Kind.String()))
		case err == nil:
			b.WriteString(statusStyle.Render(fmt.Sprintf("Directions (sliding=%t): %s", sliding, formatCubes(dirs))))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	highlight := m.highlights()
	m.game.View(func(board *trichess.Board) {
		b.WriteString(render.Board(board, render.Options{
			Highlight: highlight,
			Cursor:    m.cursor,
			HasCursor: true,
			NoColor:   m.noColor,
		}))
	})
	b.WriteString("\n\n")
	b.WriteString(render.Legend(m.noColor))
	b.WriteString("\n")

	cursorLine := fmt.Sprintf("Cursor %s", m.cursor)
	if t, ok := m.game.TileAt(m.cursor); ok {
		cursorLine += fmt.Sprintf(" (%s region)", t.Region)
	}
	b.WriteString(statusStyle.Render(cursorLine))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else if m.message != "" {
		b.WriteString(moveStyle.Render(m.message))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("arrows move | enter select/move | c cancel | t pass turn | n new game | q quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sf, err := openStateFile(db)
	if err != nil {
		return err
	}

	// Console logs would draw over the TUI; only a log file gets game logs.
	gameLog := logger
	if settings.LogFile == "" {
		gameLog = zerolog.Nop()
	}

	game, err := trichess.NewGame(append(gameOptions(), trichess.WithLogger(gameLog))...)
	if err != nil {
		return err
	}

	session := recorder.NewSession(db, sf, game, gameLog)
	session.SetAppVersion(version)

	if playResume {
		active, ok := sf.Active()
		if !ok {
			return fmt.Errorf("no active game to resume")
		}
		if err := session.Resume(active.GameID); err != nil {
			return err
		}
		if st := game.State(); st.Player != active.Player || st.Counter != active.Turn {
			logger.Warn().
				Str("game", active.GameID).
				Int("saved_turn", active.Turn).
				Int("replayed_turn", st.Counter).
				Msg("Replayed turn differs from the saved state; using the replay")
		}
	} else {
		if sf.HasActiveGame() {
			fmt.Fprintf(cmd.OutOrStdout(), "Game %s is still active; starting a new one (resume it with --resume)\n",
				shortID(sf.ActiveGameID()))
		}
		if _, err := session.Start(playNotes); err != nil {
			return err
		}
	}

	model := newPlayModel(session, playNotes, playNoColor)
	model.cursor = trichess.HomeStart(game.State().Player)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

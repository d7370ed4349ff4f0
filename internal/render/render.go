// Package render draws a trichess board as terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"

	"github.com/SeamusWaldron/trichess"
)

// Options controls board rendering.
type Options struct {
	// Highlight marks tiles, typically the targets of the selected piece.
	Highlight map[trichess.Cube]bool

	// Cursor marks one tile when HasCursor is set.
	Cursor    trichess.Cube
	HasCursor bool

	// NoColor renders plain text.
	NoColor bool
}

var (
	regionStyles = map[trichess.Region]lipgloss.Style{
		trichess.RegionWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		trichess.RegionBrown: lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
		trichess.RegionBlack: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}

	ownerStyles = map[trichess.Player]lipgloss.Style{
		trichess.White: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
		trichess.Brown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("172")),
		trichess.Black: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}

	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
)

// cellWidth is the printed width of one tile. Neighbors in a row are two
// half-columns apart, so one blank separates them.
const cellWidth = 3

// column returns the horizontal half-column of c. Surface x is
// proportional to a/2 + b, so a + 2b is an integer column in half steps.
func column(c trichess.Cube) int {
	return c.A + 2*c.B
}

// Board renders the board with rows ordered by A, highest first, so each
// player's forward direction points the way it does on the surface.
func Board(b *trichess.Board, opts Options) string {
	rows := make(map[int][]*trichess.Tile)
	minCol := 0
	first := true
	for _, t := range b.Tiles() {
		rows[t.Position.A] = append(rows[t.Position.A], t)
		if col := column(t.Position); first || col < minCol {
			minCol = col
			first = false
		}
	}

	keys := make([]int, 0, len(rows))
	for a := range rows {
		keys = append(keys, a)
	}
	slices.Sort(keys)
	slices.Reverse(keys)

	lines := make([]string, 0, len(keys))
	for _, a := range keys {
		tiles := rows[a]
		slices.SortFunc(tiles, func(x, y *trichess.Tile) int {
			return column(x.Position) - column(y.Position)
		})

		var sb strings.Builder
		x := 0
		for _, t := range tiles {
			pos := (column(t.Position) - minCol) * 2
			if pos > x {
				sb.WriteString(strings.Repeat(" ", pos-x))
				x = pos
			}
			sb.WriteString(cell(b, t, opts))
			x += cellWidth
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	return strings.Join(lines, "\n")
}

func cell(b *trichess.Board, t *trichess.Tile, opts Options) string {
	marker := " "
	switch {
	case opts.HasCursor && opts.Cursor == t.Position:
		marker = ">"
	case opts.Highlight[t.Position]:
		marker = "*"
	}

	body := " ."
	style := regionStyles[t.Region]
	if p, ok := b.PieceAt(t.Position); ok {
		body = strings.ToLower(p.Owner.Letter()) + p.Kind.Symbol()
		style = ownerStyles[p.Owner]
	}

	if opts.NoColor {
		return marker + body
	}

	if opts.Highlight[t.Position] {
		marker = highlightStyle.Render(marker)
	}
	text := marker + style.Render(body)
	if opts.HasCursor && opts.Cursor == t.Position {
		text = cursorStyle.Render(marker + body)
	}
	return text
}

// Targets returns the on-board tiles one step from from along each
// direction. Tiles holding a piece are included so captures can be shown.
func Targets(b *trichess.Board, from trichess.Cube, dirs []trichess.Cube) map[trichess.Cube]bool {
	out := make(map[trichess.Cube]bool, len(dirs))
	for _, d := range dirs {
		to := from.Add(d)
		if b.Contains(to) {
			out[to] = true
		}
	}
	return out
}

// Legend returns a one-line key of the owner markers.
func Legend(noColor bool) string {
	parts := make([]string, 0, len(trichess.AllPlayers))
	for _, p := range trichess.AllPlayers {
		label := strings.ToLower(p.Letter()) + "=" + p.String()
		if !noColor {
			label = ownerStyles[p].Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

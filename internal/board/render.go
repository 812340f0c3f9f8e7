package board

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

// highlightColor is ANSI red.
const highlightColor = "1"

// Render draws the grid one row per line with the most recent move in red.
func (that *Board) Render() string {
	return that.RenderWith(termenv.ANSI)
}

// RenderWith draws the grid using the given color profile. termenv.Ascii
// yields plain text.
func (that *Board) RenderWith(profile termenv.Profile) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	last, hasLast := that.lastMoveLocked()

	return renderGrid(that.grid, last, hasLast, profile)
}

// RenderAfter draws the grid as it was right after the n-th accepted move,
// highlighting that move. n is clamped to the moves played so far.
func (that *Board) RenderAfter(n int) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	n = max(0, min(n, len(that.history)))

	grid := make([][]entity.Symbol, that.size)
	for y := range grid {
		grid[y] = make([]entity.Symbol, that.size)
	}
	for _, played := range that.history[:n] {
		grid[played.Y][played.X] = played.Symbol
	}

	if n == 0 {
		return renderGrid(grid, entity.Move{}, false, termenv.ANSI)
	}

	return renderGrid(grid, that.history[n-1].Move, true, termenv.ANSI)
}

// MoveNumber returns the 1-based position of the move at m in the history,
// or 0 when the cell is still empty.
func (that *Board) MoveNumber(m entity.Move) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, played := range that.history {
		if played.Move == m {
			return i + 1
		}
	}

	return 0
}

func (that *Board) String() string {
	return that.RenderWith(termenv.Ascii)
}

func renderGrid(grid [][]entity.Symbol, last entity.Move, hasLast bool, profile termenv.Profile) string {
	size := len(grid)

	var sb strings.Builder
	for y, row := range grid {
		for x, cell := range row {
			mark := cell.String()
			if hasLast && last == (entity.Move{X: x, Y: y}) {
				mark = profile.String(mark).Foreground(profile.Color(highlightColor)).String()
			}

			sb.WriteString(mark)
			if x < size-1 {
				sb.WriteByte(' ')
			}
		}

		if y < size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

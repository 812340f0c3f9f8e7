package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/participant"
)

// Printer writes every accepted move and the board right after it, in the
// order the board accepted them. Moves announced ahead of an earlier one are
// held back until the gap is filled.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	printed int
	pending map[int]string
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, pending: map[int]string{}}
}

func (that *Printer) MoveAccepted(player string, move entity.PlayedMove, view participant.View) {
	n := view.MoveNumber(move.Move)

	board := view.Render()
	if n > 0 {
		board = view.RenderAfter(n)
	}
	line := fmt.Sprintf("%s (%s) -> %s ✓\n%s\n\n", player, move.Symbol, move.Move, board)

	that.mu.Lock()
	defer that.mu.Unlock()

	if n == 0 {
		_, _ = io.WriteString(that.out, line)
		return
	}

	that.pending[n] = line
	for {
		next, ok := that.pending[that.printed+1]
		if !ok {
			break
		}

		_, _ = io.WriteString(that.out, next)
		delete(that.pending, that.printed+1)
		that.printed++
	}
}

// Banner also starts a new move sequence.
func (that *Printer) Banner(size, winLength int, players []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.printed = 0
	clear(that.pending)

	_, _ = fmt.Fprintf(that.out, "\n=== N-in-a-row started ===\nBoard size: %dx%d | Winning: %d\n", size, size, winLength)
	for _, p := range players {
		_, _ = fmt.Fprintln(that.out, p)
	}
	_, _ = fmt.Fprintln(that.out)
}

func (that *Printer) Result(result *entity.Result) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, _ = fmt.Fprintf(that.out, "\n=== Game over ===\n%s\n\n", result.Board)

	switch {
	case result.IsAbandoned():
		_, _ = fmt.Fprintln(that.out, "Match abandoned")
	case result.IsDraw():
		_, _ = fmt.Fprintln(that.out, "Draw!")
	default:
		_, _ = fmt.Fprintf(that.out, "Winner: %s\n", result.Winner)
	}
}

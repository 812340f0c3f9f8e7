// Package board implements the shared N-in-a-row game state: a monitor that
// serializes concurrent move attempts into strict X/O alternation, blocks
// out-of-turn callers, and evaluates win and draw after every accepted move.
package board

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

const (
	MinSize      = 3
	MinWinLength = 3
)

// Board is safe for concurrent use. It is mutated only through Play and
// becomes read-only once the game is over.
type Board struct {
	size      int
	winLength int

	mu       sync.Mutex
	turnCond *sync.Cond

	grid    [][]entity.Symbol // grid[y][x]
	history []entity.PlayedMove

	// written under mu, readable without it: all three only move forward
	// (turn alternates, the other two are set at most once).
	turn     atomic.Uint32
	gameOver atomic.Bool
	winner   atomic.Uint32

	done chan struct{}
}

// New returns an empty size x size board where winLength consecutive symbols win.
// X moves first.
func New(size, winLength int) (*Board, error) {
	if size < MinSize || winLength < MinWinLength {
		return nil, fmt.Errorf("%w: size %d and win length %d must be at least %d",
			apperror.ErrInvalidConfiguration, size, winLength, MinSize)
	}

	if size < winLength {
		return nil, fmt.Errorf("%w: size %d is smaller than win length %d",
			apperror.ErrInvalidConfiguration, size, winLength)
	}

	grid := make([][]entity.Symbol, size)
	for y := range grid {
		grid[y] = make([]entity.Symbol, size)
	}

	that := &Board{
		size:      size,
		winLength: winLength,
		grid:      grid,
		done:      make(chan struct{}),
	}
	that.turnCond = sync.NewCond(&that.mu)
	that.turn.Store(uint32(entity.X))

	return that, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) WinLength() int {
	return that.winLength
}

func (that *Board) IsGameOver() bool {
	return that.gameOver.Load()
}

// Winner returns entity.Empty while the game runs and after a draw.
func (that *Board) Winner() entity.Symbol {
	return entity.Symbol(that.winner.Load())
}

func (that *Board) CurrentTurn() entity.Symbol {
	return entity.Symbol(that.turn.Load())
}

// Done is closed when the game ends.
func (that *Board) Done() <-chan struct{} {
	return that.done
}

func (that *Board) LastMove() (entity.Move, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.lastMoveLocked()
}

func (that *Board) MoveCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.history)
}

// History returns the accepted moves in the order they were applied.
func (that *Board) History() []entity.PlayedMove {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]entity.PlayedMove(nil), that.history...)
}

func (that *Board) lastMoveLocked() (entity.Move, bool) {
	if len(that.history) == 0 {
		return entity.Move{}, false
	}

	return that.history[len(that.history)-1].Move, true
}

// Cell returns entity.Empty for coordinates outside the board.
func (that *Board) Cell(x, y int) entity.Symbol {
	if !that.inBounds(x, y) {
		return entity.Empty
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid[y][x]
}

// EmptyCells lists the free cells in row-major order.
func (that *Board) EmptyCells() []entity.Move {
	that.mu.Lock()
	defer that.mu.Unlock()

	cells := make([]entity.Move, 0, that.size*that.size-len(that.history))
	for y, row := range that.grid {
		for x, cell := range row {
			if cell == entity.Empty {
				cells = append(cells, entity.Move{X: x, Y: y})
			}
		}
	}

	return cells
}

func (that *Board) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < that.size && y < that.size
}

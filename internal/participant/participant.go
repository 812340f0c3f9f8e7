// Package participant holds the callers of board.Board.Play: a Player loop
// that keeps submitting moves, fed by interchangeable move sources.
package participant

import (
	"context"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

// View is the read side of a board a MoveSource may inspect.
type View interface {
	Size() int
	CurrentTurn() entity.Symbol
	EmptyCells() []entity.Move
	Render() string
	RenderAfter(n int) string
	MoveNumber(m entity.Move) int
	WaitTurn(ctx context.Context, symbol entity.Symbol) bool
}

// Board is what a Player needs to take part in a game.
type Board interface {
	View
	IsGameOver() bool
	Play(ctx context.Context, symbol entity.Symbol, x, y int) bool
}

// MoveSource produces a candidate move for the given board.
type MoveSource interface {
	NextMove(ctx context.Context, view View) (entity.Move, error)
}

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func(ctx context.Context, view View) (entity.Move, error)

func (f MoveSourceFunc) NextMove(ctx context.Context, view View) (entity.Move, error) {
	return f(ctx, view)
}

// MoveListener is told about every move a Player got accepted. It is called
// after Play returned, outside the board lock, so calls from different
// players may arrive out of move order and view may already show later
// moves. Use MoveNumber and RenderAfter for the state at that move.
type MoveListener interface {
	MoveAccepted(player string, move entity.PlayedMove, view View)
}

package board

import (
	"context"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

// Play places symbol at column x, row y and reports whether the move was
// accepted.
//
// Out-of-range coordinates and calls after the game ended are rejected
// immediately. A caller whose symbol is not on turn blocks until it is, until
// the game ends, or until ctx is done; the last two return false. An occupied
// target cell is rejected without changing state.
func (that *Board) Play(ctx context.Context, symbol entity.Symbol, x, y int) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.gameOver.Load() || !that.inBounds(x, y) || !symbol.IsPlayable() {
		return false
	}

	if !that.awaitTurn(ctx, symbol) {
		return false
	}

	if that.grid[y][x] != entity.Empty {
		return false
	}

	that.grid[y][x] = symbol
	that.history = append(that.history, entity.PlayedMove{Move: entity.Move{X: x, Y: y}, Symbol: symbol})
	that.turn.Store(uint32(symbol.Opponent()))

	that.evaluate()
	that.turnCond.Broadcast()

	return true
}

// WaitTurn blocks until symbol is on turn and reports true, or returns false
// once the game is over or ctx is done. It does not reserve the turn: a
// following Play may still be rejected.
func (that *Board) WaitTurn(ctx context.Context, symbol entity.Symbol) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.gameOver.Load() || !symbol.IsPlayable() {
		return false
	}

	return that.awaitTurn(ctx, symbol)
}

// awaitTurn must be called with mu held; it returns with mu held.
func (that *Board) awaitTurn(ctx context.Context, symbol entity.Symbol) bool {
	if that.CurrentTurn() == symbol {
		return true
	}

	// Cond.Wait cannot select on ctx, so cancellation is turned into a broadcast.
	stop := context.AfterFunc(ctx, func() {
		that.mu.Lock()
		defer that.mu.Unlock()
		that.turnCond.Broadcast()
	})
	defer stop()

	for that.CurrentTurn() != symbol && !that.gameOver.Load() {
		if ctx.Err() != nil {
			return false
		}
		that.turnCond.Wait()
	}

	return !that.gameOver.Load()
}

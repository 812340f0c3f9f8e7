package participant

import (
	"context"
	"errors"
	"sync"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

var ErrScriptExhausted = errors.New("scripted moves exhausted")

// ScriptedSource replays a fixed list of moves, one per call.
type ScriptedSource struct {
	mu    sync.Mutex
	moves []entity.Move
	next  int
}

func NewScriptedSource(moves ...entity.Move) *ScriptedSource {
	return &ScriptedSource{moves: moves}
}

func (that *ScriptedSource) NextMove(ctx context.Context, _ View) (entity.Move, error) {
	if err := ctx.Err(); err != nil {
		return entity.Move{}, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.next >= len(that.moves) {
		return entity.Move{}, ErrScriptExhausted
	}

	move := that.moves[that.next]
	that.next++

	return move, nil
}

// Remaining reports how many moves have not been handed out yet.
func (that *ScriptedSource) Remaining() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.moves) - that.next
}

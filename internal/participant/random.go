package participant

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// RandomSource picks uniformly among the cells that are free when asked.
// The cell may be taken by the time the move is played.
type RandomSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *RandomSource) NextMove(ctx context.Context, view View) (entity.Move, error) {
	if err := ctx.Err(); err != nil {
		return entity.Move{}, err
	}

	availableCells := view.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	that.mu.Lock()
	chosen := availableCells[that.rnd.Intn(len(availableCells))]
	that.mu.Unlock()

	return chosen, nil
}

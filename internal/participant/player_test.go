package participant

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/board"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type recordingListener struct {
	mu    sync.Mutex
	moves []entity.PlayedMove
}

func (that *recordingListener) MoveAccepted(_ string, move entity.PlayedMove, _ View) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.moves = append(that.moves, move)
}

func (that *recordingListener) count(symbol entity.Symbol) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	n := 0
	for _, m := range that.moves {
		if m.Symbol == symbol {
			n++
		}
	}
	return n
}

func runAll(ctx context.Context, players ...*Player) []error {
	errs := make([]error, len(players))

	var wg sync.WaitGroup
	for i, p := range players {
		wg.Add(1)
		go func(i int, p *Player) {
			defer wg.Done()
			errs[i] = p.Run(ctx)
		}(i, p)
	}
	wg.Wait()

	return errs
}

func TestPlayer_Run(t *testing.T) {
	t.Run("Scripted players finish a game", func(t *testing.T) {
		// Given: X scripted to take the top row, O the middle row
		b, err := board.New(3, 3)
		require.NoError(t, err)
		listener := &recordingListener{}

		x := NewPlayer(discardLogger(), "Ahmed", entity.X, b,
			NewScriptedSource(entity.Move{X: 0, Y: 0}, entity.Move{X: 1, Y: 0}, entity.Move{X: 2, Y: 0}),
			WithMoveListener(listener))
		o := NewPlayer(discardLogger(), "Hamza", entity.O, b,
			NewScriptedSource(entity.Move{X: 0, Y: 1}, entity.Move{X: 1, Y: 1}, entity.Move{X: 2, Y: 1}),
			WithMoveListener(listener))

		// When: both run concurrently
		errs := runAll(context.Background(), x, o)

		// Then: X wins after five moves and both return cleanly
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		assert.Equal(t, entity.X, b.Winner())
		assert.Equal(t, 3, listener.count(entity.X))
		assert.Equal(t, 2, listener.count(entity.O))
		assert.Equal(t, "X X X", b.String()[:5])
	})

	t.Run("Random players always finish", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			// Given: two random players on a 5x5 board needing four
			b, err := board.New(5, 4)
			require.NoError(t, err)

			x := NewPlayer(discardLogger(), "x", entity.X, b, NewRandomSource(seed))
			o := NewPlayer(discardLogger(), "o", entity.O, b, NewRandomSource(seed+100))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			// When: they play it out
			errs := runAll(ctx, x, o)
			cancel()

			// Then: the game ended on its own
			require.NoError(t, errs[0])
			require.NoError(t, errs[1])
			require.True(t, b.IsGameOver())
		}
	})

	t.Run("Limited player gives up after repeated rejections", func(t *testing.T) {
		// Given: X to move with the corner already taken, aiming at it anyway
		b, err := board.New(3, 3)
		require.NoError(t, err)
		require.True(t, b.Play(context.Background(), entity.X, 0, 0))
		require.True(t, b.Play(context.Background(), entity.O, 1, 1))

		stubborn := MoveSourceFunc(func(context.Context, View) (entity.Move, error) {
			return entity.Move{X: 0, Y: 0}, nil
		})
		x := NewPlayer(discardLogger(), "stubborn", entity.X, b, stubborn, WithMaxAttempts(3))

		// When: X runs
		err = x.Run(context.Background())

		// Then: X gives up and the game is not over
		require.ErrorIs(t, err, apperror.ErrGaveUp)
		assert.False(t, b.IsGameOver())
		assert.Equal(t, 2, b.MoveCount())
	})

	t.Run("Limited random player never gives up against a single opponent", func(t *testing.T) {
		for seed := int64(0); seed < 100; seed++ {
			// Given: random players on a 3x3 board, O allowed a single failure
			b, err := board.New(3, 3)
			require.NoError(t, err)

			x := NewPlayer(discardLogger(), "x", entity.X, b, NewRandomSource(seed))
			o := NewPlayer(discardLogger(), "o", entity.O, b, NewRandomSource(seed+1000), WithMaxAttempts(1))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			// When: they play it out
			errs := runAll(ctx, x, o)
			cancel()

			// Then: O only chose on its own turn, so no move was rejected
			require.NoError(t, errs[0], "seed %d", seed)
			require.NoError(t, errs[1], "seed %d", seed)
			require.True(t, b.IsGameOver(), "seed %d", seed)
		}
	})

	t.Run("Source is asked only on turn", func(t *testing.T) {
		// Given: a board where X is on turn and an O source recording the turn
		b, err := board.New(3, 3)
		require.NoError(t, err)

		turns := make(chan entity.Symbol, 1)
		source := MoveSourceFunc(func(_ context.Context, view View) (entity.Move, error) {
			turns <- view.CurrentTurn()
			return entity.Move{X: 1, Y: 1}, nil
		})
		o := NewPlayer(discardLogger(), "o", entity.O, b, source)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- o.Run(ctx) }()

		// When: X has not moved yet
		select {
		case <-turns:
			t.Fatal("source asked before O was on turn")
		case <-time.After(50 * time.Millisecond):
		}

		// Then: after X moves the source is asked with O on turn
		require.True(t, b.Play(ctx, entity.X, 0, 0))
		assert.Equal(t, entity.O, <-turns)

		cancel()
		require.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("Waiting player stops on cancellation", func(t *testing.T) {
		// Given: O alone on a board where X is on turn
		b, err := board.New(3, 3)
		require.NoError(t, err)
		o := NewPlayer(discardLogger(), "o", entity.O, b, NewRandomSource(1))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// When: the context expires while O waits
		err = o.Run(ctx)

		// Then: the cancellation is reported and nothing was played
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 0, b.MoveCount())
	})

	t.Run("Returns at once on a finished board", func(t *testing.T) {
		b, err := board.New(3, 3)
		require.NoError(t, err)
		for i, m := range []entity.Move{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}} {
			symbol := entity.X
			if i%2 == 1 {
				symbol = entity.O
			}
			require.True(t, b.Play(context.Background(), symbol, m.X, m.Y))
		}

		p := NewPlayer(discardLogger(), "late", entity.O, b, NewRandomSource(1))

		assert.NoError(t, p.Run(context.Background()))
		assert.Equal(t, "late", p.Name())
		assert.Equal(t, entity.O, p.Symbol())
	})
}

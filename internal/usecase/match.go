package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/inarow/internal/board"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/participant"
)

const recordTimeout = 5 * time.Second

var (
	ErrMatchAbandoned = errors.New("match abandoned")
	ErrInvalidMatch   = errors.New("invalid match")
)

type resultService interface {
	RecordResult(ctx context.Context, result *entity.Result) error
}

// PlayerSpec describes one participant of a match.
type PlayerSpec struct {
	Name        string
	Symbol      entity.Symbol
	Source      participant.MoveSource
	MaxAttempts int
	ThinkDelay  time.Duration
}

type MatchSpec struct {
	Size      int
	WinLength int
	Players   []PlayerSpec
	// Timeout bounds the whole match; zero means no limit.
	Timeout time.Duration
}

// MatchRunner plays matches: one board, one goroutine per player.
type MatchRunner struct {
	logger        *slog.Logger
	resultService resultService
	listeners     []participant.MoveListener

	current atomic.Pointer[board.Board]
}

type MatchOption func(*MatchRunner)

// WithResultService records every finished match.
func WithResultService(svc resultService) MatchOption {
	return func(r *MatchRunner) {
		r.resultService = svc
	}
}

func WithMoveListener(l participant.MoveListener) MatchOption {
	return func(r *MatchRunner) {
		r.listeners = append(r.listeners, l)
	}
}

func NewMatchRunner(logger *slog.Logger, opts ...MatchOption) *MatchRunner {
	r := &MatchRunner{
		logger: logger.With("component", "match"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Current returns the board of the running or most recent match, or nil.
func (that *MatchRunner) Current() *board.Board {
	return that.current.Load()
}

type playerExit struct {
	name   string
	symbol entity.Symbol
	err    error
}

// Run plays one match to the end. A match in which every player of one
// symbol stopped, or which timed out or was cancelled, is abandoned: its
// result is still returned together with an error wrapping
// ErrMatchAbandoned and the cause.
func (that *MatchRunner) Run(ctx context.Context, spec MatchSpec) (*entity.Result, error) {
	active := map[entity.Symbol]int{}
	for _, ps := range spec.Players {
		active[ps.Symbol]++
	}

	for _, symbol := range []entity.Symbol{entity.X, entity.O} {
		if active[symbol] == 0 {
			return nil, fmt.Errorf("%w: no player for %s", ErrInvalidMatch, symbol)
		}
	}

	b, err := board.New(spec.Size, spec.WinLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	id := uuid.NewString()
	log := that.logger.With("method", "Run", "match", id)
	that.current.Store(b)

	var (
		matchCtx context.Context
		cancel   context.CancelFunc
	)
	if spec.Timeout > 0 {
		matchCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
	} else {
		matchCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	names := &moveNames{byCell: map[entity.Move]string{}}
	exits := make(chan playerExit, len(spec.Players))
	started := time.Now()

	var wg sync.WaitGroup
	for _, ps := range spec.Players {
		opts := []participant.Option{
			participant.WithMaxAttempts(ps.MaxAttempts),
			participant.WithThinkDelay(ps.ThinkDelay),
			participant.WithMoveListener(names),
		}
		for _, l := range that.listeners {
			opts = append(opts, participant.WithMoveListener(l))
		}

		player := participant.NewPlayer(that.logger, ps.Name, ps.Symbol, b, ps.Source, opts...)

		wg.Add(1)
		go func() {
			defer wg.Done()
			exits <- playerExit{name: player.Name(), symbol: player.Symbol(), err: player.Run(matchCtx)}
		}()
	}

	log.Info("match started", "size", spec.Size, "win_length", spec.WinLength, "players", len(spec.Players))

	cause := that.await(matchCtx, log, b, exits, active)

	cancel()
	wg.Wait()

	result := &entity.Result{
		ID:        id,
		Size:      b.Size(),
		WinLength: b.WinLength(),
		Winner:    b.Winner(),
		Moves:     names.fill(b.History()),
		Board:     b.String(),
		StartedAt: started.UTC(),
		Duration:  time.Since(started),
	}

	switch {
	case b.Winner() != entity.Empty:
		result.Outcome = entity.OutcomeWin
	case b.IsGameOver():
		result.Outcome = entity.OutcomeDraw
	default:
		result.Outcome = entity.OutcomeAbandoned
	}

	log.Info("match finished", "outcome", result.Outcome, "winner", result.Winner.String(), "moves", len(result.Moves), "duration", result.Duration)

	that.record(ctx, log, result)

	if result.IsAbandoned() {
		return result, fmt.Errorf("%w: %w", ErrMatchAbandoned, cause)
	}

	return result, nil
}

// await blocks until the game ends, the match context is done, or no player
// is left for one of the symbols. It returns the reason the match stopped
// early, or nil.
func (that *MatchRunner) await(ctx context.Context, log *slog.Logger, b *board.Board, exits <-chan playerExit, active map[entity.Symbol]int) error {
	for {
		select {
		case <-b.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case exit := <-exits:
			if b.IsGameOver() {
				return nil
			}

			log.Warn("player stopped", "player", exit.name, "symbol", exit.symbol.String(), "error", exit.err)

			active[exit.symbol]--
			if active[exit.symbol] == 0 {
				if exit.err == nil {
					return fmt.Errorf("%s left the match", exit.name)
				}
				return exit.err
			}
		}
	}
}

func (that *MatchRunner) record(ctx context.Context, log *slog.Logger, result *entity.Result) {
	if that.resultService == nil {
		return
	}

	// the match context may already be cancelled by a shutdown signal
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := that.resultService.RecordResult(recordCtx, result); err != nil {
		log.Error("failed to record result", "error", err)
	}
}

// moveNames remembers which player took each cell.
type moveNames struct {
	mu     sync.Mutex
	byCell map[entity.Move]string
}

func (that *moveNames) MoveAccepted(player string, move entity.PlayedMove, _ participant.View) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.byCell[move.Move] = player
}

func (that *moveNames) fill(history []entity.PlayedMove) []entity.PlayedMove {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i := range history {
		history[i].Player = that.byCell[history[i].Move]
	}

	return history
}

package participant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// Player submits moves for one symbol until the game is over.
type Player struct {
	logger *slog.Logger

	name   string
	symbol entity.Symbol
	board  Board
	source MoveSource

	maxAttempts int
	thinkDelay  time.Duration
	listeners   []MoveListener
}

type Option func(*Player)

// WithMaxAttempts makes the player give up with apperror.ErrGaveUp after n
// consecutive rejected moves. Zero retries forever.
func WithMaxAttempts(n int) Option {
	return func(p *Player) {
		p.maxAttempts = n
	}
}

// WithThinkDelay pauses after every accepted move.
func WithThinkDelay(d time.Duration) Option {
	return func(p *Player) {
		p.thinkDelay = d
	}
}

func WithMoveListener(l MoveListener) Option {
	return func(p *Player) {
		p.listeners = append(p.listeners, l)
	}
}

func NewPlayer(logger *slog.Logger, name string, symbol entity.Symbol, board Board, source MoveSource, opts ...Option) *Player {
	p := &Player{
		logger: logger.With("component", "player", "player", name, "symbol", symbol.String()),
		name:   name,
		symbol: symbol,
		board:  board,
		source: source,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Symbol() entity.Symbol {
	return that.symbol
}

// Run plays until the board reports game over and then returns nil. It
// returns ctx.Err() when cancelled, apperror.ErrGaveUp when the attempt limit
// is reached, and any error of the move source other than
// apperror.ErrNoAvailableMoves and apperror.ErrGameFinished.
func (that *Player) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	rejected := 0
	for !that.board.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// choose only once on turn, so the opponent cannot take the cell
		// between choosing and playing
		if !that.board.WaitTurn(ctx, that.symbol) {
			if that.board.IsGameOver() {
				break
			}

			return ctx.Err()
		}

		move, err := that.source.NextMove(ctx, that.board)
		if err != nil {
			if errors.Is(err, apperror.ErrNoAvailableMoves) || errors.Is(err, apperror.ErrGameFinished) {
				continue
			}

			return fmt.Errorf("%s failed to choose a move: %w", that.name, err)
		}

		if !that.board.Play(ctx, that.symbol, move.X, move.Y) {
			if that.board.IsGameOver() {
				break
			}

			if err = ctx.Err(); err != nil {
				return err
			}

			// several players may share a symbol; losing that race counts
			rejected++
			log.Debug("move rejected, retrying", "x", move.X, "y", move.Y, "attempt", rejected)

			if that.maxAttempts > 0 && rejected >= that.maxAttempts {
				log.Warn("giving up", "attempts", rejected)
				return fmt.Errorf("%s after %d attempts: %w", that.name, rejected, apperror.ErrGaveUp)
			}

			continue
		}

		rejected = 0
		played := entity.PlayedMove{Move: move, Symbol: that.symbol, Player: that.name}
		log.Info("move accepted", "x", move.X, "y", move.Y)

		for _, l := range that.listeners {
			l.MoveAccepted(that.name, played, that.board)
		}

		if err = that.pause(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (that *Player) pause(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

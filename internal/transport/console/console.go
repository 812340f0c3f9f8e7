// Package console connects human players and spectators on a terminal to a
// match: it reads moves from an input stream and prints accepted moves.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/participant"
)

// Console is a shared terminal. Every human player reads from the same
// input, one prompt at a time.
type Console struct {
	mu  sync.Mutex
	in  io.Reader
	out io.Writer

	startOnce sync.Once
	lines     chan string
	readErr   error // set before lines is closed
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// Source returns a move source for a human playing symbol.
func (that *Console) Source(symbol entity.Symbol) participant.MoveSource {
	return &source{console: that, symbol: symbol}
}

type source struct {
	console *Console
	symbol  entity.Symbol
}

// NextMove waits for the player's turn, then prompts until a well formed,
// in-range coordinate pair is entered.
func (that *source) NextMove(ctx context.Context, view participant.View) (entity.Move, error) {
	if !view.WaitTurn(ctx, that.symbol) {
		if err := ctx.Err(); err != nil {
			return entity.Move{}, err
		}
		return entity.Move{}, apperror.ErrGameFinished
	}

	c := that.console
	c.mu.Lock()
	defer c.mu.Unlock()

	c.printf("================== Turn for %s ==================\n%s\n", that.symbol, view.Render())

	for {
		c.printf("Enter x y (0..%d): ", view.Size()-1)

		line, err := c.readLine(ctx)
		if err != nil {
			return entity.Move{}, err
		}

		move, err := ParseMove(line, view.Size())
		if err != nil {
			c.printf("%v\n", err)
			continue
		}

		return move, nil
	}
}

// readLine returns io.EOF once the input is exhausted.
func (that *Console) readLine(ctx context.Context) (string, error) {
	that.startOnce.Do(func() {
		go that.scan()
	})

	select {
	case line, ok := <-that.lines:
		if !ok {
			if that.readErr != nil {
				return "", fmt.Errorf("failed to read move: %w", that.readErr)
			}
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// scan outlives a cancelled prompt: the line it is blocked on goes to the
// next prompt.
func (that *Console) scan() {
	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- scanner.Text()
	}

	that.readErr = scanner.Err()
	close(that.lines)
}

// ParseMove reads "x y" or "x,y" and checks both coordinates are in [0, size).
func ParseMove(line string, size int) (entity.Move, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return entity.Move{}, fmt.Errorf("%w: expected two numbers, got %q", apperror.ErrInvalidInput, line)
	}

	coords := [2]int{}
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return entity.Move{}, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidInput, field)
		}

		if n < 0 || n >= size {
			return entity.Move{}, fmt.Errorf("%w: coordinates must be between 0 and %d", apperror.ErrInvalidInput, size-1)
		}

		coords[i] = n
	}

	return entity.Move{X: coords[0], Y: coords[1]}, nil
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

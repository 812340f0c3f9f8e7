package entity

import (
	"errors"
	"fmt"
)

// Symbol is the content of a board cell.
type Symbol uint8

const (
	Empty Symbol = iota
	X
	O
)

var ErrUnknownSymbol = errors.New("unknown symbol")

func (that Symbol) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the symbol that moves after this one. Empty has no opponent.
func (that Symbol) Opponent() Symbol {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Symbol) IsPlayable() bool {
	return that == X || that == O
}

func ParseSymbol(s string) (Symbol, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	case "", ".", "-":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownSymbol, s)
	}
}

func (that Symbol) MarshalText() ([]byte, error) {
	if that == Empty {
		return []byte{}, nil
	}
	return []byte(that.String()), nil
}

func (that *Symbol) UnmarshalText(text []byte) error {
	sym, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}

	*that = sym

	return nil
}

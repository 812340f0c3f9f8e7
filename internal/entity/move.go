package entity

import "fmt"

// Move is a cell coordinate: X is the column, Y the row.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Move) String() string {
	return fmt.Sprintf("[%d, %d]", that.X, that.Y)
}

// PlayedMove is an accepted move together with the symbol that made it.
type PlayedMove struct {
	Move
	Symbol Symbol `json:"symbol"`
	Player string `json:"player,omitempty"`
}

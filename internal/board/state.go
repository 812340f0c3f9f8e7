package board

import "github.com/rocketscienceinc/inarow/internal/entity"

// State is a point-in-time copy of a Board.
type State struct {
	Size      int               `json:"size"`
	WinLength int               `json:"win_length"`
	Cells     [][]entity.Symbol `json:"cells"`
	Turn      entity.Symbol     `json:"turn"`
	Winner    entity.Symbol     `json:"winner"`
	Over      bool              `json:"over"`
	Moves     int               `json:"moves"`
	LastMove  *entity.Move      `json:"last_move,omitempty"`
}

func (that *Board) Snapshot() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	cells := make([][]entity.Symbol, that.size)
	for y, row := range that.grid {
		cells[y] = append([]entity.Symbol(nil), row...)
	}

	state := State{
		Size:      that.size,
		WinLength: that.winLength,
		Cells:     cells,
		Turn:      that.CurrentTurn(),
		Winner:    that.Winner(),
		Over:      that.gameOver.Load(),
		Moves:     len(that.history),
	}

	if last, ok := that.lastMoveLocked(); ok {
		state.LastMove = &last
	}

	return state
}

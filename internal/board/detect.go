package board

import "github.com/rocketscienceinc/inarow/internal/entity"

type direction struct {
	dx, dy int
}

// Scan order: right, down, down-right, down-left.
var directions = [...]direction{
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: 1, dy: 1},
	{dx: -1, dy: 1},
}

// evaluate must be called with mu held, right after a move was applied.
func (that *Board) evaluate() {
	if that.gameOver.Load() {
		return
	}

	if winner := findWinner(that.grid, that.winLength); winner != entity.Empty {
		that.winner.Store(uint32(winner))
		that.finish()
		return
	}

	if isFull(that.grid) {
		that.finish()
	}
}

func (that *Board) finish() {
	that.gameOver.Store(true)
	close(that.done)
}

// findWinner scans every occupied cell row-major and returns the symbol of
// the first run of winLength found, or entity.Empty.
func findWinner(grid [][]entity.Symbol, winLength int) entity.Symbol {
	for y, row := range grid {
		for x, cell := range row {
			if cell == entity.Empty {
				continue
			}

			for _, dir := range directions {
				if fits(len(grid), x, y, dir, winLength) && runMatches(grid, x, y, dir, winLength) {
					return cell
				}
			}
		}
	}

	return entity.Empty
}

// fits reports whether a run of winLength starting at (x, y) ends inside the grid.
func fits(size, x, y int, dir direction, winLength int) bool {
	endX := x + (winLength-1)*dir.dx
	endY := y + (winLength-1)*dir.dy

	return endX >= 0 && endX < size && endY >= 0 && endY < size
}

// runMatches expects fits to hold for the same arguments.
func runMatches(grid [][]entity.Symbol, x, y int, dir direction, winLength int) bool {
	target := grid[y][x]
	for step := 1; step < winLength; step++ {
		if grid[y+step*dir.dy][x+step*dir.dx] != target {
			return false
		}
	}

	return true
}

func isFull(grid [][]entity.Symbol) bool {
	for _, row := range grid {
		for _, cell := range row {
			if cell == entity.Empty {
				return false
			}
		}
	}

	return true
}

package sim

import (
	"snake-sim/constants"
	"snake-sim/models"
)

// Food color candidates, tried in order. The first one no snake is wearing
// wins.
var foodColorCandidates = []string{
	"#FF5722",
	"#FFC107",
	"#8BC34A",
	"#00BCD4",
	"#E91E63",
}

const defaultFoodColor = "#FF5722"

// placeFood picks a uniformly random unoccupied cell and a color distinct
// from every excluded color. If all candidates are excluded the default
// color is used even when it collides.
func (e *Engine) placeFood(excludedColors map[string]bool) Food {
	return Food{
		Position: e.randomFreeCell(),
		Color:    pickFoodColor(excludedColors),
	}
}

// randomFreeCell rejection-samples the grid. The retry cap keeps a crowded
// board from spinning; past it the grid is scanned for the first free cell.
func (e *Engine) randomFreeCell() models.Position {
	for i := 0; i < constants.MAX_PLACEMENT_TRIES; i++ {
		p := models.Position{
			X: e.rng.Intn(constants.GRID_WIDTH),
			Y: e.rng.Intn(constants.GRID_HEIGHT),
		}
		if !e.isOccupied(p, NoSnake) {
			return p
		}
	}
	for y := 0; y < constants.GRID_HEIGHT; y++ {
		for x := 0; x < constants.GRID_WIDTH; x++ {
			p := models.Position{X: x, Y: y}
			if !e.isOccupied(p, NoSnake) {
				return p
			}
		}
	}
	// Unreachable while the snake-count cap leaves at least one free cell.
	return models.Position{}
}

func pickFoodColor(excludedColors map[string]bool) string {
	for _, c := range foodColorCandidates {
		if !excludedColors[c] {
			return c
		}
	}
	return defaultFoodColor
}

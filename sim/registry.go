package sim

import (
	"fmt"

	"snake-sim/constants"
	"snake-sim/models"
)

// Preset snake palette. Counts past its length get random colors.
var snakePalette = []string{
	"#4CAF50",
	"#2196F3",
	"#9C27B0",
	"#FF9800",
	"#795548",
	"#607D8B",
	"#F44336",
	"#3F51B5",
	"#009688",
	"#CDDC39",
}

// createSnakes populates the registry with snakeCount single-segment snakes,
// ids 0..n-1. Each spawn cell is sampled against all previously placed
// snakes; food does not exist yet so it is not a constraint. When
// humanControl is set, snake 0 carries the human flag.
func (e *Engine) createSnakes(snakeCount int, humanControl bool) {
	snakeCount = clampSnakeCount(snakeCount)
	colors := e.assignColors(snakeCount)
	e.snakes = make([]*Snake, 0, snakeCount)
	for id := 0; id < snakeCount; id++ {
		spawn := e.randomFreeCell()
		e.snakes = append(e.snakes, &Snake{
			ID:        id,
			Color:     colors[id],
			Body:      []models.Position{spawn},
			Direction: constants.Direction(e.rng.Intn(4)),
			Human:     humanControl && id == 0,
		})
	}
}

// clampSnakeCount keeps the count positive and leaves at least one free
// cell for the food.
func clampSnakeCount(count int) int {
	if count < 1 {
		return 1
	}
	if max := constants.GRID_WIDTH*constants.GRID_HEIGHT - 1; count > max {
		return max
	}
	return count
}

// assignColors takes the palette first, then rejection-samples the RGB space
// for the overflow, rerolling any draw that collides with an assigned color.
func (e *Engine) assignColors(count int) []string {
	colors := make([]string, 0, count)
	assigned := make(map[string]bool, count)
	for i := 0; i < count && i < len(snakePalette); i++ {
		colors = append(colors, snakePalette[i])
		assigned[snakePalette[i]] = true
	}
	for len(colors) < count {
		c := fmt.Sprintf("#%06X", e.rng.Intn(0x1000000))
		if assigned[c] {
			continue
		}
		colors = append(colors, c)
		assigned[c] = true
	}
	return colors
}

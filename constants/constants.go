package constants

import (
	"encoding/json"
	"time"
)

const (
	// Board geometry. The grid is derived from the canvas dimensions and a
	// fixed cell size at simulation start.
	CANVAS_WIDTH  = 800
	CANVAS_HEIGHT = 600
	CELL_SIZE     = 20

	GRID_WIDTH  = CANVAS_WIDTH / CELL_SIZE
	GRID_HEIGHT = CANVAS_HEIGHT / CELL_SIZE

	TICK_RATE = 100 * time.Millisecond

	// A boxed-in human snake gets this many consecutive blocked ticks
	// before the run ends.
	HUMAN_GRACE_TICKS = 3

	// Retry cap for rejection-sampling placement loops. Past this the
	// placement falls back to a deterministic scan of the grid.
	MAX_PLACEMENT_TRIES = 4096

	// Message types
	MSG_CONNECTED         = "connected"
	MSG_START_GAME        = "start_game"
	MSG_SET_DIRECTION     = "set_direction"
	MSG_SET_HUMAN_CONTROL = "set_human_control"
	MSG_GET_STATE         = "get_state"
	MSG_GAME_START        = "game_start"
	MSG_GAME_UPDATE       = "game_update"
	MSG_GAME_OVER         = "game_over"
	MSG_ERROR             = "error"
)

type Direction int

const (
	UP Direction = iota
	DOWN
	LEFT
	RIGHT
)

// Delta returns the unit step for the direction. Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case UP:
		return 0, -1
	case DOWN:
		return 0, 1
	case LEFT:
		return -1, 0
	case RIGHT:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the exact reverse of the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	case RIGHT:
		return LEFT
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case UP:
		return "up"
	case DOWN:
		return "down"
	case LEFT:
		return "left"
	case RIGHT:
		return "right"
	}
	return "unknown"
}

// MarshalJSON writes the direction name, matching the vocabulary inbound
// set_direction messages use.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ParseDirection maps a wire direction string to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return UP, true
	case "down":
		return DOWN, true
	case "left":
		return LEFT, true
	case "right":
		return RIGHT, true
	}
	return 0, false
}

package models

import (
	"time"

	"snake-sim/constants"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SnakeView is the read-only per-snake snapshot sent to viewers.
type SnakeView struct {
	ID        int                 `json:"id"`
	Color     string              `json:"color"`
	Body      []Position          `json:"body"`
	Direction constants.Direction `json:"direction"`
	Human     bool                `json:"human"`
	Score     int                 `json:"score"`
}

type FoodView struct {
	Position Position `json:"position"`
	Color    string   `json:"color"`
}

// Snapshot is the full simulation state broadcast once per tick, after all
// moves have been committed. Bodies are deep copies; viewers never alias
// live engine state.
type Snapshot struct {
	RunID        string      `json:"run_id"`
	Tick         uint64      `json:"tick"`
	Status       string      `json:"status"` // "not_started", "running", "ended"
	Snakes       []SnakeView `json:"snakes"`
	Food         FoodView    `json:"food"`
	HumanSnakeID int         `json:"human_snake_id"` // -1 when no snake is human-controlled
}

// Viewer is a connected client: it renders snapshots and, when holding a
// valid control token, feeds commands back in.
type Viewer struct {
	ID       string      `json:"id"`
	Send     chan []byte `json:"-"`
	Name     string      `json:"name"`
	JoinedAt time.Time   `json:"joined_at"`
}

package sim

import (
	"snake-sim/constants"
	"snake-sim/models"
)

func inBounds(p models.Position) bool {
	return p.X >= 0 && p.X < constants.GRID_WIDTH && p.Y >= 0 && p.Y < constants.GRID_HEIGHT
}

// isOccupied scans every snake's full body for the cell. When
// excludingTailOf names a snake, that snake's current tail is skipped: on a
// non-growing move the tail vacates the cell as the head arrives.
func (e *Engine) isOccupied(p models.Position, excludingTailOf int) bool {
	for _, s := range e.snakes {
		for i, seg := range s.Body {
			if s.ID == excludingTailOf && i == len(s.Body)-1 {
				continue
			}
			if seg == p {
				return true
			}
		}
	}
	return false
}

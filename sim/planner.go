package sim

import (
	"snake-sim/constants"
	"snake-sim/models"
)

// Candidate evaluation order. Ties on distance resolve to whichever
// direction appears first here.
var candidateOrder = [...]constants.Direction{
	constants.RIGHT,
	constants.LEFT,
	constants.DOWN,
	constants.UP,
}

// legalMoves returns the directions the snake could take this tick, in
// candidate order: the exact reverse is dropped once the snake has a body
// to collide with, then bounds and occupancy (with the snake's own tail
// excluded) filter the rest.
func (e *Engine) legalMoves(s *Snake) []constants.Direction {
	moves := make([]constants.Direction, 0, len(candidateOrder))
	for _, d := range candidateOrder {
		if len(s.Body) > 1 && d == s.Direction.Opposite() {
			continue
		}
		if _, ok := e.stepFrom(s, d); ok {
			moves = append(moves, d)
		}
	}
	return moves
}

// planMove greedily picks the legal move whose prospective head is nearest
// the food by Manhattan distance. ok is false when the snake is blocked
// this tick; that is not fatal, the snake simply stays put.
func (e *Engine) planMove(s *Snake) (constants.Direction, bool) {
	moves := e.legalMoves(s)
	if len(moves) == 0 {
		return 0, false
	}
	best := moves[0]
	bestDist := e.plannedDistance(s, best)
	for _, d := range moves[1:] {
		if dist := e.plannedDistance(s, d); dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best, true
}

func (e *Engine) plannedDistance(s *Snake, d constants.Direction) int {
	dx, dy := d.Delta()
	head := s.Head()
	next := models.Position{X: head.X + dx, Y: head.Y + dy}
	return manhattan(next, e.food.Position)
}

func manhattan(a, b models.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

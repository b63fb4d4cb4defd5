package sim

import (
	"math/rand"
	"time"

	"snake-sim/constants"
	"snake-sim/models"
)

type Status int

const (
	NotStarted Status = iota
	Running
	Ended
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// NoSnake marks the absence of a snake id (no tail exclusion, no
// designated human snake).
const NoSnake = -1

type Snake struct {
	ID        int
	Color     string
	Body      []models.Position // head first, tail last
	Direction constants.Direction
	Human     bool
	Score     int
}

func (s *Snake) Head() models.Position {
	return s.Body[0]
}

type Food struct {
	Position models.Position
	Color    string
}

// Engine is the headless simulation state machine. It owns the snakes and
// the food and advances them one step per Tick. All methods assume the
// caller serializes access; the Manager holds the lock.
type Engine struct {
	rng          *rand.Rand
	snakes       []*Snake
	food         Food
	humanID      int // designated human snake id, NoSnake until a human-controlled start
	blockedTicks int
	status       Status
	tick         uint64
}

func NewEngine() *Engine {
	return &Engine{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		humanID: NoSnake,
		status:  NotStarted,
	}
}

// Start resets all entities and transitions to Running. Any previous run's
// snakes and food are discarded.
func (e *Engine) Start(snakeCount int, humanControl bool) {
	e.snakes = nil
	e.createSnakes(snakeCount, humanControl)
	if humanControl {
		e.humanID = 0
	} else {
		e.humanID = NoSnake
	}
	e.food = e.placeFood(e.snakeColors())
	e.blockedTicks = 0
	e.tick = 0
	e.status = Running
}

func (e *Engine) Status() Status {
	return e.status
}

// SetDirection overwrites the human snake's pending direction. The exact
// reverse of the current direction is ignored once the snake has a body to
// collide with; a single-segment snake may reverse freely.
func (e *Engine) SetDirection(d constants.Direction) {
	s := e.humanSnake()
	if s == nil {
		return
	}
	if len(s.Body) > 1 && d == s.Direction.Opposite() {
		return
	}
	s.Direction = d
}

// SetHumanControl toggles the human flag on the designated snake without
// resetting the run. A run started without human control designates snake 0
// on the first enable.
func (e *Engine) SetHumanControl(enabled bool) {
	if enabled && e.humanID == NoSnake && len(e.snakes) > 0 {
		e.humanID = 0
	}
	if s := e.snakeByID(e.humanID); s != nil {
		if enabled && !s.Human {
			// A fresh grant starts a fresh consecutive-blocked count.
			e.blockedTicks = 0
		}
		s.Human = enabled
	}
}

// Tick advances every snake at most one step, in registry order, then
// evaluates the stopping condition. Occupancy for this tick's moves is
// checked against the layout each snake sees when its turn comes around.
func (e *Engine) Tick() Status {
	if e.status != Running {
		return e.status
	}
	e.tick++

	moved := 0
	for _, s := range e.snakes {
		if s.Human {
			// The stored direction is whatever the input adapter last
			// set. An illegal move skips the tick; the direction is
			// retained for a retry.
			next, ok := e.stepFrom(s, s.Direction)
			if !ok {
				continue
			}
			e.commitMove(s, next)
			moved++
			continue
		}
		dir, ok := e.planMove(s)
		if !ok {
			continue
		}
		s.Direction = dir
		next, _ := e.stepFrom(s, dir)
		e.commitMove(s, next)
		moved++
	}

	if human := e.humanSnake(); human != nil {
		// Human mode: only a sustained lockout of the human snake ends
		// the run, regardless of what the autonomous snakes are doing.
		if len(e.legalMoves(human)) > 0 {
			e.blockedTicks = 0
		} else {
			e.blockedTicks++
			if e.blockedTicks >= constants.HUMAN_GRACE_TICKS {
				e.status = Ended
			}
		}
	} else if moved == 0 {
		e.status = Ended
	}
	return e.status
}

// commitMove prepends the new head. Landing on food grows the snake by one
// segment and relocates the food; otherwise the tail is trimmed.
func (e *Engine) commitMove(s *Snake, next models.Position) {
	s.Body = append([]models.Position{next}, s.Body...)
	if next == e.food.Position {
		s.Score++
		e.food = e.placeFood(e.snakeColors())
	} else {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// stepFrom returns the prospective head one step in the given direction and
// whether that cell is a legal destination for the snake this tick.
func (e *Engine) stepFrom(s *Snake, d constants.Direction) (models.Position, bool) {
	dx, dy := d.Delta()
	head := s.Head()
	next := models.Position{X: head.X + dx, Y: head.Y + dy}
	if !inBounds(next) {
		return next, false
	}
	if e.isOccupied(next, s.ID) {
		return next, false
	}
	return next, true
}

func (e *Engine) humanSnake() *Snake {
	for _, s := range e.snakes {
		if s.Human {
			return s
		}
	}
	return nil
}

func (e *Engine) snakeByID(id int) *Snake {
	for _, s := range e.snakes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (e *Engine) snakeColors() map[string]bool {
	colors := make(map[string]bool, len(e.snakes))
	for _, s := range e.snakes {
		colors[s.Color] = true
	}
	return colors
}

// Snapshot deep-copies the current state for viewers.
func (e *Engine) Snapshot() models.Snapshot {
	snakes := make([]models.SnakeView, 0, len(e.snakes))
	humanID := NoSnake
	for _, s := range e.snakes {
		body := make([]models.Position, len(s.Body))
		copy(body, s.Body)
		snakes = append(snakes, models.SnakeView{
			ID:        s.ID,
			Color:     s.Color,
			Body:      body,
			Direction: s.Direction,
			Human:     s.Human,
			Score:     s.Score,
		})
		if s.Human {
			humanID = s.ID
		}
	}
	return models.Snapshot{
		Tick:   e.tick,
		Status: e.status.String(),
		Snakes: snakes,
		Food: models.FoodView{
			Position: e.food.Position,
			Color:    e.food.Color,
		},
		HumanSnakeID: humanID,
	}
}

package sim

import (
	"math/rand"
	"testing"

	"snake-sim/constants"
	"snake-sim/models"
)

func TestPlaceFood_AvoidsSnakes(t *testing.T) {
	a := &Snake{
		ID:        0,
		Color:     snakePalette[0],
		Body:      []models.Position{pos(3, 3), pos(3, 4), pos(4, 4)},
		Direction: constants.UP,
	}
	e := newTestEngine(11, Food{}, a)

	for i := 0; i < 50; i++ {
		food := e.placeFood(e.snakeColors())
		if e.isOccupied(food.Position, NoSnake) {
			t.Fatalf("food placed on a snake at %v", food.Position)
		}
		if !inBounds(food.Position) {
			t.Fatalf("food out of bounds at %v", food.Position)
		}
	}
}

func TestPlaceFood_FallbackScanOnCrowdedBoard(t *testing.T) {
	// Fill every cell but one; whether the sampler gets lucky or the
	// deterministic scan takes over, the hole is the only valid answer.
	body := make([]models.Position, 0, constants.GRID_WIDTH*constants.GRID_HEIGHT-1)
	hole := pos(17, 23)
	for y := 0; y < constants.GRID_HEIGHT; y++ {
		for x := 0; x < constants.GRID_WIDTH; x++ {
			if pos(x, y) == hole {
				continue
			}
			body = append(body, pos(x, y))
		}
	}
	a := &Snake{ID: 0, Color: snakePalette[0], Body: body, Direction: constants.UP}
	e := newTestEngine(1, Food{}, a)
	// Force the fallback path deterministically.
	e.rng = rand.New(rand.NewSource(1))

	food := e.placeFood(e.snakeColors())
	if food.Position != hole {
		t.Errorf("food at %v, want the only free cell %v", food.Position, hole)
	}
}

func TestPickFoodColor(t *testing.T) {
	tests := []struct {
		name     string
		excluded map[string]bool
		want     string
	}{
		{
			name:     "no exclusions picks first candidate",
			excluded: map[string]bool{},
			want:     foodColorCandidates[0],
		},
		{
			name:     "first excluded picks second",
			excluded: map[string]bool{foodColorCandidates[0]: true},
			want:     foodColorCandidates[1],
		},
		{
			name: "all excluded falls back to default",
			excluded: map[string]bool{
				foodColorCandidates[0]: true,
				foodColorCandidates[1]: true,
				foodColorCandidates[2]: true,
				foodColorCandidates[3]: true,
				foodColorCandidates[4]: true,
			},
			want: defaultFoodColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickFoodColor(tt.excluded); got != tt.want {
				t.Errorf("pickFoodColor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFoodColor_DistinctFromSnakeColors(t *testing.T) {
	e := NewEngine()
	e.rng = rand.New(rand.NewSource(3))
	e.Start(4, false)

	for _, s := range e.snakes {
		if e.food.Color == s.Color {
			t.Errorf("food color %q collides with snake %d", e.food.Color, s.ID)
		}
	}
}

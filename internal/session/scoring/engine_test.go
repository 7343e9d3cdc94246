package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPointsTable(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	cases := []struct {
		name       string
		correct    bool
		elapsed    time.Duration
		duration   time.Duration
		basePoints int
		want       int
	}{
		{"instant correct earns full base", true, 0, 30 * time.Second, 10, 10},
		{"correct at deadline earns half", true, 30 * time.Second, 30 * time.Second, 10, 5},
		{"correct past deadline still floors at half", true, 45 * time.Second, 30 * time.Second, 10, 5},
		{"halfway correct earns three quarters", true, 15 * time.Second, 30 * time.Second, 100, 75},
		{"rounding applies", true, 10 * time.Second, 30 * time.Second, 10, 7},
		{"wrong at zero elapsed earns nothing", false, 0, 30 * time.Second, 10, 0},
		{"wrong at deadline earns nothing", false, 30 * time.Second, 30 * time.Second, 10, 0},
		{"zero duration falls back to base", true, 5 * time.Second, 0, 10, 10},
		{"negative elapsed clamps to base", true, -2 * time.Second, 30 * time.Second, 10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Points(tc.correct, tc.elapsed, tc.duration, tc.basePoints)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPointsMonotonicInElapsed(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	prev := engine.Points(true, 0, 60*time.Second, 100)
	for elapsed := time.Second; elapsed <= 70*time.Second; elapsed += time.Second {
		got := engine.Points(true, elapsed, 60*time.Second, 100)
		assert.LessOrEqual(t, got, prev, "points must not increase with elapsed time")
		prev = got
	}
}

func TestPointsBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	for elapsed := time.Duration(0); elapsed <= 40*time.Second; elapsed += 500 * time.Millisecond {
		got := engine.Points(true, elapsed, 30*time.Second, 10)
		assert.GreaterOrEqual(t, got, 5)
		assert.LessOrEqual(t, got, 10)
	}
}

func TestInvalidConfigFallsBackToDefault(t *testing.T) {
	engine := NewEngine(Config{MinBonusFraction: -1})
	assert.Equal(t, 5, engine.Points(true, time.Minute, time.Minute, 10))
}

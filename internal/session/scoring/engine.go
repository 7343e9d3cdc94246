package scoring

import (
	"math"
	"time"
)

// Config holds configurable scoring constants.
type Config struct {
	// MinBonusFraction is the floor of the speed multiplier for a correct
	// answer submitted near the deadline. Default: 0.5.
	MinBonusFraction float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{MinBonusFraction: 0.5}
}

// Engine computes points awarded for a single answer. It is a pure function
// of its inputs: elapsed time is passed in, never read from a clock here.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config Config) *Engine {
	if config.MinBonusFraction <= 0 || config.MinBonusFraction > 1 {
		config = DefaultConfig()
	}
	return &Engine{config: config}
}

// Points computes the score for one answer.
// Incorrect answers always score 0. Correct answers score
// round(basePoints * max(minBonusFraction, 1 - elapsed/duration)):
// full base points when answered instantly, decaying linearly with elapsed
// time down to the configured floor.
func (e *Engine) Points(correct bool, elapsed, duration time.Duration, basePoints int) int {
	if !correct {
		return 0
	}
	if duration <= 0 {
		return basePoints
	}

	fraction := 1.0 - float64(elapsed)/float64(duration)
	if fraction < e.config.MinBonusFraction {
		fraction = e.config.MinBonusFraction
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	return int(math.Round(float64(basePoints) * fraction))
}

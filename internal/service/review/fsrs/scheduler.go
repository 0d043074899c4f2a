package fsrs

import (
	"fmt"
	"math/rand"
	"time"
)

// State is the scheduling state of a memory item. Words that have never
// been reviewed are New; everything else is Review. Sub-day learning steps
// are not modeled — the review loop operates on whole-day intervals.
type State int

const (
	StateNew State = iota
	StateReview
)

// Params holds the FSRS configuration for one scheduling run.
type Params struct {
	W                [19]float64
	DesiredRetention float64
	MaxIntervalDays  int
	EnableFuzz       bool
}

// DefaultParams returns the stock FSRS-5 configuration.
func DefaultParams() Params {
	return Params{
		W:                DefaultWeights,
		DesiredRetention: 0.9,
		MaxIntervalDays:  365,
		EnableFuzz:       true,
	}
}

// Memory is the persisted stability/difficulty pair of an item.
type Memory struct {
	Stability  float64
	Difficulty float64
}

// Result is the scheduling outcome for the chosen rating.
type Result struct {
	Stability    float64
	Difficulty   float64
	IntervalDays int
	Due          time.Time
}

// Schedule computes the next memory state and due date for a review event.
// It is a pure function of its inputs; rng is only consulted when fuzz is
// enabled. Invalid ratings and non-positive stability on reviewed items are
// contract violations and fail fast.
func Schedule(p Params, mem Memory, state State, elapsedDays int, rating Rating, now time.Time, rng *rand.Rand) (Result, error) {
	if rating < Again || rating > Easy {
		return Result{}, fmt.Errorf("fsrs: invalid rating %d (must be 1-4)", rating)
	}

	switch state {
	case StateNew:
		return scheduleNew(p, rating, now), nil
	case StateReview:
		if mem.Stability <= 0 {
			return Result{}, fmt.Errorf("fsrs: non-positive stability %v on reviewed item", mem.Stability)
		}
		return scheduleReview(p, mem, elapsedDays, rating, now, rng), nil
	default:
		return Result{}, fmt.Errorf("fsrs: unknown state %d", state)
	}
}

// scheduleNew handles an item's first review: initial stability and
// difficulty come straight from the weight table.
func scheduleNew(p Params, rating Rating, now time.Time) Result {
	s := InitialStability(p.W, rating)
	d := InitialDifficulty(p.W, rating)

	interval := clampInterval(NextInterval(s, p.DesiredRetention), p.MaxIntervalDays)

	return Result{
		Stability:    s,
		Difficulty:   d,
		IntervalDays: interval,
		Due:          due(now, interval),
	}
}

// scheduleReview handles subsequent reviews. All four outcome intervals are
// computed so the Hard <= Good < Easy ordering can be enforced before the
// chosen one is selected.
func scheduleReview(p Params, mem Memory, elapsedDays int, rating Rating, now time.Time, rng *rand.Rand) Result {
	if elapsedDays < 1 {
		elapsedDays = 1
	}

	r := Retrievability(mem.Stability, elapsedDays)

	// Stability updates use the pre-update difficulty.
	preD := mem.Difficulty
	d := NextDifficulty(p.W, mem.Difficulty, rating)

	if rating == Again {
		s := StabilityAfterForgetting(p.W, mem.Stability, preD, r)
		interval := clampInterval(NextInterval(s, p.DesiredRetention), p.MaxIntervalDays)
		return Result{
			Stability:    s,
			Difficulty:   d,
			IntervalDays: interval,
			Due:          due(now, interval),
		}
	}

	hardS := StabilityAfterRecall(p.W, mem.Stability, preD, r, Hard)
	goodS := StabilityAfterRecall(p.W, mem.Stability, preD, r, Good)
	easyS := StabilityAfterRecall(p.W, mem.Stability, preD, r, Easy)

	hardIvl := clampInterval(NextInterval(hardS, p.DesiredRetention), p.MaxIntervalDays)
	goodIvl := clampInterval(NextInterval(goodS, p.DesiredRetention), p.MaxIntervalDays)
	easyIvl := clampInterval(NextInterval(easyS, p.DesiredRetention), p.MaxIntervalDays)

	hardIvl, goodIvl, easyIvl = enforceOrdering(hardIvl, goodIvl, easyIvl, p.MaxIntervalDays)

	if p.EnableFuzz && rng != nil {
		hardIvl = applyFuzz(hardIvl, p.MaxIntervalDays, rng)
		goodIvl = applyFuzz(goodIvl, p.MaxIntervalDays, rng)
		easyIvl = applyFuzz(easyIvl, p.MaxIntervalDays, rng)
		hardIvl, goodIvl, easyIvl = enforceOrdering(hardIvl, goodIvl, easyIvl, p.MaxIntervalDays)
	}

	var s float64
	var interval int
	switch rating {
	case Hard:
		s, interval = hardS, hardIvl
	case Good:
		s, interval = goodS, goodIvl
	case Easy:
		s, interval = easyS, easyIvl
	}

	return Result{
		Stability:    s,
		Difficulty:   d,
		IntervalDays: interval,
		Due:          due(now, interval),
	}
}

// enforceOrdering guarantees Hard <= Good < Easy on the outcome intervals.
func enforceOrdering(hard, good, easy, maxDays int) (int, int, int) {
	if hard > good {
		hard = good
	}
	if good <= hard {
		good = hard + 1
	}
	if easy <= good {
		easy = good + 1
	}
	return clampInterval(hard, maxDays), clampInterval(good, maxDays), clampInterval(easy, maxDays)
}

func due(now time.Time, intervalDays int) time.Time {
	return now.Add(time.Duration(intervalDays) * 24 * time.Hour)
}

// clampInterval constrains an interval to [1, maxDays].
func clampInterval(interval, maxDays int) int {
	if interval < 1 {
		return 1
	}
	if interval > maxDays {
		return maxDays
	}
	return interval
}

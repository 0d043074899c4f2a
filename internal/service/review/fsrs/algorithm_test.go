package fsrs

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func TestRetrievability(t *testing.T) {
	tests := []struct {
		name        string
		stability   float64
		elapsedDays int
		want        float64
	}{
		{"zero elapsed", 10.0, 0, 1.0},
		{"negative elapsed", 10.0, -3, 1.0},
		{"one day, S=9", 9.0, 1, 0.98765}, // (1 + 1/81)^-1
		{"half life", 10.0, 90, 0.5},      // t = 9*S -> R = 0.5
		{"long elapsed", 10.0, 100, 0.4737},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Retrievability(tt.stability, tt.elapsedDays)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Retrievability(%f, %d) = %f, want %f", tt.stability, tt.elapsedDays, got, tt.want)
			}
		})
	}
}

func TestRetrievability_Bounds(t *testing.T) {
	// For all stability > 0 and elapsed >= 0, R must stay in (0, 1].
	for _, s := range []float64{0.1, 1, 5, 50, 365} {
		for _, days := range []int{0, 1, 7, 30, 365, 10000} {
			r := Retrievability(s, days)
			if r <= 0 || r > 1 {
				t.Errorf("Retrievability(%f, %d) = %f, out of (0, 1]", s, days, r)
			}
		}
	}
}

func TestRetrievability_MonotoneInElapsed(t *testing.T) {
	for _, s := range []float64{0.5, 3, 20} {
		prev := 1.1
		for days := 0; days <= 400; days += 10 {
			r := Retrievability(s, days)
			if r > prev {
				t.Fatalf("Retrievability not non-increasing at S=%f days=%d: %f > %f", s, days, r, prev)
			}
			prev = r
		}
	}
}

func TestNextInterval(t *testing.T) {
	tests := []struct {
		name      string
		stability float64
		retention float64
		want      int
	}{
		{"S=10 at 90%", 10.0, 0.9, 10}, // 9*10*(1/0.9-1) = 10
		{"S=10 at 50%", 10.0, 0.5, 90}, // 9*10*(1/0.5-1) = 90
		{"floor at 1", 0.01, 0.9, 1},
		{"invalid retention 0", 10, 0, 1},
		{"invalid retention 1", 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextInterval(tt.stability, tt.retention); got != tt.want {
				t.Errorf("NextInterval(%f, %f) = %d, want %d", tt.stability, tt.retention, got, tt.want)
			}
		})
	}
}

func TestInitialStability(t *testing.T) {
	w := DefaultWeights

	tests := []struct {
		rating Rating
		want   float64
	}{
		{Again, w[0]},
		{Hard, w[1]},
		{Good, w[2]},
		{Easy, w[3]},
	}

	for _, tt := range tests {
		got := InitialStability(w, tt.rating)
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("InitialStability(rating=%d) = %f, want %f", tt.rating, got, tt.want)
		}
	}

	// Out-of-range rating falls back to Good.
	if got := InitialStability(w, Rating(7)); math.Abs(got-w[2]) > epsilon {
		t.Errorf("InitialStability(out of range) = %f, want %f", got, w[2])
	}
}

func TestInitialDifficulty_ClampedAndDecreasing(t *testing.T) {
	w := DefaultWeights

	prev := 11.0
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		d := InitialDifficulty(w, r)
		if d < 1 || d > 10 {
			t.Errorf("InitialDifficulty(%d) = %f, out of [1, 10]", r, d)
		}
		if d >= prev {
			t.Errorf("InitialDifficulty should decrease with better ratings: D0(%d)=%f >= %f", r, d, prev)
		}
		prev = d
	}
}

func TestNextDifficulty(t *testing.T) {
	w := DefaultWeights

	// Again raises difficulty, Easy lowers it.
	d := 5.0
	if got := NextDifficulty(w, d, Again); got <= d {
		t.Errorf("NextDifficulty(Again) = %f, want > %f", got, d)
	}
	if got := NextDifficulty(w, d, Easy); got >= d {
		t.Errorf("NextDifficulty(Easy) = %f, want < %f", got, d)
	}

	// Always clamped to [1, 10].
	if got := NextDifficulty(w, 10, Again); got > 10 {
		t.Errorf("NextDifficulty clamping failed: %f", got)
	}
	if got := NextDifficulty(w, 1, Easy); got < 1 {
		t.Errorf("NextDifficulty clamping failed: %f", got)
	}
}

func TestStabilityAfterRecall_GrowsAndOrders(t *testing.T) {
	w := DefaultWeights
	s, d, r := 5.0, 5.0, 0.9

	hard := StabilityAfterRecall(w, s, d, r, Hard)
	good := StabilityAfterRecall(w, s, d, r, Good)
	easy := StabilityAfterRecall(w, s, d, r, Easy)

	if good <= s {
		t.Errorf("recall with Good should grow stability: %f <= %f", good, s)
	}
	if !(hard < good && good < easy) {
		t.Errorf("expected hard < good < easy, got %f, %f, %f", hard, good, easy)
	}
}

func TestStabilityAfterForgetting_DropsAndCapped(t *testing.T) {
	w := DefaultWeights
	s, d, r := 20.0, 5.0, 0.9

	got := StabilityAfterForgetting(w, s, d, r)
	if got >= s {
		t.Errorf("lapse should reduce stability: %f >= %f", got, s)
	}

	cap := s / math.Exp(w[17]*w[18])
	if got > cap+epsilon {
		t.Errorf("post-lapse stability %f exceeds cap %f", got, cap)
	}
	if got < MinStability {
		t.Errorf("stability %f below floor %f", got, MinStability)
	}
}

func TestValidateWeights(t *testing.T) {
	if err := ValidateWeights(DefaultWeights); err != nil {
		t.Errorf("default weights should validate: %v", err)
	}

	bad := DefaultWeights
	bad[8] = math.NaN()
	if err := ValidateWeights(bad); err == nil {
		t.Error("NaN weight should fail validation")
	}

	bad = DefaultWeights
	bad[0] = 0
	if err := ValidateWeights(bad); err == nil {
		t.Error("zero initial stability weight should fail validation")
	}
}

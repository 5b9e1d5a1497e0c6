package spoilage

import (
	"math"
	"time"
)

// Model computes freshness percentages from elapsed time, ambient
// temperature and a per-produce decay constant. The clock is injected so
// the computation stays deterministic under test.
type Model struct {
	now func() time.Time
}

// New creates a spoilage model using the given clock. A nil clock
// defaults to time.Now.
func New(now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	return &Model{now: now}
}

// Freshness returns the remaining freshness percentage in [0, 100] for
// produce with the given decay constant, held at ambientTempC since
// harvestTime.
//
// The decay rate doubles for every 10 degrees C above a 10 degree
// baseline and halves for every 10 degrees below it. The result is
// clamped into [0, 100] and rounded to 2 decimal places; a harvest
// timestamp in the future therefore reads as exactly 100.
func (m *Model) Freshness(decayConstant, ambientTempC float64, harvestTime time.Time) float64 {
	elapsedHours := m.now().Sub(harvestTime).Hours()

	tempFactor := math.Pow(2, (ambientTempC-10)/10)

	decay := elapsedHours * decayConstant * tempFactor

	freshness := 100 - decay
	if freshness < 0 {
		freshness = 0
	}
	if freshness > 100 {
		freshness = 100
	}
	return round2(freshness)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package baserunning implements the post-hit speed-vs-glove extra-base
// attempt sub-simulation, called only for singles and doubles
// while outs remain.
package baserunning

import "github.com/baseball-sim/matchsim/internal/rng"

// AttemptChanceFloor/Ceiling and SuccessChanceFloor/Ceiling bound
// every attempt and success chance.
const (
	AttemptChanceFloor = 5.0
	AttemptChanceCeiling = 55.0
	SuccessChanceFloor = 25.0
	SuccessChanceCeiling = 90.0
)

// AttemptChance computes clamp(15 + (speed-50)*0.5 + (twoOuts?15:0), 5, 55).
func AttemptChance(speed float64, twoOuts bool) float64 {
	chance := 15 + (speed-50)*0.5
	if twoOuts {
		chance += 15
	}
	return clampRange(chance, AttemptChanceFloor, AttemptChanceCeiling)
}

// SuccessChance computes clamp(55 + (speed-defenseGlove)*0.6, 25, 90).
func SuccessChance(speed, defenseGlove float64) float64 {
	chance := 55 + (speed-defenseGlove)*0.6
	return clampRange(chance, SuccessChanceFloor, SuccessChanceCeiling)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Attempt is one eligible runner's extra-base attempt, logged to the
// trace whether or not the runner actually tries.
type Attempt struct {
	RunnerID       string
	AttemptChance  float64
	AttemptRoll    float64
	Attempted      bool
	SuccessChance  float64
	SuccessRoll    float64 // zero value if not attempted
	Safe           bool
	Advanced       bool // true if Safe (advances one base, possibly scoring)
}

// Resolve rolls one runner's attempt and (if attempted) success, in
// that fixed order.
func Resolve(r rng.Provider, runnerID string, speed, defenseGlove float64, twoOuts bool) Attempt {
	attemptChance := AttemptChance(speed, twoOuts)
	attemptRoll := r.Float64()
	a := Attempt{
		RunnerID:      runnerID,
		AttemptChance: attemptChance,
		AttemptRoll:   attemptRoll,
	}
	if attemptRoll*100 >= attemptChance {
		return a
	}
	a.Attempted = true
	a.SuccessChance = SuccessChance(speed, defenseGlove)
	successRoll := r.Float64()
	a.SuccessRoll = successRoll
	a.Safe = successRoll*100 < a.SuccessChance
	a.Advanced = a.Safe
	return a
}

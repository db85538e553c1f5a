// Package umpire models an umpire's strike-zone and game-management
// tendencies as pure, deterministic modifiers on at-bat outcome chances.
package umpire

import "github.com/baseball-sim/matchsim/internal/model"

// Tendencies captures one umpire's zone profile, expressed so that its
// outputs land on the same additive outcome-chance point scale the
// at-bat resolver's other extra bonus sources use.
type Tendencies struct {
	// ZoneScale is the umpire's strike zone relative to league average:
	// 1.0 average, 1.05 noticeably large, 0.95 noticeably small.
	ZoneScale float64
	// CountBias is strikeout-chance points per ball of count
	// differential, positive for an umpire who gives the pitcher the
	// benefit of the doubt when he falls behind.
	CountBias float64
	// Composure in [0, 1] damps how far the zone drifts in big spots;
	// at 1.0 the zone never moves under pressure.
	Composure float64
	// SeasonsWorked steadies composure further (see EffectiveComposure).
	SeasonsWorked int
}

// Default returns league-average umpire tendencies.
func Default() Tendencies {
	return Tendencies{ZoneScale: 1.0, CountBias: 0, Composure: 0.7, SeasonsWorked: 8}
}

// Zone size converts into outcome-chance points asymmetrically: a big
// zone buys the pitcher called strikes faster than it erases walks.
const (
	strikeoutPointsPerZone = 40.0
	walkPointsPerZone      = 24.0
)

// StrikeoutBonus is the strikeout-chance points this umpire's zone
// size is worth: a 5% larger zone adds about two points.
func (t Tendencies) StrikeoutBonus() float64 {
	return (t.ZoneScale - 1) * strikeoutPointsPerZone
}

// WalkBonus is the walk-chance points a small zone is worth: a 5%
// smaller zone adds about 1.2 points.
func (t Tendencies) WalkBonus() float64 {
	return (1 - t.ZoneScale) * walkPointsPerZone
}

// SituationalBonus drifts the zone with the count and the moment: the
// count bias pays out per ball of differential, and the drift widens
// in high-leverage spots for umpires short on composure.
func (t Tendencies) SituationalBonus(count model.Count, leverage float64) float64 {
	drift := float64(count.Balls-count.Strikes) * t.CountBias
	if leverage > 1 {
		drift *= 1 + (1-t.EffectiveComposure())*(leverage-1)
	}
	return drift
}

// EffectiveComposure folds seasons worked into the declared composure:
// veterans drift less under pressure, gaining 0.02 per season up to
// the 1.0 ceiling.
func (t Tendencies) EffectiveComposure() float64 {
	c := t.Composure + 0.02*float64(t.SeasonsWorked)
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}

// IsStrikeCaller reports whether the zone is big enough to be worth at
// least a full strikeout-chance point.
func (t Tendencies) IsStrikeCaller() bool {
	return t.StrikeoutBonus() >= 1
}

// IsHitterFriendly reports whether the zone is small enough to be
// worth at least a full walk-chance point.
func (t Tendencies) IsHitterFriendly() bool {
	return t.WalkBonus() >= 1
}

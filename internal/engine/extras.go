package engine

import (
	"github.com/baseball-sim/matchsim/internal/atbat"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/stadium"
	"github.com/baseball-sim/matchsim/internal/umpire"
	"github.com/baseball-sim/matchsim/internal/weather"
)

// buildExtraModifiers folds weather, park, and umpire effects into the
// additive outcome-chance bonuses the resolver consumes (the "extra"
// bucket). Park factors are defined per finished outcome, so the hit
// bucket here averages the three non-homerun hit types' park bonus
// rather than picking one in advance of the roll.
func buildExtraModifiers(w weather.Conditions, park stadium.ParkFactors, ump umpire.Tendencies, batterHand string, count model.Count, leverage float64) atbat.ExtraModifiers {
	hitBonus := weather.HitBonus(w)
	hitBonus += (stadium.HitBonus(park, model.OutcomeSingle, batterHand) +
		stadium.HitBonus(park, model.OutcomeDouble, batterHand) +
		stadium.HitBonus(park, model.OutcomeTriple, batterHand)) / 3

	return atbat.ExtraModifiers{
		StrikeoutBonus: ump.StrikeoutBonus() + ump.SituationalBonus(count, leverage),
		WalkBonus:      ump.WalkBonus(),
		HitBonus:       hitBonus,
		HomerunBonus:   weather.HomerunBonus(w) + stadium.HitBonus(park, model.OutcomeHomerun, batterHand),
	}
}

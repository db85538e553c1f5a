package engine

import "github.com/baseball-sim/matchsim/internal/model"

// Decision is one at-bat's free choices: the batter's approach, the
// pitcher's strategy, and which active ability (if any) each side
// activates. AbilityID fields are
// empty when no active ability is spent this at-bat.
type Decision struct {
	BatterApproach    model.Approach
	PitchStrategy     model.Strategy
	BatterAbilityID   string
	PitcherAbilityID  string
}

// AutoPolicy is the default decision function both the batch Simulate
// and the interactive engine's "equivalent auto policy" property test
// use. It is a pure function of the batter's and pitcher's stats, with
// no RNG and no hidden state, so the same matchup always yields the same
// choice, keeping the documented RNG consumption order limited to
// the resolver and baserunning rolls. It never spends an active
// ability: activation is a caller decision the interactive form
// exposes explicitly, and batch callers that want scripted
// activations should use the interactive form instead.
func AutoPolicy(batter, pitcher model.Player) Decision {
	return Decision{
		BatterApproach: autoApproach(batter),
		PitchStrategy:  autoStrategy(pitcher),
	}
}

func autoApproach(batter model.Player) model.Approach {
	power, contact := batter.BatterBase.Power, batter.BatterBase.Contact
	switch {
	case power > contact+10:
		return model.ApproachPower
	case contact > power+10:
		return model.ApproachContact
	default:
		return model.ApproachPatient
	}
}

func autoStrategy(pitcher model.Player) model.Strategy {
	v, c, b := pitcher.PitcherBase.Velocity, pitcher.PitcherBase.Control, pitcher.PitcherBase.Break
	switch {
	case c >= v && c >= b:
		return model.StrategyPaint
	case v >= c && v >= b:
		return model.StrategyChallenge
	default:
		return model.StrategyFinesse
	}
}

package pipeline

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/baseball-sim/matchsim/internal/model"
)

// Effective stats at any pipeline layer must lie in [0, 100] and the
// fatigue multiplier must never fall below 0.55,
// checked over randomly generated players, equipment, synergies, and
// innings-pitched values rather than a handful of fixed examples.
func TestEffectiveBatterStatsAlwaysClamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := model.Player{
			ID: "b",
			BatterBase: model.BatterStats{
				Power:   rapid.Float64Range(-50, 150).Draw(t, "power"),
				Contact: rapid.Float64Range(-50, 150).Draw(t, "contact"),
				Glove:   rapid.Float64Range(-50, 150).Draw(t, "glove"),
				Speed:   rapid.Float64Range(-50, 150).Draw(t, "speed"),
			},
		}
		synergies := model.Synergies{
			BatterStatBonus: model.BatterStats{
				Power:   rapid.Float64Range(-30, 30).Draw(t, "synergyPower"),
				Contact: rapid.Float64Range(-30, 30).Draw(t, "synergyContact"),
			},
		}
		approach := rapid.SampledFrom([]model.Approach{
			model.ApproachPower, model.ApproachContact, model.ApproachPatient, "",
		}).Draw(t, "approach")

		stats := EffectiveBatter(BatterInput{
			Player:    p,
			Synergies: synergies,
			Approach:  approach,
		})

		if stats.Power < 0 || stats.Power > 100 {
			t.Fatalf("power out of [0,100]: %v", stats.Power)
		}
		if stats.Contact < 0 || stats.Contact > 100 {
			t.Fatalf("contact out of [0,100]: %v", stats.Contact)
		}
		if stats.Glove < 0 || stats.Glove > 100 {
			t.Fatalf("glove out of [0,100]: %v", stats.Glove)
		}
		if stats.Speed < 0 || stats.Speed > 100 {
			t.Fatalf("speed out of [0,100]: %v", stats.Speed)
		}
	})
}

func TestEffectivePitcherStatsAlwaysClampedAndFatigueFloored(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := model.Player{
			ID: "p",
			PitcherBase: model.PitcherStats{
				Velocity: rapid.Float64Range(-50, 150).Draw(t, "velocity"),
				Control:  rapid.Float64Range(-50, 150).Draw(t, "control"),
				Break:    rapid.Float64Range(-50, 150).Draw(t, "break"),
			},
		}
		innings := rapid.Float64Range(0, 50).Draw(t, "innings")

		stats := EffectivePitcher(PitcherInput{
			Player:            p,
			InningsPitchedEff: innings,
		})

		if stats.Velocity < 0 || stats.Velocity > 100 {
			t.Fatalf("velocity out of [0,100]: %v", stats.Velocity)
		}
		if stats.Control < 0 || stats.Control > 100 {
			t.Fatalf("control out of [0,100]: %v", stats.Control)
		}
		if stats.Break < 0 || stats.Break > 100 {
			t.Fatalf("break out of [0,100]: %v", stats.Break)
		}

		mult := FatigueMultiplier(innings)
		if mult < MinFatigueMultiplier {
			t.Fatalf("fatigue multiplier %v fell below floor %v", mult, MinFatigueMultiplier)
		}
	})
}

// Round-trip property: the stat derivation applied twice yields
// the same result (no hidden mutation of the player or archetype).
func TestEffectiveBatterIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := model.Player{
			ID: "b",
			BatterBase: model.BatterStats{
				Power:   rapid.Float64Range(0, 100).Draw(t, "power"),
				Contact: rapid.Float64Range(0, 100).Draw(t, "contact"),
			},
		}
		in := BatterInput{Player: p, Approach: model.ApproachContact}

		first := EffectiveBatter(in)
		second := EffectiveBatter(in)
		if first != second {
			t.Fatalf("EffectiveBatter is not idempotent: %+v != %+v", first, second)
		}
	})
}

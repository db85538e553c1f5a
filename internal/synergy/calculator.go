// Package synergy computes lineup-wide synergy bonuses once at match
// start from a roster's traits and the active content pack's
// synergy rules, folding every fired effect into one flat additive
// table per side.
package synergy

import (
	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
)

// Calculate counts traits across lineup, fires every single-trait tier
// and combo synergy whose requirements are met, and folds the result
// into a model.Synergies value.
func Calculate(lineup []model.Player, pack content.Pack) model.Synergies {
	counts := countTraits(lineup)

	result := model.Synergies{TraitCounts: counts}

	for _, s := range pack.SingleTraitSynergies {
		threshold, ok := model.TierThreshold[s.Tier]
		if !ok {
			continue
		}
		if counts[s.Trait] >= threshold {
			apply(&result, s.Effects)
		}
	}

	for _, c := range pack.ComboSynergies {
		if comboSatisfied(c, counts) {
			apply(&result, c.Effects)
		}
	}

	result.BatterStatBonus = result.BatterStatBonus.Clamped()
	result.PitcherStatBonus = result.PitcherStatBonus.Clamped()
	return result
}

func countTraits(lineup []model.Player) map[model.Trait]int {
	counts := make(map[model.Trait]int, len(model.AllTraits))
	for _, t := range model.AllTraits {
		counts[t] = 0
	}
	for _, p := range lineup {
		for _, t := range p.Traits {
			counts[t]++
		}
	}
	return counts
}

func comboSatisfied(c model.ComboSynergy, counts map[model.Trait]int) bool {
	if len(c.Requirements) == 0 {
		return false
	}
	for _, req := range c.Requirements {
		if counts[req.Trait] < req.MinCount {
			return false
		}
	}
	return true
}

func apply(result *model.Synergies, effects []model.AbilityEffect) {
	for _, e := range effects {
		switch e.Kind {
		case model.StatModifier:
			applyStatModifier(result, e)
		case model.OutcomeModifier:
			applyOutcomeModifier(result, e)
		default:
			// Synergies only ever define stat and outcome modifiers in
			// this content pack; guaranteed-outcome and defensive-boost
			// effects are reserved for per-player abilities.
		}
	}
}

func applyStatModifier(result *model.Synergies, e model.AbilityEffect) {
	switch e.Stat {
	case model.StatPower:
		result.BatterStatBonus.Power += e.Delta
	case model.StatContact:
		result.BatterStatBonus.Contact += e.Delta
	case model.StatGlove:
		result.BatterStatBonus.Glove += e.Delta
	case model.StatSpeed:
		result.BatterStatBonus.Speed += e.Delta
	case model.StatVelocity:
		result.PitcherStatBonus.Velocity += e.Delta
	case model.StatControl:
		result.PitcherStatBonus.Control += e.Delta
	case model.StatBreak:
		result.PitcherStatBonus.Break += e.Delta
	}
}

func applyOutcomeModifier(result *model.Synergies, e model.AbilityEffect) {
	switch e.Bucket {
	case model.BucketStrikeout:
		result.StrikeoutBonus += e.BucketDelta
	case model.BucketWalk:
		result.WalkBonus += e.BucketDelta
	case model.BucketHomerun:
		result.HomerunBonus += e.BucketDelta
	case model.BucketHit:
		result.HitBonus += e.BucketDelta
	}
}

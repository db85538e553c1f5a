// Package pipeline computes effective batter/pitcher stats fresh for
// each at-bat through seven ordered, clamped layers: base →
// passive techniques → equipment → synergies → fatigue (pitcher only) →
// approach/strategy → active ability.
package pipeline

import (
	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
)

// MinFatigueMultiplier is the floor every fatigued pitching stat is
// bounded by, regardless of how many effective innings have piled up.
const MinFatigueMultiplier = 0.55

// FatigueMultiplier computes the fatigue degradation factor:
// max(1 - 0.08*inningsPitchedEff, 0.55). inningsPitchedEff is innings
// pitched so far plus the pitcher's accumulated extra-fatigue.
func FatigueMultiplier(inningsPitchedEff float64) float64 {
	m := 1 - 0.08*inningsPitchedEff
	if m < MinFatigueMultiplier {
		return MinFatigueMultiplier
	}
	return m
}

// NegatesFatigue reports whether an active ability context negates
// pitcher fatigue entirely (named examples: time_warp, iron_arm).
func NegatesFatigue(ctx *model.ActiveAbilityContext) bool {
	if ctx == nil {
		return false
	}
	return ctx.AbilityID == "time_warp" || ctx.AbilityID == "iron_arm"
}

// BuildPassiveBundle merges every passive technique's effects for a
// player into the single "__passive_bundle__" context, scaling each
// StatModifier by its technique's rank factor (1 + 0.25*(rank-1)).
func BuildPassiveBundle(p model.Player, pack content.Pack) model.ActiveAbilityContext {
	var effects []model.AbilityEffect
	for _, tech := range p.Techniques {
		ability, ok := pack.AbilityByID(tech.AbilityID)
		if !ok || !ability.IsPassive {
			continue // unknown/non-passive ids are no-ops
		}
		factor := tech.RankFactor()
		for _, e := range ability.Effects {
			if e.Kind == model.StatModifier {
				e.Delta *= factor
			}
			effects = append(effects, e)
		}
	}
	return model.ActiveAbilityContext{PlayerID: p.ID, AbilityID: model.PassiveBundleID, Effects: effects}
}

// BatterInput bundles everything EffectiveBatter needs for one at-bat.
type BatterInput struct {
	Player            model.Player
	Archetype         *model.Archetype
	Synergies         model.Synergies
	Approach          model.Approach
	ConsecutiveCount  int
	PassiveBundle     model.ActiveAbilityContext
	ActiveAbility     *model.ActiveAbilityContext // nil if none activated this at-bat
}

// BatterLayers stages each batter layer's clamped emission, in
// pipeline order, for the trace recorder.
type BatterLayers struct {
	Base       model.BatterStats
	Techniques model.BatterStats
	Equipment  model.BatterStats
	Synergies  model.BatterStats
	Approach   model.BatterStats
	Ability    model.BatterStats
}

// EffectiveBatter computes {power, contact} (plus glove/speed, used only
// for defense aggregation and baserunning) through the full layering.
func EffectiveBatter(in BatterInput) model.BatterStats {
	stats, _ := EffectiveBatterStaged(in)
	return stats
}

// EffectiveBatterStaged is EffectiveBatter plus the per-layer emissions
// the trace recorder stages.
func EffectiveBatterStaged(in BatterInput) (model.BatterStats, BatterLayers) {
	var layers BatterLayers

	stats := baseBatterStats(in.Player, in.Archetype).Clamped()
	layers.Base = stats

	stats = stats.Add(passiveBatterDelta(in.PassiveBundle)).Clamped()
	layers.Techniques = stats

	stats = stats.Add(in.Player.EquipmentBatterStats()).Clamped()
	layers.Equipment = stats

	stats = stats.Add(in.Synergies.BatterStatBonus).Clamped()
	layers.Synergies = stats

	if delta, ok := model.DefaultApproachTable[in.Approach]; ok {
		mult := model.AdaptationMultiplier(in.ConsecutiveCount)
		stats = stats.Add(delta.Batter.Scale(mult)).Clamped()
	}
	layers.Approach = stats

	// Step 7: active-ability stat modifiers only when an ability was
	// actually activated this at-bat. The passive bundle was already
	// folded in at step 2; re-applying it here on a no-activation at-bat
	// would reproduce the historical double-application bug, so a
	// nil/absent ActiveAbility contributes nothing.
	if in.ActiveAbility != nil {
		stats = stats.Add(activeBatterDelta(*in.ActiveAbility)).Clamped()
	}
	layers.Ability = stats

	return stats, layers
}

// PitcherInput bundles everything EffectivePitcher needs for one at-bat.
type PitcherInput struct {
	Player              model.Player
	Archetype           *model.Archetype
	Synergies           model.Synergies
	Strategy            model.Strategy
	ConsecutiveCount    int
	InningsPitchedEff   float64
	PassiveBundle       model.ActiveAbilityContext
	ActiveAbility       *model.ActiveAbilityContext
}

// PitcherLayers stages each pitcher layer's clamped emission, in
// pipeline order, for the trace recorder. FatigueMultiplier is 1.0 when
// the active ability negated fatigue.
type PitcherLayers struct {
	Base              model.PitcherStats
	Techniques        model.PitcherStats
	Equipment         model.PitcherStats
	Synergies         model.PitcherStats
	FatigueMultiplier float64
	Fatigue           model.PitcherStats
	Strategy          model.PitcherStats
	Ability           model.PitcherStats
}

// EffectivePitcher computes {velocity, control, break} through the
// full layering, including the fatigue multiplier unless the active
// ability negates it.
func EffectivePitcher(in PitcherInput) model.PitcherStats {
	stats, _ := EffectivePitcherStaged(in)
	return stats
}

// EffectivePitcherStaged is EffectivePitcher plus the per-layer
// emissions the trace recorder stages.
func EffectivePitcherStaged(in PitcherInput) (model.PitcherStats, PitcherLayers) {
	var layers PitcherLayers

	stats := basePitcherStats(in.Player, in.Archetype).Clamped()
	layers.Base = stats

	stats = stats.Add(passivePitcherDelta(in.PassiveBundle)).Clamped()
	layers.Techniques = stats

	stats = stats.Add(in.Player.EquipmentPitcherStats()).Clamped()
	layers.Equipment = stats

	stats = stats.Add(in.Synergies.PitcherStatBonus).Clamped()
	layers.Synergies = stats

	layers.FatigueMultiplier = 1.0
	if !NegatesFatigue(in.ActiveAbility) {
		mult := FatigueMultiplier(in.InningsPitchedEff)
		layers.FatigueMultiplier = mult
		stats = stats.Scale(mult).Clamped()
	}
	layers.Fatigue = stats

	if delta, ok := model.DefaultStrategyTable[in.Strategy]; ok {
		mult := model.AdaptationMultiplier(in.ConsecutiveCount)
		stats = stats.Add(delta.Pitcher.Scale(mult)).Clamped()
	}
	layers.Strategy = stats

	if in.ActiveAbility != nil {
		stats = stats.Add(activePitcherDelta(*in.ActiveAbility)).Clamped()
	}
	layers.Ability = stats

	return stats, layers
}

// DefenseGlove averages the glove stat across the fielders, then applies
// a batter-ability DefensiveBoost subtractively to the attacker (i.e.
// additively to the defense's effective glove).
func DefenseGlove(fielders []model.Player, archetypes map[string]model.Archetype, batterAbility *model.ActiveAbilityContext) float64 {
	if len(fielders) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range fielders {
		var arch *model.Archetype
		if a, ok := archetypes[f.ArchetypeID]; ok {
			arch = &a
		}
		total += baseBatterStats(f, arch).Clamped().Add(f.EquipmentBatterStats()).Clamped().Glove
	}
	avg := total / float64(len(fielders))
	if batterAbility != nil {
		avg += batterAbility.DefensiveBoostDelta()
	}
	return model.Clamp(avg)
}

// Speed computes a runner's effective speed for the baserunning
// sub-simulation: archetype/base plus equipment only. Passive
// techniques, synergy speed bonuses and approach are not applied here.
func Speed(p model.Player, archetypes map[string]model.Archetype) float64 {
	var arch *model.Archetype
	if a, ok := archetypes[p.ArchetypeID]; ok {
		arch = &a
	}
	return model.Clamp(baseBatterStats(p, arch).Speed + p.EquipmentBatterStats().Speed)
}

func baseBatterStats(p model.Player, arch *model.Archetype) model.BatterStats {
	if arch != nil {
		return arch.Batter
	}
	return p.BatterBase
}

func basePitcherStats(p model.Player, arch *model.Archetype) model.PitcherStats {
	if arch != nil {
		return arch.Pitcher
	}
	return p.PitcherBase
}

func passiveBatterDelta(ctx model.ActiveAbilityContext) model.BatterStats {
	var d model.BatterStats
	for _, e := range ctx.StatModifiers() {
		addBatterField(&d, e.Stat, e.Delta)
	}
	return d
}

func passivePitcherDelta(ctx model.ActiveAbilityContext) model.PitcherStats {
	var d model.PitcherStats
	for _, e := range ctx.StatModifiers() {
		addPitcherField(&d, e.Stat, e.Delta)
	}
	return d
}

func activeBatterDelta(ctx model.ActiveAbilityContext) model.BatterStats {
	return passiveBatterDelta(ctx)
}

func activePitcherDelta(ctx model.ActiveAbilityContext) model.PitcherStats {
	return passivePitcherDelta(ctx)
}

func addBatterField(d *model.BatterStats, field model.StatField, delta float64) {
	switch field {
	case model.StatPower:
		d.Power += delta
	case model.StatContact:
		d.Contact += delta
	case model.StatGlove:
		d.Glove += delta
	case model.StatSpeed:
		d.Speed += delta
	}
}

func addPitcherField(d *model.PitcherStats, field model.StatField, delta float64) {
	switch field {
	case model.StatVelocity:
		d.Velocity += delta
	case model.StatControl:
		d.Control += delta
	case model.StatBreak:
		d.Break += delta
	}
}

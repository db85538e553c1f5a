// Package atbat implements the at-bat resolver: the clash /
// guaranteed-outcome / normal stat-based branch order that composes the
// stat pipeline, ability effects, and random rolls into one Result.
package atbat

import (
	"fmt"
	"math"

	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/pipeline"
	"github.com/baseball-sim/matchsim/internal/rng"
)

// Branch tags which resolution path produced the result, for the trace
// recorder.
type Branch int

const (
	BranchNormal Branch = iota
	BranchClash
	BranchGuaranteedBatter
	BranchGuaranteedPitcher
)

// Roll is one recorded RNG draw: label, raw [0,1) value, the scaled
// value actually compared against a threshold, the threshold itself
// (if any), and whether the comparison passed.
type Roll struct {
	Label     string
	Raw       float64
	Scaled    float64
	Threshold float64
	Passed    bool
}

// ExtraModifiers are additive outcome-chance bonuses from sources
// outside the ability/synergy/approach system: weather, park factors,
// umpire tendencies (see internal/weather, internal/stadium,
// internal/umpire).
type ExtraModifiers struct {
	StrikeoutBonus float64
	WalkBonus      float64
	HitBonus       float64
	HomerunBonus   float64
}

// Input is everything the resolver needs for one at-bat.
type Input struct {
	Batter    model.Player
	Pitcher   model.Player
	Defense   []model.Player
	Archetypes map[string]model.Archetype

	// InningsPitchedEff is the pitcher's fractional innings pitched so
	// far with any extra-fatigue accumulator already added in.
	InningsPitchedEff float64

	RNG rng.Provider

	BatterAbility  *model.ActiveAbilityContext
	PitcherAbility *model.ActiveAbilityContext
	BatterPassive  model.ActiveAbilityContext
	PitcherPassive model.ActiveAbilityContext

	Approach            model.Approach
	Strategy            model.Strategy
	ApproachConsecutive int
	StrategyConsecutive int

	OffenseSynergies model.Synergies
	DefenseSynergies model.Synergies

	Extra ExtraModifiers
}

// Result is the resolver's full output, rich enough for the trace
// recorder to stage without recomputing anything.
type Result struct {
	Outcome          model.Outcome
	ClashOccurred    bool
	Branch           Branch
	ClashWinnerBatter bool
	ClashBatterRoll   float64
	ClashPitcherRoll  float64
	// Warnings are recovered anomalies (malformed guaranteed-outcome
	// distributions) the caller forwards to the trace recorder; the
	// resolver itself never fails on them.
	Warnings         []string
	Rolls            []Roll
	EffectiveBatter  model.BatterStats
	EffectivePitcher model.PitcherStats
	BatterLayers     pipeline.BatterLayers
	PitcherLayers    pipeline.PitcherLayers
	DefenseGlove     float64
}

// Resolve runs the full resolution branch order and returns the outcome.
func Resolve(in Input) Result {
	batterGuaranteed, batterHasGuaranteed := activeGuaranteed(in.BatterAbility)
	pitcherGuaranteed, pitcherHasGuaranteed := activeGuaranteed(in.PitcherAbility)

	switch {
	case batterHasGuaranteed && pitcherHasGuaranteed:
		return resolveClash(in, batterGuaranteed, pitcherGuaranteed)
	case batterHasGuaranteed:
		roll := in.RNG.Float64()
		outcome := resolveDistribution(batterGuaranteed.Normalized(), roll)
		return Result{
			Outcome:  outcome,
			Branch:   BranchGuaranteedBatter,
			Warnings: distributionWarnings("batter", in.BatterAbility, batterGuaranteed),
			Rolls:    []Roll{{Label: "guaranteed_batter_outcome", Raw: roll, Scaled: roll * 100}},
		}
	case pitcherHasGuaranteed:
		chances := pitcherDistribution(in.PitcherAbility, pitcherGuaranteed)
		roll := in.RNG.Float64()
		outcome := resolveDistribution(chances, roll)
		return Result{
			Outcome:  outcome,
			Branch:   BranchGuaranteedPitcher,
			Warnings: distributionWarnings("pitcher", in.PitcherAbility, pitcherGuaranteed),
			Rolls:    []Roll{{Label: "guaranteed_pitcher_outcome", Raw: roll, Scaled: roll * 100}},
		}
	default:
		return resolveNormal(in)
	}
}

func activeGuaranteed(ctx *model.ActiveAbilityContext) (model.AbilityEffect, bool) {
	if ctx == nil {
		return model.AbilityEffect{}, false
	}
	return ctx.GuaranteedEffect()
}

// pitcherDistribution applies the named total_eclipse special case:
// its declared Chances are never consulted, the fixed
// 80/15/5 strikeout/walk/single table is substituted verbatim.
func pitcherDistribution(ctx *model.ActiveAbilityContext, effect model.AbilityEffect) []model.OutcomeChance {
	if ctx != nil && ctx.AbilityID == model.TotalEclipseID {
		return model.TotalEclipseChances
	}
	return effect.Normalized()
}

// distributionWarnings reports the recovered anomalies in a
// guaranteed-outcome distribution: negative entries (clamped to 0 at
// resolution) and sums away from 100 (residual folded into the last
// bucket). total_eclipse's declared chances are never consulted, so it
// never warns.
func distributionWarnings(sideName string, ctx *model.ActiveAbilityContext, effect model.AbilityEffect) []string {
	if ctx != nil && ctx.AbilityID == model.TotalEclipseID {
		return nil
	}
	abilityID := ""
	if ctx != nil {
		abilityID = ctx.AbilityID
	}
	var warnings []string
	if len(effect.Chances) == 0 {
		return []string{fmt.Sprintf("%s ability %q: guaranteed-outcome distribution is empty", sideName, abilityID)}
	}
	sum := 0.0
	for _, c := range effect.Chances {
		if c.Chance < 0 {
			warnings = append(warnings, fmt.Sprintf("%s ability %q: negative chance %.1f for %s clamped to 0", sideName, abilityID, c.Chance, c.Outcome))
			continue
		}
		sum += c.Chance
	}
	if math.Abs(sum-100) > 1e-9 {
		warnings = append(warnings, fmt.Sprintf("%s ability %q: chances sum to %.1f, residual folded into %s", sideName, abilityID, sum, effect.Chances[len(effect.Chances)-1].Outcome))
	}
	return warnings
}

func resolveClash(in Input, batterEffect, pitcherEffect model.AbilityEffect) Result {
	batterRoll := in.RNG.Float64()
	pitcherRoll := in.RNG.Float64()
	batterPower := batterRoll * batterEffect.MaxChance()
	pitcherPower := pitcherRoll * pitcherEffect.MaxChance()

	batterWins := batterPower >= pitcherPower // batter wins ties

	rolls := []Roll{
		{Label: "clash_batter_power", Raw: batterRoll, Scaled: batterPower},
		{Label: "clash_pitcher_power", Raw: pitcherRoll, Scaled: pitcherPower},
	}

	var chances []model.OutcomeChance
	if batterWins {
		chances = batterEffect.Normalized()
	} else {
		chances = pitcherDistribution(in.PitcherAbility, pitcherEffect)
	}
	outcomeRoll := in.RNG.Float64()
	outcome := resolveDistribution(chances, outcomeRoll)
	rolls = append(rolls, Roll{Label: "clash_outcome", Raw: outcomeRoll, Scaled: outcomeRoll * 100})

	var warnings []string
	if batterWins {
		warnings = distributionWarnings("batter", in.BatterAbility, batterEffect)
	} else {
		warnings = distributionWarnings("pitcher", in.PitcherAbility, pitcherEffect)
	}

	return Result{
		Outcome:           outcome,
		ClashOccurred:     true,
		Branch:            BranchClash,
		ClashWinnerBatter: batterWins,
		ClashBatterRoll:   batterPower,
		ClashPitcherRoll:  pitcherPower,
		Warnings:          warnings,
		Rolls:             rolls,
	}
}

// resolveDistribution maps a [0,1) roll onto an ordered, normalized
// outcome distribution via cumulative thresholds; any rounding residual
// falls to the last bucket.
func resolveDistribution(chances []model.OutcomeChance, roll float64) model.Outcome {
	if len(chances) == 0 {
		return model.OutcomeGroundout
	}
	scaled := roll * 100
	cum := 0.0
	for _, c := range chances {
		cum += c.Chance
		if scaled < cum {
			return c.Outcome
		}
	}
	return chances[len(chances)-1].Outcome
}

func clampMin0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func resolveNormal(in Input) Result {
	batterStats, batterLayers := pipeline.EffectiveBatterStaged(pipeline.BatterInput{
		Player:           in.Batter,
		Archetype:        archetypeFor(in.Batter, in.Archetypes),
		Synergies:        in.OffenseSynergies,
		Approach:         in.Approach,
		ConsecutiveCount: in.ApproachConsecutive,
		PassiveBundle:    in.BatterPassive,
		ActiveAbility:    in.BatterAbility,
	})
	pitcherStats, pitcherLayers := pipeline.EffectivePitcherStaged(pipeline.PitcherInput{
		Player:            in.Pitcher,
		Archetype:         archetypeFor(in.Pitcher, in.Archetypes),
		Synergies:         in.DefenseSynergies,
		Strategy:          in.Strategy,
		ConsecutiveCount:  in.StrategyConsecutive,
		InningsPitchedEff: in.InningsPitchedEff,
		PassiveBundle:     in.PitcherPassive,
		ActiveAbility:     in.PitcherAbility,
	})
	defenseGlove := pipeline.DefenseGlove(in.Defense, in.Archetypes, in.BatterAbility)

	kBonus := bonusFor(model.BucketStrikeout, in)
	wBonus := bonusFor(model.BucketWalk, in)
	hBonus := bonusFor(model.BucketHit, in)
	hrBonus := bonusFor(model.BucketHomerun, in)

	rolls := make([]Roll, 0, 4)

	// Strikeout check.
	kChance := clampMin0((pitcherStats.Velocity+pitcherStats.Break+pitcherStats.Control*0.4-batterStats.Contact)/1.8 + kBonus)
	kRoll := in.RNG.Float64()
	kScaled := kRoll * 100
	kPassed := kScaled < kChance
	rolls = append(rolls, Roll{Label: "strikeout", Raw: kRoll, Scaled: kScaled, Threshold: kChance, Passed: kPassed})
	if kPassed {
		return Result{Outcome: model.OutcomeStrikeout, Branch: BranchNormal, Rolls: rolls, EffectiveBatter: batterStats, EffectivePitcher: pitcherStats, BatterLayers: batterLayers, PitcherLayers: pitcherLayers, DefenseGlove: defenseGlove}
	}

	// Walk check.
	wildness := (100 - pitcherStats.Control) / 12
	discipline := clampMin0(batterStats.Contact-40) / 20
	wChance := clampMin0(wildness + discipline + wBonus)
	wRoll := in.RNG.Float64()
	wScaled := wRoll * 100
	wPassed := wScaled < wChance
	rolls = append(rolls, Roll{Label: "walk", Raw: wRoll, Scaled: wScaled, Threshold: wChance, Passed: wPassed})
	if wPassed {
		return Result{Outcome: model.OutcomeWalk, Branch: BranchNormal, Rolls: rolls, EffectiveBatter: batterStats, EffectivePitcher: pitcherStats, BatterLayers: batterLayers, PitcherLayers: pitcherLayers, DefenseGlove: defenseGlove}
	}

	// Ball in play: net score, then hit roll.
	batterScore := batterStats.Power + batterStats.Contact
	pitcherScore := pitcherStats.Velocity + pitcherStats.Break + pitcherStats.Control
	netScore := clampRange(batterScore*1.2-pitcherScore*0.9-defenseGlove*0.8, -15, 15)
	netScore += hBonus

	hitRoll := in.RNG.Float64()
	hitScaled := hitRoll*100 + netScore + (batterStats.Power-50)*0.15 + hrBonus
	rolls = append(rolls, Roll{Label: "hit_quality", Raw: hitRoll, Scaled: hitScaled})

	var outcome model.Outcome
	switch {
	case hitScaled > 98:
		outcome = model.OutcomeHomerun
	case hitScaled > 95:
		outcome = model.OutcomeTriple
	case hitScaled > 85:
		outcome = model.OutcomeDouble
	case hitScaled > 55:
		outcome = model.OutcomeSingle
	default:
		outRoll := in.RNG.Float64()
		outcome = resolveOutType(outRoll)
		rolls = append(rolls, Roll{Label: "out_type", Raw: outRoll, Scaled: outRoll})
	}

	return Result{Outcome: outcome, Branch: BranchNormal, Rolls: rolls, EffectiveBatter: batterStats, EffectivePitcher: pitcherStats, BatterLayers: batterLayers, PitcherLayers: pitcherLayers, DefenseGlove: defenseGlove}
}

func resolveOutType(roll float64) model.Outcome {
	switch {
	case roll < 0.45:
		return model.OutcomeGroundout
	case roll < 0.80:
		return model.OutcomeFlyout
	case roll < 0.92:
		return model.OutcomeLineout
	default:
		return model.OutcomePopout
	}
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

func archetypeFor(p model.Player, archetypes map[string]model.Archetype) *model.Archetype {
	if p.ArchetypeID == "" {
		return nil
	}
	if a, ok := archetypes[p.ArchetypeID]; ok {
		return &a
	}
	return nil
}

func bonusFor(bucket model.OutcomeBucket, in Input) float64 {
	total := in.BatterPassive.OutcomeBonus(bucket)
	if in.BatterAbility != nil {
		total += in.BatterAbility.OutcomeBonus(bucket)
	}
	total += in.PitcherPassive.OutcomeBonus(bucket)
	if in.PitcherAbility != nil {
		total += in.PitcherAbility.OutcomeBonus(bucket)
	}
	total += synergyBonus(bucket, in.OffenseSynergies)
	total += synergyBonus(bucket, in.DefenseSynergies)
	total += approachBonus(bucket, in.Approach)
	total += strategyBonus(bucket, in.Strategy)
	total += extraBonus(bucket, in.Extra)
	return total
}

func synergyBonus(bucket model.OutcomeBucket, s model.Synergies) float64 {
	switch bucket {
	case model.BucketStrikeout:
		return s.StrikeoutBonus
	case model.BucketWalk:
		return s.WalkBonus
	case model.BucketHit:
		return s.HitBonus
	case model.BucketHomerun:
		return s.HomerunBonus
	default:
		return 0
	}
}

func approachBonus(bucket model.OutcomeBucket, a model.Approach) float64 {
	d, ok := model.DefaultApproachTable[a]
	if !ok {
		return 0
	}
	switch bucket {
	case model.BucketStrikeout:
		return d.StrikeoutBias
	case model.BucketWalk:
		return d.WalkBias
	case model.BucketHit:
		return d.HitBias
	case model.BucketHomerun:
		return d.HomerunBias
	default:
		return 0
	}
}

func strategyBonus(bucket model.OutcomeBucket, s model.Strategy) float64 {
	d, ok := model.DefaultStrategyTable[s]
	if !ok {
		return 0
	}
	switch bucket {
	case model.BucketStrikeout:
		return d.StrikeoutBias
	case model.BucketWalk:
		return d.WalkBias
	case model.BucketHit:
		return d.HitBias
	case model.BucketHomerun:
		return d.HomerunBias
	default:
		return 0
	}
}

func extraBonus(bucket model.OutcomeBucket, e ExtraModifiers) float64 {
	switch bucket {
	case model.BucketStrikeout:
		return e.StrikeoutBonus
	case model.BucketWalk:
		return e.WalkBonus
	case model.BucketHit:
		return e.HitBonus
	case model.BucketHomerun:
		return e.HomerunBonus
	default:
		return 0
	}
}

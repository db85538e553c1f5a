package atbat

import (
	"testing"

	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/rng"
)

func moonshotAbility() *model.ActiveAbilityContext {
	return &model.ActiveAbilityContext{
		AbilityID: "moonshot",
		Effects: []model.AbilityEffect{{
			Kind: model.GuaranteedOutcome,
			Chances: []model.OutcomeChance{
				{Outcome: model.OutcomeHomerun, Chance: 55},
				{Outcome: model.OutcomeStrikeout, Chance: 45},
			},
		}},
	}
}

func knuckleballAbility() *model.ActiveAbilityContext {
	return &model.ActiveAbilityContext{
		AbilityID: "knuckleball",
		Effects: []model.AbilityEffect{{
			Kind: model.GuaranteedOutcome,
			Chances: []model.OutcomeChance{
				{Outcome: model.OutcomeStrikeout, Chance: 60},
			},
		}},
	}
}

func twoStrikeAssassinAbility() *model.ActiveAbilityContext {
	return &model.ActiveAbilityContext{
		AbilityID: "two_strike_assassin",
		Effects: []model.AbilityEffect{{
			Kind: model.GuaranteedOutcome,
			Chances: []model.OutcomeChance{
				{Outcome: model.OutcomeSingle, Chance: 70},
				{Outcome: model.OutcomeDouble, Chance: 20},
				{Outcome: model.OutcomeGroundout, Chance: 10},
			},
		}},
	}
}

func baseInput(seed int64) Input {
	return Input{
		Batter:  model.Player{ID: "b"},
		Pitcher: model.Player{ID: "p"},
		RNG:     rng.NewSeeded(seed),
	}
}

func TestClashDistributionNotAlwaysMoonshot(t *testing.T) {
	homeruns, strikeouts := 0, 0
	for seed := int64(0); seed < 1000; seed++ {
		in := baseInput(seed)
		in.BatterAbility = moonshotAbility()
		in.PitcherAbility = knuckleballAbility()
		res := Resolve(in)
		if !res.ClashOccurred {
			t.Fatalf("seed %d: expected clash", seed)
		}
		switch res.Outcome {
		case model.OutcomeHomerun:
			homeruns++
		case model.OutcomeStrikeout:
			strikeouts++
		default:
			t.Fatalf("seed %d: unexpected outcome %v in clash", seed, res.Outcome)
		}
	}
	if homeruns == 0 || strikeouts == 0 {
		t.Fatalf("expected both outcomes to appear: homeruns=%d strikeouts=%d", homeruns, strikeouts)
	}
	if homeruns == 1000 {
		t.Fatal("regression: Moonshot must not win 100% of clashes")
	}
}

func TestMoonshotSoloDistribution(t *testing.T) {
	homeruns, strikeouts := 0, 0
	for seed := int64(0); seed < 1000; seed++ {
		in := baseInput(seed)
		in.BatterAbility = moonshotAbility()
		res := Resolve(in)
		if res.Branch != BranchGuaranteedBatter {
			t.Fatalf("seed %d: expected guaranteed-batter branch, got %v", seed, res.Branch)
		}
		switch res.Outcome {
		case model.OutcomeHomerun:
			homeruns++
		case model.OutcomeStrikeout:
			strikeouts++
		default:
			t.Fatalf("seed %d: unexpected outcome %v", seed, res.Outcome)
		}
	}
	if homeruns+strikeouts != 1000 {
		t.Fatalf("homeruns+strikeouts = %d, want 1000", homeruns+strikeouts)
	}
	if homeruns < 450 || homeruns > 650 {
		t.Fatalf("homeruns = %d, want in [450,650]", homeruns)
	}
	if strikeouts < 350 || strikeouts > 550 {
		t.Fatalf("strikeouts = %d, want in [350,550]", strikeouts)
	}
}

func TestTwoStrikeAssassinDistribution(t *testing.T) {
	singles, doubles, outs := 0, 0, 0
	for seed := int64(0); seed < 1000; seed++ {
		in := baseInput(seed)
		in.BatterAbility = twoStrikeAssassinAbility()
		res := Resolve(in)
		switch res.Outcome {
		case model.OutcomeSingle:
			singles++
		case model.OutcomeDouble:
			doubles++
		case model.OutcomeGroundout:
			outs++
		default:
			t.Fatalf("seed %d: unexpected outcome %v", seed, res.Outcome)
		}
	}
	if singles < 600 || singles > 800 {
		t.Fatalf("singles = %d, want in [600,800]", singles)
	}
	if doubles < 120 || doubles > 280 {
		t.Fatalf("doubles = %d, want in [120,280]", doubles)
	}
	if outs < 40 || outs > 160 {
		t.Fatalf("outs = %d, want in [40,160]", outs)
	}
}

func TestTotalEclipseSubstitutesFixedTable(t *testing.T) {
	in := baseInput(1)
	in.PitcherAbility = &model.ActiveAbilityContext{
		AbilityID: model.TotalEclipseID,
		Effects: []model.AbilityEffect{{
			Kind: model.GuaranteedOutcome,
			// Deliberately different from the fixed table to prove the
			// substitution, not this distribution, is what resolves.
			Chances: []model.OutcomeChance{{Outcome: model.OutcomeHomerun, Chance: 100}},
		}},
	}
	counts := map[model.Outcome]int{}
	for seed := int64(0); seed < 2000; seed++ {
		in := in
		in.RNG = rng.NewSeeded(seed)
		res := Resolve(in)
		counts[res.Outcome]++
	}
	if counts[model.OutcomeHomerun] != 0 {
		t.Fatalf("total_eclipse must never resolve to homerun, got %d", counts[model.OutcomeHomerun])
	}
	if counts[model.OutcomeStrikeout] == 0 || counts[model.OutcomeWalk] == 0 || counts[model.OutcomeSingle] == 0 {
		t.Fatalf("expected all three fixed-table outcomes to appear: %+v", counts)
	}
}

func TestDeterminismSameSeedIdenticalResult(t *testing.T) {
	batter := model.Player{ID: "b", BatterBase: model.BatterStats{Power: 60, Contact: 55}}
	pitcher := model.Player{ID: "p", PitcherBase: model.PitcherStats{Velocity: 70, Control: 60, Break: 50}}

	run := func() Result {
		return Resolve(Input{
			Batter:  batter,
			Pitcher: pitcher,
			RNG:     rng.NewSeeded(424242),
		})
	}
	first := run()
	second := run()
	if first.Outcome != second.Outcome {
		t.Fatalf("same seed produced different outcomes: %v != %v", first.Outcome, second.Outcome)
	}
}

func TestNormalResolutionNeverErrorsAndStaysInRange(t *testing.T) {
	batter := model.Player{ID: "b", BatterBase: model.BatterStats{Power: 50, Contact: 50}}
	pitcher := model.Player{ID: "p", PitcherBase: model.PitcherStats{Velocity: 50, Control: 50, Break: 50}}
	for seed := int64(0); seed < 200; seed++ {
		res := Resolve(Input{Batter: batter, Pitcher: pitcher, RNG: rng.NewSeeded(seed)})
		if res.EffectiveBatter.Power < 0 || res.EffectiveBatter.Power > 100 {
			t.Fatalf("seed %d: effective power out of range: %v", seed, res.EffectiveBatter.Power)
		}
	}
}

func TestMalformedGuaranteedOutcomeResidualFallsToLastBucket(t *testing.T) {
	in := baseInput(0)
	in.BatterAbility = &model.ActiveAbilityContext{
		AbilityID: "broken",
		Effects: []model.AbilityEffect{{
			Kind: model.GuaranteedOutcome,
			Chances: []model.OutcomeChance{
				{Outcome: model.OutcomeSingle, Chance: -10}, // negative, clamped to 0
				{Outcome: model.OutcomeDouble, Chance: 30},
			},
		}},
	}
	in.RNG = rng.NewMock([]float64{0.99}) // forces scaled=99, past the 30 cumulative
	res := Resolve(in)
	if res.Outcome != model.OutcomeDouble {
		t.Fatalf("outcome = %v, want double to absorb the residual (last bucket)", res.Outcome)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected the malformed distribution to be reported as a warning")
	}
}

func TestClashRecordsBothPowerRolls(t *testing.T) {
	in := baseInput(7)
	in.BatterAbility = moonshotAbility()
	in.PitcherAbility = knuckleballAbility()
	res := Resolve(in)
	if !res.ClashOccurred {
		t.Fatal("expected clash")
	}
	if res.ClashBatterRoll < 0 || res.ClashBatterRoll > 55 {
		t.Fatalf("batter power roll = %v, want within [0, 55] (roll scaled by max chance 55)", res.ClashBatterRoll)
	}
	if res.ClashPitcherRoll < 0 || res.ClashPitcherRoll > 60 {
		t.Fatalf("pitcher power roll = %v, want within [0, 60] (roll scaled by max chance 60)", res.ClashPitcherRoll)
	}
	wantBatter := res.ClashBatterRoll >= res.ClashPitcherRoll
	if res.ClashWinnerBatter != wantBatter {
		t.Fatalf("winner flag %v inconsistent with rolls %v vs %v (batter wins ties)",
			res.ClashWinnerBatter, res.ClashBatterRoll, res.ClashPitcherRoll)
	}
}

package pipeline

import (
	"math"
	"testing"

	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFatigueMultiplierBoundaries(t *testing.T) {
	if m := FatigueMultiplier(0); m != 1.0 {
		t.Fatalf("FatigueMultiplier(0) = %v, want 1.0 (pitcherFatigueModifier(v,0)=v)", m)
	}
	if m := FatigueMultiplier(1e9); m != MinFatigueMultiplier {
		t.Fatalf("FatigueMultiplier(inf) = %v, want %v (floor at 0.55*v)", m, MinFatigueMultiplier)
	}
}

func TestFatigueCurveScenario(t *testing.T) {
	base := 90.0
	inning1 := base * FatigueMultiplier(1)
	if !approxEqual(inning1, 82.8, 0.01) {
		t.Fatalf("inning 1 velocity = %v, want ~82.8", inning1)
	}
	inning5 := base * FatigueMultiplier(5)
	if !approxEqual(inning5, 54.0, 0.01) {
		t.Fatalf("inning 5 velocity = %v, want ~54.0", inning5)
	}
	floor := base * FatigueMultiplier(100)
	if !approxEqual(floor, 49.5, 0.01) {
		t.Fatalf("floored velocity = %v, want ~49.5 (90*0.55)", floor)
	}
}

func TestEffectiveBatterLayersClampedAndAdditive(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default(): %v", err)
	}
	p := model.Player{
		ID:         "b1",
		Role:       model.RoleBatter,
		BatterBase: model.BatterStats{Power: 95, Contact: 95, Glove: 50, Speed: 50},
	}
	passive := BuildPassiveBundle(p, pack)
	stats := EffectiveBatter(BatterInput{
		Player:        p,
		PassiveBundle: passive,
		Approach:      model.ApproachPower,
	})
	if stats.Power > 100 || stats.Power < 0 {
		t.Fatalf("power out of [0,100]: %v", stats.Power)
	}
	if stats.Contact > 100 || stats.Contact < 0 {
		t.Fatalf("contact out of [0,100]: %v", stats.Contact)
	}
}

func TestActiveAbilityNotDoubleCountedWithPassiveBundle(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default(): %v", err)
	}
	p := model.Player{
		ID:         "b1",
		Role:       model.RoleBatter,
		BatterBase: model.BatterStats{Power: 50, Contact: 50},
		Techniques: []model.Technique{{AbilityID: "sharp_eye", Rank: 1}},
	}
	passive := BuildPassiveBundle(p, pack)

	withoutActivation := EffectiveBatter(BatterInput{Player: p, PassiveBundle: passive})
	withNilActiveAgain := EffectiveBatter(BatterInput{Player: p, PassiveBundle: passive, ActiveAbility: nil})

	if withoutActivation != withNilActiveAgain {
		t.Fatalf("identical inputs with nil ActiveAbility must be idempotent: %+v != %+v", withoutActivation, withNilActiveAgain)
	}
	// sharp_eye (+4 contact) must be counted exactly once via the passive
	// bundle fold, not a second time because no active ability fired.
	if withoutActivation.Contact != 54 {
		t.Fatalf("contact = %v, want 54 (50 base + 4 passive, counted once)", withoutActivation.Contact)
	}
}

func TestStagedLayersEmitInPipelineOrder(t *testing.T) {
	p := model.Player{
		ID:         "p1",
		Role:       model.RoleStarter,
		PitcherBase: model.PitcherStats{Velocity: 90, Control: 70, Break: 60},
	}
	stats, layers := EffectivePitcherStaged(PitcherInput{
		Player:            p,
		InningsPitchedEff: 5,
		Strategy:          model.StrategyChallenge,
	})
	if layers.Base.Velocity != 90 {
		t.Fatalf("base layer velocity = %v, want 90", layers.Base.Velocity)
	}
	if layers.FatigueMultiplier != 0.6 {
		t.Fatalf("fatigue multiplier = %v, want 0.6 at 5 effective innings", layers.FatigueMultiplier)
	}
	if !approxEqual(layers.Fatigue.Velocity, 54.0, 0.01) {
		t.Fatalf("fatigue layer velocity = %v, want 54.0", layers.Fatigue.Velocity)
	}
	// Challenge adds +6 velocity after fatigue.
	if !approxEqual(layers.Strategy.Velocity, 60.0, 0.01) {
		t.Fatalf("strategy layer velocity = %v, want 60.0", layers.Strategy.Velocity)
	}
	if stats != layers.Ability {
		t.Fatalf("final stats %+v != ability layer emission %+v", stats, layers.Ability)
	}

	for _, layer := range []model.PitcherStats{layers.Base, layers.Techniques, layers.Equipment, layers.Synergies, layers.Fatigue, layers.Strategy, layers.Ability} {
		if layer.Velocity < 0 || layer.Velocity > 100 || layer.Control < 0 || layer.Control > 100 || layer.Break < 0 || layer.Break > 100 {
			t.Fatalf("layer emission out of [0,100]: %+v", layer)
		}
	}
}

func TestFatigueNegatingAbilitySkipsFatigueLayer(t *testing.T) {
	p := model.Player{
		ID:          "p1",
		Role:        model.RoleStarter,
		PitcherBase: model.PitcherStats{Velocity: 90, Control: 70, Break: 60},
	}
	_, layers := EffectivePitcherStaged(PitcherInput{
		Player:            p,
		InningsPitchedEff: 8,
		ActiveAbility:     &model.ActiveAbilityContext{AbilityID: "time_warp"},
	})
	if layers.FatigueMultiplier != 1.0 {
		t.Fatalf("fatigue multiplier with time_warp = %v, want 1.0", layers.FatigueMultiplier)
	}
	if layers.Fatigue.Velocity != 90 {
		t.Fatalf("fatigue layer velocity with time_warp = %v, want 90 (unfatigued)", layers.Fatigue.Velocity)
	}
}

func TestDefenseGloveAveragesAndAppliesBoost(t *testing.T) {
	fielders := []model.Player{
		{ID: "f1", BatterBase: model.BatterStats{Glove: 40}},
		{ID: "f2", BatterBase: model.BatterStats{Glove: 60}},
	}
	avg := DefenseGlove(fielders, nil, nil)
	if avg != 50 {
		t.Fatalf("avg glove = %v, want 50", avg)
	}
	boosted := DefenseGlove(fielders, nil, &model.ActiveAbilityContext{
		Effects: []model.AbilityEffect{{Kind: model.DefensiveBoost, GloveDelta: 10}},
	})
	if boosted != 60 {
		t.Fatalf("boosted avg glove = %v, want 60", boosted)
	}
}

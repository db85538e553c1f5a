package synergy

import (
	"testing"

	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
)

func playerWithTraits(id string, traits ...model.Trait) model.Player {
	return model.Player{ID: id, Role: model.RoleBatter, Traits: traits}
}

func TestBronzeTierFiresAtTwo(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	lineup := []model.Player{
		playerWithTraits("p1", model.TraitSlugger),
		playerWithTraits("p2", model.TraitSlugger),
	}
	syn := Calculate(lineup, pack)
	if syn.TraitCounts[model.TraitSlugger] != 2 {
		t.Fatalf("slugger count = %d, want 2", syn.TraitCounts[model.TraitSlugger])
	}
	if syn.BatterStatBonus.Power != 2 {
		t.Fatalf("bronze slugger power bonus = %v, want 2", syn.BatterStatBonus.Power)
	}
}

func TestGoldTierStacksWithLowerTiers(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	lineup := []model.Player{
		playerWithTraits("p1", model.TraitSlugger),
		playerWithTraits("p2", model.TraitSlugger),
		playerWithTraits("p3", model.TraitSlugger),
		playerWithTraits("p4", model.TraitSlugger),
	}
	syn := Calculate(lineup, pack)
	// All three tiers fire (each checks its own threshold independently);
	// bronze(2) + silver(4) + gold(6) = 12.
	if syn.BatterStatBonus.Power != 12 {
		t.Fatalf("stacked tier power bonus = %v, want 12", syn.BatterStatBonus.Power)
	}
}

func TestComboRequiresAllTraits(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	// Only veteran present, no leader: combo must not fire.
	lineup := []model.Player{
		playerWithTraits("p1", model.TraitVeteran),
		playerWithTraits("p2", model.TraitVeteran),
	}
	syn := Calculate(lineup, pack)
	if syn.WalkBonus != 0 {
		t.Fatalf("combo fired without leader present: walk bonus = %v", syn.WalkBonus)
	}

	lineup = append(lineup, playerWithTraits("p3", model.TraitLeader))
	syn = Calculate(lineup, pack)
	if syn.WalkBonus != 2 {
		t.Fatalf("combo did not fire with requirements met: walk bonus = %v, want 2", syn.WalkBonus)
	}
}

func TestNoTraitsYieldsZeroBonuses(t *testing.T) {
	pack, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error: %v", err)
	}
	syn := Calculate(nil, pack)
	zero := model.BatterStats{}
	if syn.BatterStatBonus != zero {
		t.Fatalf("expected zero batter bonus, got %+v", syn.BatterStatBonus)
	}
}

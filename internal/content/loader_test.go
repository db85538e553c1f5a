package content

import (
	"testing"

	"github.com/baseball-sim/matchsim/internal/model"
)

func TestDefaultPackLoads(t *testing.T) {
	pack, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(pack.Archetypes) == 0 {
		t.Fatal("expected at least one archetype")
	}
	if len(pack.Abilities) == 0 {
		t.Fatal("expected at least one ability")
	}
	if len(pack.Equipment) == 0 {
		t.Fatal("expected at least one equipment item")
	}
	if len(pack.SingleTraitSynergies) == 0 {
		t.Fatal("expected at least one single-trait synergy")
	}
	if len(pack.ComboSynergies) == 0 {
		t.Fatal("expected at least one combo synergy")
	}
}

func TestMoonshotGuaranteedOutcome(t *testing.T) {
	pack, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	moonshot, ok := pack.AbilityByID("moonshot")
	if !ok {
		t.Fatal("expected moonshot ability in default pack")
	}
	if len(moonshot.Effects) != 1 || moonshot.Effects[0].Kind != model.GuaranteedOutcome {
		t.Fatalf("moonshot effects = %+v, want one GuaranteedOutcome", moonshot.Effects)
	}
	if got := moonshot.Effects[0].MaxChance(); got != 55 {
		t.Fatalf("moonshot MaxChance() = %v, want 55", got)
	}
}

func TestUnknownAbilityLooksUpAsMissing(t *testing.T) {
	pack, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if _, ok := pack.AbilityByID("does_not_exist"); ok {
		t.Fatal("expected unknown ability id to report not-found, not a zero value masquerading as found")
	}
}

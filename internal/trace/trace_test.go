package trace

import (
	"testing"

	"github.com/baseball-sim/matchsim/internal/atbat"
	"github.com/baseball-sim/matchsim/internal/baserunning"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/pipeline"
)

func TestRecorderBuildsVersionedLog(t *testing.T) {
	seed := int64(42)
	r := NewRecorder(&seed)

	var at AtBatTrace
	at.FromResolverResult(atbat.Result{Outcome: model.OutcomeSingle, Branch: atbat.BranchNormal})
	at.AddExtraBaseAttempt("2", baserunning.Attempt{RunnerID: "p1", AttemptChance: 30, Attempted: true, SuccessChance: 60, Safe: true})
	r.RecordAtBat(at)
	r.RecordEvent(GameEvent{Kind: EventInningStart, Inning: 1, Half: model.Top})
	r.RecordEvent(GameEvent{Kind: EventInningEnd, Inning: 1, Half: model.Top, Runs: 1, Hits: 1})

	log := r.Build(Score{Home: 2, Away: 1}, 9)

	if log.Version != Version {
		t.Fatalf("Version = %d, want %d", log.Version, Version)
	}
	if log.Seed == nil || *log.Seed != 42 {
		t.Fatal("expected seed to round-trip onto the built log")
	}
	if len(log.AtBats) != 1 {
		t.Fatalf("len(AtBats) = %d, want 1", len(log.AtBats))
	}
	if len(log.AtBats[0].ExtraBaseAttempts) != 1 {
		t.Fatal("expected the extra-base attempt to be recorded on the at-bat trace")
	}
	if len(log.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(log.Events))
	}
	if log.FinalScore.Home != 2 || log.FinalScore.Away != 1 {
		t.Fatal("final score did not round-trip")
	}
	if log.RunID == "" {
		t.Fatal("expected a non-empty run id")
	}
}

func TestFromResolverResultStagesPipelineLayers(t *testing.T) {
	var at AtBatTrace
	at.FromResolverResult(atbat.Result{
		Outcome:          model.OutcomeSingle,
		Branch:           atbat.BranchNormal,
		EffectiveBatter:  model.BatterStats{Power: 62, Contact: 58},
		EffectivePitcher: model.PitcherStats{Velocity: 55, Control: 60, Break: 48},
		BatterLayers: pipeline.BatterLayers{
			Base:    model.BatterStats{Power: 60, Contact: 55},
			Ability: model.BatterStats{Power: 62, Contact: 58},
		},
		PitcherLayers: pipeline.PitcherLayers{
			Base:              model.PitcherStats{Velocity: 90, Control: 70, Break: 60},
			FatigueMultiplier: 0.76,
		},
		DefenseGlove: 52.5,
	})
	if at.BatterPipeline.Base.Power != 60 {
		t.Fatalf("batter base layer power = %v, want 60", at.BatterPipeline.Base.Power)
	}
	if at.BatterPipeline.Effective.Power != 62 {
		t.Fatalf("batter effective power = %v, want 62", at.BatterPipeline.Effective.Power)
	}
	if at.PitcherPipeline.FatigueMultiplier != 0.76 {
		t.Fatalf("fatigue multiplier = %v, want 0.76", at.PitcherPipeline.FatigueMultiplier)
	}
	if at.DefenseGlove != 52.5 {
		t.Fatalf("defense glove = %v, want 52.5", at.DefenseGlove)
	}
}

func TestBranchNameCoversAllVariants(t *testing.T) {
	cases := map[atbat.Branch]string{
		atbat.BranchNormal:            "normal",
		atbat.BranchClash:             "clash",
		atbat.BranchGuaranteedBatter:  "guaranteed_batter",
		atbat.BranchGuaranteedPitcher: "guaranteed_pitcher",
	}
	for branch, want := range cases {
		var at AtBatTrace
		at.FromResolverResult(atbat.Result{Branch: branch})
		if at.Resolution.Branch != want {
			t.Fatalf("branch %v = %q, want %q", branch, at.Resolution.Branch, want)
		}
	}
}

package engine

import "github.com/baseball-sim/matchsim/internal/trace"

// Substitution thresholds (see DESIGN.md): a starter is pulled once a
// defensive half-inning ends with inning >= startExitInning and either
// the fatigue or
// runs-allowed trigger has fired; the first reliever is held to the
// same trigger but a later exit inning, and any reliever after that
// reuses the relief threshold for the rest of the game.
const (
	starterExitInning   = 5
	reliefExitInning    = 7
	fatigueExitInnings  = 5.0
	runsAllowedExitLine = 4
)

// maybeSubstitute checks the defending side's current pitcher against
// the exit thresholds at a half-inning boundary and advances the
// rotation at most once. It returns true if a substitution was made.
func maybeSubstitute(defense *side, inning int, rec *trace.Recorder) bool {
	exitInning := starterExitInning
	if defense.rotationIdx > 0 {
		exitInning = reliefExitInning
	}
	if inning < exitInning {
		return false
	}
	if defense.inningsPitchedEff() < fatigueExitInnings && defense.runsAllowedInOuting < runsAllowedExitLine {
		return false
	}
	if defense.rotationIdx+1 >= len(defense.team.Rotation) {
		return false // no one left in the bullpen, the tired arm finishes it
	}

	oldPitcher := defense.currentPitcherID
	defense.previousPitcherTechniqueID = primaryTechniqueID(defense.roster[oldPitcher])
	defense.rotationIdx++
	defense.currentPitcherID = defense.team.Rotation[defense.rotationIdx]
	// outsByPitcher/extraFatigueByPitcher are keyed per pitcher and
	// deliberately not touched: fatigue persists across any re-entry.
	defense.runsAllowedInOuting = 0
	defense.pitcherStrategy = strategyTrack{}

	if rec != nil {
		rec.RecordEvent(trace.GameEvent{
			Kind:       trace.EventPitcherChange,
			Inning:     inning,
			Team:       defense.team.ID,
			OldPitcher: oldPitcher,
			NewPitcher: defense.currentPitcherID,
			Reason:     "fatigue_or_runs_allowed",
		})
	}
	return true
}

package engine

import "github.com/baseball-sim/matchsim/internal/model"

// outcomeApplication is the result of applying one at-bat outcome to
// the base/outs/runs state.
type outcomeApplication struct {
	Bases       model.BaseState
	Runs        int
	Scorers     []string // player ids credited with a run on this play
	IsOut       bool
	IsAtBat     bool // every outcome except walk
	IsHit       bool
	IsWalk      bool
	IsStrikeout bool
}

// applyOutcome implements the fixed outcome-application table exactly.
func applyOutcome(outcome model.Outcome, bases model.BaseState, batterID string) outcomeApplication {
	switch outcome {
	case model.OutcomeStrikeout:
		return outcomeApplication{Bases: bases, IsOut: true, IsAtBat: true, IsStrikeout: true}

	case model.OutcomeWalk:
		nb, runs, scorers := forceAdvance(bases, batterID)
		return outcomeApplication{Bases: nb, Runs: runs, Scorers: scorers, IsWalk: true}

	case model.OutcomeSingle:
		nb, runs, scorers := applySingle(bases, batterID)
		return outcomeApplication{Bases: nb, Runs: runs, Scorers: scorers, IsAtBat: true, IsHit: true}

	case model.OutcomeDouble:
		nb, runs, scorers := applyDouble(bases, batterID)
		return outcomeApplication{Bases: nb, Runs: runs, Scorers: scorers, IsAtBat: true, IsHit: true}

	case model.OutcomeTriple:
		nb, runs, scorers := applyTriple(bases, batterID)
		return outcomeApplication{Bases: nb, Runs: runs, Scorers: scorers, IsAtBat: true, IsHit: true}

	case model.OutcomeHomerun:
		scorers := occupiedRunnerIDs(bases)
		scorers = append(scorers, batterID)
		runs := len(scorers)
		var nb model.BaseState
		return outcomeApplication{Bases: nb, Runs: runs, Scorers: scorers, IsAtBat: true, IsHit: true}

	default: // groundout, flyout, lineout, popout
		return outcomeApplication{Bases: bases, IsOut: true, IsAtBat: true}
	}
}

func occupiedRunnerIDs(bases model.BaseState) []string {
	var out []string
	for i := 0; i < 3; i++ {
		if bases.Occupied[i] {
			out = append(out, bases.RunnerID[i])
		}
	}
	return out
}

func forceAdvance(bases model.BaseState, batterID string) (model.BaseState, int, []string) {
	nb := bases
	runs := 0
	var scorers []string
	loaded := bases.Occupied[model.First] && bases.Occupied[model.Second] && bases.Occupied[model.Third]
	if bases.Occupied[model.First] {
		if bases.Occupied[model.Second] {
			if loaded {
				runs++
				scorers = append(scorers, bases.RunnerID[model.Third])
			}
			nb.Place(model.Third, bases.RunnerID[model.Second])
		}
		nb.Place(model.Second, bases.RunnerID[model.First])
	}
	nb.Place(model.First, batterID)
	return nb, runs, scorers
}

func applySingle(bases model.BaseState, batterID string) (model.BaseState, int, []string) {
	runs := 0
	var scorers []string
	var nb model.BaseState
	if bases.Occupied[model.Third] {
		runs++
		scorers = append(scorers, bases.RunnerID[model.Third])
	}
	if bases.Occupied[model.Second] {
		nb.Place(model.Third, bases.RunnerID[model.Second])
	}
	if bases.Occupied[model.First] {
		nb.Place(model.Second, bases.RunnerID[model.First])
	}
	nb.Place(model.First, batterID)
	return nb, runs, scorers
}

func applyDouble(bases model.BaseState, batterID string) (model.BaseState, int, []string) {
	runs := 0
	var scorers []string
	var nb model.BaseState
	if bases.Occupied[model.Third] {
		runs++
		scorers = append(scorers, bases.RunnerID[model.Third])
	}
	if bases.Occupied[model.Second] {
		runs++
		scorers = append(scorers, bases.RunnerID[model.Second])
	}
	if bases.Occupied[model.First] {
		nb.Place(model.Third, bases.RunnerID[model.First])
	}
	nb.Place(model.Second, batterID)
	return nb, runs, scorers
}

func applyTriple(bases model.BaseState, batterID string) (model.BaseState, int, []string) {
	scorers := occupiedRunnerIDs(bases)
	runs := len(scorers)
	var nb model.BaseState
	nb.Place(model.Third, batterID)
	return nb, runs, scorers
}

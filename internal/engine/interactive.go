package engine

import "github.com/baseball-sim/matchsim/internal/model"

// MatchState is the interactive form's opaque handle: created by
// Initialize, advanced one at-bat at a time by StepAtBat, and closed out
// by Finalize once the game has ended. It wraps the same gameState the
// batch Simulate entrypoint drives, so stepping it by hand through an
// equivalent auto policy reproduces Simulate's result bit for bit.
type MatchState struct {
	g *gameState
}

// Done reports whether the game has ended. Interactive callers poll
// this after each StepAtBat to know when to stop and call Finalize.
func (m *MatchState) Done() bool { return m.g.finished }

// Inning, Half, Outs, and Bases expose the handle's current situation
// to an interactive caller deciding the next at-bat's approach/strategy.
func (m *MatchState) Inning() int             { return m.g.inning }
func (m *MatchState) Half() model.InningHalf  { return m.g.half }
func (m *MatchState) Outs() int               { return m.g.outs }
func (m *MatchState) Bases() model.BaseState  { return m.g.bases }
func (m *MatchState) HomeScore() int          { return m.g.homeScore }
func (m *MatchState) AwayScore() int          { return m.g.awayScore }

// CurrentBatterID and CurrentPitcherID name the players due up next,
// the ids an interactive caller's Decision fields refer to.
func (m *MatchState) CurrentBatterID() string {
	offense, _ := m.g.currentSides()
	return offense.team.Lineup[offense.battingIdx]
}

func (m *MatchState) CurrentPitcherID() string {
	_, defense := m.g.currentSides()
	return defense.currentPitcherID
}

// Initialize starts a new interactive game and returns its handle.
func Initialize(home, away model.Team, opts Options) (*MatchState, error) {
	g, err := newGameState(home, away, opts)
	if err != nil {
		return nil, err
	}
	return &MatchState{g: g}, nil
}

// StepAtBat plays exactly one at-bat using the caller-supplied
// decision. Calling it on an already-finished game is a no-op.
func StepAtBat(state *MatchState, decision Decision) (*MatchState, error) {
	state.g.step(decision)
	if state.g.err != nil {
		return state, state.g.err
	}
	return state, nil
}

// Rewards is the economy system's output, supplied by the caller and
// folded into the final result untouched; the engine never computes
// CashEarned or LootDrops itself.
type Rewards struct {
	CashEarned int
	LootDrops  []string
}

// Finalize produces the final MatchResult for a finished interactive
// game. level is threaded through for the caller's own reward-scaling
// logic; the engine itself has no use for it.
func Finalize(state *MatchState, rewards Rewards, level int) MatchResult {
	result := state.g.finish()
	result.CashEarned = rewards.CashEarned
	result.LootDrops = rewards.LootDrops
	return result
}

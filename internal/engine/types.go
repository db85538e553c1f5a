// Package engine implements the game loop: innings, half-innings,
// outs, baserunners, pitcher rotation, extra innings, pitcher
// substitution, spirit momentum, and both the batch (Simulate) and
// interactive (Initialize/StepAtBat/Finalize) forms of the external
// interface. It composes internal/atbat, internal/baserunning,
// internal/synergy, internal/pipeline, and internal/trace into one
// deterministic, seedable simulation.
package engine

import (
	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/rng"
	"github.com/baseball-sim/matchsim/internal/stadium"
	"github.com/baseball-sim/matchsim/internal/trace"
	"github.com/baseball-sim/matchsim/internal/umpire"
	"github.com/baseball-sim/matchsim/internal/weather"
)

// Options configures one Simulate call. The weather/park/umpire
// fields are this engine's own additive extension (the resolver's
// extra modifiers) and default to neutral when left unset.
type Options struct {
	Seed        *int64
	EnableTrace bool
	Pack        *content.Pack
	Weather     *weather.Conditions
	Park        *stadium.ParkFactors
	Umpire      *umpire.Tendencies
}

func (o Options) rngProvider() rng.Provider {
	if o.Seed != nil {
		return rng.NewSeeded(*o.Seed)
	}
	return rng.NewSystem()
}

func (o Options) pack() (content.Pack, error) {
	if o.Pack != nil {
		return *o.Pack, nil
	}
	return content.Default()
}

func (o Options) weather() weather.Conditions {
	if o.Weather != nil {
		return *o.Weather
	}
	return weather.Neutral()
}

func (o Options) park() stadium.ParkFactors {
	if o.Park != nil {
		return *o.Park
	}
	return stadium.DefaultParkFactors()
}

func (o Options) umpire() umpire.Tendencies {
	if o.Umpire != nil {
		return *o.Umpire
	}
	return umpire.Default()
}

// BattingLine is one player's batting box-score line for the game.
type BattingLine struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	PA, AB, H, Doubles, Triples, HR, RBI, R, BB, K int

	AVG, OBP, SLG float64
}

// Derive computes AVG/OBP/SLG from this line's counting stats.
func (b *BattingLine) Derive() {
	if b.AB > 0 {
		b.AVG = float64(b.H) / float64(b.AB)
		totalBases := b.H - b.Doubles - b.Triples - b.HR + b.Doubles*2 + b.Triples*3 + b.HR*4
		b.SLG = float64(totalBases) / float64(b.AB)
	}
	if b.PA > 0 {
		b.OBP = float64(b.H+b.BB) / float64(b.PA)
	}
}

// PitchingLine is one pitcher's box-score line for the game.
type PitchingLine struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	OutsRecorded int
	BF, H, R, ER, BB, K, HR int

	IP, ERA, WHIP float64
}

// Derive computes IP/ERA/WHIP from this line's counting stats.
func (p *PitchingLine) Derive() {
	p.IP = float64(p.OutsRecorded) / 3.0
	if p.IP > 0 {
		p.ERA = (float64(p.ER) * 9) / p.IP
		p.WHIP = float64(p.H+p.BB) / p.IP
	}
}

// TeamBox is one team's half of the box score.
type TeamBox struct {
	Batting  map[string]*BattingLine  `json:"batting"`
	Pitching map[string]*PitchingLine `json:"pitching"`
}

func newTeamBox() TeamBox {
	return TeamBox{Batting: map[string]*BattingLine{}, Pitching: map[string]*PitchingLine{}}
}

// BoxScore is the final box score for both teams.
type BoxScore struct {
	Home TeamBox `json:"home"`
	Away TeamBox `json:"away"`
}

// MatchResult is the batch simulation's output shape.
type MatchResult struct {
	MyRuns       int      `json:"myRuns"`
	OpponentRuns int      `json:"opponentRuns"`
	IsWin        bool     `json:"isWin"`
	// CashEarned and LootDrops belong to the rewards/economy system:
	// the engine never computes them, the fields exist only so callers
	// can populate them after Simulate returns without reshaping the
	// result.
	CashEarned   int      `json:"cashEarned"`
	TotalInnings int      `json:"totalInnings"`
	BoxScore     BoxScore `json:"boxScore"`
	PlayByPlay   []string `json:"playByPlay"`
	LootDrops    []string `json:"lootDrops,omitempty"`

	TraceLog *trace.GameTraceLog `json:"traceLog,omitempty"`
}

// approachTrack/strategyTrack hold a lineup slot's consecutive-same-
// choice streak.
type approachTrack struct {
	last  model.Approach
	count int
}

type strategyTrack struct {
	last  model.Strategy
	count int
}

// Package report turns a batch of simulated games into the balance
// report the CLI harness prints: win-rate matrices, rate stats,
// approach/strategy distributions, and the Drama Score/Fun Score pair.
// It is an outer-layer package, not part of the engine's own external
// interface: the engine stays a pure function; report only reads the
// MatchResult/GameTraceLog values the engine already produced.
package report

import (
	"github.com/baseball-sim/matchsim/internal/engine"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/trace"
)

// RateStats is one side's counting stats folded across every simulated
// game in a matchup, plus the rate stats the balance report tables
// actually display.
type RateStats struct {
	PA, AB, H, BB, K, HR int

	AVG      float64
	KPct     float64
	BBPct    float64
	HRPerAB  float64
}

func (r *RateStats) derive() {
	if r.AB > 0 {
		r.AVG = float64(r.H) / float64(r.AB)
		r.HRPerAB = float64(r.HR) / float64(r.AB)
	}
	if r.PA > 0 {
		r.KPct = float64(r.K) / float64(r.PA)
		r.BBPct = float64(r.BB) / float64(r.PA)
	}
}

func accumulate(rates *RateStats, box engine.TeamBox) {
	for _, line := range box.Batting {
		rates.PA += line.PA
		rates.AB += line.AB
		rates.H += line.H
		rates.BB += line.BB
		rates.K += line.K
		rates.HR += line.HR
	}
}

// ApproachStrategyCounts tallies how often each approach/strategy was
// chosen across every at-bat of every traced sample game. The harness
// only enables tracing on a bounded subset of a matchup's games (full
// tracing of thousands of games would defeat the point of a summary
// report), so these counts are a sample, not a census.
type ApproachStrategyCounts struct {
	Approach map[model.Approach]int
	Strategy map[model.Strategy]int
	Sampled  int // number of traced games folded in
}

func newApproachStrategyCounts() ApproachStrategyCounts {
	return ApproachStrategyCounts{
		Approach: map[model.Approach]int{},
		Strategy: map[model.Strategy]int{},
	}
}

func (c *ApproachStrategyCounts) accumulate(log *trace.GameTraceLog) {
	if log == nil {
		return
	}
	c.Sampled++
	for _, ab := range log.AtBats {
		c.Approach[ab.Approach]++
		c.Strategy[ab.Strategy]++
	}
}

// MatchupReport is one matchup's full balance-report payload.
type MatchupReport struct {
	Label string

	Aggregate engine.AggregateResult
	Home      RateStats
	Away      RateStats

	Distribution ApproachStrategyCounts

	DramaScore float64
	FunScore   float64
}

// Build folds a batch of game outcomes (and whatever trace logs those
// games happened to record) into one MatchupReport.
func Build(label string, outcomes []engine.GameOutcome) MatchupReport {
	agg := engine.Aggregate(outcomes)

	home := RateStats{}
	away := RateStats{}
	dist := newApproachStrategyCounts()

	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		accumulate(&home, o.Result.BoxScore.Home)
		accumulate(&away, o.Result.BoxScore.Away)
		dist.accumulate(o.Result.TraceLog)
	}
	home.derive()
	away.derive()

	rep := MatchupReport{
		Label:        label,
		Aggregate:    agg,
		Home:         home,
		Away:         away,
		Distribution: dist,
	}
	rep.DramaScore = dramaScore(agg)
	rep.FunScore = funScore(agg, home, away)
	return rep
}

// varianceCloseCap is the combined-runs-squared variance at and above
// which a matchup is considered maximally "chaotic" rather than close,
// for dramaScore's variance-closeness term.
const varianceCloseCap = 36.0

// dramaScore blends how often games were decided by one run, how
// rarely they were blowouts, and how tightly final scores clustered
// into a single 0-100 figure.
func dramaScore(agg engine.AggregateResult) float64 {
	if agg.TotalGames == 0 {
		return 0
	}
	closeness := closenessFromVariance(agg.ScoreVariance)
	raw := 0.5*agg.OneRunGamePct + 0.3*(1-agg.BlowoutPct) + 0.2*closeness
	return clampScore(100 * raw)
}

func closenessFromVariance(variance float64) float64 {
	if variance >= varianceCloseCap {
		return 0
	}
	return 1 - variance/varianceCloseCap
}

// funScore blends how often games ran up the score, how often either
// side went deep, and how rarely at-bats ended in a strikeout into a
// single 0-100 figure.
func funScore(agg engine.AggregateResult, home, away RateStats) float64 {
	if agg.TotalGames == 0 {
		return 0
	}
	combinedHRRate := (home.HRPerAB + away.HRPerAB) / 2
	combinedK := (home.KPct + away.KPct) / 2
	raw := 0.4*agg.HighScoringPct + 0.4*clamp01(combinedHRRate*20) + 0.2*(1-combinedK)
	return clampScore(100 * raw)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

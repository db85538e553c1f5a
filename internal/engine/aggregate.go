package engine

import (
	"sync"

	"github.com/baseball-sim/matchsim/internal/model"
)

// RunManyOptions configures a batch of independent games fanned out
// across a worker pool (the headless harness surface). Workers
// defaults to 1 when left at or below zero.
type RunManyOptions struct {
	Games   int
	Workers int
	Base    Options
}

// GameOutcome pairs one game's MatchResult with whatever error Simulate
// returned for it. A per-game InvalidRoster or InvariantViolation does
// not abort the rest of the batch; it is counted and skipped at
// aggregation time instead.
type GameOutcome struct {
	Result MatchResult
	Err    error
}

type indexedOutcome struct {
	index   int
	outcome GameOutcome
}

// RunMany simulates opts.Games independent games across opts.Workers
// goroutines: a per-worker share plus remainder feeding a buffered
// results channel, collected once every worker's WaitGroup completes.
// When
// opts.Base.Seed is set, game i reseeds with seed+i so the same
// (home, away, games, seed) input always produces the same set of
// per-game results regardless of which goroutine happens to run which
// index.
func RunMany(home, away model.Team, opts RunManyOptions) []GameOutcome {
	games := opts.Games
	if games <= 0 {
		return nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > games {
		workers = games
	}

	resultsChan := make(chan indexedOutcome, games)
	var wg sync.WaitGroup

	simulationsPerWorker := games / workers
	remainder := games % workers

	start := 0
	for w := 0; w < workers; w++ {
		workerGames := simulationsPerWorker
		if w < remainder {
			workerGames++
		}

		wg.Add(1)
		go func(firstIndex, count int) {
			defer wg.Done()
			for j := 0; j < count; j++ {
				idx := firstIndex + j
				gameOpts := opts.Base
				if opts.Base.Seed != nil {
					seed := *opts.Base.Seed + int64(idx)
					gameOpts.Seed = &seed
				}
				result, err := Simulate(home, away, gameOpts)
				resultsChan <- indexedOutcome{index: idx, outcome: GameOutcome{Result: result, Err: err}}
			}
		}(start, workerGames)
		start += workerGames
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	outcomes := make([]GameOutcome, games)
	for io := range resultsChan {
		outcomes[io.index] = io.outcome
	}
	return outcomes
}

// blowoutMargin and highScoringTotal are the thresholds the balance
// report's "blowout %" and "high-scoring %" columns are computed from.
const (
	blowoutMargin    = 8
	highScoringTotal = 15
)

// AggregateResult is the cross-game summary a balance report renders.
type AggregateResult struct {
	TotalGames int
	Errors     int

	HomeWins int
	AwayWins int
	Ties     int

	HomeWinPct float64
	AwayWinPct float64
	TiePct     float64

	ExpectedHomeScore float64
	ExpectedAwayScore float64
	ScoreVariance      float64

	HomeScoreDistribution map[int]int
	AwayScoreDistribution map[int]int

	BlowoutPct     float64
	OneRunGamePct  float64
	ShutoutPct     float64
	HighScoringPct float64
}

// Aggregate folds a batch of game outcomes into one AggregateResult,
// counting but skipping any outcome that errored.
func Aggregate(outcomes []GameOutcome) AggregateResult {
	agg := AggregateResult{
		HomeScoreDistribution: map[int]int{},
		AwayScoreDistribution: map[int]int{},
	}

	valid := make([]MatchResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			agg.Errors++
			continue
		}
		valid = append(valid, o.Result)
	}
	agg.TotalGames = len(valid)
	if agg.TotalGames == 0 {
		return agg
	}

	var totalHome, totalAway float64
	blowouts, oneRun, shutouts, highScoring := 0, 0, 0, 0

	for _, r := range valid {
		home, away := r.MyRuns, r.OpponentRuns
		agg.HomeScoreDistribution[home]++
		agg.AwayScoreDistribution[away]++
		totalHome += float64(home)
		totalAway += float64(away)

		switch {
		case home == away:
			agg.Ties++
		case home > away:
			agg.HomeWins++
		default:
			agg.AwayWins++
		}

		margin := home - away
		if margin < 0 {
			margin = -margin
		}
		if margin >= blowoutMargin {
			blowouts++
		}
		if margin == 1 {
			oneRun++
		}
		if home == 0 || away == 0 {
			shutouts++
		}
		if home+away >= highScoringTotal {
			highScoring++
		}
	}

	total := float64(agg.TotalGames)
	agg.HomeWinPct = float64(agg.HomeWins) / total
	agg.AwayWinPct = float64(agg.AwayWins) / total
	agg.TiePct = float64(agg.Ties) / total
	agg.ExpectedHomeScore = totalHome / total
	agg.ExpectedAwayScore = totalAway / total
	agg.BlowoutPct = float64(blowouts) / total
	agg.OneRunGamePct = float64(oneRun) / total
	agg.ShutoutPct = float64(shutouts) / total
	agg.HighScoringPct = float64(highScoring) / total

	expectedCombined := agg.ExpectedHomeScore + agg.ExpectedAwayScore
	var varSum float64
	for _, r := range valid {
		diff := float64(r.MyRuns+r.OpponentRuns) - expectedCombined
		varSum += diff * diff
	}
	agg.ScoreVariance = varSum / total

	return agg
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/engine"
	"github.com/baseball-sim/matchsim/internal/roster"
)

func simulateBatch(t *testing.T, games int, seed int64) []engine.GameOutcome {
	t.Helper()
	pack, err := content.Default()
	assert.NoError(t, err)
	home, err := roster.SampleHome(pack)
	assert.NoError(t, err)
	away, err := roster.SampleAway(pack)
	assert.NoError(t, err)
	return engine.RunMany(home, away, engine.RunManyOptions{
		Games:   games,
		Workers: 4,
		Base:    engine.Options{Seed: &seed, Pack: &pack, EnableTrace: true},
	})
}

func TestBuildAggregatesRateStatsAcrossGames(t *testing.T) {
	outcomes := simulateBatch(t, 20, 111)
	rep := Build("home vs away", outcomes)

	assert.Equal(t, 20, rep.Aggregate.TotalGames+rep.Aggregate.Errors)
	assert.Greater(t, rep.Home.PA, 0, "expected at least one home plate appearance across 20 games")
	assert.Greater(t, rep.Away.PA, 0, "expected at least one away plate appearance across 20 games")
	assert.GreaterOrEqual(t, rep.Home.AVG, 0.0)
	assert.LessOrEqual(t, rep.Home.AVG, 1.0)
	assert.GreaterOrEqual(t, rep.Home.KPct, 0.0)
	assert.LessOrEqual(t, rep.Home.KPct, 1.0)
}

func TestBuildDramaAndFunScoresAreBounded(t *testing.T) {
	outcomes := simulateBatch(t, 20, 222)
	rep := Build("home vs away", outcomes)

	assert.GreaterOrEqual(t, rep.DramaScore, 0.0)
	assert.LessOrEqual(t, rep.DramaScore, 100.0)
	assert.GreaterOrEqual(t, rep.FunScore, 0.0)
	assert.LessOrEqual(t, rep.FunScore, 100.0)
}

func TestBuildSamplesApproachStrategyFromTracedGames(t *testing.T) {
	outcomes := simulateBatch(t, 5, 333)
	rep := Build("home vs away", outcomes)

	assert.Equal(t, len(outcomes), rep.Distribution.Sampled, "every game in this batch was traced")
	totalApproaches := 0
	for _, n := range rep.Distribution.Approach {
		totalApproaches += n
	}
	assert.Greater(t, totalApproaches, 0, "expected at least one recorded approach choice")
}

func TestBuildWithNoValidGamesReturnsZeroedReport(t *testing.T) {
	rep := Build("empty", nil)
	assert.Equal(t, 0, rep.Aggregate.TotalGames)
	assert.Equal(t, 0.0, rep.DramaScore)
	assert.Equal(t, 0.0, rep.FunScore)
}

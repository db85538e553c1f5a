package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#1D4E89")).
		Padding(0, 1).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true)

	scoreStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#02BA84"))
)

// Render formats a MatchupReport as the stdout balance report: a
// win-rate matrix, rate-stat tables, approach/strategy distributions
// when a trace sample is available, and the Drama Score/Fun Score pair.
func Render(rep MatchupReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render(" "+rep.Label+" "))
	fmt.Fprintln(&b)

	agg := rep.Aggregate
	fmt.Fprintln(&b, labelStyle.Render("Win-rate matrix"))
	fmt.Fprintf(&b, "  games=%d  errors=%d\n", agg.TotalGames, agg.Errors)
	fmt.Fprintf(&b, "  home %.1f%%   away %.1f%%   tie %.1f%%\n",
		100*agg.HomeWinPct, 100*agg.AwayWinPct, 100*agg.TiePct)
	fmt.Fprintf(&b, "  expected score  home %.2f - away %.2f\n",
		agg.ExpectedHomeScore, agg.ExpectedAwayScore)
	fmt.Fprintf(&b, "  one-run games %.1f%%   blowouts %.1f%%   shutouts %.1f%%   high-scoring %.1f%%\n",
		100*agg.OneRunGamePct, 100*agg.BlowoutPct, 100*agg.ShutoutPct, 100*agg.HighScoringPct)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, labelStyle.Render("Rate stats"))
	fmt.Fprintln(&b, renderRateTable(rep.Home, rep.Away))
	fmt.Fprintln(&b)

	if rep.Distribution.Sampled > 0 {
		fmt.Fprintln(&b, labelStyle.Render(fmt.Sprintf("Approach/strategy distribution (sampled over %d games)", rep.Distribution.Sampled)))
		fmt.Fprintln(&b, renderDistributionTable(rep.Distribution))
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, labelStyle.Render("Drama / Fun"))
	fmt.Fprintf(&b, "  %s   %s\n",
		scoreStyle.Render(fmt.Sprintf("Drama Score: %.1f", rep.DramaScore)),
		scoreStyle.Render(fmt.Sprintf("Fun Score: %.1f", rep.FunScore)))

	return b.String()
}

func renderRateTable(home, away RateStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-6s %6s %6s %6s %6s\n", "side", "AVG", "K%", "BB%", "HR/AB")
	fmt.Fprintf(&b, "  %-6s %6.3f %5.1f%% %5.1f%% %6.3f\n", "home", home.AVG, 100*home.KPct, 100*home.BBPct, home.HRPerAB)
	fmt.Fprintf(&b, "  %-6s %6.3f %5.1f%% %5.1f%% %6.3f\n", "away", away.AVG, 100*away.KPct, 100*away.BBPct, away.HRPerAB)
	return b.String()
}

func renderDistributionTable(c ApproachStrategyCounts) string {
	var b strings.Builder
	total := 0
	for _, n := range c.Approach {
		total += n
	}
	fmt.Fprintln(&b, "  approach:")
	for approach, n := range c.Approach {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		fmt.Fprintf(&b, "    %-10s %5.1f%%\n", approach, pct)
	}

	totalStrat := 0
	for _, n := range c.Strategy {
		totalStrat += n
	}
	fmt.Fprintln(&b, "  strategy:")
	for strategy, n := range c.Strategy {
		pct := 0.0
		if totalStrat > 0 {
			pct = 100 * float64(n) / float64(totalStrat)
		}
		fmt.Fprintf(&b, "    %-10s %5.1f%%\n", strategy, pct)
	}
	return b.String()
}

package engine

import "github.com/baseball-sim/matchsim/internal/model"

// leverageMaxSwing is the most runs one at-bat can change the score by
// (a bases-loaded homerun); any margin inside it still counts as close.
const leverageMaxSwing = 4

// calculateLeverage scores how much the current at-bat matters, feeding
// the umpire's situational zone drift. It rises from the 1.0 floor as
// the game nears its end with the score within one swing of changing
// hands, with traffic in scoring position and a two-out count adding
// pressure on top; every term is weighted by how late it is, so an
// early jam barely registers and a ninth-inning one maxes out.
func calculateLeverage(inning, homeScore, awayScore int, bases model.BaseState, outs int) float64 {
	lateness := float64(inning) / float64(lastInningRegulation)
	if lateness > 1 {
		lateness = 1 // extra innings are all equally late
	}

	margin := homeScore - awayScore
	if margin < 0 {
		margin = -margin
	}
	closeness := 0.0
	if margin <= leverageMaxSwing {
		closeness = float64(leverageMaxSwing-margin) / leverageMaxSwing
	}

	pressure := 0.0
	if bases.Occupied[model.Second] || bases.Occupied[model.Third] {
		pressure += 0.5
	}
	if outs == 2 {
		pressure += 0.25
	}

	return 1 + lateness*(closeness+pressure)
}

package engine

import (
	"fmt"

	"github.com/baseball-sim/matchsim/internal/atbat"
	"github.com/baseball-sim/matchsim/internal/baserunning"
	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/pipeline"
	"github.com/baseball-sim/matchsim/internal/rng"
	"github.com/baseball-sim/matchsim/internal/stadium"
	"github.com/baseball-sim/matchsim/internal/trace"
	"github.com/baseball-sim/matchsim/internal/umpire"
	"github.com/baseball-sim/matchsim/internal/weather"
)

// lastInningRegulation is the inning the game checks for a decided
// game after. Both halves of every inning always play out in full,
// extra innings included, so there is no walk-off early stop.
const lastInningRegulation = 9

// repertoirePenaltyHitBonus is the additive hit-chance bonus the
// batting side gets when the incoming relief pitcher's dominant
// technique matches the one the outgoing pitcher just left the mound
// with, tracked via side.previousPitcherTechniqueID at the
// substitution boundary.
const repertoirePenaltyHitBonus = 2.0

// Extra-fatigue accrual per stressful event, in effective innings.
const (
	extraFatiguePerWalk = 0.1
	extraFatiguePerRun  = 0.15
)

// gameState is one game's full mutable state: both sides, the current
// inning/half/outs/bases, running score, and the trace recorder. A
// gameState is driven one at-bat at a time by step, so the batch Simulate
// and the interactive Initialize/StepAtBat/Finalize forms share exactly
// the same per-at-bat logic.
type gameState struct {
	pack       content.Pack
	archetypes map[string]model.Archetype
	rng        rng.Provider
	rec        *trace.Recorder

	weather weather.Conditions
	park    stadium.ParkFactors
	umpire  umpire.Tendencies
	seed    *int64

	home *side
	away *side

	inning int
	half   model.InningHalf
	outs   int
	bases  model.BaseState

	homeScore int
	awayScore int

	atBatIndex int
	playByPlay []string

	// lastBaserunningBases is resolveBaserunning's working copy of the
	// base state for the play in progress; playOneAtBat copies it back
	// into bases once the sub-simulation settles.
	lastBaserunningBases model.BaseState

	finished bool
	err      error
}

func newGameState(home, away model.Team, opts Options) (*gameState, error) {
	pack, err := opts.pack()
	if err != nil {
		return nil, err
	}
	homeSide, err := newSide(home, pack)
	if err != nil {
		return nil, err
	}
	awaySide, err := newSide(away, pack)
	if err != nil {
		return nil, err
	}

	var rec *trace.Recorder
	if opts.EnableTrace {
		rec = trace.NewRecorder(opts.Seed)
	}

	g := &gameState{
		pack:       pack,
		archetypes: pack.Archetypes,
		rng:        opts.rngProvider(),
		rec:        rec,
		weather:    opts.weather(),
		park:       opts.park(),
		umpire:     opts.umpire(),
		seed:       opts.Seed,
		home:       homeSide,
		away:       awaySide,
		inning:     1,
		half:       model.Top,
	}
	g.beginHalf()
	return g, nil
}

// currentSides returns (offense, defense) for the half-inning in progress.
func (g *gameState) currentSides() (offense, defense *side) {
	if g.half == model.Top {
		return g.away, g.home
	}
	return g.home, g.away
}

func (g *gameState) beginHalf() {
	g.outs = 0
	g.bases = model.BaseState{}
	offense, _ := g.currentSides()
	offense.runsThisHalf = 0
	offense.hitsThisHalf = 0
	if g.rec != nil {
		g.rec.RecordEvent(trace.GameEvent{Kind: trace.EventInningStart, Inning: g.inning, Half: g.half})
	}
}

func (g *gameState) endHalf() {
	offense, defense := g.currentSides()
	if g.rec != nil {
		g.rec.RecordEvent(trace.GameEvent{
			Kind: trace.EventInningEnd, Inning: g.inning, Half: g.half,
			Runs: offense.runsThisHalf, Hits: offense.hitsThisHalf,
		})
	}
	maybeSubstitute(defense, g.inning, g.rec)
}

// advanceHalf closes the half-inning just finished, checks the
// end-of-game condition, and opens the next half (or ends the game).
func (g *gameState) advanceHalf() {
	g.endHalf()

	if g.half == model.Bottom && g.inning >= lastInningRegulation && g.homeScore != g.awayScore {
		g.finished = true
		return
	}

	if g.half == model.Top {
		g.half = model.Bottom
	} else {
		g.half = model.Top
		g.inning++
	}
	g.beginHalf()
}

// step plays exactly one at-bat using the supplied decision, then
// advances the half-inning if that at-bat recorded the third out. This
// is the single code path both Simulate's run() loop and the
// interactive StepAtBat call into.
func (g *gameState) step(decision Decision) {
	if g.finished || g.err != nil {
		return
	}
	offense, defense := g.currentSides()
	g.playOneAtBat(offense, defense, decision)
	if g.err != nil {
		g.finished = true
		return
	}
	if g.outs >= 3 {
		g.advanceHalf()
	}
}

// run drives the game to completion using the default auto policy,
// implementing the batch Simulate entrypoint.
func (g *gameState) run() {
	for !g.finished {
		offense, defense := g.currentSides()
		batterID := offense.team.Lineup[offense.battingIdx]
		decision := AutoPolicy(offense.roster[batterID], defense.currentPitcher())
		g.step(decision)
	}
}

func (g *gameState) playOneAtBat(offense, defense *side, decision Decision) {
	batterSlot := offense.battingIdx
	batterID := offense.team.Lineup[batterSlot]
	offense.battingIdx = (batterSlot + 1) % len(offense.team.Lineup)

	pitcherID := defense.currentPitcherID

	at := &offense.approachTracks[batterSlot]
	if at.count > 0 && at.last == decision.BatterApproach {
		at.count++
	} else {
		at.last = decision.BatterApproach
		at.count = 1
	}
	st := &defense.pitcherStrategy
	if st.count > 0 && st.last == decision.PitchStrategy {
		st.count++
	} else {
		st.last = decision.PitchStrategy
		st.count = 1
	}

	batterCtx := offense.activateAbility(batterID, decision.BatterAbilityID, g.pack)
	pitcherCtx := defense.activateAbility(pitcherID, decision.PitcherAbilityID, g.pack)
	g.warnUnknownAbility(decision.BatterAbilityID)
	g.warnUnknownAbility(decision.PitcherAbilityID)

	batter := offense.roster[batterID]
	pitcher := defense.roster[pitcherID]

	fielders := defense.fielders()
	defenseGlove := pipeline.DefenseGlove(fielders, g.archetypes, batterCtx)

	leverage := calculateLeverage(g.inning, g.homeScore, g.awayScore, g.bases, g.outs)
	extra := buildExtraModifiers(g.weather, g.park, g.umpire, batter.Hand, model.Count{}, leverage)
	extra.HitBonus += repertoirePenalty(defense, pitcher)

	in := atbat.Input{
		Batter:              batter,
		Pitcher:             pitcher,
		Defense:             fielders,
		Archetypes:          g.archetypes,
		InningsPitchedEff:   defense.inningsPitchedEff(),
		RNG:                 g.rng,
		BatterAbility:       batterCtx,
		PitcherAbility:      pitcherCtx,
		BatterPassive:       offense.passives[batterID],
		PitcherPassive:      defense.passives[pitcherID],
		Approach:            decision.BatterApproach,
		Strategy:            decision.PitchStrategy,
		ApproachConsecutive: at.count,
		StrategyConsecutive: st.count,
		OffenseSynergies:    offense.synergies,
		DefenseSynergies:    defense.synergies,
		Extra:               extra,
	}
	res := atbat.Resolve(in)
	if g.rec != nil {
		for _, w := range res.Warnings {
			g.rec.Warn("malformed_ability", w)
		}
	}

	outsBefore := g.outs
	basesBefore := g.bases

	app := applyOutcome(res.Outcome, g.bases, batterID)
	g.bases = app.Bases
	if err := g.bases.Validate(); err != nil {
		g.err = err
		return
	}
	if app.IsOut {
		g.outs++
	}
	if g.outs > 3 {
		g.err = model.NewError(model.InvariantViolation, "playOneAtBat", fmt.Errorf("outs exceeded 3: %d", g.outs))
		return
	}

	runs := app.Runs
	scorers := append([]string(nil), app.Scorers...)

	var tr *trace.AtBatTrace
	if g.rec != nil {
		t := trace.AtBatTrace{
			Index: g.atBatIndex, Inning: g.inning, Half: g.half,
			BatterID: batterID, PitcherID: pitcherID,
			Approach: decision.BatterApproach, Strategy: decision.PitchStrategy,
			ApproachConsecutive: at.count, StrategyConsecutive: st.count,
			AdaptationMultiplier: model.AdaptationMultiplier(at.count),
			BatterAbility:        batterCtx, PitcherAbility: pitcherCtx,
			BatterPassive: offense.passives[batterID], PitcherPassive: defense.passives[pitcherID],
			OutsBefore: outsBefore, BasesBefore: basesBefore,
		}
		t.FromResolverResult(res)
		tr = &t
	}

	if g.outs < 3 && (res.Outcome == model.OutcomeSingle || res.Outcome == model.OutcomeDouble) {
		extraRuns, extraScorers := g.resolveBaserunning(g.bases, defenseGlove, res.Outcome == model.OutcomeSingle, tr)
		runs += extraRuns
		scorers = append(scorers, extraScorers...)
		// resolveBaserunning leaves the post-play bases in
		// g.lastBaserunningBases; adopt them as the new base state.
		g.bases = g.lastBaserunningBases
	}

	if g.half == model.Top {
		g.awayScore += runs
	} else {
		g.homeScore += runs
	}
	offense.runsThisHalf += runs
	if app.IsHit {
		offense.hitsThisHalf++
	}
	defense.runsAllowedInOuting += runs
	if app.IsOut {
		defense.outsByPitcher[pitcherID]++
	}
	// Stressful outings tire a pitcher beyond raw innings: walks and
	// runs allowed feed the extra-fatigue accumulator consumed by
	// inningsPitchedEff.
	if app.IsWalk {
		defense.extraFatigueByPitcher[pitcherID] += extraFatiguePerWalk
	}
	if runs > 0 {
		defense.extraFatigueByPitcher[pitcherID] += extraFatiguePerRun * float64(runs)
	}

	g.updateBoxScore(offense, defense, batterID, pitcherID, batter.Name, pitcher.Name, app, runs, scorers, res.Outcome)

	spiritDeltas := applySpirit(offense, defense, batterID, pitcherID, res.Outcome, runs, len(scorers))

	g.playByPlay = append(g.playByPlay, describePlay(g.inning, g.half, batter.Name, res.Outcome, runs))

	if tr != nil {
		tr.OutsAfter = g.outs
		tr.BasesAfter = g.bases
		tr.RunsScored = runs
		tr.SpiritDeltas = spiritDeltas
		g.rec.RecordAtBat(*tr)
	}

	g.atBatIndex++
}

// resolveBaserunning runs the extra-base sub-simulation for a
// single or double, against the base state already produced by the
// automatic advance table. The 3rd-base runner attempts first (the
// fixed RNG order); on a single the 2nd-base runner attempts next if
// 3rd ends up unoccupied, while on a double the runner now on 2nd is
// the batter and never pushes further. A runner thrown out ends the
// play immediately (no further attempts that play) and does not add
// to the game's out count, only removes the runner.
func (g *gameState) resolveBaserunning(bases model.BaseState, defenseGlove float64, secondEligible bool, tr *trace.AtBatTrace) (int, []string) {
	g.lastBaserunningBases = bases
	runs := 0
	var scorers []string

	tryAdvance := func(from model.Base) bool {
		if !g.lastBaserunningBases.Occupied[from] {
			return true // nothing to attempt, not a stop condition
		}
		runnerID := g.lastBaserunningBases.RunnerID[from]
		speed := pipeline.Speed(g.currentOffense().roster[runnerID], g.archetypes)
		a := baserunning.Resolve(g.rng, runnerID, speed, defenseGlove, g.outs == 2)
		if tr != nil {
			tr.AddExtraBaseAttempt(baseLabel(from), a)
		}
		if !a.Attempted {
			return true
		}
		g.lastBaserunningBases.Clear(from)
		if !a.Safe {
			return false // thrown out: stop further attempts on this play
		}
		if from == model.Third {
			runs++
			scorers = append(scorers, runnerID)
		} else {
			g.lastBaserunningBases.Place(from+1, runnerID)
		}
		return true
	}

	if !tryAdvance(model.Third) {
		return runs, scorers
	}
	if secondEligible && !g.lastBaserunningBases.Occupied[model.Third] {
		tryAdvance(model.Second)
	}

	return runs, scorers
}

// warnUnknownAbility records a trace warning when a decision named an
// ability id the content pack doesn't know; the activation itself was
// already treated as a no-op.
func (g *gameState) warnUnknownAbility(abilityID string) {
	if g.rec == nil || abilityID == "" {
		return
	}
	if _, ok := g.pack.AbilityByID(abilityID); !ok {
		g.rec.Warn("unknown_ability", "unknown ability id "+abilityID+" treated as no-op")
	}
}

func baseLabel(b model.Base) string {
	switch b {
	case model.First:
		return "first"
	case model.Second:
		return "second"
	case model.Third:
		return "third"
	default:
		return "unknown"
	}
}

func (g *gameState) currentOffense() *side {
	offense, _ := g.currentSides()
	return offense
}

func repertoirePenalty(defense *side, pitcher model.Player) float64 {
	if defense.previousPitcherTechniqueID == "" {
		return 0
	}
	if primaryTechniqueID(pitcher) == defense.previousPitcherTechniqueID {
		return repertoirePenaltyHitBonus
	}
	return 0
}

func describePlay(inning int, half model.InningHalf, batterName string, outcome model.Outcome, runs int) string {
	halfWord := "Top"
	if half == model.Bottom {
		halfWord = "Bottom"
	}
	if runs > 0 {
		return fmt.Sprintf("%s %d: %s %s, %d run(s) score.", halfWord, inning, batterName, outcomeVerb(outcome), runs)
	}
	return fmt.Sprintf("%s %d: %s %s.", halfWord, inning, batterName, outcomeVerb(outcome))
}

func outcomeVerb(outcome model.Outcome) string {
	switch outcome {
	case model.OutcomeStrikeout:
		return "strikes out"
	case model.OutcomeWalk:
		return "walks"
	case model.OutcomeSingle:
		return "singles"
	case model.OutcomeDouble:
		return "doubles"
	case model.OutcomeTriple:
		return "triples"
	case model.OutcomeHomerun:
		return "homers"
	case model.OutcomeGroundout:
		return "grounds out"
	case model.OutcomeFlyout:
		return "flies out"
	case model.OutcomeLineout:
		return "lines out"
	case model.OutcomePopout:
		return "pops out"
	default:
		return "is retired"
	}
}

func (g *gameState) updateBoxScore(offense, defense *side, batterID, pitcherID, batterName, pitcherName string, app outcomeApplication, runs int, scorers []string, outcome model.Outcome) {
	bl := battingLine(&offense.box, batterID, batterName)
	bl.PA++
	if app.IsAtBat {
		bl.AB++
	}
	if app.IsWalk {
		bl.BB++
	}
	if app.IsStrikeout {
		bl.K++
	}
	switch outcome {
	case model.OutcomeSingle:
		bl.H++
	case model.OutcomeDouble:
		bl.H++
		bl.Doubles++
	case model.OutcomeTriple:
		bl.H++
		bl.Triples++
	case model.OutcomeHomerun:
		bl.H++
		bl.HR++
	}
	bl.RBI += runs

	for _, id := range scorers {
		line := battingLine(&offense.box, id, offense.roster[id].Name)
		line.R++
	}

	pl := pitchingLine(&defense.box, pitcherID, pitcherName)
	pl.BF++
	if app.IsOut {
		pl.OutsRecorded++
	}
	if app.IsStrikeout {
		pl.K++
	}
	if app.IsWalk {
		pl.BB++
	}
	switch outcome {
	case model.OutcomeSingle, model.OutcomeDouble, model.OutcomeTriple:
		pl.H++
	case model.OutcomeHomerun:
		pl.H++
		pl.HR++
	}
	pl.R += runs
	pl.ER += runs
}

func battingLine(box *TeamBox, id, name string) *BattingLine {
	line, ok := box.Batting[id]
	if !ok {
		line = &BattingLine{PlayerID: id, Name: name}
		box.Batting[id] = line
	}
	return line
}

func pitchingLine(box *TeamBox, id, name string) *PitchingLine {
	line, ok := box.Pitching[id]
	if !ok {
		line = &PitchingLine{PlayerID: id, Name: name}
		box.Pitching[id] = line
	}
	return line
}

// finish assembles the MatchResult from the current game state,
// deriving rate stats on every box-score line and building the trace
// log if one was recorded. Home is treated as the simulating caller's
// own team (MyRuns/OpponentRuns), matching how Simulate's (home, away)
// argument order is documented.
func (g *gameState) finish() MatchResult {
	for _, l := range g.home.box.Batting {
		l.Derive()
	}
	for _, l := range g.away.box.Batting {
		l.Derive()
	}
	for _, l := range g.home.box.Pitching {
		l.Derive()
	}
	for _, l := range g.away.box.Pitching {
		l.Derive()
	}

	result := MatchResult{
		MyRuns:       g.homeScore,
		OpponentRuns: g.awayScore,
		IsWin:        g.homeScore > g.awayScore,
		TotalInnings: g.inning,
		BoxScore:     BoxScore{Home: g.home.box, Away: g.away.box},
		PlayByPlay:   g.playByPlay,
	}

	if g.rec != nil {
		log := g.rec.Build(trace.Score{Home: g.homeScore, Away: g.awayScore}, g.inning)
		result.TraceLog = &log
	}

	return result
}

// Simulate runs one full game to completion using the default auto
// policy and returns its result. home
// is the simulating caller's own team; away is the opponent.
func Simulate(home, away model.Team, opts Options) (MatchResult, error) {
	g, err := newGameState(home, away, opts)
	if err != nil {
		return MatchResult{}, err
	}
	g.run()
	result := g.finish()
	if g.err != nil {
		return result, g.err
	}
	return result, nil
}

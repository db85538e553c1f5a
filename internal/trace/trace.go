// Package trace implements the structured trace log: a scoped
// sink active for the duration of one simulate call, recording every
// RNG roll, stat-pipeline snapshot, resolution branch, and baserunning
// attempt for later replay or debugging. The recorded JSON shape is an
// external contract: the in-game trace viewer and headless
// harnesses consume it, so field names are stable across refactors and
// a breaking change bumps Version.
package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/baseball-sim/matchsim/internal/atbat"
	"github.com/baseball-sim/matchsim/internal/baserunning"
	"github.com/baseball-sim/matchsim/internal/model"
)

// Version is the GameTraceLog schema version. Bump on breaking changes
// to the exported JSON shape.
const Version = 1

// BatterPipelineSnapshot stages the batter side's layered stat
// emissions for one at-bat: each field is the clamped output of one
// stat-pipeline layer. All fields are zero when resolution never
// reached the normal stat-based branch.
type BatterPipelineSnapshot struct {
	Base       model.BatterStats `json:"base"`
	Techniques model.BatterStats `json:"techniques"`
	Equipment  model.BatterStats `json:"equipment"`
	Synergies  model.BatterStats `json:"synergies"`
	Approach   model.BatterStats `json:"approach"`
	Ability    model.BatterStats `json:"ability"`
	Effective  model.BatterStats `json:"effective"`
}

// PitcherPipelineSnapshot is the pitching-side equivalent, including
// the fatigue layer and its multiplier.
type PitcherPipelineSnapshot struct {
	Base              model.PitcherStats `json:"base"`
	Techniques        model.PitcherStats `json:"techniques"`
	Equipment         model.PitcherStats `json:"equipment"`
	Synergies         model.PitcherStats `json:"synergies"`
	FatigueMultiplier float64            `json:"fatigueMultiplier"`
	Fatigue           model.PitcherStats `json:"fatigue"`
	Strategy          model.PitcherStats `json:"strategy"`
	Ability           model.PitcherStats `json:"ability"`
	Effective         model.PitcherStats `json:"effective"`
}

// RollRecord is one recorded RNG draw, re-exported from atbat.Roll's
// shape so the trace package doesn't need callers to hand-convert.
type RollRecord struct {
	Label     string  `json:"label"`
	Raw       float64 `json:"raw"`
	Scaled    float64 `json:"scaled"`
	Threshold float64 `json:"threshold,omitempty"`
	Passed    bool    `json:"passed,omitempty"`
}

func rollsFrom(rolls []atbat.Roll) []RollRecord {
	out := make([]RollRecord, len(rolls))
	for i, r := range rolls {
		out[i] = RollRecord{Label: r.Label, Raw: r.Raw, Scaled: r.Scaled, Threshold: r.Threshold, Passed: r.Passed}
	}
	return out
}

// Resolution is the tagged-variant resolution branch record. The
// clash fields carry the two power-weighted contest rolls and are zero
// on every other branch.
type Resolution struct {
	Branch            string        `json:"branch"` // "clash" | "guaranteed_batter" | "guaranteed_pitcher" | "normal"
	ClashWinnerBatter bool          `json:"clashWinnerBatter,omitempty"`
	ClashBatterRoll   float64       `json:"clashBatterRoll,omitempty"`
	ClashPitcherRoll  float64       `json:"clashPitcherRoll,omitempty"`
	Outcome           model.Outcome `json:"outcome"`
}

func branchName(b atbat.Branch) string {
	switch b {
	case atbat.BranchClash:
		return "clash"
	case atbat.BranchGuaranteedBatter:
		return "guaranteed_batter"
	case atbat.BranchGuaranteedPitcher:
		return "guaranteed_pitcher"
	default:
		return "normal"
	}
}

// ExtraBaseAttempt is one logged baserunning attempt (taken or
// declined).
type ExtraBaseAttempt struct {
	RunnerID      string  `json:"runnerId"`
	FromBase      string  `json:"fromBase"`
	AttemptChance float64 `json:"attemptChance"`
	AttemptRoll   float64 `json:"attemptRoll"`
	Attempted     bool    `json:"attempted"`
	SuccessChance float64 `json:"successChance,omitempty"`
	SuccessRoll   float64 `json:"successRoll,omitempty"`
	Safe          bool    `json:"safe,omitempty"`
}

func extraBaseFrom(fromBase string, a baserunning.Attempt) ExtraBaseAttempt {
	return ExtraBaseAttempt{
		RunnerID:      a.RunnerID,
		FromBase:      fromBase,
		AttemptChance: a.AttemptChance,
		AttemptRoll:   a.AttemptRoll,
		Attempted:     a.Attempted,
		SuccessChance: a.SuccessChance,
		SuccessRoll:   a.SuccessRoll,
		Safe:          a.Safe,
	}
}

// SpiritDelta records one player's or team's spirit change for the
// at-bat.
type SpiritDelta struct {
	PlayerID string `json:"playerId"`
	Delta    int    `json:"delta"`
}

// AtBatTrace is one play's full audit.
type AtBatTrace struct {
	Index   int             `json:"index"`
	Inning  int             `json:"inning"`
	Half    model.InningHalf `json:"half"`
	BatterID  string        `json:"batterId"`
	PitcherID string        `json:"pitcherId"`

	Approach            model.Approach `json:"approach"`
	Strategy            model.Strategy `json:"strategy"`
	ApproachConsecutive int            `json:"approachConsecutive"`
	StrategyConsecutive int            `json:"strategyConsecutive"`
	AdaptationMultiplier float64       `json:"adaptationMultiplier"`

	BatterPipeline  BatterPipelineSnapshot  `json:"batterPipeline"`
	PitcherPipeline PitcherPipelineSnapshot `json:"pitcherPipeline"`
	DefenseGlove    float64                 `json:"defenseGlove"`

	BatterAbility  *model.ActiveAbilityContext `json:"batterAbility,omitempty"`
	PitcherAbility *model.ActiveAbilityContext `json:"pitcherAbility,omitempty"`
	BatterPassive  model.ActiveAbilityContext  `json:"batterPassive"`
	PitcherPassive model.ActiveAbilityContext  `json:"pitcherPassive"`

	Resolution Resolution   `json:"resolution"`
	Rolls      []RollRecord `json:"rolls"`

	ExtraBaseAttempts []ExtraBaseAttempt `json:"extraBaseAttempts,omitempty"`

	SpiritDeltas []SpiritDelta `json:"spiritDeltas,omitempty"`

	OutsBefore  int             `json:"outsBefore"`
	OutsAfter   int             `json:"outsAfter"`
	BasesBefore model.BaseState `json:"basesBefore"`
	BasesAfter  model.BaseState `json:"basesAfter"`

	RunsScored int `json:"runsScored"`
}

// FromResolverResult fills in the resolution/rolls/pipeline portion of
// an AtBatTrace from an atbat.Result.
func (t *AtBatTrace) FromResolverResult(res atbat.Result) {
	t.Resolution = Resolution{
		Branch:            branchName(res.Branch),
		ClashWinnerBatter: res.ClashWinnerBatter,
		ClashBatterRoll:   res.ClashBatterRoll,
		ClashPitcherRoll:  res.ClashPitcherRoll,
		Outcome:           res.Outcome,
	}
	t.Rolls = rollsFrom(res.Rolls)
	t.BatterPipeline = BatterPipelineSnapshot{
		Base:       res.BatterLayers.Base,
		Techniques: res.BatterLayers.Techniques,
		Equipment:  res.BatterLayers.Equipment,
		Synergies:  res.BatterLayers.Synergies,
		Approach:   res.BatterLayers.Approach,
		Ability:    res.BatterLayers.Ability,
		Effective:  res.EffectiveBatter,
	}
	t.PitcherPipeline = PitcherPipelineSnapshot{
		Base:              res.PitcherLayers.Base,
		Techniques:        res.PitcherLayers.Techniques,
		Equipment:         res.PitcherLayers.Equipment,
		Synergies:         res.PitcherLayers.Synergies,
		FatigueMultiplier: res.PitcherLayers.FatigueMultiplier,
		Fatigue:           res.PitcherLayers.Fatigue,
		Strategy:          res.PitcherLayers.Strategy,
		Ability:           res.PitcherLayers.Ability,
		Effective:         res.EffectivePitcher,
	}
	t.DefenseGlove = res.DefenseGlove
}

// AddExtraBaseAttempt appends one baserunning attempt record.
func (t *AtBatTrace) AddExtraBaseAttempt(fromBase string, a baserunning.Attempt) {
	t.ExtraBaseAttempts = append(t.ExtraBaseAttempts, extraBaseFrom(fromBase, a))
}

// GameEventKind tags the parallel game-level event list.
type GameEventKind string

const (
	EventInningStart    GameEventKind = "inning_start"
	EventInningEnd      GameEventKind = "inning_end"
	EventPitcherChange  GameEventKind = "pitcher_change"
)

// GameEvent is one inning/substitution event, appended to the trace's
// parallel event list.
type GameEvent struct {
	Kind GameEventKind `json:"kind"`
	Inning int          `json:"inning"`
	Half   model.InningHalf `json:"half,omitempty"`

	// inning_end fields.
	Runs int `json:"runs,omitempty"`
	Hits int `json:"hits,omitempty"`

	// pitcher_change fields.
	Team       string `json:"team,omitempty"`
	OldPitcher string `json:"oldPitcher,omitempty"`
	NewPitcher string `json:"newPitcher,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Warning is one recovered anomaly: a malformed guaranteed-outcome
// distribution or an unknown ability id, logged here instead of
// failing the simulation.
type Warning struct {
	Kind    string `json:"kind"` // "malformed_ability" | "unknown_ability"
	Message string `json:"message"`
}

// Score is the final score recorded on the trace log.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameTraceLog is the whole-game audit.
type GameTraceLog struct {
	Version      int          `json:"version"`
	RunID        string       `json:"runId"`
	Timestamp    time.Time    `json:"timestamp"`
	Seed         *int64       `json:"seed,omitempty"`
	AtBats       []AtBatTrace `json:"atBats"`
	Events       []GameEvent  `json:"events"`
	Warnings     []Warning    `json:"warnings,omitempty"`
	FinalScore   Score        `json:"finalScore"`
	TotalInnings int          `json:"totalInnings"`
}

// Recorder is the single scoped sink active for one simulate call,
// not a parameter plumbed through every function. The game
// loop holds one Recorder for the duration of a game and appends to it
// directly; it is not safe for concurrent use by more than one game.
type Recorder struct {
	seed     *int64
	atBats   []AtBatTrace
	events   []GameEvent
	warnings []Warning
	runID    string
}

// NewRecorder constructs a Recorder for one simulate call. seed may be
// nil when the caller used a non-seeded RNG.
func NewRecorder(seed *int64) *Recorder {
	return &Recorder{seed: seed, runID: uuid.NewString()}
}

// RecordAtBat appends one at-bat's trace.
func (r *Recorder) RecordAtBat(t AtBatTrace) {
	r.atBats = append(r.atBats, t)
}

// RecordEvent appends one game-level event.
func (r *Recorder) RecordEvent(e GameEvent) {
	r.events = append(r.events, e)
}

// Warn appends one recovered anomaly.
func (r *Recorder) Warn(kind, message string) {
	r.warnings = append(r.warnings, Warning{Kind: kind, Message: message})
}

// Build finalizes the recorder into an exportable GameTraceLog.
func (r *Recorder) Build(finalScore Score, totalInnings int) GameTraceLog {
	return GameTraceLog{
		Version:      Version,
		RunID:        r.runID,
		Timestamp:    time.Now(),
		Seed:         r.seed,
		AtBats:       r.atBats,
		Events:       r.events,
		Warnings:     r.warnings,
		FinalScore:   finalScore,
		TotalInnings: totalInnings,
	}
}

package engine

import (
	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
	"github.com/baseball-sim/matchsim/internal/pipeline"
	"github.com/baseball-sim/matchsim/internal/synergy"
)

// side is one team's full per-game mutable state: a local roster copy,
// lineup/rotation position, the current pitcher's fatigue and outing
// counters, consecutive-choice tracks, each player's merged passive
// bundle, and the box-score lines the game loop fills in as it goes.
type side struct {
	team model.Team

	// roster holds per-game mutable copies (spirit, nothing else
	// mutates) keyed by player id. Rosters passed into Simulate are
	// never mutated directly.
	roster map[string]model.Player

	battingIdx  int
	rotationIdx int

	currentPitcherID string

	// outsByPitcher and extraFatigueByPitcher persist per pitcher for
	// the whole game, across any re-entry;
	// runsAllowedInOuting is an outing stat and resets on substitution.
	outsByPitcher         map[string]int
	extraFatigueByPitcher map[string]float64
	runsAllowedInOuting   int
	pitcherStrategy       strategyTrack

	// previousPitcherTechniqueID is the dominant technique id of the
	// last pitcher this side pulled, consulted for the `repertoire`
	// penalty.
	previousPitcherTechniqueID string

	approachTracks []approachTrack // one per lineup slot

	passives  map[string]model.ActiveAbilityContext
	synergies model.Synergies

	box TeamBox

	runsThisHalf int
	hitsThisHalf int
}

func newSide(team model.Team, pack content.Pack) (*side, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}

	roster := make(map[string]model.Player, len(team.Roster))
	for _, p := range team.Roster {
		roster[p.ID] = p.Clone()
	}

	passives := make(map[string]model.ActiveAbilityContext, len(roster))
	for id, p := range roster {
		passives[id] = pipeline.BuildPassiveBundle(p, pack)
	}

	lineupPlayers := make([]model.Player, 0, len(team.Lineup))
	for _, id := range team.Lineup {
		lineupPlayers = append(lineupPlayers, roster[id])
	}

	return &side{
		team:                  team,
		roster:                roster,
		currentPitcherID:      team.Rotation[0],
		outsByPitcher:         make(map[string]int, len(team.Rotation)),
		extraFatigueByPitcher: make(map[string]float64, len(team.Rotation)),
		approachTracks:        make([]approachTrack, len(team.Lineup)),
		passives:              passives,
		synergies:             synergy.Calculate(lineupPlayers, pack),
		box:                   newTeamBox(),
	}, nil
}

// inningsPitchedEff is the current pitcher's fractional innings pitched
// plus the accumulated extra-fatigue term.
func (s *side) inningsPitchedEff() float64 {
	return float64(s.outsByPitcher[s.currentPitcherID])/3.0 + s.extraFatigueByPitcher[s.currentPitcherID]
}

// fielders returns the nine players this side has on defense. This
// engine models one lineup of position players who both bat and field.
func (s *side) fielders() []model.Player {
	out := make([]model.Player, 0, len(s.team.Lineup))
	for _, id := range s.team.Lineup {
		out = append(out, s.roster[id])
	}
	return out
}

func (s *side) currentPitcher() model.Player {
	return s.roster[s.currentPitcherID]
}

// activateAbility resolves one requested active-ability id against the
// player's owned techniques and spirit:
// an unknown id, an id the player doesn't own, a passive ability, an
// unmet archetype requirement, or insufficient spirit are all treated
// as a no-op rather than a failure.
// Returns nil when nothing activates.
func (s *side) activateAbility(playerID, abilityID string, pack content.Pack) *model.ActiveAbilityContext {
	if abilityID == "" {
		return nil
	}
	player, ok := s.roster[playerID]
	if !ok {
		return nil
	}
	if !player.HasTechnique(abilityID) {
		return nil
	}
	ability, ok := pack.AbilityByID(abilityID)
	if !ok || ability.IsPassive {
		return nil
	}
	if ability.RequiredArchetype != "" && ability.RequiredArchetype != player.ArchetypeID {
		return nil
	}
	if !player.Spirit.CanActivate(ability.SpiritCost) {
		return nil
	}
	player.Spirit = player.Spirit.Spend(ability.SpiritCost)
	s.roster[playerID] = player
	return &model.ActiveAbilityContext{PlayerID: playerID, AbilityID: ability.ID, Effects: ability.Effects}
}

// primaryTechniqueID returns the player's first owned technique id, the
// "dominant" technique this engine uses for the repertoire-penalty
// lookup. Returns "" for a player with no techniques.
func primaryTechniqueID(p model.Player) string {
	if len(p.Techniques) == 0 {
		return ""
	}
	return p.Techniques[0].AbilityID
}

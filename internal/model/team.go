package model

// Team is a lineup plus bench, the engine's input-only roster shape.
type Team struct {
	ID       string
	Name     string
	Color    string
	Roster   []Player // bench + lineup, identity source of truth
	Lineup   []string // batter player ids, in batting order
	Rotation []string // starter then relievers, in entry order
}

// PlayerByID looks up a roster member by id.
func (t Team) PlayerByID(id string) (Player, bool) {
	for _, p := range t.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Validate checks that the team can field a lineup and at least one
// pitcher, returning an InvalidRoster error otherwise.
func (t Team) Validate() error {
	if len(t.Lineup) == 0 {
		return NewError(InvalidRoster, "Team.Validate", errNoLineup(t.ID))
	}
	if len(t.Rotation) == 0 {
		return NewError(InvalidRoster, "Team.Validate", errNoPitcher(t.ID))
	}
	for _, id := range t.Lineup {
		if _, ok := t.PlayerByID(id); !ok {
			return NewError(InvalidRoster, "Team.Validate", errMissingPlayer(t.ID, id))
		}
	}
	for _, id := range t.Rotation {
		if _, ok := t.PlayerByID(id); !ok {
			return NewError(InvalidRoster, "Team.Validate", errMissingPlayer(t.ID, id))
		}
	}
	return nil
}

type rosterError struct{ msg string }

func (e rosterError) Error() string { return e.msg }

func errNoLineup(teamID string) error {
	return rosterError{"team " + teamID + " has no batting lineup"}
}

func errNoPitcher(teamID string) error {
	return rosterError{"team " + teamID + " has no pitcher in its rotation"}
}

func errMissingPlayer(teamID, playerID string) error {
	return rosterError{"team " + teamID + " lineup/rotation references unknown player " + playerID}
}

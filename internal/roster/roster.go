// Package roster loads Team/Player rosters from YAML, the same
// external-data convention internal/content uses for the rest of the
// game's static content. Two sample rosters ship embedded so the CLI
// harness runs out of the box without a roster file on disk; real
// matchups load their own team files with Load.
package roster

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/baseball-sim/matchsim/internal/content"
	"github.com/baseball-sim/matchsim/internal/model"
)

//go:embed data/*.yaml
var sampleData embed.FS

type rawTechnique struct {
	AbilityID string `yaml:"ability_id"`
	Rank      int    `yaml:"rank"`
}

type rawPlayer struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Role        string         `yaml:"role"`
	Hand        string         `yaml:"hand"`
	ArchetypeID string         `yaml:"archetype_id,omitempty"`
	BatterBase  model.BatterStats  `yaml:"batter_base,omitempty"`
	PitcherBase model.PitcherStats `yaml:"pitcher_base,omitempty"`
	Techniques  []rawTechnique `yaml:"techniques,omitempty"`
	Equipment   []string       `yaml:"equipment,omitempty"`
	Traits      []string       `yaml:"traits,omitempty"`
	Level       int            `yaml:"level"`
}

type rawTeam struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Color    string      `yaml:"color"`
	Roster   []rawPlayer `yaml:"roster"`
	Lineup   []string    `yaml:"lineup"`
	Rotation []string    `yaml:"rotation"`
}

func (r rawPlayer) toModel(pack content.Pack) model.Player {
	level := r.Level
	if level < 1 {
		level = 1
	}
	maxSpirit := model.MaxSpiritForLevel(level)

	p := model.Player{
		ID:          r.ID,
		Name:        r.Name,
		Role:        model.Role(r.Role),
		Hand:        r.Hand,
		ArchetypeID: r.ArchetypeID,
		BatterBase:  r.BatterBase,
		PitcherBase: r.PitcherBase,
		Level:       level,
		Spirit:      model.Spirit{Current: maxSpirit, Max: maxSpirit},
	}
	for _, t := range r.Techniques {
		p.Techniques = append(p.Techniques, model.Technique{AbilityID: t.AbilityID, Rank: t.Rank})
	}
	for _, t := range r.Traits {
		p.Traits = append(p.Traits, model.Trait(t))
	}
	for i, eqID := range r.Equipment {
		if eqID == "" || i >= len(p.Equipment) {
			continue
		}
		if eq, ok := pack.Equipment[eqID]; ok {
			eqCopy := eq
			p.Equipment[i] = &eqCopy
		}
	}
	return p
}

func (r rawTeam) toModel(pack content.Pack) model.Team {
	team := model.Team{
		ID:       r.ID,
		Name:     r.Name,
		Color:    r.Color,
		Lineup:   r.Lineup,
		Rotation: r.Rotation,
	}
	for _, rp := range r.Roster {
		team.Roster = append(team.Roster, rp.toModel(pack))
	}
	return team
}

// Load reads a team from a YAML file on disk, resolving archetype_id and
// equipment ids against the supplied content pack.
func Load(path string, pack content.Pack) (model.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Team{}, fmt.Errorf("roster: reading %s: %w", path, err)
	}
	var raw rawTeam
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return model.Team{}, fmt.Errorf("roster: parsing %s: %w", path, err)
	}
	return raw.toModel(pack), nil
}

// SampleHome and SampleAway return the two embedded demonstration
// rosters the CLI harness falls back to when --home/--away are omitted.
func SampleHome(pack content.Pack) (model.Team, error) { return loadEmbedded("home.yaml", pack) }
func SampleAway(pack content.Pack) (model.Team, error) { return loadEmbedded("away.yaml", pack) }

func loadEmbedded(name string, pack content.Pack) (model.Team, error) {
	data, err := fs.ReadFile(sampleData, "data/"+name)
	if err != nil {
		return model.Team{}, fmt.Errorf("roster: reading embedded %s: %w", name, err)
	}
	var raw rawTeam
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return model.Team{}, fmt.Errorf("roster: parsing embedded %s: %w", name, err)
	}
	return raw.toModel(pack), nil
}

// Package content loads the engine's static game data (archetypes,
// abilities, equipment, and synergy rules) from a YAML content pack.
// A default pack is embedded so the engine runs out of the box;
// callers may supply an overriding pack directory.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/baseball-sim/matchsim/internal/model"
)

//go:embed data/*.yaml
var defaultData embed.FS

// rawEffect is the YAML-friendly shape of model.AbilityEffect. Kind is
// a string tag rather than the model's int enum so the YAML stays
// human-editable.
type rawEffect struct {
	Kind        string           `yaml:"kind"`
	Stat        string           `yaml:"stat,omitempty"`
	Delta       float64          `yaml:"delta,omitempty"`
	Bucket      string           `yaml:"bucket,omitempty"`
	BucketDelta float64          `yaml:"bucket_delta,omitempty"`
	Side        string           `yaml:"side,omitempty"`
	GloveDelta  float64          `yaml:"glove_delta,omitempty"`
	Chances     []rawChance      `yaml:"chances,omitempty"`
}

type rawChance struct {
	Outcome string  `yaml:"outcome"`
	Chance  float64 `yaml:"chance"`
}

func (r rawEffect) toModel() (model.AbilityEffect, error) {
	switch r.Kind {
	case "stat_modifier":
		return model.AbilityEffect{Kind: model.StatModifier, Stat: model.StatField(r.Stat), Delta: r.Delta}, nil
	case "outcome_modifier":
		side := model.SideOffense
		if r.Side == "defense" {
			side = model.SideDefense
		}
		return model.AbilityEffect{Kind: model.OutcomeModifier, Bucket: model.OutcomeBucket(r.Bucket), BucketDelta: r.BucketDelta, AppliesToSide: side}, nil
	case "guaranteed_outcome":
		chances := make([]model.OutcomeChance, len(r.Chances))
		for i, c := range r.Chances {
			chances[i] = model.OutcomeChance{Outcome: model.Outcome(c.Outcome), Chance: c.Chance}
		}
		return model.AbilityEffect{Kind: model.GuaranteedOutcome, Chances: chances}, nil
	case "defensive_boost":
		return model.AbilityEffect{Kind: model.DefensiveBoost, GloveDelta: r.GloveDelta}, nil
	default:
		return model.AbilityEffect{}, fmt.Errorf("content: unknown effect kind %q", r.Kind)
	}
}

type rawAbility struct {
	ID                string      `yaml:"id"`
	Name              string      `yaml:"name"`
	IsPassive         bool        `yaml:"is_passive"`
	SpiritCost        int         `yaml:"spirit_cost"`
	RequiredArchetype string      `yaml:"required_archetype,omitempty"`
	Effects           []rawEffect `yaml:"effects"`
}

type abilitiesFile struct {
	Abilities []rawAbility `yaml:"abilities"`
}

type archetypesFile struct {
	Archetypes []model.Archetype `yaml:"archetypes"`
}

type equipmentFile struct {
	Equipment []model.Equipment `yaml:"equipment"`
}

type rawSingleTraitSynergy struct {
	Trait   string      `yaml:"trait"`
	Tier    string      `yaml:"tier"`
	Effects []rawEffect `yaml:"effects"`
}

type rawComboRequirement struct {
	Trait    string `yaml:"trait"`
	MinCount int    `yaml:"min_count"`
}

type rawComboSynergy struct {
	ID           string                `yaml:"id"`
	Requirements []rawComboRequirement `yaml:"requirements"`
	Effects      []rawEffect           `yaml:"effects"`
}

type synergiesFile struct {
	SingleTrait []rawSingleTraitSynergy `yaml:"single_trait"`
	Combo       []rawComboSynergy       `yaml:"combo"`
}

// Pack is the fully parsed, engine-ready content pack.
type Pack struct {
	Archetypes           map[string]model.Archetype
	Abilities             map[string]model.Ability
	Equipment             map[string]model.Equipment
	SingleTraitSynergies []model.SingleTraitSynergy
	ComboSynergies       []model.ComboSynergy
}

// AbilityByID looks up an ability, returning (zero, false) if unknown;
// callers treat unknown ability ids as no-ops, not as errors.
func (p Pack) AbilityByID(id string) (model.Ability, bool) {
	a, ok := p.Abilities[id]
	return a, ok
}

func parseYAML[T any](data []byte) (T, error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

func buildPack(abilitiesRaw abilitiesFile, archetypesRaw archetypesFile, equipmentRaw equipmentFile, synergiesRaw synergiesFile) (Pack, error) {
	pack := Pack{
		Archetypes: make(map[string]model.Archetype, len(archetypesRaw.Archetypes)),
		Abilities:  make(map[string]model.Ability, len(abilitiesRaw.Abilities)),
		Equipment:  make(map[string]model.Equipment, len(equipmentRaw.Equipment)),
	}
	for _, a := range archetypesRaw.Archetypes {
		pack.Archetypes[a.ID] = a
	}
	for _, e := range equipmentRaw.Equipment {
		pack.Equipment[e.ID] = e
	}
	for _, ra := range abilitiesRaw.Abilities {
		effects := make([]model.AbilityEffect, 0, len(ra.Effects))
		for _, re := range ra.Effects {
			eff, err := re.toModel()
			if err != nil {
				return Pack{}, fmt.Errorf("content: ability %q: %w", ra.ID, err)
			}
			effects = append(effects, eff)
		}
		pack.Abilities[ra.ID] = model.Ability{
			ID:                ra.ID,
			Name:              ra.Name,
			IsPassive:         ra.IsPassive,
			SpiritCost:        ra.SpiritCost,
			RequiredArchetype: ra.RequiredArchetype,
			Effects:           effects,
		}
	}
	for _, rs := range synergiesRaw.SingleTrait {
		effects, err := convertEffects(rs.Effects)
		if err != nil {
			return Pack{}, fmt.Errorf("content: single-trait synergy %s/%s: %w", rs.Trait, rs.Tier, err)
		}
		pack.SingleTraitSynergies = append(pack.SingleTraitSynergies, model.SingleTraitSynergy{
			Trait:   model.Trait(rs.Trait),
			Tier:    model.SynergyTier(rs.Tier),
			Effects: effects,
		})
	}
	for _, rc := range synergiesRaw.Combo {
		effects, err := convertEffects(rc.Effects)
		if err != nil {
			return Pack{}, fmt.Errorf("content: combo synergy %s: %w", rc.ID, err)
		}
		reqs := make([]model.ComboRequirement, len(rc.Requirements))
		for i, r := range rc.Requirements {
			reqs[i] = model.ComboRequirement{Trait: model.Trait(r.Trait), MinCount: r.MinCount}
		}
		pack.ComboSynergies = append(pack.ComboSynergies, model.ComboSynergy{
			ID:           rc.ID,
			Requirements: reqs,
			Effects:      effects,
		})
	}
	return pack, nil
}

func convertEffects(raw []rawEffect) ([]model.AbilityEffect, error) {
	out := make([]model.AbilityEffect, 0, len(raw))
	for _, r := range raw {
		eff, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, eff)
	}
	return out, nil
}

// Default loads the engine's embedded default content pack.
func Default() (Pack, error) {
	return loadFS(defaultData, "data")
}

// LoadDir loads a content pack from an on-disk directory, overriding the
// embedded default. The directory must contain abilities.yaml,
// archetypes.yaml, equipment.yaml, and synergies.yaml.
func LoadDir(dir string) (Pack, error) {
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, root string) (Pack, error) {
	abilitiesRaw, err := readYAML[abilitiesFile](fsys, root, "abilities.yaml")
	if err != nil {
		return Pack{}, err
	}
	archetypesRaw, err := readYAML[archetypesFile](fsys, root, "archetypes.yaml")
	if err != nil {
		return Pack{}, err
	}
	equipmentRaw, err := readYAML[equipmentFile](fsys, root, "equipment.yaml")
	if err != nil {
		return Pack{}, err
	}
	synergiesRaw, err := readYAML[synergiesFile](fsys, root, "synergies.yaml")
	if err != nil {
		return Pack{}, err
	}
	return buildPack(abilitiesRaw, archetypesRaw, equipmentRaw, synergiesRaw)
}

func readYAML[T any](fsys fs.FS, root, name string) (T, error) {
	var zero T
	data, err := fs.ReadFile(fsys, join(root, name))
	if err != nil {
		return zero, fmt.Errorf("content: reading %s: %w", name, err)
	}
	return parseYAML[T](data)
}

func join(root, name string) string {
	if root == "." || root == "" {
		return name
	}
	return root + "/" + name
}

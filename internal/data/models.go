package data

import (
	"fmt"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"gopkg.in/yaml.v3"
)

// Stamina accepts either a single value or one value per summoned minion.
type Stamina []int

func (s *Stamina) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return err
		}
		*s = Stamina{n}
	case yaml.SequenceNode:
		var ns []int
		if err := value.Decode(&ns); err != nil {
			return err
		}
		*s = ns
	default:
		return fmt.Errorf("line %d: stamina must be a number or a list of numbers", value.Line)
	}
	return nil
}

type Characteristics struct {
	Might     int `yaml:"might"`
	Agility   int `yaml:"agility"`
	Reason    int `yaml:"reason"`
	Intuition int `yaml:"intuition"`
	Presence  int `yaml:"presence"`
}

type Trait struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type DamageModifier struct {
	Type  string `yaml:"type"`
	Value int    `yaml:"value"`
}

type PowerRoll struct {
	Characteristic string `yaml:"characteristic"`
	Tier1          string `yaml:"tier1"`
	Tier2          string `yaml:"tier2"`
	Tier3          string `yaml:"tier3"`
}

type Ability struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	ActionType string     `yaml:"action_type"`
	Keywords   []string   `yaml:"keywords"`
	Distance   string     `yaml:"distance"`
	Target     string     `yaml:"target"`
	PowerRoll  *PowerRoll `yaml:"power_roll"`
	Effect     string     `yaml:"effect"`
}

type Feature struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	LevelRequired int    `yaml:"level_required"`
}

// Minion is a minion template as written in a portfolio file.
type Minion struct {
	ID                   string           `yaml:"id"`
	Name                 string           `yaml:"name"`
	EssenceCost          int              `yaml:"essence_cost"`
	MinionsPerSummon     int              `yaml:"minions_per_summon"`
	Size                 string           `yaml:"size"`
	Speed                int              `yaml:"speed"`
	Stamina              Stamina          `yaml:"stamina"`
	Stability            int              `yaml:"stability"`
	FreeStrike           int              `yaml:"free_strike"`
	Characteristics      Characteristics  `yaml:"characteristics"`
	Role                 string           `yaml:"role"`
	Keywords             []string         `yaml:"keywords"`
	Immunities           []DamageModifier `yaml:"immunities"`
	Weaknesses           []DamageModifier `yaml:"weaknesses"`
	MovementModes        []string         `yaml:"movement_modes"`
	FreeStrikeDamageType string           `yaml:"free_strike_damage_type"`
	Traits               []Trait          `yaml:"traits"`
	SignatureAbility     *Ability         `yaml:"signature_ability"`
	Unlock               string           `yaml:"unlock"`
}

type Fixture struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Role          string    `yaml:"role"`
	FlavorText    string    `yaml:"flavor_text"`
	BaseStamina   int       `yaml:"base_stamina"`
	Traits        []Trait   `yaml:"traits"`
	Level5Feature *Feature  `yaml:"level5_feature"`
	Level9        []Feature `yaml:"level9_features"`
}

type Champion struct {
	ID              string          `yaml:"id"`
	Name            string          `yaml:"name"`
	Description     string          `yaml:"description"`
	EssenceCost     int             `yaml:"essence_cost"`
	Size            string          `yaml:"size"`
	Speed           int             `yaml:"speed"`
	Stamina         int             `yaml:"stamina"`
	Stability       int             `yaml:"stability"`
	FreeStrike      int             `yaml:"free_strike"`
	Characteristics Characteristics `yaml:"characteristics"`
	Role            string          `yaml:"role"`
	Keywords        []string        `yaml:"keywords"`
	Traits          []Trait         `yaml:"traits"`
}

// PortfolioFile is the on-disk shape of one portfolio.
type PortfolioFile struct {
	Type       string    `yaml:"type"`
	Signatures []Minion  `yaml:"signatures"`
	Unlocked   []Minion  `yaml:"unlocked"`
	Fixture    *Fixture  `yaml:"fixture"`
	Champion   *Champion `yaml:"champion"`
}

var validTiers = map[int]bool{1: true, 3: true, 5: true, 7: true}

// Portfolio validates the file and converts it into the catalog form.
func (f *PortfolioFile) Portfolio() (*summoner.Portfolio, error) {
	p := &summoner.Portfolio{Type: summoner.PortfolioType(f.Type)}
	seen := make(map[string]bool)

	add := func(m Minion, signature bool) (*summoner.MinionTemplate, error) {
		if m.ID == "" || m.Name == "" {
			return nil, fmt.Errorf("%s: minion without id or name", f.Type)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%s: duplicate minion id %s", f.Type, m.ID)
		}
		seen[m.ID] = true
		if !validTiers[m.EssenceCost] {
			return nil, fmt.Errorf("%s: %s has essence cost %d, want 1, 3, 5 or 7", f.Type, m.ID, m.EssenceCost)
		}
		if signature != (m.EssenceCost == 1) {
			return nil, fmt.Errorf("%s: %s costs %d and cannot be listed there", f.Type, m.ID, m.EssenceCost)
		}
		if len(m.Stamina) == 0 {
			return nil, fmt.Errorf("%s: %s has no stamina", f.Type, m.ID)
		}
		return m.template(), nil
	}

	for _, m := range f.Signatures {
		t, err := add(m, true)
		if err != nil {
			return nil, err
		}
		p.Signatures = append(p.Signatures, t)
	}
	for _, m := range f.Unlocked {
		t, err := add(m, false)
		if err != nil {
			return nil, err
		}
		p.Unlocked = append(p.Unlocked, t)
	}
	if len(p.Signatures) == 0 {
		return nil, fmt.Errorf("%s: portfolio has no signature minions", f.Type)
	}
	if f.Fixture != nil {
		p.Fixture = f.Fixture.template()
	}
	if f.Champion != nil {
		p.Champion = f.Champion.template()
	}
	return p, nil
}

func (c Characteristics) convert() summoner.Characteristics {
	return summoner.Characteristics{
		Might:     c.Might,
		Agility:   c.Agility,
		Reason:    c.Reason,
		Intuition: c.Intuition,
		Presence:  c.Presence,
	}
}

func traits(ts []Trait) []summoner.Trait {
	out := make([]summoner.Trait, 0, len(ts))
	for _, t := range ts {
		out = append(out, summoner.Trait{Name: t.Name, Description: t.Description})
	}
	return out
}

func modifiers(ms []DamageModifier) []summoner.DamageModifier {
	out := make([]summoner.DamageModifier, 0, len(ms))
	for _, m := range ms {
		out = append(out, summoner.DamageModifier{Type: m.Type, Value: m.Value})
	}
	return out
}

func feature(f Feature) summoner.Feature {
	return summoner.Feature{ID: f.ID, Name: f.Name, Description: f.Description, LevelRequired: f.LevelRequired}
}

func (m Minion) template() *summoner.MinionTemplate {
	t := &summoner.MinionTemplate{
		ID:                   m.ID,
		Name:                 m.Name,
		EssenceCost:          m.EssenceCost,
		MinionsPerSummon:     m.MinionsPerSummon,
		Size:                 m.Size,
		Speed:                m.Speed,
		Stamina:              append([]int(nil), m.Stamina...),
		Stability:            m.Stability,
		FreeStrike:           m.FreeStrike,
		Characteristics:      m.Characteristics.convert(),
		Role:                 m.Role,
		Keywords:             m.Keywords,
		Immunities:           modifiers(m.Immunities),
		Weaknesses:           modifiers(m.Weaknesses),
		MovementModes:        m.MovementModes,
		FreeStrikeDamageType: m.FreeStrikeDamageType,
		Traits:               traits(m.Traits),
		Unlock:               m.Unlock,
	}
	if a := m.SignatureAbility; a != nil {
		t.SignatureAbility = &summoner.Ability{
			ID:         a.ID,
			Name:       a.Name,
			ActionType: a.ActionType,
			Keywords:   a.Keywords,
			Distance:   a.Distance,
			Target:     a.Target,
			Effect:     a.Effect,
		}
		if r := a.PowerRoll; r != nil {
			t.SignatureAbility.PowerRoll = &summoner.PowerRoll{
				Characteristic: r.Characteristic,
				Tier1:          r.Tier1,
				Tier2:          r.Tier2,
				Tier3:          r.Tier3,
			}
		}
	}
	return t
}

func (f *Fixture) template() *summoner.FixtureTemplate {
	t := &summoner.FixtureTemplate{
		ID:          f.ID,
		Name:        f.Name,
		Role:        f.Role,
		FlavorText:  f.FlavorText,
		BaseStamina: f.BaseStamina,
		Traits:      traits(f.Traits),
	}
	if f.Level5Feature != nil {
		l5 := feature(*f.Level5Feature)
		t.Level5Feature = &l5
	}
	for _, l9 := range f.Level9 {
		t.Level9 = append(t.Level9, feature(l9))
	}
	return t
}

func (c *Champion) template() *summoner.ChampionTemplate {
	return &summoner.ChampionTemplate{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		EssenceCost:     c.EssenceCost,
		Size:            c.Size,
		Speed:           c.Speed,
		Stamina:         c.Stamina,
		Stability:       c.Stability,
		FreeStrike:      c.FreeStrike,
		Characteristics: c.Characteristics.convert(),
		Role:            c.Role,
		Keywords:        c.Keywords,
		Traits:          traits(c.Traits),
	}
}

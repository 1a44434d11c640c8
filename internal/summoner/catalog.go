package summoner

// PortfolioType names one of the four summoning portfolios.
type PortfolioType string

const (
	PortfolioDemon     PortfolioType = "demon"
	PortfolioElemental PortfolioType = "elemental"
	PortfolioFey       PortfolioType = "fey"
	PortfolioUndead    PortfolioType = "undead"
)

// Circle is the summoner subclass. Each circle draws from one portfolio.
type Circle string

const (
	CircleBlight Circle = "blight"
	CircleGraves Circle = "graves"
	CircleSpring Circle = "spring"
	CircleStorms Circle = "storms"
)

var circlePortfolios = map[Circle]PortfolioType{
	CircleBlight: PortfolioDemon,
	CircleGraves: PortfolioUndead,
	CircleSpring: PortfolioFey,
	CircleStorms: PortfolioElemental,
}

// PortfolioFor returns the portfolio a circle summons from.
func PortfolioFor(c Circle) (PortfolioType, bool) {
	p, ok := circlePortfolios[c]
	return p, ok
}

type Characteristics struct {
	Might     int `json:"might"`
	Agility   int `json:"agility"`
	Reason    int `json:"reason"`
	Intuition int `json:"intuition"`
	Presence  int `json:"presence"`
}

// Plus returns the characteristics with bonus added to each one.
func (c Characteristics) Plus(bonus int) Characteristics {
	return Characteristics{
		Might:     c.Might + bonus,
		Agility:   c.Agility + bonus,
		Reason:    c.Reason + bonus,
		Intuition: c.Intuition + bonus,
		Presence:  c.Presence + bonus,
	}
}

type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PowerRoll lists the three outcome tiers of an ability roll.
type PowerRoll struct {
	Characteristic string `json:"characteristic"`
	Tier1          string `json:"tier1"`
	Tier2          string `json:"tier2"`
	Tier3          string `json:"tier3"`
}

type Ability struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ActionType string     `json:"action_type"`
	Keywords   []string   `json:"keywords"`
	Distance   string     `json:"distance"`
	Target     string     `json:"target"`
	PowerRoll  *PowerRoll `json:"power_roll,omitempty"`
	Effect     string     `json:"effect,omitempty"`
}

type DamageModifier struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// MinionTemplate is a static catalog entry. EssenceCost doubles as the tier.
type MinionTemplate struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	EssenceCost          int              `json:"essence_cost"`
	MinionsPerSummon     int              `json:"minions_per_summon"`
	Size                 string           `json:"size"`
	Speed                int              `json:"speed"`
	Stamina              []int            `json:"stamina"`
	Stability            int              `json:"stability"`
	FreeStrike           int              `json:"free_strike"`
	Characteristics      Characteristics  `json:"characteristics"`
	Role                 string           `json:"role"`
	Keywords             []string         `json:"keywords"`
	Immunities           []DamageModifier `json:"immunities"`
	Weaknesses           []DamageModifier `json:"weaknesses"`
	MovementModes        []string         `json:"movement_modes"`
	FreeStrikeDamageType string           `json:"free_strike_damage_type"`
	Traits               []Trait          `json:"traits"`
	SignatureAbility     *Ability         `json:"signature_ability,omitempty"`
	// Unlock is an optional rule expression gating availability.
	Unlock string `json:"unlock,omitempty"`
}

// Tier is the essence tier of the template.
func (t *MinionTemplate) Tier() int { return t.EssenceCost }

// IsSignature reports whether the template is a 1-essence signature minion.
func (t *MinionTemplate) IsSignature() bool { return t.EssenceCost == 1 }

// PerSummon returns how many minions one summon creates.
func (t *MinionTemplate) PerSummon() int {
	if t.MinionsPerSummon < 1 {
		return 1
	}
	return t.MinionsPerSummon
}

// BaseStamina returns the stamina for the minion at index in a batch.
func (t *MinionTemplate) BaseStamina(index int) int {
	if len(t.Stamina) == 0 {
		return 0
	}
	if index >= 0 && index < len(t.Stamina) {
		return t.Stamina[index]
	}
	return t.Stamina[0]
}

type Feature struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	LevelRequired int    `json:"level_required"`
}

type FixtureTemplate struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	FlavorText    string    `json:"flavor_text,omitempty"`
	BaseStamina   int       `json:"base_stamina"`
	Traits        []Trait   `json:"traits"`
	Level5Feature *Feature  `json:"level5_feature,omitempty"`
	Level9        []Feature `json:"level9_features"`
}

type ChampionTemplate struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	EssenceCost     int             `json:"essence_cost"`
	Size            string          `json:"size"`
	Speed           int             `json:"speed"`
	Stamina         int             `json:"stamina"`
	Stability       int             `json:"stability"`
	FreeStrike      int             `json:"free_strike"`
	Characteristics Characteristics `json:"characteristics"`
	Role            string          `json:"role"`
	Keywords        []string        `json:"keywords"`
	Traits          []Trait         `json:"traits"`
}

// Cost returns the template cost, defaulting to 9.
func (t *ChampionTemplate) Cost() int {
	if t.EssenceCost <= 0 {
		return DefaultChampionCost
	}
	return t.EssenceCost
}

// Portfolio is the catalog of templates available to one summoner.
type Portfolio struct {
	Type       PortfolioType     `json:"type"`
	Signatures []*MinionTemplate `json:"signatures"`
	Unlocked   []*MinionTemplate `json:"unlocked"`
	Fixture    *FixtureTemplate  `json:"fixture,omitempty"`
	Champion   *ChampionTemplate `json:"champion,omitempty"`
}

// Template looks up a minion template among signatures and unlocked tiers.
func (p *Portfolio) Template(id string) (*MinionTemplate, bool) {
	if p == nil {
		return nil, false
	}
	for _, t := range p.Signatures {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range p.Unlocked {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Templates returns every minion template in tier order.
func (p *Portfolio) Templates() []*MinionTemplate {
	if p == nil {
		return nil
	}
	out := make([]*MinionTemplate, 0, len(p.Signatures)+len(p.Unlocked))
	out = append(out, p.Signatures...)
	out = append(out, p.Unlocked...)
	return out
}

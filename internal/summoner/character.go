package summoner

import "fmt"

// Fixture is the summoner's stationary summoned structure.
type Fixture struct {
	TemplateID     string `json:"template_id"`
	CurrentStamina int    `json:"current_stamina"`
	MaxStamina     int    `json:"max_stamina"`
	Size           int    `json:"size"`
	IsActive       bool   `json:"is_active"`
}

// Character is the summoner record the engine reads and mutates.
type Character struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Level      int           `json:"level"`
	XP         int           `json:"xp"`
	Victories  int           `json:"victories"`
	Formation  Formation     `json:"formation"`
	Circle     Circle        `json:"circle"`
	Portfolio  PortfolioType `json:"portfolio"`
	Signatures []string      `json:"signatures"`
	KitStamina int           `json:"kit_stamina"`

	MaxStamina     int `json:"max_stamina"`
	CurrentStamina int `json:"current_stamina"`
	Recoveries     int `json:"recoveries"`

	Ledger        Ledger            `json:"ledger"`
	Squads        []*Squad          `json:"squads"`
	Fixture       *Fixture          `json:"fixture,omitempty"`
	Champion      *ChampionInstance `json:"champion,omitempty"`
	ChampionState ChampionState     `json:"champion_state"`
	OutOfCombat   OutOfCombatState  `json:"out_of_combat"`

	InCombat bool `json:"in_combat"`
	Round    int  `json:"round"`

	// Seq backs the default id source when callers do not supply ids.
	Seq int `json:"seq"`
}

// NewCharacter creates a summoner at level with derived stamina and recoveries filled in.
func NewCharacter(id, name string, level int, f Formation, circle Circle, kitStamina int) *Character {
	if level < 1 {
		level = 1
	}
	portfolio, _ := PortfolioFor(circle)
	c := &Character{
		ID:         id,
		Name:       name,
		Level:      level,
		XP:         XPForLevel(level),
		Formation:  f,
		Circle:     circle,
		Portfolio:  portfolio,
		KitStamina: kitStamina,
		Squads:     make([]*Squad, 0),
	}
	resetOutOfCombat(c)
	c.recalculate()
	c.CurrentStamina = c.MaxStamina
	c.Recoveries = MaxRecoveries(circle)
	c.ChampionState = ChampionState{CanSummon: ChampionUnlocked(level)}
	return c
}

func (c *Character) recalculate() {
	c.MaxStamina = HeroMaxStamina(c.Level, c.KitStamina)
}

// Kinds of identifiers handed out by an IDSource.
const (
	KindMinion      = "minion"
	KindSquad       = "squad"
	KindOutOfCombat = "ooc"
)

// IDSource yields a fresh identifier of the given kind.
type IDSource func(kind string) string

// NextID returns a deterministic id derived from the character sequence.
func (c *Character) NextID(prefix string) string {
	c.Seq++
	return fmt.Sprintf("%s-%d", prefix, c.Seq)
}

func (c *Character) newID(src IDSource, kind string) string {
	if src != nil {
		return src(kind)
	}
	return c.NextID(kind)
}

// IsWinded reports whether the summoner is at or below half stamina.
func (c *Character) IsWinded() bool {
	return c.CurrentStamina <= WindedThreshold(c.MaxStamina)
}

// SetFormation switches formation. Already summoned minions keep their stamina.
func SetFormation(c *Character, f Formation) Outcome {
	if c == nil {
		return noCharacter()
	}
	if _, err := ParseFormation(string(f)); err != nil {
		return fail(CodeIneligible, err.Error())
	}
	c.Formation = f
	return succeed()
}

// EarnVictory records a Victory and re-arms the champion and out-of-combat abilities.
func EarnVictory(c *Character) Outcome {
	if c == nil {
		return noCharacter()
	}
	c.Victories++
	OnVictoryEarned(c)
	c.OutOfCombat.UsedAbilities = make(map[string]bool)
	return succeed()
}

// Respite converts victories into XP and restores the summoner.
func Respite(c *Character) Outcome {
	if c == nil {
		return noCharacter()
	}
	if c.InCombat {
		return fail(CodeInCombat, "Cannot take a respite during combat")
	}
	c.XP += c.Victories
	c.Victories = 0
	c.Recoveries = MaxRecoveries(c.Circle)
	c.CurrentStamina = c.MaxStamina
	resetOutOfCombat(c)
	return succeed()
}

// LevelUp advances one level when XP allows it.
func LevelUp(c *Character) Outcome {
	if c == nil {
		return noCharacter()
	}
	if c.Level >= MaxLevel {
		return fail(CodeMaxLevel, fmt.Sprintf("Already at level %d", MaxLevel))
	}
	if !CanLevelUp(c.Level, c.XP) {
		return fail(CodeInsufficientXP, fmt.Sprintf("Need %d XP to reach level %d (have %d)", XPForLevel(c.Level+1), c.Level+1, c.XP))
	}
	c.Level++
	gained := HeroMaxStamina(c.Level, c.KitStamina) - c.MaxStamina
	c.recalculate()
	c.CurrentStamina += gained
	if ChampionUnlocked(c.Level) && !c.ChampionState.RequiresVictoryToResummon && c.Champion == nil {
		c.ChampionState.CanSummon = true
	}
	return succeed()
}

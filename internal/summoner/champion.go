package summoner

import "fmt"

// ChampionInstance is the singleton elite summon.
type ChampionInstance struct {
	TemplateID       string `json:"template_id"`
	Name             string `json:"name"`
	IsAlive          bool   `json:"is_alive"`
	CurrentStamina   int    `json:"current_stamina"`
	MaxStamina       int    `json:"max_stamina"`
	TemporaryStamina int    `json:"temporary_stamina"`
	HasMoved         bool   `json:"has_moved"`
	HasActed         bool   `json:"has_acted"`
	HasUsedManeuver  bool   `json:"has_used_maneuver"`
}

// ChampionState tracks the champion lifecycle across encounters.
type ChampionState struct {
	CanSummon                 bool `json:"can_summon"`
	SummonedThisEncounter     bool `json:"summoned_this_encounter"`
	ChampionActionUsed        bool `json:"champion_action_used"`
	RequiresVictoryToResummon bool `json:"requires_victory_to_resummon"`
}

// ChampionPhase is a coarse view of where the champion sits in its lifecycle.
type ChampionPhase string

const (
	ChampionLocked    ChampionPhase = "locked"
	ChampionAvailable ChampionPhase = "available"
	ChampionSummoned  ChampionPhase = "summoned"
	ChampionDead      ChampionPhase = "dead"
)

// ChampionPhase derives the lifecycle phase from level and state.
func (c *Character) ChampionPhase() ChampionPhase {
	switch {
	case !ChampionUnlocked(c.Level):
		return ChampionLocked
	case c.Champion != nil && c.Champion.IsAlive:
		return ChampionSummoned
	case c.ChampionState.RequiresVictoryToResummon:
		return ChampionDead
	default:
		return ChampionAvailable
	}
}

// ChampionValidation is the verdict of ValidateChampion.
type ChampionValidation struct {
	CanSummon         bool        `json:"can_summon"`
	Message           string      `json:"message"`
	Code              FailureCode `json:"code,omitempty"`
	UnlockLevel       int         `json:"unlock_level"`
	CurrentLevel      int         `json:"current_level"`
	RequiresVictory   bool        `json:"requires_victory"`
	HasActiveChampion bool        `json:"has_active_champion"`
	EssenceCost       int         `json:"essence_cost"`
	CurrentEssence    int         `json:"current_essence"`
}

// ChampionResult is returned by champion operations that can be refused.
type ChampionResult struct {
	Outcome
	Champion *ChampionInstance `json:"champion,omitempty"`
	Spent    int               `json:"spent,omitempty"`
}

// ChampionDamageResult reports whether damage killed the champion.
type ChampionDamageResult struct {
	ChampionDied bool `json:"champion_died"`
}

// ChampionStamina is the champion's maximum stamina for a formation.
func ChampionStamina(t *ChampionTemplate, f Formation) int {
	return t.Stamina + FormationStaminaBonus(f)
}

// ValidateChampion checks level, uniqueness, the victory gate, the template and essence in that order.
func ValidateChampion(c *Character, t *ChampionTemplate) ChampionValidation {
	if c == nil {
		return ChampionValidation{Message: NoCharacterReason, Code: CodeNoCharacter, UnlockLevel: ChampionUnlockLevel}
	}
	v := ChampionValidation{
		UnlockLevel:       ChampionUnlockLevel,
		CurrentLevel:      c.Level,
		RequiresVictory:   c.ChampionState.RequiresVictoryToResummon,
		HasActiveChampion: c.Champion != nil && c.Champion.IsAlive,
		CurrentEssence:    c.Ledger.Balance,
	}
	switch {
	case !ChampionUnlocked(c.Level):
		v.Code = CodeLevelLocked
		v.Message = fmt.Sprintf("Champion unlocks at Level %d (current: %d)", ChampionUnlockLevel, c.Level)
	case v.HasActiveChampion:
		v.Code = CodeChampionActive
		v.Message = "Champion is already active"
	case v.RequiresVictory:
		v.Code = CodeRequiresVictory
		v.Message = "Must earn a Victory before resummoning champion"
	case t == nil:
		v.Code = CodeNoTemplate
		v.Message = "No champion template available in portfolio"
	default:
		v.EssenceCost = AdjustedCost(t.Cost(), c.Formation)
		if c.Ledger.Balance < v.EssenceCost {
			v.Code = CodeEssence
			v.Message = fmt.Sprintf("Insufficient essence: need %d, have %d", v.EssenceCost, c.Ledger.Balance)
			break
		}
		v.CanSummon = true
		v.Message = "Champion can be summoned"
	}
	return v
}

// SummonChampion spends essence and brings the champion into play.
func SummonChampion(c *Character, t *ChampionTemplate) ChampionResult {
	v := ValidateChampion(c, t)
	if !v.CanSummon {
		return ChampionResult{Outcome: fail(v.Code, v.Message)}
	}
	if !c.Ledger.Spend(v.EssenceCost) {
		return ChampionResult{Outcome: fail(CodeEssence, "Failed to spend essence")}
	}
	stamina := ChampionStamina(t, c.Formation)
	c.Champion = &ChampionInstance{
		TemplateID:     t.ID,
		Name:           t.Name,
		IsAlive:        true,
		CurrentStamina: stamina,
		MaxStamina:     stamina,
	}
	c.ChampionState.SummonedThisEncounter = true
	c.ChampionState.CanSummon = false
	return ChampionResult{Outcome: Outcome{Success: true, Reason: fmt.Sprintf("%s summoned!", t.Name)}, Champion: c.Champion, Spent: v.EssenceCost}
}

func (c *Character) liveChampion() *ChampionInstance {
	if c == nil || c.Champion == nil || !c.Champion.IsAlive {
		return nil
	}
	return c.Champion
}

// DamageChampion burns temporary stamina first, then stamina. Reaching zero
// kills the champion and locks resummoning until a Victory.
func DamageChampion(c *Character, amount int) ChampionDamageResult {
	ch := c.liveChampion()
	if ch == nil || amount <= 0 {
		return ChampionDamageResult{}
	}
	remaining := amount
	if ch.TemporaryStamina > 0 {
		if remaining <= ch.TemporaryStamina {
			ch.TemporaryStamina -= remaining
			return ChampionDamageResult{}
		}
		remaining -= ch.TemporaryStamina
	}
	ch.TemporaryStamina = 0
	ch.CurrentStamina -= remaining
	if ch.CurrentStamina <= 0 {
		ch.IsAlive = false
		ch.CurrentStamina = 0
		c.ChampionState.RequiresVictoryToResummon = true
		c.ChampionState.CanSummon = false
		return ChampionDamageResult{ChampionDied: true}
	}
	return ChampionDamageResult{}
}

// HealChampion restores stamina up to the maximum.
func HealChampion(c *Character, amount int) Outcome {
	if c == nil {
		return noCharacter()
	}
	ch := c.liveChampion()
	if ch == nil {
		return fail(CodeNoChampion, "No active champion")
	}
	if amount < 0 {
		return fail(CodeInvalidAmount, "Healing must not be negative")
	}
	ch.CurrentStamina += amount
	if ch.CurrentStamina > ch.MaxStamina {
		ch.CurrentStamina = ch.MaxStamina
	}
	return succeed()
}

// GrantChampionTemporaryStamina sets temporary stamina; it does not stack.
func GrantChampionTemporaryStamina(c *Character, amount int) Outcome {
	if c == nil {
		return noCharacter()
	}
	ch := c.liveChampion()
	if ch == nil {
		return fail(CodeNoChampion, "No active champion")
	}
	if amount > ch.TemporaryStamina {
		ch.TemporaryStamina = amount
	}
	return succeed()
}

// UseRecoveryOnChampion spends one of the summoner's recoveries to heal the champion.
func UseRecoveryOnChampion(c *Character) Outcome {
	if c == nil {
		return noCharacter()
	}
	ch := c.liveChampion()
	if ch == nil {
		return fail(CodeNoChampion, "No active champion")
	}
	if c.Recoveries <= 0 {
		return fail(CodeNoRecoveries, "No recoveries remaining")
	}
	c.Recoveries--
	ch.CurrentStamina += RecoveryValue(c.MaxStamina)
	if ch.CurrentStamina > ch.MaxStamina {
		ch.CurrentStamina = ch.MaxStamina
	}
	return succeed()
}

// UseChampionAction spends the once-per-encounter Champion Action.
func UseChampionAction(c *Character) Outcome {
	if c == nil {
		return noCharacter()
	}
	if !ChampionActionUnlocked(c.Level) {
		return fail(CodeLevelLocked, fmt.Sprintf("Champion Action unlocks at Level %d", ChampionActionUnlockLevel))
	}
	if c.liveChampion() == nil {
		return fail(CodeNoChampion, "No active champion")
	}
	if c.ChampionState.ChampionActionUsed {
		return fail(CodeAlreadyUsed, "Champion Action already used this encounter")
	}
	c.ChampionState.ChampionActionUsed = true
	return Outcome{Success: true, Reason: "Champion Action activated!"}
}

// OnVictoryEarned is the only way to clear the resummon gate.
func OnVictoryEarned(c *Character) {
	if c == nil || !c.ChampionState.RequiresVictoryToResummon {
		return
	}
	c.ChampionState.RequiresVictoryToResummon = false
	c.ChampionState.CanSummon = true
}

// ResetChampionForEncounter dismisses the champion and clears per-encounter flags.
// The victory gate survives.
func ResetChampionForEncounter(c *Character) {
	if c == nil {
		return
	}
	c.Champion = nil
	c.ChampionState.SummonedThisEncounter = false
	c.ChampionState.ChampionActionUsed = false
	c.ChampionState.CanSummon = ChampionUnlocked(c.Level) && !c.ChampionState.RequiresVictoryToResummon
}

// ResetChampionTurn clears the champion's per-turn action flags.
func ResetChampionTurn(c *Character) {
	ch := c.liveChampion()
	if ch == nil {
		return
	}
	ch.HasMoved = false
	ch.HasActed = false
	ch.HasUsedManeuver = false
}

package summoner

import "fmt"

// OutOfCombatMinion is a minion summoned between encounters for a task.
type OutOfCombatMinion struct {
	ID          string `json:"id"`
	TemplateID  string `json:"template_id"`
	Name        string `json:"name"`
	EssenceCost int    `json:"essence_cost"`
	Task        string `json:"task,omitempty"`
}

// OutOfCombatState tracks summons and ability use outside encounters.
type OutOfCombatState struct {
	Minions                    []*OutOfCombatMinion `json:"minions"`
	UsedAbilities              map[string]bool      `json:"used_abilities"`
	ShouldDismissOnCombatStart bool                 `json:"should_dismiss_on_combat_start"`
}

// OutOfCombatResult is returned by SummonOutOfCombat.
type OutOfCombatResult struct {
	Outcome
	MinionID string `json:"minion_id,omitempty"`
}

// CanSummonOutOfCombat reports whether a tier is summonable with the given victories.
func CanSummonOutOfCombat(tier, victories int) bool {
	return tier == 1 || victories >= tier
}

// ValidateOutOfCombat checks combat state, the four-minion limit and the victory gate.
func ValidateOutOfCombat(c *Character, t *MinionTemplate) Outcome {
	if c == nil {
		return noCharacter()
	}
	if t == nil {
		return fail(CodeUnknownTemplate, "Unknown minion template")
	}
	if c.InCombat {
		return fail(CodeInCombat, "Cannot use out-of-combat summon during combat")
	}
	if len(c.OutOfCombat.Minions) >= MaxOutOfCombatMinions {
		return fail(CodeOutOfCombatLimit, fmt.Sprintf("Maximum %d minions outside combat", MaxOutOfCombatMinions))
	}
	if !CanSummonOutOfCombat(t.Tier(), c.Victories) {
		return fail(CodeVictories, fmt.Sprintf("Requires %d Victories to summon (have %d)", t.Tier(), c.Victories))
	}
	return succeed()
}

// SummonOutOfCombat summons a minion outside combat, optionally assigned to a task.
func SummonOutOfCombat(c *Character, t *MinionTemplate, task string, id string) OutOfCombatResult {
	if v := ValidateOutOfCombat(c, t); !v.Success {
		return OutOfCombatResult{Outcome: v}
	}
	if id == "" {
		id = c.NextID(KindOutOfCombat)
	}
	c.OutOfCombat.Minions = append(c.OutOfCombat.Minions, &OutOfCombatMinion{
		ID:          id,
		TemplateID:  t.ID,
		Name:        t.Name,
		EssenceCost: t.EssenceCost,
		Task:        task,
	})
	msg := t.Name + " summoned"
	if task != "" {
		msg += " for " + task
	}
	return OutOfCombatResult{Outcome: Outcome{Success: true, Reason: msg}, MinionID: id}
}

// DismissOutOfCombat removes one out-of-combat minion.
func DismissOutOfCombat(c *Character, id string) Outcome {
	if c == nil {
		return noCharacter()
	}
	for i, m := range c.OutOfCombat.Minions {
		if m.ID == id {
			c.OutOfCombat.Minions = append(c.OutOfCombat.Minions[:i], c.OutOfCombat.Minions[i+1:]...)
			return succeed()
		}
	}
	return fail(CodeMinionNotFound, fmt.Sprintf("Minion %s not found", id))
}

// DismissAllOutOfCombat clears every out-of-combat minion.
func DismissAllOutOfCombat(c *Character) {
	if c == nil {
		return
	}
	c.OutOfCombat.Minions = make([]*OutOfCombatMinion, 0)
}

// UpdateOutOfCombatTask reassigns a minion's task.
func UpdateOutOfCombatTask(c *Character, id, task string) Outcome {
	if c == nil {
		return noCharacter()
	}
	for _, m := range c.OutOfCombat.Minions {
		if m.ID == id {
			m.Task = task
			return succeed()
		}
	}
	return fail(CodeMinionNotFound, fmt.Sprintf("Minion %s not found", id))
}

// UseOutOfCombatAbility marks an ability used until the next Victory or respite.
func UseOutOfCombatAbility(c *Character, abilityID string) Outcome {
	if c == nil {
		return noCharacter()
	}
	if c.InCombat {
		return fail(CodeInCombat, "Use normal ability rules during combat")
	}
	if c.OutOfCombat.UsedAbilities == nil {
		c.OutOfCombat.UsedAbilities = make(map[string]bool)
	}
	if c.OutOfCombat.UsedAbilities[abilityID] {
		return fail(CodeAlreadyUsed, "Ability already used since last Victory or respite")
	}
	c.OutOfCombat.UsedAbilities[abilityID] = true
	return Outcome{Success: true, Reason: "Ability used (free outside combat)"}
}

func resetOutOfCombat(c *Character) {
	c.OutOfCombat = OutOfCombatState{
		Minions:                    make([]*OutOfCombatMinion, 0),
		UsedAbilities:              make(map[string]bool),
		ShouldDismissOnCombatStart: true,
	}
}

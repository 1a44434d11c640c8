package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// ExecuteStatus renders the hero sheet and the current army.
func ExecuteStatus(state *engine.GameState) ([]engine.Event, error) {
	c := state.Hero
	if c == nil {
		return nil, engine.Reject(summoner.CodeNoCharacter, summoner.NoCharacterReason)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s, level %d %s summoner (%s formation)\n", c.Name, c.Level, c.Circle, c.Formation))
	winded := ""
	if c.IsWinded() {
		winded = " winded"
	}
	sb.WriteString(fmt.Sprintf("├─ Stamina: %d/%d%s, recoveries %d\n", c.CurrentStamina, c.MaxStamina, winded, c.Recoveries))
	sb.WriteString(fmt.Sprintf("├─ XP: %d, victories: %d\n", c.XP, c.Victories))
	if !c.InCombat {
		sb.WriteString("├─ Out of combat\n")
	} else {
		sb.WriteString(fmt.Sprintf("├─ Round %d, essence %d★", c.Round, c.Ledger.Balance))
		if state.PendingReduction > 0 {
			sb.WriteString(fmt.Sprintf(" (next summon -%d★)", state.PendingReduction))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("├─ Minions: %d/%d\n", c.LiveMinionCount(), summoner.Capacity(c.Formation, c.Level)))
	for _, s := range c.Squads {
		ids := make([]string, 0, len(s.Members))
		for _, m := range s.Members {
			flags := ""
			if m.HasMoved {
				flags += "m"
			}
			if m.HasActed {
				flags += "a"
			}
			if flags != "" {
				ids = append(ids, m.ID+"["+flags+"]")
			} else {
				ids = append(ids, m.ID)
			}
		}
		sb.WriteString(fmt.Sprintf("│  ├─ %s %s %d/%d: %s\n", s.ID, s.TemplateID, s.CurrentStamina, s.MaxStamina, strings.Join(ids, " ")))
	}
	if c.Fixture != nil && c.Fixture.IsActive {
		sb.WriteString(fmt.Sprintf("├─ Fixture %s: %d/%d\n", c.Fixture.TemplateID, c.Fixture.CurrentStamina, c.Fixture.MaxStamina))
	}
	if ch := c.Champion; ch != nil && ch.IsAlive {
		sb.WriteString(fmt.Sprintf("├─ Champion %s: %d/%d", ch.Name, ch.CurrentStamina, ch.MaxStamina))
		if ch.TemporaryStamina > 0 {
			sb.WriteString(fmt.Sprintf(" +%d temp", ch.TemporaryStamina))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(fmt.Sprintf("├─ Champion: %s\n", c.ChampionPhase()))
	}
	for _, m := range c.OutOfCombat.Minions {
		task := m.Task
		if task == "" {
			task = "idle"
		}
		sb.WriteString(fmt.Sprintf("├─ %s %s: %s\n", m.ID, m.Name, task))
	}
	q := summoner.QuickCommandFor(c.Formation)
	sb.WriteString(fmt.Sprintf("└─ Quick command: %s (%d★)", q.Name, q.EssenceCost))
	return hint(sb.String()), nil
}

// ExecuteList shows every template of the hero's portfolio with its cost and gate.
func ExecuteList(state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	c := state.Hero
	if c == nil || state.Portfolio == nil {
		return nil, engine.Reject(summoner.CodeNoCharacter, summoner.NoCharacterReason)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s portfolio:\n", state.Portfolio.Type))
	for _, t := range state.Portfolio.Templates() {
		cost := summoner.AdjustedCost(t.EssenceCost, c.Formation)
		line := fmt.Sprintf("├─ %s (%s) %d★ x%d", t.ID, t.Name, cost, t.PerSummon())
		if err := unlocked(t, state, reg); err != nil {
			line += " locked"
		}
		sb.WriteString(line + "\n")
	}
	if f := state.Fixture(); f != nil {
		sb.WriteString(fmt.Sprintf("├─ fixture: %s (level %d)\n", f.Name, summoner.FixtureUnlockLevel))
	}
	if ch := state.Champion(); ch != nil {
		sb.WriteString(fmt.Sprintf("└─ champion: %s %d★ (level %d)", ch.Name, ch.Cost(), summoner.ChampionUnlockLevel))
	} else {
		sb.WriteString("└─ champion: none")
	}
	return hint(sb.String()), nil
}

// ExecuteShow prints a template's stat block as the hero would summon it.
func ExecuteShow(cmd *parser.ShowCmd, state *engine.GameState) ([]engine.Event, error) {
	t, err := state.Template(cmd.Template)
	if err != nil {
		return nil, err
	}
	c := state.Hero
	m := summoner.ModifiersFor(c.Formation)
	ch := t.Characteristics.Plus(m.CharacteristicBonus)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s), %s %s\n", t.Name, t.ID, t.Size, t.Role))
	sb.WriteString(fmt.Sprintf("├─ Cost: %d★ for %d\n", summoner.AdjustedCost(t.EssenceCost, c.Formation), t.PerSummon()))
	sb.WriteString(fmt.Sprintf("├─ Stamina: %d each\n", summoner.Instantiate(t, c.Formation, c.Level, 0, "").MaxStamina))
	sb.WriteString(fmt.Sprintf("├─ Speed %d, stability %d, free strike %d\n", t.Speed, t.Stability+m.StabilityBonus, t.FreeStrike+m.FreeStrikeBonus))
	sb.WriteString(fmt.Sprintf("├─ M %+d A %+d R %+d I %+d P %+d\n", ch.Might, ch.Agility, ch.Reason, ch.Intuition, ch.Presence))
	for _, tr := range t.Traits {
		sb.WriteString(fmt.Sprintf("├─ %s: %s\n", tr.Name, tr.Description))
	}
	if a := t.SignatureAbility; a != nil {
		sb.WriteString(fmt.Sprintf("├─ %s (%s)\n", a.Name, a.ActionType))
		if a.PowerRoll != nil {
			sb.WriteString(fmt.Sprintf("│  ├─ ≤11: %s\n", a.PowerRoll.Tier1))
			sb.WriteString(fmt.Sprintf("│  ├─ 12-16: %s\n", a.PowerRoll.Tier2))
			sb.WriteString(fmt.Sprintf("│  └─ 17+: %s\n", a.PowerRoll.Tier3))
		}
	}
	if t.Unlock != "" {
		sb.WriteString(fmt.Sprintf("├─ Unlock: %s\n", t.Unlock))
	}
	sb.WriteString(fmt.Sprintf("└─ Keywords: %s", strings.Join(t.Keywords, ", ")))
	return hint(sb.String()), nil
}

// ExecuteEval evaluates an expression against the hero.
func ExecuteEval(cmd *parser.EvalCmd, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	if reg == nil {
		return nil, fmt.Errorf("no rules registry configured")
	}
	out, err := reg.Eval(cmd.Expression, rules.BuildEvalContext(state.Hero, nil))
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return hint(fmt.Sprintf("%v", out)), nil
}

package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// ExecuteHint analyzes the GameState and suggests what the summoner can do next
func ExecuteHint(state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	c := state.Hero
	if c == nil {
		return hint("No hero loaded. Create one with `hero create`."), nil
	}

	if !c.InCombat {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Out of combat with %d victories.", c.Victories))
		if summoner.CanLevelUp(c.Level, c.XP) {
			sb.WriteString(" You can level up.")
		}
		if n := len(c.OutOfCombat.Minions); n < summoner.MaxOutOfCombatMinions {
			sb.WriteString(fmt.Sprintf(" %d out-of-combat summons left.", summoner.MaxOutOfCombatMinions-n))
		}
		sb.WriteString(" Use `combat start` when initiative is rolled.")
		return hint(sb.String()), nil
	}

	var affordable []string
	if state.Portfolio != nil {
		for _, t := range state.Portfolio.Templates() {
			if unlocked(t, state, reg) != nil {
				continue
			}
			v := summoner.ValidateSummon(c, t, summoner.SummonOptions{SacrificeReduction: state.PendingReduction})
			if v.CanSummon {
				affordable = append(affordable, fmt.Sprintf("%s (%d★)", t.ID, v.Details.RequiredEssence))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %d, %d★ available.", c.Round, c.Ledger.Balance))
	if len(affordable) == 0 {
		sb.WriteString(" Nothing can be summoned right now.")
	} else {
		sb.WriteString(" You can summon: " + strings.Join(affordable, ", ") + ".")
	}
	if summoner.ValidateFixture(c).CanSummon && state.Fixture() != nil {
		sb.WriteString(" Your fixture can be summoned.")
	}
	if ch := state.Champion(); ch != nil && summoner.ValidateChampion(c, ch).CanSummon {
		sb.WriteString(fmt.Sprintf(" %s can be summoned.", ch.Name))
	}
	return hint(sb.String()), nil
}

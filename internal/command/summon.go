package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// ExecuteSummon checks the unlock gate and emits the summon. Only signature
// minions may be summoned free. Essence, capacity and squad limits are
// enforced when the event is applied.
func ExecuteSummon(cmd *parser.SummonCmd, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	t, err := state.Template(cmd.Template)
	if err != nil {
		return nil, err
	}
	if err := unlocked(t, state, reg); err != nil {
		return nil, err
	}
	if cmd.Free && !t.IsSignature() {
		return nil, engine.Reject(summoner.CodeIneligible, fmt.Sprintf("%s is not a signature minion and cannot be summoned for free", t.Name))
	}
	return []engine.Event{&engine.MinionsSummonedEvent{
		TemplateID:    t.ID,
		TargetSquadID: cmd.Squad,
		Free:          cmd.Free,
	}}, nil
}

// ExecuteSacrifice emits either a discount sacrifice or an essence sacrifice.
func ExecuteSacrifice(cmd *parser.SacrificeCmd) ([]engine.Event, error) {
	if cmd.ForEssence {
		if len(cmd.Minions) != 1 {
			return nil, fmt.Errorf("Usage: %s", parser.Usage["sacrifice"])
		}
		return []engine.Event{&engine.EssenceSacrificedEvent{MinionID: cmd.Minions[0]}}, nil
	}
	return []engine.Event{&engine.MinionsSacrificedEvent{MinionIDs: cmd.Minions}}, nil
}

// ExecuteCheck previews a summon without spending anything.
func ExecuteCheck(cmd *parser.CheckCmd, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	t, err := state.Template(cmd.Template)
	if err != nil {
		return nil, err
	}
	if err := unlocked(t, state, reg); err != nil {
		return hint(err.Error()), nil
	}

	v := summoner.ValidateSummon(state.Hero, t, summoner.SummonOptions{SacrificeReduction: state.PendingReduction})
	d := v.Details

	var sb strings.Builder
	if v.CanSummon {
		sb.WriteString(fmt.Sprintf("%s can be summoned.\n", t.Name))
	} else {
		sb.WriteString(fmt.Sprintf("%s cannot be summoned: %s\n", t.Name, v.Message))
	}
	sb.WriteString(fmt.Sprintf("├─ Essence: %d/%d★\n", d.CurrentEssence, d.RequiredEssence))
	sb.WriteString(fmt.Sprintf("├─ Minions: %d+%d/%d\n", d.CurrentMinions, d.MinionsToSummon, d.MaxMinions))
	sb.WriteString(fmt.Sprintf("└─ Squads: %d/%d", d.CurrentSquads, d.MaxSquads))
	return hint(sb.String()), nil
}

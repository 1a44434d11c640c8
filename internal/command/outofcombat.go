package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
)

// ExecuteOutOfCombat handles the `ooc` family.
func ExecuteOutOfCombat(cmd *parser.OOCCmd, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	switch strings.ToLower(cmd.Action) {
	case "summon":
		t, err := state.Template(cmd.Target)
		if err != nil {
			return nil, err
		}
		if err := unlocked(t, state, reg); err != nil {
			return nil, err
		}
		return []engine.Event{&engine.OutOfCombatSummonedEvent{TemplateID: t.ID, Task: cmd.Task}}, nil
	case "dismiss":
		return []engine.Event{&engine.OutOfCombatDismissedEvent{MinionID: cmd.Target}}, nil
	case "task":
		if cmd.Task == "" {
			return nil, fmt.Errorf("Usage: %s", parser.Usage["ooc"])
		}
		return []engine.Event{&engine.OutOfCombatTaskUpdatedEvent{MinionID: cmd.Target, Task: cmd.Task}}, nil
	}
	return nil, fmt.Errorf("Usage: %s", parser.Usage["ooc"])
}

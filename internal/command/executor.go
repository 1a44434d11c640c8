package command

import (
	"fmt"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// Execute maps a parsed command onto the events that carry it out. Query
// commands return a single HintEvent, which is never persisted.
func Execute(cmd *parser.Command, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	switch {
	case cmd.Summon != nil:
		return ExecuteSummon(cmd.Summon, state, reg)
	case cmd.Sacrifice != nil:
		return ExecuteSacrifice(cmd.Sacrifice)
	case cmd.Damage != nil:
		return ExecuteDamage(cmd.Damage)
	case cmd.Heal != nil:
		return ExecuteHeal(cmd.Heal)
	case cmd.Mark != nil:
		return ExecuteMark(cmd.Mark)
	case cmd.Champion != nil:
		return ExecuteChampion(cmd.Champion)
	case cmd.Fixture != nil:
		return ExecuteFixture(cmd.Fixture)
	case cmd.Combat != nil:
		return ExecuteCombat(cmd.Combat)
	case cmd.Turn != nil:
		return []engine.Event{&engine.TurnStartedEvent{Signature: cmd.Turn.Signature}}, nil
	case cmd.Victory != nil:
		return []engine.Event{&engine.VictoryEarnedEvent{}}, nil
	case cmd.Respite != nil:
		return []engine.Event{&engine.RespiteTakenEvent{}}, nil
	case cmd.LevelUp != nil:
		return []engine.Event{&engine.LevelGainedEvent{}}, nil
	case cmd.Formation != nil:
		return ExecuteFormation(cmd.Formation)
	case cmd.OOC != nil:
		return ExecuteOutOfCombat(cmd.OOC, state, reg)
	case cmd.Ability != nil:
		return []engine.Event{&engine.AbilityUsedEvent{AbilityID: cmd.Ability.Name}}, nil
	case cmd.Check != nil:
		return ExecuteCheck(cmd.Check, state, reg)
	case cmd.Status != nil:
		return ExecuteStatus(state)
	case cmd.List != nil:
		return ExecuteList(state, reg)
	case cmd.Show != nil:
		return ExecuteShow(cmd.Show, state)
	case cmd.Eval != nil:
		return ExecuteEval(cmd.Eval, state, reg)
	case cmd.Hint != nil:
		return ExecuteHint(state, reg)
	case cmd.Help != nil:
		return ExecuteHelp(cmd.Help, state)
	}
	return nil, fmt.Errorf("unsupported command pattern")
}

// IsQuery reports whether the events only answer a question.
func IsQuery(events []engine.Event) bool {
	for _, e := range events {
		if e.Type() != engine.EventHint {
			return false
		}
	}
	return len(events) > 0
}

func hint(msg string) []engine.Event {
	return []engine.Event{&engine.HintEvent{MessageStr: msg}}
}

// unlocked evaluates the template's unlock gate against the hero.
func unlocked(t *summoner.MinionTemplate, state *engine.GameState, reg *rules.Registry) error {
	if t.Unlock == "" || reg == nil {
		return nil
	}
	ok, err := reg.Allowed(t.Unlock, rules.BuildEvalContext(state.Hero, t))
	if err != nil {
		return fmt.Errorf("unlock rule for %s failed: %w", t.ID, err)
	}
	if !ok {
		return engine.Reject(summoner.CodeLevelLocked, fmt.Sprintf("%s is locked (%s)", t.Name, t.Unlock))
	}
	return nil
}

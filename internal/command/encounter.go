package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

const (
	targetChampion = "champion"
	targetFixture  = "fixture"
)

// ExecuteCombat handles `combat start [signature]` and `combat end`
func ExecuteCombat(cmd *parser.CombatCmd) ([]engine.Event, error) {
	if strings.EqualFold(cmd.Action, "start") {
		return []engine.Event{&engine.CombatStartedEvent{Signature: cmd.Signature}}, nil
	}
	return []engine.Event{&engine.CombatEndedEvent{}}, nil
}

// ExecuteDamage routes damage to a squad, the champion or the fixture.
func ExecuteDamage(cmd *parser.DamageCmd) ([]engine.Event, error) {
	switch strings.ToLower(cmd.Target) {
	case targetChampion:
		return []engine.Event{&engine.ChampionDamagedEvent{Amount: cmd.Amount}}, nil
	case targetFixture:
		return []engine.Event{&engine.FixtureDamagedEvent{Amount: cmd.Amount}}, nil
	}
	return []engine.Event{&engine.SquadDamagedEvent{SquadID: cmd.Target, Amount: cmd.Amount}}, nil
}

// ExecuteHeal routes healing to a squad or the champion.
func ExecuteHeal(cmd *parser.HealCmd) ([]engine.Event, error) {
	switch strings.ToLower(cmd.Target) {
	case targetChampion:
		return []engine.Event{&engine.ChampionHealedEvent{Amount: cmd.Amount}}, nil
	case targetFixture:
		return nil, fmt.Errorf("the fixture cannot be healed")
	}
	return []engine.Event{&engine.SquadHealedEvent{SquadID: cmd.Target, Amount: cmd.Amount}}, nil
}

// ExecuteMark records a minion's move or main action.
func ExecuteMark(cmd *parser.MarkCmd) ([]engine.Event, error) {
	mark := engine.MarkActed
	if strings.EqualFold(cmd.Action, "move") {
		mark = engine.MarkMoved
	}
	return []engine.Event{&engine.MinionMarkedEvent{MinionID: cmd.Minion, Mark: mark}}, nil
}

// ExecuteChampion drives the champion lifecycle.
func ExecuteChampion(cmd *parser.ChampionCmd) ([]engine.Event, error) {
	switch strings.ToLower(cmd.Action) {
	case "summon":
		return []engine.Event{&engine.ChampionSummonedEvent{}}, nil
	case "recovery":
		return []engine.Event{&engine.ChampionRecoveryUsedEvent{}}, nil
	case "action":
		return []engine.Event{&engine.ChampionActionUsedEvent{}}, nil
	case "temp":
		if cmd.Amount <= 0 {
			return nil, fmt.Errorf("Usage: %s", parser.Usage["champion"])
		}
		return []engine.Event{&engine.ChampionTempStaminaEvent{Amount: cmd.Amount}}, nil
	}
	return nil, fmt.Errorf("Usage: %s", parser.Usage["champion"])
}

// ExecuteFixture summons or dismisses the fixture.
func ExecuteFixture(cmd *parser.FixtureCmd) ([]engine.Event, error) {
	if strings.EqualFold(cmd.Action, "summon") {
		return []engine.Event{&engine.FixtureSummonedEvent{}}, nil
	}
	return []engine.Event{&engine.FixtureDismissedEvent{}}, nil
}

// ExecuteFormation validates the formation name.
func ExecuteFormation(cmd *parser.FormationCmd) ([]engine.Event, error) {
	f, err := summoner.ParseFormation(strings.ToLower(cmd.Name))
	if err != nil {
		return nil, err
	}
	return []engine.Event{&engine.FormationChangedEvent{Formation: f}}, nil
}

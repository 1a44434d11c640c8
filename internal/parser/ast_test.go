package parser_test

import (
	"testing"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
)

func TestParseSummon(t *testing.T) {
	p := parser.Build()

	cmd, err := p.ParseString("", "summon demon_razor into sq-1a2b free")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Summon == nil {
		t.Fatalf("Expected Summon command to be populated")
	}
	if cmd.Summon.Template != "demon_razor" || cmd.Summon.Squad != "sq-1a2b" || !cmd.Summon.Free {
		t.Errorf("Unexpected summon: %+v", cmd.Summon)
	}

	cmd, err = p.ParseString("", "SUMMON demon_razor")
	if err != nil {
		t.Fatalf("Failed to parse uppercase keyword: %v", err)
	}
	if cmd.Summon.Squad != "" || cmd.Summon.Free {
		t.Errorf("Expected bare summon, got %+v", cmd.Summon)
	}
}

func TestParseSacrifice(t *testing.T) {
	p := parser.Build()

	cmd, err := p.ParseString("", "sacrifice m-1 m-2")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Sacrifice.ForEssence || len(cmd.Sacrifice.Minions) != 2 {
		t.Errorf("Unexpected sacrifice: %+v", cmd.Sacrifice)
	}

	cmd, err = p.ParseString("", "sacrifice for essence m-3")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !cmd.Sacrifice.ForEssence || cmd.Sacrifice.Minions[0] != "m-3" {
		t.Errorf("Unexpected essence sacrifice: %+v", cmd.Sacrifice)
	}
}

func TestParseTargetsAndAmounts(t *testing.T) {
	p := parser.Build()

	cmd, err := p.ParseString("", "damage champion 12")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Damage.Target != "champion" || cmd.Damage.Amount != 12 {
		t.Errorf("Unexpected damage: %+v", cmd.Damage)
	}

	cmd, err = p.ParseString("", "champion temp 5")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Champion.Action != "temp" || cmd.Champion.Amount != 5 {
		t.Errorf("Unexpected champion: %+v", cmd.Champion)
	}

	cmd, err = p.ParseString("", "act m-9")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Mark.Action != "act" || cmd.Mark.Minion != "m-9" {
		t.Errorf("Unexpected mark: %+v", cmd.Mark)
	}
}

func TestParseQuotedStrings(t *testing.T) {
	p := parser.Build()

	cmd, err := p.ParseString("", `ooc summon demon_razor for "guard the door"`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.OOC.Action != "summon" || cmd.OOC.Task != "guard the door" {
		t.Errorf("Unexpected ooc: %+v", cmd.OOC)
	}

	cmd, err = p.ParseString("", `eval "hero.level >= 5 && hero.formation == 'elite'"`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Eval.Expression != "hero.level >= 5 && hero.formation == 'elite'" {
		t.Errorf("Unexpected expression: %q", cmd.Eval.Expression)
	}
}

func TestParseCombat(t *testing.T) {
	p := parser.Build()

	cmd, err := p.ParseString("", "combat start demon_rasquine")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Combat.Action != "start" || cmd.Combat.Signature != "demon_rasquine" {
		t.Errorf("Unexpected combat: %+v", cmd.Combat)
	}

	cmd, err = p.ParseString("", "turn")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Turn == nil || cmd.Turn.Signature != "" {
		t.Errorf("Unexpected turn: %+v", cmd.Turn)
	}
}

func TestMapError(t *testing.T) {
	p := parser.Build()

	input := "damage sq-1"
	_, err := p.ParseString("", input)
	if err == nil {
		t.Fatalf("Expected a parse error")
	}
	mapped := parser.MapError(input, err)
	if mapped.Error() != "The command damage must be: damage <squad|champion|fixture> <amount>" {
		t.Errorf("Unexpected guidance: %v", mapped)
	}

	if parser.MapError("dance", err).Error() != "I wasn't able to understand your command" {
		t.Errorf("Expected generic guidance for unknown commands")
	}
}

package command

import (
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
)

var commandSummaries = map[string]string{
	"summon":    "Spends essence to summon a template's minions, merging into a squad when possible.",
	"sacrifice": "Removes minions to discount the next summon, or a signature minion for 1 essence.",
	"damage":    "Deals damage to a squad pool, the champion or the fixture.",
	"heal":      "Restores stamina to a squad pool or the champion.",
	"act":       "Marks a minion as having used its action.",
	"move":      "Marks a minion as having moved.",
	"champion":  "Summons the champion or spends its recovery, temporary stamina and Champion Action.",
	"fixture":   "Summons or dismisses the portfolio fixture.",
	"combat":    "Starts or ends an encounter.",
	"turn":      "Starts your turn: +2 essence and free signature minions.",
	"victory":   "Records a victory.",
	"respite":   "Converts victories to XP and restores recoveries.",
	"levelup":   "Advances a level when enough XP is banked.",
	"formation": "Switches formation.",
	"ooc":       "Manages minions summoned outside combat.",
	"ability":   "Uses an out-of-combat ability.",
	"check":     "Previews whether a summon would succeed.",
	"status":    "Shows the hero and the army.",
	"list":      "Lists the portfolio templates.",
	"show":      "Shows a template stat block.",
	"eval":      "Evaluates a rule expression against the hero.",
	"hint":      "Suggests what you can do next.",
	"help":      "Shows available commands or detailed info on a specific one.",
}

// ExecuteHelp provides guidance on command usage
func ExecuteHelp(cmd *parser.HelpCmd, state *engine.GameState) ([]engine.Event, error) {
	if cmd.Command != "" && !strings.EqualFold(cmd.Command, "all") {
		name := strings.ToLower(cmd.Command)
		usage, ok := parser.Usage[name]
		if !ok {
			return nil, fmt.Errorf("Unknown command: %s", cmd.Command)
		}
		msg := fmt.Sprintf("Command: %s\nUsage: %s\nSummary: %s", name, usage, commandSummaries[name])
		return hint(msg), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Commands:\n")
	for _, k := range parser.Keywords() {
		if !strings.EqualFold(cmd.Command, "all") && !relevant(k, state) {
			continue
		}
		sb.WriteString(fmt.Sprintf(" - %s: %s\n", k, commandSummaries[k]))
	}
	if !strings.EqualFold(cmd.Command, "all") {
		sb.WriteString("\nUse 'help all' for a full list of commands.")
	}
	return hint(strings.TrimSpace(sb.String())), nil
}

var combatOnly = map[string]bool{
	"summon": true, "sacrifice": true, "damage": true, "heal": true,
	"act": true, "move": true, "fixture": true, "turn": true, "champion": true,
}

var outOfCombatOnly = map[string]bool{
	"ooc": true, "ability": true, "respite": true, "levelup": true,
}

// relevant filters commands down to what makes sense right now.
func relevant(cmd string, state *engine.GameState) bool {
	inCombat := state.Hero != nil && state.Hero.InCombat
	if combatOnly[cmd] {
		return inCombat
	}
	if outOfCombatOnly[cmd] {
		return !inCombat
	}
	return true
}

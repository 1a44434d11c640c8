package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Usage is the syntax of every command, keyed by its keyword.
var Usage = map[string]string{
	"summon":    "summon <template> [into <squad>] [free]",
	"sacrifice": "sacrifice <minion>+ | sacrifice for essence <minion>",
	"damage":    "damage <squad|champion|fixture> <amount>",
	"heal":      "heal <squad|champion> <amount>",
	"act":       "act <minion>",
	"move":      "move <minion>",
	"champion":  "champion <summon|recovery|action|temp <amount>>",
	"fixture":   "fixture <summon|dismiss>",
	"combat":    "combat <start [signature]|end>",
	"turn":      "turn [signature]",
	"victory":   "victory",
	"respite":   "respite",
	"levelup":   "levelup",
	"formation": "formation <horde|platoon|elite|leader>",
	"ooc":       "ooc summon <template> [for \"task\"] | ooc dismiss <minion> | ooc task <minion> \"task\"",
	"ability":   "ability <name>",
	"check":     "check <template>",
	"status":    "status",
	"list":      "list",
	"show":      "show <template>",
	"eval":      "eval \"<expression>\"",
	"hint":      "hint",
	"help":      "help [command]",
}

// Keywords returns every command keyword, sorted.
func Keywords() []string {
	out := make([]string, 0, len(Usage))
	for k := range Usage {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	cmd := strings.ToLower(strings.Fields(input)[0])
	if usage, ok := Usage[cmd]; ok {
		return fmt.Errorf("The command %s must be: %s", cmd, usage)
	}

	return fmt.Errorf("I wasn't able to understand your command")
}

package summoner

import (
	"fmt"
	"strings"
)

// Formation is the stance a summoner arranges their army in.
type Formation string

const (
	FormationHorde   Formation = "horde"
	FormationPlatoon Formation = "platoon"
	FormationElite   Formation = "elite"
	FormationLeader  Formation = "leader"
)

// Formations lists every formation in display order.
var Formations = []Formation{FormationHorde, FormationPlatoon, FormationElite, FormationLeader}

// ParseFormation maps user input onto a known formation.
func ParseFormation(s string) (Formation, error) {
	f := Formation(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formationModifiers[f]; !ok {
		return "", fmt.Errorf("unknown formation %q", s)
	}
	return f, nil
}

// Modifiers holds every formation-dependent number consumed by the engine.
type Modifiers struct {
	// CostReduction is subtracted from costs of at least CostReductionMin, never below 1.
	CostReduction       int
	CostReductionMin    int
	StaminaBonus        int
	CharacteristicBonus int
	StabilityBonus      int
	FreeStrikeBonus     int
	CapacityBonus       int
	SignatureBonus      int
	IgnoresWipeOverflow bool
	QuickCommand        QuickCommand
}

// QuickCommand is the once-per-encounter order granted by a formation.
type QuickCommand struct {
	ID          string
	Name        string
	EssenceCost int
}

var formationModifiers = map[Formation]Modifiers{
	FormationHorde: {
		CapacityBonus:  4,
		SignatureBonus: 1,
		QuickCommand:   QuickCommand{ID: "focus_fire", Name: "Focus Fire"},
	},
	FormationPlatoon: {
		FreeStrikeBonus: 1,
		QuickCommand:    QuickCommand{ID: "halt", Name: "Halt!"},
	},
	FormationElite: {
		CostReduction:       1,
		CostReductionMin:    5,
		StaminaBonus:        3,
		CharacteristicBonus: 1,
		StabilityBonus:      1,
		QuickCommand:        QuickCommand{ID: "not_yet", Name: "Not Yet!", EssenceCost: 3},
	},
	FormationLeader: {
		IgnoresWipeOverflow: true,
		QuickCommand:        QuickCommand{ID: "shield", Name: "Shield Me!"},
	},
}

// ModifiersFor returns the modifier row for f. Unknown formations get the zero row.
func ModifiersFor(f Formation) Modifiers {
	return formationModifiers[f]
}

// AdjustedCost applies the formation discount to a base essence cost.
func AdjustedCost(base int, f Formation) int {
	m := ModifiersFor(f)
	if m.CostReduction == 0 || base < m.CostReductionMin {
		return base
	}
	cost := base - m.CostReduction
	if cost < 1 {
		cost = 1
	}
	return cost
}

// FormationStaminaBonus is the flat stamina added to each minion on creation.
func FormationStaminaBonus(f Formation) int { return ModifiersFor(f).StaminaBonus }

// FormationCharacteristicBonus is added to every minion characteristic.
func FormationCharacteristicBonus(f Formation) int { return ModifiersFor(f).CharacteristicBonus }

// FormationFreeStrikeBonus is added to minion free strike damage.
func FormationFreeStrikeBonus(f Formation) int { return ModifiersFor(f).FreeStrikeBonus }

// QuickCommandFor returns the quick command unlocked by f.
func QuickCommandFor(f Formation) QuickCommand { return ModifiersFor(f).QuickCommand }

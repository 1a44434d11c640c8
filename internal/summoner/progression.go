package summoner

const (
	BaseCapacity          = 8
	MaxSquads             = 2
	MaxSquadSize          = 8
	EssencePerTurn        = 2
	MinionDeathEssence    = 1
	DefaultChampionCost   = 9
	MaxOutOfCombatMinions = 4
	MaxLevel              = 10

	FixtureUnlockLevel        = 2
	ChampionUnlockLevel       = 8
	ChampionActionUnlockLevel = 10
	NoMatterTheCostLevel      = 10
)

var levelThresholds = []int{4, 7, 10}

// xpThresholds holds the total XP needed to reach each level (index = level).
var xpThresholds = []int{0, 0, 3, 9, 18, 30, 45, 63, 84, 108, 135}

func thresholdsReached(level int) int {
	n := 0
	for _, t := range levelThresholds {
		if level >= t {
			n++
		}
	}
	return n
}

// Capacity is the maximum number of live minions for a formation and level.
func Capacity(f Formation, level int) int {
	return BaseCapacity + 4*thresholdsReached(level) + ModifiersFor(f).CapacityBonus
}

// FreeSignatureCount is the number of free signature minions at turn start.
func FreeSignatureCount(f Formation, level int) int {
	n := 3
	if level >= 7 {
		n++
	}
	return n + ModifiersFor(f).SignatureBonus
}

// CombatStartFreeCount is the number of free signature minions when combat begins.
func CombatStartFreeCount(level, victories int) int {
	if level < MaxLevel {
		return 2
	}
	return 2 + 2*(victories/2)
}

// LevelStaminaBonus is the per-minion stamina granted by level for a template tier.
func LevelStaminaBonus(tier, level int) int {
	switch tier {
	case 1:
		return thresholdsReached(level)
	case 3:
		return 3 * thresholdsReached(level)
	case 5:
		return 2 * thresholdsReached(level)
	case 7:
		bonus := 0
		if level >= 7 {
			bonus += 5
		}
		if level >= 10 {
			bonus += 5
		}
		return bonus
	default:
		return 0
	}
}

// FixtureUnlocked reports whether the fixture may be summoned at level.
func FixtureUnlocked(level int) bool { return level >= FixtureUnlockLevel }

// FixtureStamina is the fixture's stamina at level.
func FixtureStamina(base, level int) int {
	if base == 0 {
		base = 20
	}
	return base + level
}

// FixtureSize is the fixture's size at level.
func FixtureSize(level int) int {
	if level >= 9 {
		return 3
	}
	return 2
}

func ChampionUnlocked(level int) bool       { return level >= ChampionUnlockLevel }
func ChampionActionUnlocked(level int) bool { return level >= ChampionActionUnlockLevel }

// HeroMaxStamina computes the summoner's own stamina.
func HeroMaxStamina(level, kitStamina int) int {
	bonus := 0
	if level >= 2 {
		bonus = level * 6
	}
	return 15 + kitStamina + bonus
}

func WindedThreshold(maxStamina int) int { return maxStamina / 2 }
func RecoveryValue(maxStamina int) int   { return maxStamina / 3 }

// MaxRecoveries returns the number of recoveries granted by a circle.
func MaxRecoveries(c Circle) int {
	if c == CircleSpring {
		return 10
	}
	return 8
}

// XPForLevel is the total XP required to reach level.
func XPForLevel(level int) int {
	if level < 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return xpThresholds[level]
}

// CanLevelUp reports whether xp is enough to advance past level.
func CanLevelUp(level, xp int) bool {
	if level >= MaxLevel {
		return false
	}
	return xp >= xpThresholds[level+1]
}

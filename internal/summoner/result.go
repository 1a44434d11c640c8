package summoner

// FailureCode is the machine-readable reason an operation was refused.
type FailureCode string

const (
	CodeNone FailureCode = ""

	// Summon validator constraints, reported verbatim.
	CodeEssence          FailureCode = "essence"
	CodeMaxMinions       FailureCode = "maxMinions"
	CodeMaxSquads        FailureCode = "maxSquads"
	CodeSquadComposition FailureCode = "squadComposition"
	CodeSquadSize        FailureCode = "squadSize"

	CodeNoCharacter      FailureCode = "noCharacter"
	CodeUnknownTemplate  FailureCode = "unknownTemplate"
	CodeSquadNotFound    FailureCode = "squadNotFound"
	CodeMinionNotFound   FailureCode = "minionNotFound"
	CodeInvalidAmount    FailureCode = "invalidAmount"
	CodeIneligible       FailureCode = "ineligible"
	CodeLevelLocked      FailureCode = "levelLocked"
	CodeInCombat         FailureCode = "inCombat"
	CodeNotInCombat      FailureCode = "notInCombat"
	CodeFixtureActive    FailureCode = "fixtureActive"
	CodeNoFixture        FailureCode = "noFixture"
	CodeChampionActive   FailureCode = "championActive"
	CodeNoChampion       FailureCode = "noChampion"
	CodeRequiresVictory  FailureCode = "requiresVictory"
	CodeNoTemplate       FailureCode = "noTemplate"
	CodeAlreadyUsed      FailureCode = "alreadyUsed"
	CodeNoRecoveries     FailureCode = "noRecoveries"
	CodeOutOfCombatLimit FailureCode = "outOfCombatLimit"
	CodeVictories        FailureCode = "victories"
	CodeMaxLevel         FailureCode = "maxLevel"
	CodeInsufficientXP   FailureCode = "insufficientXP"
)

// NoCharacterReason is returned by every operation invoked without a character.
const NoCharacterReason = "no character loaded"

// Outcome is embedded in every operation result.
type Outcome struct {
	Success bool        `json:"success"`
	Reason  string      `json:"reason,omitempty"`
	Code    FailureCode `json:"code,omitempty"`
}

func succeed() Outcome { return Outcome{Success: true} }

func fail(code FailureCode, reason string) Outcome {
	return Outcome{Code: code, Reason: reason}
}

func noCharacter() Outcome { return fail(CodeNoCharacter, NoCharacterReason) }

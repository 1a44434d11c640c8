package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// ErrSilentIgnore alerts the runner that the request changes nothing and should drop seamlessly.
var ErrSilentIgnore = errors.New("silently ignored by summoning rules")

// ErrRejected marks a command the rules refused. The state is untouched.
var ErrRejected = errors.New("rejected by summoning rules")

// RejectionError carries the failure code of a refused operation.
type RejectionError struct {
	Code   summoner.FailureCode
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }
func (e *RejectionError) Unwrap() error { return ErrRejected }

// Reject builds the error for a refused operation.
func Reject(code summoner.FailureCode, reason string) error {
	return &RejectionError{Code: code, Reason: reason}
}

func check(o summoner.Outcome) error {
	if o.Success {
		return nil
	}
	return Reject(o.Code, o.Reason)
}

type EventType string

const (
	EventHeroCreated       EventType = "HeroCreated"
	EventFormationChanged  EventType = "FormationChanged"
	EventCombatStarted     EventType = "CombatStarted"
	EventTurnStarted       EventType = "TurnStarted"
	EventCombatEnded       EventType = "CombatEnded"
	EventMinionsSummoned   EventType = "MinionsSummoned"
	EventMinionsSacrificed EventType = "MinionsSacrificed"
	EventEssenceSacrificed EventType = "EssenceSacrificed"
	EventSquadDamaged      EventType = "SquadDamaged"
	EventSquadHealed       EventType = "SquadHealed"
	EventMinionMarked      EventType = "MinionMarked"
	EventHint              EventType = "Hint"

	EventFixtureSummoned  EventType = "FixtureSummoned"
	EventFixtureDamaged   EventType = "FixtureDamaged"
	EventFixtureDismissed EventType = "FixtureDismissed"

	EventChampionSummoned     EventType = "ChampionSummoned"
	EventChampionDamaged      EventType = "ChampionDamaged"
	EventChampionHealed       EventType = "ChampionHealed"
	EventChampionTempStamina  EventType = "ChampionTempStamina"
	EventChampionRecoveryUsed EventType = "ChampionRecoveryUsed"
	EventChampionActionUsed   EventType = "ChampionActionUsed"

	EventVictoryEarned EventType = "VictoryEarned"
	EventRespiteTaken  EventType = "RespiteTaken"
	EventLevelGained   EventType = "LevelGained"

	EventOutOfCombatSummoned    EventType = "OutOfCombatSummoned"
	EventOutOfCombatDismissed   EventType = "OutOfCombatDismissed"
	EventOutOfCombatTaskUpdated EventType = "OutOfCombatTaskUpdated"
	EventAbilityUsed            EventType = "AbilityUsed"
)

// Event is the building block of the Event Sourced engine.
type Event interface {
	Type() EventType
	Apply(state *GameState) error
	Message() string
}

// HeroCreatedEvent starts a hero's log.
type HeroCreatedEvent struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Level      int                `json:"level"`
	Formation  summoner.Formation `json:"formation"`
	Circle     summoner.Circle    `json:"circle"`
	KitStamina int                `json:"kit_stamina"`
	Signatures []string           `json:"signatures"`
}

func (e *HeroCreatedEvent) Type() EventType { return EventHeroCreated }
func (e *HeroCreatedEvent) Apply(state *GameState) error {
	if state.Hero != nil {
		return fmt.Errorf("hero %s already exists in this log", state.Hero.ID)
	}
	pt, ok := summoner.PortfolioFor(e.Circle)
	if !ok {
		return fmt.Errorf("unknown circle %q", e.Circle)
	}
	if state.catalog == nil {
		return fmt.Errorf("no portfolio catalog configured")
	}
	p, ok := state.catalog.Portfolio(pt)
	if !ok {
		return fmt.Errorf("portfolio %s is not loaded", pt)
	}
	if _, err := summoner.ParseFormation(string(e.Formation)); err != nil {
		return err
	}
	if e.Level < 1 || e.Level > summoner.MaxLevel {
		return fmt.Errorf("level must be between 1 and %d", summoner.MaxLevel)
	}
	if len(e.Signatures) > 2 {
		return fmt.Errorf("a summoner knows at most 2 signature minions")
	}
	for _, id := range e.Signatures {
		if t, ok := p.Template(id); !ok || !t.IsSignature() {
			return fmt.Errorf("%s is not a %s signature minion", id, pt)
		}
	}
	c := summoner.NewCharacter(e.ID, e.Name, e.Level, e.Formation, e.Circle, e.KitStamina)
	c.Signatures = append([]string(nil), e.Signatures...)
	state.Hero = c
	state.Portfolio = p
	return nil
}
func (e *HeroCreatedEvent) Message() string {
	return fmt.Sprintf("%s, level %d summoner of the %s circle, formation %s.", e.Name, e.Level, e.Circle, e.Formation)
}

// FormationChangedEvent switches the hero's formation.
type FormationChangedEvent struct {
	Formation summoner.Formation `json:"formation"`
}

func (e *FormationChangedEvent) Type() EventType { return EventFormationChanged }
func (e *FormationChangedEvent) Apply(state *GameState) error {
	return check(summoner.SetFormation(state.Hero, e.Formation))
}
func (e *FormationChangedEvent) Message() string {
	return fmt.Sprintf("Formation set to %s.", e.Formation)
}

// CombatStartedEvent opens an encounter.
type CombatStartedEvent struct {
	Signature string   `json:"signature,omitempty"`
	IDs       []string `json:"ids,omitempty"`

	result summoner.EncounterResult
}

func (e *CombatStartedEvent) Type() EventType { return EventCombatStarted }
func (e *CombatStartedEvent) Apply(state *GameState) error {
	t, err := state.Signature(e.Signature)
	if err != nil {
		return err
	}
	e.result = summoner.StartCombat(state.Hero, t, state.recorder(&e.IDs))
	if err := check(e.result.Outcome); err != nil {
		return err
	}
	state.PendingReduction = 0
	return nil
}
func (e *CombatStartedEvent) Message() string {
	var sb strings.Builder
	sb.WriteString("Combat started.\n")
	if e.result.Dismissed > 0 {
		sb.WriteString(fmt.Sprintf("├─ %d out-of-combat minions dismissed\n", e.result.Dismissed))
	}
	sb.WriteString(fmt.Sprintf("├─ Essence: %d★\n", e.result.EssenceGranted))
	sb.WriteString(fmt.Sprintf("└─ Free signature summons: %d", freeMinions(e.result.FreeSummons)))
	return sb.String()
}

// TurnStartedEvent begins the summoner's turn.
type TurnStartedEvent struct {
	Signature string   `json:"signature,omitempty"`
	IDs       []string `json:"ids,omitempty"`

	result summoner.EncounterResult
}

func (e *TurnStartedEvent) Type() EventType { return EventTurnStarted }
func (e *TurnStartedEvent) Apply(state *GameState) error {
	t, err := state.Signature(e.Signature)
	if err != nil {
		return err
	}
	e.result = summoner.StartTurn(state.Hero, t, state.recorder(&e.IDs))
	if err := check(e.result.Outcome); err != nil {
		return err
	}
	state.PendingReduction = 0
	return nil
}
func (e *TurnStartedEvent) Message() string {
	return fmt.Sprintf("Turn started: +%d★, %d free signature minions.", e.result.EssenceGranted, freeMinions(e.result.FreeSummons))
}

func freeMinions(rs []summoner.SummonResult) int {
	n := 0
	for _, r := range rs {
		n += len(r.MinionsCreated)
	}
	return n
}

// CombatEndedEvent closes the encounter.
type CombatEndedEvent struct{}

func (e *CombatEndedEvent) Type() EventType { return EventCombatEnded }
func (e *CombatEndedEvent) Apply(state *GameState) error {
	if err := check(summoner.EndCombat(state.Hero).Outcome); err != nil {
		return err
	}
	state.PendingReduction = 0
	return nil
}
func (e *CombatEndedEvent) Message() string { return "Combat ended." }

// MinionsSummonedEvent summons one template's worth of minions. A banked
// sacrifice discount is consumed by the next paid summon.
type MinionsSummonedEvent struct {
	TemplateID    string   `json:"template_id"`
	TargetSquadID string   `json:"target_squad_id,omitempty"`
	Free          bool     `json:"free,omitempty"`
	IDs           []string `json:"ids,omitempty"`

	name   string
	result summoner.SummonResult
}

func (e *MinionsSummonedEvent) Type() EventType { return EventMinionsSummoned }
func (e *MinionsSummonedEvent) Apply(state *GameState) error {
	t, err := state.Template(e.TemplateID)
	if err != nil {
		return err
	}
	e.name = t.Name
	e.result = summoner.ExecuteSummon(state.Hero, t, summoner.SummonOptions{
		TargetSquadID:      e.TargetSquadID,
		IsFreeSummon:       e.Free,
		SacrificeReduction: state.PendingReduction,
		IDs:                state.recorder(&e.IDs),
	})
	if err := check(e.result.Outcome); err != nil {
		return err
	}
	if !e.Free {
		state.PendingReduction = 0
	}
	return nil
}
func (e *MinionsSummonedEvent) Message() string {
	if e.result.WasFreeSummon {
		return fmt.Sprintf("Summoned %d %s into %s (free).", len(e.result.MinionsCreated), e.name, e.result.SquadID)
	}
	return fmt.Sprintf("Summoned %d %s into %s for %d★.", len(e.result.MinionsCreated), e.name, e.result.SquadID, e.result.EssenceSpent)
}

// MinionsSacrificedEvent removes minions and banks their discount for the next summon.
type MinionsSacrificedEvent struct {
	MinionIDs []string `json:"minion_ids"`

	result summoner.SacrificeResult
}

func (e *MinionsSacrificedEvent) Type() EventType { return EventMinionsSacrificed }
func (e *MinionsSacrificedEvent) Apply(state *GameState) error {
	e.result = summoner.ExecuteSacrifice(state.Hero, e.MinionIDs)
	if err := check(e.result.Outcome); err != nil {
		return err
	}
	state.PendingReduction += e.result.CostReduction
	return nil
}
func (e *MinionsSacrificedEvent) Message() string {
	return fmt.Sprintf("Sacrificed %d minions: next summon costs %d★ less.", len(e.result.SacrificedMinionIDs), e.result.CostReduction)
}

// EssenceSacrificedEvent trades a signature minion for 1 essence.
type EssenceSacrificedEvent struct {
	MinionID string `json:"minion_id"`
}

func (e *EssenceSacrificedEvent) Type() EventType { return EventEssenceSacrificed }
func (e *EssenceSacrificedEvent) Apply(state *GameState) error {
	return check(summoner.SacrificeSignatureForEssence(state.Hero, e.MinionID))
}
func (e *EssenceSacrificedEvent) Message() string {
	return fmt.Sprintf("Sacrificed %s for 1★.", e.MinionID)
}

// SquadDamagedEvent applies damage to a squad's shared pool.
type SquadDamagedEvent struct {
	SquadID string `json:"squad_id"`
	Amount  int    `json:"amount"`

	result summoner.SquadDamageResult
}

func (e *SquadDamagedEvent) Type() EventType { return EventSquadDamaged }
func (e *SquadDamagedEvent) Apply(state *GameState) error {
	e.result = summoner.DamageSquad(state.Hero, e.SquadID, e.Amount)
	return check(e.result.Outcome)
}
func (e *SquadDamagedEvent) Message() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s took %d damage.", e.SquadID, e.Amount))
	if n := len(e.result.MinionsKilled); n > 0 {
		sb.WriteString(fmt.Sprintf("\n├─ %d minions died", n))
	}
	if e.result.EssenceGained > 0 {
		sb.WriteString(fmt.Sprintf("\n├─ +%d★ from a minion death", e.result.EssenceGained))
	}
	if e.result.SquadRemoved {
		sb.WriteString("\n└─ Squad wiped")
		if e.result.OverflowDamage > 0 {
			sb.WriteString(fmt.Sprintf(", %d damage to the summoner", e.result.OverflowDamage))
		}
	}
	return sb.String()
}

// SquadHealedEvent restores a squad's pool.
type SquadHealedEvent struct {
	SquadID string `json:"squad_id"`
	Amount  int    `json:"amount"`
}

func (e *SquadHealedEvent) Type() EventType { return EventSquadHealed }
func (e *SquadHealedEvent) Apply(state *GameState) error {
	return check(summoner.HealSquad(state.Hero, e.SquadID, e.Amount))
}
func (e *SquadHealedEvent) Message() string {
	return fmt.Sprintf("%s healed for %d.", e.SquadID, e.Amount)
}

// Minion marks.
const (
	MarkActed = "acted"
	MarkMoved = "moved"
)

// MinionMarkedEvent records that a minion acted or moved this turn.
type MinionMarkedEvent struct {
	MinionID string `json:"minion_id"`
	Mark     string `json:"mark"`
}

func (e *MinionMarkedEvent) Type() EventType { return EventMinionMarked }
func (e *MinionMarkedEvent) Apply(state *GameState) error {
	switch e.Mark {
	case MarkActed:
		return check(summoner.MarkMinionActed(state.Hero, e.MinionID))
	case MarkMoved:
		return check(summoner.MarkMinionMoved(state.Hero, e.MinionID))
	}
	return fmt.Errorf("unknown minion mark %q", e.Mark)
}
func (e *MinionMarkedEvent) Message() string {
	return fmt.Sprintf("%s %s.", e.MinionID, e.Mark)
}

// HintEvent is purely for querying the current state, and is never saved to the store.
type HintEvent struct {
	MessageStr string
}

func (e *HintEvent) Type() EventType              { return EventHint }
func (e *HintEvent) Apply(state *GameState) error { return nil }
func (e *HintEvent) Message() string              { return e.MessageStr }

// FixtureSummonedEvent places the portfolio fixture.
type FixtureSummonedEvent struct{}

func (e *FixtureSummonedEvent) Type() EventType { return EventFixtureSummoned }
func (e *FixtureSummonedEvent) Apply(state *GameState) error {
	ft := state.Fixture()
	if ft == nil {
		return Reject(summoner.CodeNoTemplate, "No fixture template available in portfolio")
	}
	return check(summoner.SummonFixture(state.Hero, ft).Outcome)
}
func (e *FixtureSummonedEvent) Message() string { return "Fixture summoned." }

// FixtureDamagedEvent damages the active fixture.
type FixtureDamagedEvent struct {
	Amount int `json:"amount"`

	destroyed bool
}

func (e *FixtureDamagedEvent) Type() EventType { return EventFixtureDamaged }
func (e *FixtureDamagedEvent) Apply(state *GameState) error {
	res := summoner.DamageFixture(state.Hero, e.Amount)
	e.destroyed = res.Destroyed
	return check(res.Outcome)
}
func (e *FixtureDamagedEvent) Message() string {
	if e.destroyed {
		return fmt.Sprintf("Fixture took %d damage and was destroyed.", e.Amount)
	}
	return fmt.Sprintf("Fixture took %d damage.", e.Amount)
}

// FixtureDismissedEvent removes the fixture.
type FixtureDismissedEvent struct{}

func (e *FixtureDismissedEvent) Type() EventType { return EventFixtureDismissed }
func (e *FixtureDismissedEvent) Apply(state *GameState) error {
	return check(summoner.DismissFixture(state.Hero).Outcome)
}
func (e *FixtureDismissedEvent) Message() string { return "Fixture dismissed." }

// ChampionSummonedEvent brings the portfolio champion into play.
type ChampionSummonedEvent struct {
	result summoner.ChampionResult
}

func (e *ChampionSummonedEvent) Type() EventType { return EventChampionSummoned }
func (e *ChampionSummonedEvent) Apply(state *GameState) error {
	e.result = summoner.SummonChampion(state.Hero, state.Champion())
	return check(e.result.Outcome)
}
func (e *ChampionSummonedEvent) Message() string {
	return fmt.Sprintf("%s (%d★)", e.result.Reason, e.result.Spent)
}

// ChampionDamagedEvent damages the champion.
type ChampionDamagedEvent struct {
	Amount int `json:"amount"`

	died bool
}

func (e *ChampionDamagedEvent) Type() EventType { return EventChampionDamaged }
func (e *ChampionDamagedEvent) Apply(state *GameState) error {
	if state.Hero == nil {
		return Reject(summoner.CodeNoCharacter, summoner.NoCharacterReason)
	}
	if state.Hero.Champion == nil || !state.Hero.Champion.IsAlive {
		return Reject(summoner.CodeNoChampion, "No active champion")
	}
	e.died = summoner.DamageChampion(state.Hero, e.Amount).ChampionDied
	return nil
}
func (e *ChampionDamagedEvent) Message() string {
	if e.died {
		return fmt.Sprintf("Champion took %d damage and fell. A Victory is needed to resummon.", e.Amount)
	}
	return fmt.Sprintf("Champion took %d damage.", e.Amount)
}

// ChampionHealedEvent heals the champion.
type ChampionHealedEvent struct {
	Amount int `json:"amount"`
}

func (e *ChampionHealedEvent) Type() EventType { return EventChampionHealed }
func (e *ChampionHealedEvent) Apply(state *GameState) error {
	return check(summoner.HealChampion(state.Hero, e.Amount))
}
func (e *ChampionHealedEvent) Message() string {
	return fmt.Sprintf("Champion healed for %d.", e.Amount)
}

// ChampionTempStaminaEvent grants the champion temporary stamina.
type ChampionTempStaminaEvent struct {
	Amount int `json:"amount"`
}

func (e *ChampionTempStaminaEvent) Type() EventType { return EventChampionTempStamina }
func (e *ChampionTempStaminaEvent) Apply(state *GameState) error {
	return check(summoner.GrantChampionTemporaryStamina(state.Hero, e.Amount))
}
func (e *ChampionTempStaminaEvent) Message() string {
	return fmt.Sprintf("Champion gains %d temporary stamina.", e.Amount)
}

// ChampionRecoveryUsedEvent spends a recovery on the champion.
type ChampionRecoveryUsedEvent struct{}

func (e *ChampionRecoveryUsedEvent) Type() EventType { return EventChampionRecoveryUsed }
func (e *ChampionRecoveryUsedEvent) Apply(state *GameState) error {
	return check(summoner.UseRecoveryOnChampion(state.Hero))
}
func (e *ChampionRecoveryUsedEvent) Message() string { return "Recovery spent on the champion." }

// ChampionActionUsedEvent spends the once-per-encounter Champion Action.
type ChampionActionUsedEvent struct{}

func (e *ChampionActionUsedEvent) Type() EventType { return EventChampionActionUsed }
func (e *ChampionActionUsedEvent) Apply(state *GameState) error {
	return check(summoner.UseChampionAction(state.Hero))
}
func (e *ChampionActionUsedEvent) Message() string { return "Champion Action activated!" }

// VictoryEarnedEvent records a Victory.
type VictoryEarnedEvent struct{}

func (e *VictoryEarnedEvent) Type() EventType { return EventVictoryEarned }
func (e *VictoryEarnedEvent) Apply(state *GameState) error {
	return check(summoner.EarnVictory(state.Hero))
}
func (e *VictoryEarnedEvent) Message() string { return "Victory earned." }

// RespiteTakenEvent converts victories into XP.
type RespiteTakenEvent struct{}

func (e *RespiteTakenEvent) Type() EventType { return EventRespiteTaken }
func (e *RespiteTakenEvent) Apply(state *GameState) error {
	return check(summoner.Respite(state.Hero))
}
func (e *RespiteTakenEvent) Message() string { return "Respite taken: victories converted to XP." }

// LevelGainedEvent advances the hero one level.
type LevelGainedEvent struct {
	level int
}

func (e *LevelGainedEvent) Type() EventType { return EventLevelGained }
func (e *LevelGainedEvent) Apply(state *GameState) error {
	if err := check(summoner.LevelUp(state.Hero)); err != nil {
		return err
	}
	e.level = state.Hero.Level
	return nil
}
func (e *LevelGainedEvent) Message() string { return fmt.Sprintf("Reached level %d.", e.level) }

// OutOfCombatSummonedEvent summons a minion between encounters.
type OutOfCombatSummonedEvent struct {
	TemplateID string `json:"template_id"`
	Task       string `json:"task,omitempty"`
	MinionID   string `json:"minion_id"`

	reason string
}

func (e *OutOfCombatSummonedEvent) Type() EventType { return EventOutOfCombatSummoned }
func (e *OutOfCombatSummonedEvent) Apply(state *GameState) error {
	t, err := state.Template(e.TemplateID)
	if err != nil {
		return err
	}
	id := e.MinionID
	if id == "" && state.NewID != nil {
		id = state.NewID(summoner.KindOutOfCombat)
	}
	res := summoner.SummonOutOfCombat(state.Hero, t, e.Task, id)
	if err := check(res.Outcome); err != nil {
		return err
	}
	e.MinionID = res.MinionID
	e.reason = res.Reason
	return nil
}
func (e *OutOfCombatSummonedEvent) Message() string {
	return fmt.Sprintf("%s (%s).", e.reason, e.MinionID)
}

// OutOfCombatDismissedEvent dismisses one out-of-combat minion.
type OutOfCombatDismissedEvent struct {
	MinionID string `json:"minion_id"`
}

func (e *OutOfCombatDismissedEvent) Type() EventType { return EventOutOfCombatDismissed }
func (e *OutOfCombatDismissedEvent) Apply(state *GameState) error {
	return check(summoner.DismissOutOfCombat(state.Hero, e.MinionID))
}
func (e *OutOfCombatDismissedEvent) Message() string {
	return fmt.Sprintf("%s dismissed.", e.MinionID)
}

// OutOfCombatTaskUpdatedEvent reassigns an out-of-combat minion.
type OutOfCombatTaskUpdatedEvent struct {
	MinionID string `json:"minion_id"`
	Task     string `json:"task"`
}

func (e *OutOfCombatTaskUpdatedEvent) Type() EventType { return EventOutOfCombatTaskUpdated }
func (e *OutOfCombatTaskUpdatedEvent) Apply(state *GameState) error {
	return check(summoner.UpdateOutOfCombatTask(state.Hero, e.MinionID, e.Task))
}
func (e *OutOfCombatTaskUpdatedEvent) Message() string {
	return fmt.Sprintf("%s now: %s.", e.MinionID, e.Task)
}

// AbilityUsedEvent spends an out-of-combat ability.
type AbilityUsedEvent struct {
	AbilityID string `json:"ability_id"`
}

func (e *AbilityUsedEvent) Type() EventType { return EventAbilityUsed }
func (e *AbilityUsedEvent) Apply(state *GameState) error {
	return check(summoner.UseOutOfCombatAbility(state.Hero, e.AbilityID))
}
func (e *AbilityUsedEvent) Message() string {
	return fmt.Sprintf("%s used (free outside combat).", e.AbilityID)
}

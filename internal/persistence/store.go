package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
)

// EventWrapper facilitates serialization of polymorphic events
type EventWrapper struct {
	Type  engine.EventType `json:"type"`
	Event json.RawMessage  `json:"data"`
}

// Store handles append-only storing of a hero's event log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append takes an Event interface and marshals it to jsonl log.
func (s *Store) Append(evt engine.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", evt.Type(), err)
	}

	wrapperData, err := json.Marshal(EventWrapper{Type: evt.Type(), Event: data})
	if err != nil {
		return fmt.Errorf("failed to encode wrapper: %w", err)
	}

	if _, err := s.file.Write(append(wrapperData, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return s.file.Sync()
}

// Load replays all jsonl strings and unpacks them to Event slice.
func (s *Store) Load() ([]engine.Event, error) {
	var events []engine.Event

	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var wrapper EventWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode wrapper: %w", err)
		}

		evt, err := newEvent(wrapper.Type)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(wrapper.Event, evt); err != nil {
			return nil, fmt.Errorf("failed to parse %s event data: %w", wrapper.Type, err)
		}

		events = append(events, evt)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}

func newEvent(t engine.EventType) (engine.Event, error) {
	switch t {
	case engine.EventHeroCreated:
		return &engine.HeroCreatedEvent{}, nil
	case engine.EventFormationChanged:
		return &engine.FormationChangedEvent{}, nil
	case engine.EventCombatStarted:
		return &engine.CombatStartedEvent{}, nil
	case engine.EventTurnStarted:
		return &engine.TurnStartedEvent{}, nil
	case engine.EventCombatEnded:
		return &engine.CombatEndedEvent{}, nil
	case engine.EventMinionsSummoned:
		return &engine.MinionsSummonedEvent{}, nil
	case engine.EventMinionsSacrificed:
		return &engine.MinionsSacrificedEvent{}, nil
	case engine.EventEssenceSacrificed:
		return &engine.EssenceSacrificedEvent{}, nil
	case engine.EventSquadDamaged:
		return &engine.SquadDamagedEvent{}, nil
	case engine.EventSquadHealed:
		return &engine.SquadHealedEvent{}, nil
	case engine.EventMinionMarked:
		return &engine.MinionMarkedEvent{}, nil
	case engine.EventFixtureSummoned:
		return &engine.FixtureSummonedEvent{}, nil
	case engine.EventFixtureDamaged:
		return &engine.FixtureDamagedEvent{}, nil
	case engine.EventFixtureDismissed:
		return &engine.FixtureDismissedEvent{}, nil
	case engine.EventChampionSummoned:
		return &engine.ChampionSummonedEvent{}, nil
	case engine.EventChampionDamaged:
		return &engine.ChampionDamagedEvent{}, nil
	case engine.EventChampionHealed:
		return &engine.ChampionHealedEvent{}, nil
	case engine.EventChampionTempStamina:
		return &engine.ChampionTempStaminaEvent{}, nil
	case engine.EventChampionRecoveryUsed:
		return &engine.ChampionRecoveryUsedEvent{}, nil
	case engine.EventChampionActionUsed:
		return &engine.ChampionActionUsedEvent{}, nil
	case engine.EventVictoryEarned:
		return &engine.VictoryEarnedEvent{}, nil
	case engine.EventRespiteTaken:
		return &engine.RespiteTakenEvent{}, nil
	case engine.EventLevelGained:
		return &engine.LevelGainedEvent{}, nil
	case engine.EventOutOfCombatSummoned:
		return &engine.OutOfCombatSummonedEvent{}, nil
	case engine.EventOutOfCombatDismissed:
		return &engine.OutOfCombatDismissedEvent{}, nil
	case engine.EventOutOfCombatTaskUpdated:
		return &engine.OutOfCombatTaskUpdatedEvent{}, nil
	case engine.EventAbilityUsed:
		return &engine.AbilityUsedEvent{}, nil
	}
	return nil, fmt.Errorf("unknown event type in log: %s", t)
}

package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendLoad(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")

	store, err := NewStore(logPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	err = store.Append(&engine.HeroCreatedEvent{
		ID:         "vex",
		Name:       "Vex",
		Level:      3,
		Formation:  summoner.FormationHorde,
		Circle:     summoner.CircleBlight,
		Signatures: []string{"demon_razor", "demon_rasquine"},
	})
	if err != nil {
		t.Fatalf("failed to append hero created: %v", err)
	}

	err = store.Append(&engine.MinionsSummonedEvent{
		TemplateID: "demon_razor",
		Free:       true,
		IDs:        []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("failed to append summon: %v", err)
	}

	events, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events loaded, got %d", len(events))
	}

	e1, ok := events[0].(*engine.HeroCreatedEvent)
	if !ok {
		t.Errorf("expected first event to be HeroCreatedEvent")
	} else if e1.Formation != summoner.FormationHorde || e1.Level != 3 {
		t.Errorf("unexpected hero payload: %+v", e1)
	}

	e2, ok := events[1].(*engine.MinionsSummonedEvent)
	if !ok {
		t.Errorf("expected second event to be MinionsSummonedEvent")
	} else {
		assert.True(t, e2.Free)
		assert.Equal(t, []string{"a", "b"}, e2.IDs)
	}
}

func TestStoreEveryEventRoundTrips(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "log.jsonl"))
	require.NoError(t, err)
	defer store.Close()

	all := []engine.Event{
		&engine.HeroCreatedEvent{ID: "vex"},
		&engine.FormationChangedEvent{Formation: summoner.FormationElite},
		&engine.CombatStartedEvent{Signature: "demon_razor"},
		&engine.TurnStartedEvent{},
		&engine.CombatEndedEvent{},
		&engine.MinionsSummonedEvent{TemplateID: "x"},
		&engine.MinionsSacrificedEvent{MinionIDs: []string{"a"}},
		&engine.EssenceSacrificedEvent{MinionID: "a"},
		&engine.SquadDamagedEvent{SquadID: "s", Amount: 3},
		&engine.SquadHealedEvent{SquadID: "s", Amount: 1},
		&engine.MinionMarkedEvent{MinionID: "a", Mark: engine.MarkMoved},
		&engine.FixtureSummonedEvent{},
		&engine.FixtureDamagedEvent{Amount: 2},
		&engine.FixtureDismissedEvent{},
		&engine.ChampionSummonedEvent{},
		&engine.ChampionDamagedEvent{Amount: 4},
		&engine.ChampionHealedEvent{Amount: 4},
		&engine.ChampionTempStaminaEvent{Amount: 5},
		&engine.ChampionRecoveryUsedEvent{},
		&engine.ChampionActionUsedEvent{},
		&engine.VictoryEarnedEvent{},
		&engine.RespiteTakenEvent{},
		&engine.LevelGainedEvent{},
		&engine.OutOfCombatSummonedEvent{TemplateID: "x", Task: "watch", MinionID: "o"},
		&engine.OutOfCombatDismissedEvent{MinionID: "o"},
		&engine.OutOfCombatTaskUpdatedEvent{MinionID: "o", Task: "dig"},
		&engine.AbilityUsedEvent{AbilityID: "hex"},
	}
	for _, evt := range all {
		require.NoError(t, store.Append(evt))
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(all))
	for i := range all {
		assert.Equal(t, all[i].Type(), loaded[i].Type())
	}
	assert.Equal(t, all[8], loaded[8])
}

func TestStoreRejectsUnknownEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Teleported","data":{}}`+"\n"), 0644))

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load()
	assert.ErrorContains(t, err, "unknown event type")
}

func TestHeroManager(t *testing.T) {
	mgr := NewHeroManager(t.TempDir())

	ids, err := mgr.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	store, err := mgr.Create("vex")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = mgr.Create("vex")
	assert.Error(t, err, "duplicate hero")

	store, err = mgr.Load("vex")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = mgr.Load("ghost")
	assert.Error(t, err)

	_, err = mgr.Create("../escape")
	assert.Error(t, err)

	ids, err = mgr.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"vex"}, ids)
}

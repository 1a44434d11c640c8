package command_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/command"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/data"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog map[summoner.PortfolioType]*summoner.Portfolio

func (c catalog) Portfolio(t summoner.PortfolioType) (*summoner.Portfolio, bool) {
	p, ok := c[t]
	return p, ok
}

var demons = catalog{
	summoner.PortfolioDemon: {
		Type: summoner.PortfolioDemon,
		Signatures: []*summoner.MinionTemplate{
			{ID: "demon_razor", Name: "Razor", EssenceCost: 1, MinionsPerSummon: 1, Stamina: []int{2}},
		},
		Unlocked: []*summoner.MinionTemplate{
			{ID: "demon_archer_spittlich", Name: "Archer Spittlich", EssenceCost: 3, MinionsPerSummon: 2, Stamina: []int{5}},
			{ID: "demon_gorrre", Name: "Gorrre", EssenceCost: 7, MinionsPerSummon: 2, Stamina: []int{9}, Unlock: "hero.level >= 5"},
		},
		Fixture: &summoner.FixtureTemplate{ID: "fixture_the_boil", Name: "The Boil", BaseStamina: 20},
	},
}

func newState(t *testing.T, level int) *engine.GameState {
	t.Helper()
	state, err := engine.NewProjector(demons).Build([]engine.Event{
		&engine.HeroCreatedEvent{
			ID: "vex", Name: "Vex", Level: level,
			Formation:  summoner.FormationPlatoon,
			Circle:     summoner.CircleBlight,
			Signatures: []string{"demon_razor"},
		},
	})
	require.NoError(t, err)
	return state
}

func run(t *testing.T, input string, state *engine.GameState, reg *rules.Registry) ([]engine.Event, error) {
	t.Helper()
	cmd, err := parser.Build().ParseString("", input)
	require.NoError(t, err)
	return command.Execute(cmd, state, reg)
}

func TestExecuteSummon(t *testing.T) {
	reg, err := rules.NewRegistry()
	require.NoError(t, err)

	t.Run("emits summon event", func(t *testing.T) {
		events, err := run(t, "summon demon_razor into squad-9 free", newState(t, 1), reg)
		require.NoError(t, err)
		require.Len(t, events, 1)
		evt, ok := events[0].(*engine.MinionsSummonedEvent)
		require.True(t, ok)
		assert.Equal(t, "demon_razor", evt.TemplateID)
		assert.Equal(t, "squad-9", evt.TargetSquadID)
		assert.True(t, evt.Free)
	})

	t.Run("free is for signature minions only", func(t *testing.T) {
		_, err := run(t, "summon demon_archer_spittlich free", newState(t, 1), reg)
		require.Error(t, err)
		var rej *engine.RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, summoner.CodeIneligible, rej.Code)

		_, err = run(t, "summon demon_archer_spittlich", newState(t, 1), reg)
		assert.NoError(t, err)
	})

	t.Run("unknown template is rejected", func(t *testing.T) {
		_, err := run(t, "summon demon_nope", newState(t, 1), reg)
		assert.ErrorIs(t, err, engine.ErrRejected)
	})

	t.Run("unlock gate blocks low levels", func(t *testing.T) {
		_, err := run(t, "summon demon_gorrre", newState(t, 4), reg)
		require.Error(t, err)
		var rej *engine.RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, summoner.CodeLevelLocked, rej.Code)

		_, err = run(t, "summon demon_gorrre", newState(t, 5), reg)
		assert.NoError(t, err)
	})

	t.Run("gate is skipped without a registry", func(t *testing.T) {
		_, err := run(t, "summon demon_gorrre", newState(t, 1), nil)
		assert.NoError(t, err)
	})
}

func TestBundledTierLevelGates(t *testing.T) {
	reg, err := rules.NewRegistry()
	require.NoError(t, err)
	cat, err := data.NewLoader(nil).LoadCatalog(reg)
	require.NoError(t, err)

	heroAt := func(level int) *engine.GameState {
		events := []engine.Event{&engine.HeroCreatedEvent{
			ID: "vex", Name: "Vex", Level: level,
			Formation:  summoner.FormationPlatoon,
			Circle:     summoner.CircleBlight,
			Signatures: []string{"demon_razor"},
		}}
		for i := 0; i < 7; i++ {
			events = append(events, &engine.VictoryEarnedEvent{})
		}
		state, err := engine.NewProjector(cat).Build(append(events, &engine.CombatStartedEvent{}))
		require.NoError(t, err)
		return state
	}
	locked := func(t *testing.T, err error) {
		t.Helper()
		var rej *engine.RejectionError
		require.True(t, errors.As(err, &rej), "expected a rejection, got %v", err)
		assert.Equal(t, summoner.CodeLevelLocked, rej.Code)
	}

	cases := []struct {
		input string
		level int
		open  bool
	}{
		{"summon demon_gorrre", 1, false},
		{"summon demon_gorrre", 4, false},
		{"summon demon_gorrre", 5, true},
		{"summon demon_hulking_chimor", 1, false},
		{"summon demon_hulking_chimor", 2, true},
		{"summon demon_archer_spittlich", 1, true},
		{"check demon_vicisittante", 1, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s at level %d", tc.input, tc.level), func(t *testing.T) {
			_, err := run(t, tc.input, heroAt(tc.level), reg)
			if tc.open {
				assert.NoError(t, err)
			} else {
				locked(t, err)
			}
		})
	}

	t.Run("check reports the gate", func(t *testing.T) {
		events, err := run(t, "check demon_gorrre", heroAt(1), reg)
		require.NoError(t, err)
		assert.Contains(t, events[0].Message(), "locked")
	})

	t.Run("out of combat summons are gated too", func(t *testing.T) {
		state, err := engine.NewProjector(cat).Build([]engine.Event{&engine.HeroCreatedEvent{
			ID: "vex", Name: "Vex", Level: 1,
			Formation: summoner.FormationPlatoon, Circle: summoner.CircleBlight,
		}})
		require.NoError(t, err)
		state.Hero.Victories = 7
		_, err = run(t, "ooc summon demon_faded_blightling", state, reg)
		locked(t, err)
	})

	for _, pt := range data.PortfolioTypes {
		p, ok := cat.Portfolio(pt)
		require.True(t, ok)
		for _, tmpl := range p.Templates() {
			switch tmpl.EssenceCost {
			case 5:
				assert.Equal(t, "hero.level >= 2", tmpl.Unlock, tmpl.ID)
			case 7:
				assert.Equal(t, "hero.level >= 5", tmpl.Unlock, tmpl.ID)
			default:
				assert.Empty(t, tmpl.Unlock, tmpl.ID)
			}
		}
	}
}

func TestExecuteRouting(t *testing.T) {
	state := newState(t, 1)

	cases := []struct {
		input string
		want  engine.EventType
	}{
		{"sacrifice minion-1 minion-2", engine.EventMinionsSacrificed},
		{"sacrifice for essence minion-1", engine.EventEssenceSacrificed},
		{"damage squad-1 3", engine.EventSquadDamaged},
		{"damage champion 3", engine.EventChampionDamaged},
		{"damage fixture 3", engine.EventFixtureDamaged},
		{"heal champion 2", engine.EventChampionHealed},
		{"heal squad-1 2", engine.EventSquadHealed},
		{"act minion-1", engine.EventMinionMarked},
		{"champion summon", engine.EventChampionSummoned},
		{"champion temp 4", engine.EventChampionTempStamina},
		{"champion action", engine.EventChampionActionUsed},
		{"fixture dismiss", engine.EventFixtureDismissed},
		{"combat start", engine.EventCombatStarted},
		{"combat end", engine.EventCombatEnded},
		{"turn", engine.EventTurnStarted},
		{"victory", engine.EventVictoryEarned},
		{"respite", engine.EventRespiteTaken},
		{"levelup", engine.EventLevelGained},
		{"formation elite", engine.EventFormationChanged},
		{`ooc summon demon_razor for "scout"`, engine.EventOutOfCombatSummoned},
		{"ooc dismiss ooc-1", engine.EventOutOfCombatDismissed},
		{`ooc task ooc-1 "watch"`, engine.EventOutOfCombatTaskUpdated},
		{"ability shadow_step", engine.EventAbilityUsed},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			events, err := run(t, tc.input, state, nil)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tc.want, events[0].Type())
			assert.False(t, command.IsQuery(events))
		})
	}
}

func TestExecuteArgumentErrors(t *testing.T) {
	state := newState(t, 1)
	for _, input := range []string{
		"sacrifice for essence minion-1 minion-2",
		"champion temp",
		"ooc task ooc-1",
		"formation swarm",
		"heal fixture 3",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := run(t, input, state, nil)
			assert.Error(t, err)
		})
	}
}

func TestQueries(t *testing.T) {
	reg, err := rules.NewRegistry()
	require.NoError(t, err)
	state := newState(t, 1)

	t.Run("status", func(t *testing.T) {
		events, err := run(t, "status", state, reg)
		require.NoError(t, err)
		assert.True(t, command.IsQuery(events))
		assert.Contains(t, events[0].Message(), "Vex, level 1 blight summoner")
	})

	t.Run("list marks locked templates", func(t *testing.T) {
		events, err := run(t, "list", state, reg)
		require.NoError(t, err)
		msg := events[0].Message()
		assert.Contains(t, msg, "demon_gorrre (Gorrre) 7★ x2 locked")
		assert.Contains(t, msg, "champion: none")
	})

	t.Run("check previews essence", func(t *testing.T) {
		events, err := run(t, "check demon_archer_spittlich", state, reg)
		require.NoError(t, err)
		msg := events[0].Message()
		assert.True(t, strings.HasPrefix(msg, "Archer Spittlich cannot be summoned"))
		assert.Contains(t, msg, "Essence: 0/3★")
	})

	t.Run("show", func(t *testing.T) {
		events, err := run(t, "show demon_razor", state, reg)
		require.NoError(t, err)
		assert.Contains(t, events[0].Message(), "Razor (demon_razor)")
	})

	t.Run("eval", func(t *testing.T) {
		events, err := run(t, `eval "hero.level + 1"`, state, reg)
		require.NoError(t, err)
		assert.Equal(t, "2", events[0].Message())
	})

	t.Run("hint out of combat", func(t *testing.T) {
		events, err := run(t, "hint", state, reg)
		require.NoError(t, err)
		assert.Contains(t, events[0].Message(), "Out of combat with 0 victories.")
	})

	t.Run("help for one command", func(t *testing.T) {
		events, err := run(t, "help summon", state, reg)
		require.NoError(t, err)
		assert.Contains(t, events[0].Message(), "Usage: summon <template> [into <squad>] [free]")
	})

	t.Run("help hides combat commands out of combat", func(t *testing.T) {
		events, err := run(t, "help", state, reg)
		require.NoError(t, err)
		assert.NotContains(t, events[0].Message(), " - summon:")
		assert.Contains(t, events[0].Message(), " - ooc:")
	})
}

func TestHintInCombat(t *testing.T) {
	state := newState(t, 1)
	require.NoError(t, (&engine.CombatStartedEvent{}).Apply(state))
	state.Hero.Ledger.Balance = 3

	events, err := command.ExecuteHint(state, nil)
	require.NoError(t, err)
	msg := events[0].Message()
	assert.Contains(t, msg, "Round 1, 3★ available.")
	assert.Contains(t, msg, "demon_archer_spittlich (3★)")
}

func TestNewID(t *testing.T) {
	a := command.NewID(summoner.KindMinion)
	b := command.NewID(summoner.KindMinion)
	assert.True(t, strings.HasPrefix(a, "minion-"))
	assert.Len(t, a, len("minion-")+8)
	assert.NotEqual(t, a, b)
}

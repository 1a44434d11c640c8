package summoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSummon(t *testing.T) {
	t.Run("spends adjusted essence and bakes stamina", func(t *testing.T) {
		c := newHero(10, FormationElite)
		c.Ledger.Balance = 10

		res := ExecuteSummon(c, chimor, SummonOptions{})
		require.True(t, res.Success, res.Reason)
		assert.Equal(t, 4, res.EssenceSpent)
		assert.Equal(t, 6, c.Ledger.Balance)
		assert.Len(t, res.MinionsCreated, 3)

		squad, ok := c.Squad(res.SquadID)
		require.True(t, ok)
		for _, m := range squad.Members {
			assert.Equal(t, 7+3+6, m.MaxStamina)
			assert.Equal(t, 5, m.Tier)
		}
		assert.Equal(t, 48, squad.MaxStamina)
		assert.Equal(t, 48, squad.CurrentStamina)
	})

	t.Run("merges into a compatible squad", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		c.Ledger.Balance = 2

		first := ExecuteSummon(c, razor, SummonOptions{})
		second := ExecuteSummon(c, razor, SummonOptions{})
		require.True(t, second.Success)
		assert.Equal(t, first.SquadID, second.SquadID)
		require.Len(t, c.Squads, 1)
		assert.Len(t, c.Squads[0].Members, 2)
		assert.Equal(t, 4, c.Squads[0].MaxStamina)
		assert.Equal(t, 0, c.Ledger.Balance)
	})

	t.Run("uses supplied ids in order", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		c.Ledger.Balance = 3

		res := ExecuteSummon(c, spittlich, SummonOptions{IDs: sequence("x")})
		require.True(t, res.Success)
		assert.Equal(t, []string{"x-minion-1", "x-minion-2"}, res.MinionsCreated)
		assert.Equal(t, "x-squad-3", res.SquadID)
	})

	t.Run("free summon spends nothing", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		res := ExecuteSummon(c, razor, SummonOptions{IsFreeSummon: true})
		require.True(t, res.Success)
		assert.True(t, res.WasFreeSummon)
		assert.Equal(t, 0, res.EssenceSpent)
	})

	t.Run("rejection leaves state untouched", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		c.Ledger.Balance = 3

		res := ExecuteSummon(c, chimor, SummonOptions{})
		assert.False(t, res.Success)
		assert.Equal(t, CodeEssence, res.Code)
		assert.Equal(t, 3, c.Ledger.Balance)
		assert.Empty(t, c.Squads)
	})

	t.Run("squad limits cap one template at two full squads", func(t *testing.T) {
		c := newHero(10, FormationHorde)
		created := 0
		for i := 0; i < 30; i++ {
			if ExecuteSummon(c, razor, SummonOptions{IsFreeSummon: true}).Success {
				created++
			}
		}
		assert.Equal(t, 16, created)
		assert.Equal(t, 16, c.LiveMinionCount())
	})
}

func TestSquadInvariants(t *testing.T) {
	c := newHero(10, FormationHorde)
	c.Ledger.Balance = 100
	for i := 0; i < 12; i++ {
		ExecuteSummon(c, razor, SummonOptions{})
		ExecuteSummon(c, spittlich, SummonOptions{})
		ExecuteSummon(c, rasquine, SummonOptions{})
	}

	assert.LessOrEqual(t, len(c.Squads), MaxSquads)
	assert.LessOrEqual(t, c.LiveMinionCount(), Capacity(c.Formation, c.Level))
	assert.GreaterOrEqual(t, c.Ledger.Balance, 0)
	for _, s := range c.Squads {
		assert.GreaterOrEqual(t, len(s.Members), 1)
		assert.LessOrEqual(t, len(s.Members), MaxSquadSize)
		for _, m := range s.Members {
			assert.Equal(t, s.TemplateID, m.TemplateID)
		}
	}
}

func TestDamageSquad(t *testing.T) {
	t.Run("pool damage kills one minion per threshold", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		for i := 0; i < 3; i++ {
			require.True(t, ExecuteSummon(c, razor, SummonOptions{IsFreeSummon: true}).Success)
		}
		id := c.Squads[0].ID

		res := DamageSquad(c, id, 3)
		require.True(t, res.Success)
		assert.Len(t, res.MinionsKilled, 1)
		assert.Equal(t, 1, res.EssenceGained)
		assert.Equal(t, 1, c.Ledger.Balance)

		s, _ := c.Squad(id)
		assert.Len(t, s.Members, 2)
		assert.Equal(t, 3, s.CurrentStamina)
		assert.Equal(t, 4, s.MaxStamina)

		res = DamageSquad(c, id, 2)
		assert.Len(t, res.MinionsKilled, 1)
		assert.Equal(t, 0, res.EssenceGained, "death essence is once per round")
		assert.Equal(t, 0, res.OverflowDamage)
		s, _ = c.Squad(id)
		assert.Len(t, s.Members, 1)
		assert.Equal(t, 1, s.CurrentStamina)
	})

	t.Run("wipe spills onto the summoner", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		res := ExecuteSummon(c, razor, SummonOptions{IsFreeSummon: true})

		dmg := DamageSquad(c, res.SquadID, 5)
		assert.True(t, dmg.SquadRemoved)
		assert.Equal(t, 3, dmg.OverflowDamage)
		assert.Equal(t, 12, c.CurrentStamina)
		assert.Empty(t, c.Squads)
	})

	t.Run("leader ignores wipe overflow", func(t *testing.T) {
		c := newHero(1, FormationLeader)
		res := ExecuteSummon(c, razor, SummonOptions{IsFreeSummon: true})

		dmg := DamageSquad(c, res.SquadID, 5)
		assert.True(t, dmg.SquadRemoved)
		assert.Equal(t, 0, dmg.OverflowDamage)
		assert.Equal(t, 15, c.CurrentStamina)
	})

	t.Run("heal is capped", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		c.Ledger.Balance = 3
		res := ExecuteSummon(c, spittlich, SummonOptions{})
		DamageSquad(c, res.SquadID, 3)

		require.True(t, HealSquad(c, res.SquadID, 50).Success)
		s, _ := c.Squad(res.SquadID)
		assert.Equal(t, s.MaxStamina, s.CurrentStamina)
	})

	t.Run("unknown squad", func(t *testing.T) {
		res := DamageSquad(newHero(1, FormationPlatoon), "ghost", 1)
		assert.Equal(t, CodeSquadNotFound, res.Code)
	})
}

func TestFixtureLifecycle(t *testing.T) {
	c := newHero(5, FormationPlatoon)
	res := SummonFixture(c, boil)
	require.True(t, res.Success)
	assert.Equal(t, 25, c.Fixture.MaxStamina)
	assert.Equal(t, 2, c.Fixture.Size)

	dmg := DamageFixture(c, 10)
	assert.False(t, dmg.Destroyed)
	assert.Equal(t, 15, c.Fixture.CurrentStamina)

	dmg = DamageFixture(c, 15)
	assert.True(t, dmg.Destroyed)
	assert.Nil(t, c.Fixture)

	assert.Equal(t, CodeNoFixture, DismissFixture(c).Code)
}

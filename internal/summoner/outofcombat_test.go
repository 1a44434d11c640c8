package summoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutOfCombatSummons(t *testing.T) {
	t.Run("victory gate follows tier", func(t *testing.T) {
		c := newHero(5, FormationPlatoon)
		c.Victories = 2

		res := SummonOutOfCombat(c, spittlich, "", "")
		assert.False(t, res.Success)
		assert.Equal(t, CodeVictories, res.Code)
		assert.Equal(t, "Requires 3 Victories to summon (have 2)", res.Reason)

		c.Victories = 3
		res = SummonOutOfCombat(c, spittlich, "scout the ridge", "")
		require.True(t, res.Success)
		assert.Equal(t, "Archer Spittlich summoned for scout the ridge", res.Reason)
		assert.NotEmpty(t, res.MinionID)
	})

	t.Run("signatures need no victories", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		res := SummonOutOfCombat(c, razor, "", "ooc-a")
		require.True(t, res.Success)
		assert.Equal(t, "ooc-a", res.MinionID)
		assert.Equal(t, "Razor summoned", res.Reason)
	})

	t.Run("at most four", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		for i := 0; i < MaxOutOfCombatMinions; i++ {
			require.True(t, SummonOutOfCombat(c, razor, "", "").Success)
		}
		res := SummonOutOfCombat(c, razor, "", "")
		assert.Equal(t, CodeOutOfCombatLimit, res.Code)
		assert.Equal(t, "Maximum 4 minions outside combat", res.Reason)
	})

	t.Run("denied during combat", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		c.InCombat = true
		res := SummonOutOfCombat(c, razor, "", "")
		assert.Equal(t, CodeInCombat, res.Code)
	})

	t.Run("tasks and dismissal", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		res := SummonOutOfCombat(c, razor, "", "")
		require.True(t, res.Success)

		require.True(t, UpdateOutOfCombatTask(c, res.MinionID, "carry the lantern").Success)
		assert.Equal(t, "carry the lantern", c.OutOfCombat.Minions[0].Task)

		require.True(t, DismissOutOfCombat(c, res.MinionID).Success)
		assert.Empty(t, c.OutOfCombat.Minions)
		assert.Equal(t, CodeMinionNotFound, DismissOutOfCombat(c, res.MinionID).Code)
	})

	t.Run("combat start dismisses them", func(t *testing.T) {
		c := newHero(1, FormationPlatoon)
		require.True(t, SummonOutOfCombat(c, razor, "", "").Success)
		require.True(t, SummonOutOfCombat(c, rasquine, "", "").Success)

		res := StartCombat(c, razor, nil)
		require.True(t, res.Success)
		assert.Equal(t, 2, res.Dismissed)
		assert.Empty(t, c.OutOfCombat.Minions)
	})
}

func TestOutOfCombatAbility(t *testing.T) {
	c := newHero(1, FormationPlatoon)

	res := UseOutOfCombatAbility(c, "hellfire")
	require.True(t, res.Success)
	assert.Equal(t, "Ability used (free outside combat)", res.Reason)

	res = UseOutOfCombatAbility(c, "hellfire")
	assert.Equal(t, CodeAlreadyUsed, res.Code)

	require.True(t, EarnVictory(c).Success)
	assert.True(t, UseOutOfCombatAbility(c, "hellfire").Success)

	require.True(t, Respite(c).Success)
	assert.True(t, UseOutOfCombatAbility(c, "hellfire").Success)

	c.InCombat = true
	assert.Equal(t, "Use normal ability rules during combat", UseOutOfCombatAbility(c, "hellfire").Reason)
}

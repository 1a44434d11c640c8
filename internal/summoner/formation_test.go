package summoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedCost(t *testing.T) {
	assert.Equal(t, 6, AdjustedCost(7, FormationElite))
	assert.Equal(t, 1, AdjustedCost(1, FormationElite))
	assert.Equal(t, 3, AdjustedCost(3, FormationElite))
	assert.Equal(t, 4, AdjustedCost(5, FormationElite))
	assert.Equal(t, 8, AdjustedCost(9, FormationElite))

	for _, f := range []Formation{FormationHorde, FormationPlatoon, FormationLeader} {
		assert.Equal(t, 7, AdjustedCost(7, f), string(f))
	}
}

func TestFormationModifiers(t *testing.T) {
	assert.Equal(t, 3, FormationStaminaBonus(FormationElite))
	assert.Equal(t, 0, FormationStaminaBonus(FormationHorde))
	assert.Equal(t, 1, FormationCharacteristicBonus(FormationElite))
	assert.Equal(t, 1, FormationFreeStrikeBonus(FormationPlatoon))
	assert.True(t, ModifiersFor(FormationLeader).IgnoresWipeOverflow)
	assert.False(t, ModifiersFor(FormationHorde).IgnoresWipeOverflow)

	qc := QuickCommandFor(FormationElite)
	assert.Equal(t, "not_yet", qc.ID)
	assert.Equal(t, 3, qc.EssenceCost)
	assert.Equal(t, "focus_fire", QuickCommandFor(FormationHorde).ID)
}

func TestParseFormation(t *testing.T) {
	f, err := ParseFormation(" Horde ")
	require.NoError(t, err)
	assert.Equal(t, FormationHorde, f)

	_, err = ParseFormation("phalanx")
	assert.Error(t, err)
}

func TestCharacteristicsPlus(t *testing.T) {
	base := Characteristics{Might: 2, Agility: 0, Reason: -1, Intuition: -1, Presence: -1}
	got := base.Plus(FormationCharacteristicBonus(FormationElite))
	assert.Equal(t, Characteristics{Might: 3, Agility: 1, Reason: 0, Intuition: 0, Presence: 0}, got)
}

package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderEmbeddedFallback(t *testing.T) {
	// No external directories: everything comes from the bundled set.
	l := NewLoader(nil)

	demon, err := l.LoadPortfolio(summoner.PortfolioDemon)
	if err != nil {
		t.Fatalf("Failed to load embedded portfolio: %v", err)
	}

	if len(demon.Signatures) != 3 {
		t.Errorf("Expected 3 demon signatures, got %d", len(demon.Signatures))
	}

	razor, ok := demon.Template("demon_razor")
	require.True(t, ok)
	assert.Equal(t, 1, razor.EssenceCost)
	assert.Equal(t, []int{2}, razor.Stamina)

	gorrre, ok := demon.Template("demon_gorrre")
	require.True(t, ok)
	assert.Equal(t, 7, gorrre.Tier())
	assert.Equal(t, 2, gorrre.PerSummon())

	require.NotNil(t, demon.Fixture)
	assert.Equal(t, "The Boil", demon.Fixture.Name)
	assert.Equal(t, 20, demon.Fixture.BaseStamina)
	require.NotNil(t, demon.Fixture.Level5Feature)
	assert.Len(t, demon.Fixture.Level9, 2)

	require.NotNil(t, demon.Champion)
	assert.Equal(t, 9, demon.Champion.Cost())
}

func TestLoadCatalog(t *testing.T) {
	reg, err := rules.NewRegistry()
	require.NoError(t, err)

	cat, err := NewLoader(nil).LoadCatalog(reg)
	require.NoError(t, err)

	for _, pt := range PortfolioTypes {
		p, ok := cat.Portfolio(pt)
		require.True(t, ok, pt)
		assert.NotEmpty(t, p.Signatures, pt)
		assert.NotEmpty(t, p.Unlocked, pt)
		assert.NotNil(t, p.Fixture, pt)
		for _, tmpl := range p.Templates() {
			assert.NotEmpty(t, tmpl.Stamina, tmpl.ID)
		}
	}

	undead, ok := cat.ForCircle(summoner.CircleGraves)
	require.True(t, ok)
	knight, ok := undead.Template("undead_grave_knight")
	require.True(t, ok)
	require.NotNil(t, knight.SignatureAbility)
	assert.Equal(t, "might", knight.SignatureAbility.PowerRoll.Characteristic)

	fey, _ := cat.Portfolio(summoner.PortfolioFey)
	assert.Nil(t, fey.Champion)
}

func TestLoaderPrefersDataDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "portfolios"), 0755))
	custom := `type: demon
signatures:
  - id: demon_imp
    name: Imp
    essence_cost: 1
    stamina: 3
unlocked:
  - id: demon_brute
    name: Brute
    essence_cost: 3
    minions_per_summon: 2
    stamina: [6, 6]
    unlock: "hero.victories >= 2"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolios", "demon.yaml"), []byte(custom), 0644))

	l := NewLoader([]string{dir})
	p, err := l.LoadPortfolio(summoner.PortfolioDemon)
	require.NoError(t, err)
	require.Len(t, p.Signatures, 1)
	assert.Equal(t, "Imp", p.Signatures[0].Name)

	brute, ok := p.Template("demon_brute")
	require.True(t, ok)
	assert.Equal(t, []int{6, 6}, brute.Stamina)
	assert.Equal(t, "hero.victories >= 2", brute.Unlock)

	// Other portfolios still come from the bundled set.
	fey, err := l.LoadPortfolio(summoner.PortfolioFey)
	require.NoError(t, err)
	assert.NotEmpty(t, fey.Signatures)
}

func TestPortfolioValidation(t *testing.T) {
	cases := map[string]PortfolioFile{
		"bad tier": {Type: "demon", Signatures: []Minion{{ID: "a", Name: "A", EssenceCost: 2, Stamina: Stamina{1}}}},
		"expensive signature": {Type: "demon", Signatures: []Minion{{ID: "a", Name: "A", EssenceCost: 3, Stamina: Stamina{1}}}},
		"duplicate id": {Type: "demon", Signatures: []Minion{
			{ID: "a", Name: "A", EssenceCost: 1, Stamina: Stamina{1}},
			{ID: "a", Name: "B", EssenceCost: 1, Stamina: Stamina{1}},
		}},
		"no stamina":    {Type: "demon", Signatures: []Minion{{ID: "a", Name: "A", EssenceCost: 1}}},
		"no signatures": {Type: "demon"},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Portfolio()
			assert.Error(t, err)
		})
	}
}

func TestBadUnlockExpressionFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "portfolios"), 0755))
	custom := `type: demon
signatures:
  - id: demon_imp
    name: Imp
    essence_cost: 1
    stamina: 3
    unlock: "hero.level >="
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolios", "demon.yaml"), []byte(custom), 0644))

	reg, err := rules.NewRegistry()
	require.NoError(t, err)
	_, err = NewLoader([]string{dir}).LoadCatalog(reg)
	assert.ErrorContains(t, err, "demon_imp")
}

func TestBundled(t *testing.T) {
	files, names, err := Bundled()
	require.NoError(t, err)
	assert.Len(t, names, 4)
	assert.Contains(t, files, "portfolios/demon.yaml")
}

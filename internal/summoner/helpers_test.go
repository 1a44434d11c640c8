package summoner

import "fmt"

var (
	razor     = &MinionTemplate{ID: "demon_razor", Name: "Razor", EssenceCost: 1, MinionsPerSummon: 1, Stamina: []int{2}}
	rasquine  = &MinionTemplate{ID: "demon_rasquine", Name: "Rasquine", EssenceCost: 1, MinionsPerSummon: 1, Stamina: []int{2}}
	spittlich = &MinionTemplate{ID: "demon_archer_spittlich", Name: "Archer Spittlich", EssenceCost: 3, MinionsPerSummon: 2, Stamina: []int{5}}
	chimor    = &MinionTemplate{ID: "demon_hulking_chimor", Name: "Hulking Chimor", EssenceCost: 5, MinionsPerSummon: 3, Stamina: []int{7, 7, 7}}
	gorrre    = &MinionTemplate{ID: "demon_gorrre", Name: "Gorrre", EssenceCost: 7, MinionsPerSummon: 2, Stamina: []int{17, 17}}

	aspect = &ChampionTemplate{ID: "demon_aspect", Name: "Aspect of Blight", EssenceCost: 9, Stamina: 40}
	boil   = &FixtureTemplate{ID: "fixture_the_boil", Name: "The Boil", BaseStamina: 20}
)

func newHero(level int, f Formation) *Character {
	return NewCharacter("hero-1", "Vex", level, f, CircleBlight, 0)
}

// sequence returns an id source yielding prefix-kind-1, prefix-kind-2, ...
func sequence(prefix string) IDSource {
	n := 0
	return func(kind string) string {
		n++
		return fmt.Sprintf("%s-%s-%d", prefix, kind, n)
	}
}

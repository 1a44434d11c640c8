package rules

import (
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// HeroContext converts a summoner into a map suitable for CEL evaluation.
func HeroContext(c *summoner.Character) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	squads := make([]any, 0, len(c.Squads))
	for _, s := range c.Squads {
		squads = append(squads, map[string]any{
			"id":              s.ID,
			"template":        s.TemplateID,
			"members":         len(s.Members),
			"current_stamina": s.CurrentStamina,
			"max_stamina":     s.MaxStamina,
		})
	}
	return map[string]any{
		"id":              c.ID,
		"name":            c.Name,
		"level":           c.Level,
		"xp":              c.XP,
		"victories":       c.Victories,
		"formation":       string(c.Formation),
		"circle":          string(c.Circle),
		"portfolio":       string(c.Portfolio),
		"essence":         c.Ledger.Balance,
		"minions":         c.LiveMinionCount(),
		"capacity":        summoner.Capacity(c.Formation, c.Level),
		"squads":          squads,
		"in_combat":       c.InCombat,
		"round":           c.Round,
		"stamina":         c.CurrentStamina,
		"max_stamina":     c.MaxStamina,
		"winded":          c.IsWinded(),
		"recoveries":      c.Recoveries,
		"champion":        string(c.ChampionPhase()),
		"fixture":         c.Fixture != nil,
		"free_signatures": summoner.FreeSignatureCount(c.Formation, c.Level),
		"ooc_minions":     len(c.OutOfCombat.Minions),
	}
}

// TemplateContext converts a minion template into a CEL map.
func TemplateContext(t *summoner.MinionTemplate) map[string]any {
	if t == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":         t.ID,
		"name":       t.Name,
		"tier":       t.Tier(),
		"cost":       t.EssenceCost,
		"per_summon": t.PerSummon(),
		"role":       t.Role,
		"keywords":   t.Keywords,
		"signature":  t.IsSignature(),
	}
}

// BuildEvalContext binds the hero and an optional template under their variable names.
func BuildEvalContext(c *summoner.Character, t *summoner.MinionTemplate) map[string]any {
	return map[string]any{
		"hero":     HeroContext(c),
		"template": TemplateContext(t),
	}
}

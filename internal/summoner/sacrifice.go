package summoner

import "fmt"

// SacrificeResult is returned by ExecuteSacrifice.
type SacrificeResult struct {
	Outcome
	CostReduction       int      `json:"cost_reduction"`
	SacrificedMinionIDs []string `json:"sacrificed_minion_ids"`
}

// CanSacrifice reports whether a minion may be sacrificed right now.
func CanSacrifice(m *Minion) bool {
	return m != nil && m.IsAlive && !m.HasActed && !m.HasMoved
}

// EligibleForSacrifice lists every live minion that has neither acted nor moved this turn.
func EligibleForSacrifice(squads []*Squad) []*Minion {
	var out []*Minion
	for _, s := range squads {
		for _, m := range s.Members {
			if CanSacrifice(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

// CostReduction counts one essence per sacrificed minion, or each minion's
// base tier once the summoner reaches level 10.
func CostReduction(minions []*Minion, level int) int {
	if level < NoMatterTheCostLevel {
		return len(minions)
	}
	total := 0
	for _, m := range minions {
		tier := m.Tier
		if tier <= 0 {
			tier = 1
		}
		total += tier
	}
	return total
}

// ExecuteSacrifice removes the named minions and reports the essence
// reduction they grant to the next summon. Nothing changes unless every
// target is eligible.
func ExecuteSacrifice(c *Character, minionIDs []string) SacrificeResult {
	if c == nil {
		return SacrificeResult{Outcome: noCharacter()}
	}
	if len(minionIDs) == 0 {
		return SacrificeResult{Outcome: succeed(), SacrificedMinionIDs: []string{}}
	}

	seen := make(map[string]bool, len(minionIDs))
	targets := make([]*Minion, 0, len(minionIDs))
	for _, id := range minionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		m, _, ok := c.Minion(id)
		if !ok {
			return SacrificeResult{Outcome: fail(CodeMinionNotFound, fmt.Sprintf("Minion %s not found", id))}
		}
		if !CanSacrifice(m) {
			return SacrificeResult{Outcome: fail(CodeIneligible, "Minion has already acted or moved this turn")}
		}
		targets = append(targets, m)
	}

	reduction := CostReduction(targets, c.Level)
	removed := make([]string, 0, len(targets))
	for _, m := range targets {
		_, s, _ := c.Minion(m.ID)
		s.remove(m.ID)
		if len(s.Members) == 0 {
			c.dropSquad(s.ID)
		}
		removed = append(removed, m.ID)
	}

	return SacrificeResult{Outcome: succeed(), CostReduction: reduction, SacrificedMinionIDs: removed}
}

// SacrificeSignatureForEssence removes one signature minion to gain 1 essence, once per turn.
func SacrificeSignatureForEssence(c *Character, minionID string) Outcome {
	if c == nil {
		return noCharacter()
	}
	m, s, ok := c.Minion(minionID)
	if !ok {
		return fail(CodeMinionNotFound, fmt.Sprintf("Minion %s not found", minionID))
	}
	if m.Tier != 1 {
		return fail(CodeIneligible, "Only signature minions can be sacrificed for essence")
	}
	if c.Ledger.SacrificedThisTurn {
		return fail(CodeAlreadyUsed, "Already sacrificed a minion for essence this turn")
	}
	c.Ledger.SacrificeForEssence()
	s.remove(m.ID)
	if len(s.Members) == 0 {
		c.dropSquad(s.ID)
	}
	return succeed()
}

package summoner

// EncounterResult is returned by the combat and turn boundary operations.
type EncounterResult struct {
	Outcome
	EssenceGranted int            `json:"essence_granted"`
	FreeSummons    []SummonResult `json:"free_summons,omitempty"`
	Dismissed      int            `json:"dismissed,omitempty"`
}

// StartCombat opens an encounter: out-of-combat minions leave, essence starts
// at the current victories and free signature minions arrive.
func StartCombat(c *Character, signature *MinionTemplate, ids IDSource) EncounterResult {
	if c == nil {
		return EncounterResult{Outcome: noCharacter()}
	}
	if c.InCombat {
		return EncounterResult{Outcome: fail(CodeInCombat, "Combat already started")}
	}

	res := EncounterResult{Outcome: succeed()}
	if c.OutOfCombat.ShouldDismissOnCombatStart {
		res.Dismissed = len(c.OutOfCombat.Minions)
		DismissAllOutOfCombat(c)
	}

	c.InCombat = true
	c.Round = 1
	c.Squads = make([]*Squad, 0)
	c.Ledger = Ledger{Balance: c.Victories}
	res.EssenceGranted = c.Victories
	ResetChampionForEncounter(c)

	res.FreeSummons = SummonFreeSignatures(c, signature, CombatStartFreeCount(c.Level, c.Victories), ids)
	return res
}

// StartTurn grants the per-turn essence, re-arms once-per-round and
// once-per-turn gates, and summons the free signature minions.
func StartTurn(c *Character, signature *MinionTemplate, ids IDSource) EncounterResult {
	if c == nil {
		return EncounterResult{Outcome: noCharacter()}
	}
	if !c.InCombat {
		return EncounterResult{Outcome: fail(CodeNotInCombat, "Not in combat")}
	}

	c.Round++
	res := EncounterResult{Outcome: succeed()}
	res.EssenceGranted = c.Ledger.GrantTurnStart()
	c.Ledger.ResetRound()
	ResetMinionActions(c)
	ResetChampionTurn(c)

	res.FreeSummons = SummonFreeSignatures(c, signature, FreeSignatureCount(c.Formation, c.Level), ids)
	return res
}

// EndCombat closes the encounter and clears everything tied to it.
func EndCombat(c *Character) EncounterResult {
	if c == nil {
		return EncounterResult{Outcome: noCharacter()}
	}
	if !c.InCombat {
		return EncounterResult{Outcome: fail(CodeNotInCombat, "Not in combat")}
	}
	c.InCombat = false
	c.Round = 0
	c.Squads = make([]*Squad, 0)
	c.Fixture = nil
	ResetChampionForEncounter(c)
	return EncounterResult{Outcome: succeed()}
}

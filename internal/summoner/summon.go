package summoner

// SummonResult is returned by ExecuteSummon.
type SummonResult struct {
	Outcome
	SquadID        string   `json:"squad_id,omitempty"`
	MinionsCreated []string `json:"minions_created,omitempty"`
	EssenceSpent   int      `json:"essence_spent"`
	WasFreeSummon  bool     `json:"was_free_summon"`
}

// ExecuteSummon validates and applies a summon: spends essence, builds the
// minions and merges them into a squad or starts a new one.
func ExecuteSummon(c *Character, t *MinionTemplate, opts SummonOptions) SummonResult {
	v := ValidateSummon(c, t, opts)
	if !v.CanSummon {
		return SummonResult{Outcome: fail(v.FailedConstraint, v.Message)}
	}

	spent := 0
	if !opts.IsFreeSummon && v.Details.RequiredEssence > 0 {
		if !c.Ledger.Spend(v.Details.RequiredEssence) {
			return SummonResult{Outcome: fail(CodeEssence, "Failed to spend essence")}
		}
		spent = v.Details.RequiredEssence
	}

	minions := make([]*Minion, 0, t.PerSummon())
	created := make([]string, 0, t.PerSummon())
	for i := 0; i < t.PerSummon(); i++ {
		m := Instantiate(t, c.Formation, c.Level, i, c.newID(opts.IDs, KindMinion))
		minions = append(minions, m)
		created = append(created, m.ID)
	}

	var squad *Squad
	if opts.TargetSquadID != "" {
		squad, _ = c.Squad(opts.TargetSquadID)
		squad.add(minions)
	} else {
		newID := ""
		if FindCompatibleSquad(c.Squads, t.ID, len(minions)) == nil {
			newID = c.newID(opts.IDs, KindSquad)
		}
		c.Squads, squad = MergeOrCreate(c.Squads, t, minions, newID)
	}

	return SummonResult{
		Outcome:        succeed(),
		SquadID:        squad.ID,
		MinionsCreated: created,
		EssenceSpent:   spent,
		WasFreeSummon:  opts.IsFreeSummon,
	}
}

// SummonFreeSignatures adds up to count free signature minions of templateID,
// stopping silently at the first constraint that would be broken.
func SummonFreeSignatures(c *Character, t *MinionTemplate, count int, ids IDSource) []SummonResult {
	if c == nil || t == nil || !t.IsSignature() {
		return nil
	}
	var out []SummonResult
	for i := 0; i < count; i++ {
		res := ExecuteSummon(c, t, SummonOptions{IsFreeSummon: true, IDs: ids})
		if !res.Success {
			break
		}
		out = append(out, res)
	}
	return out
}

// FixtureResult is returned by fixture operations.
type FixtureResult struct {
	Outcome
	Fixture   *Fixture `json:"fixture,omitempty"`
	Destroyed bool     `json:"destroyed,omitempty"`
}

// SummonFixture places the portfolio fixture.
func SummonFixture(c *Character, ft *FixtureTemplate) FixtureResult {
	v := ValidateFixture(c)
	if !v.CanSummon {
		return FixtureResult{Outcome: fail(v.Code, v.Message)}
	}
	if ft == nil {
		return FixtureResult{Outcome: fail(CodeNoTemplate, "No fixture in portfolio")}
	}
	stamina := FixtureStamina(ft.BaseStamina, c.Level)
	c.Fixture = &Fixture{
		TemplateID:     ft.ID,
		CurrentStamina: stamina,
		MaxStamina:     stamina,
		Size:           FixtureSize(c.Level),
		IsActive:       true,
	}
	return FixtureResult{Outcome: succeed(), Fixture: c.Fixture}
}

// DamageFixture reduces fixture stamina and removes it at zero.
func DamageFixture(c *Character, amount int) FixtureResult {
	if c == nil {
		return FixtureResult{Outcome: noCharacter()}
	}
	if c.Fixture == nil || !c.Fixture.IsActive {
		return FixtureResult{Outcome: fail(CodeNoFixture, "No active fixture")}
	}
	if amount < 0 {
		return FixtureResult{Outcome: fail(CodeInvalidAmount, "Damage must not be negative")}
	}
	c.Fixture.CurrentStamina -= amount
	if c.Fixture.CurrentStamina <= 0 {
		c.Fixture = nil
		return FixtureResult{Outcome: succeed(), Destroyed: true}
	}
	return FixtureResult{Outcome: succeed(), Fixture: c.Fixture}
}

// DismissFixture removes the fixture.
func DismissFixture(c *Character) FixtureResult {
	if c == nil {
		return FixtureResult{Outcome: noCharacter()}
	}
	if c.Fixture == nil {
		return FixtureResult{Outcome: fail(CodeNoFixture, "No active fixture")}
	}
	c.Fixture = nil
	return FixtureResult{Outcome: succeed(), Destroyed: true}
}

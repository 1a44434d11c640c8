package summoner

import "fmt"

// SummonOptions tunes a single summon request.
type SummonOptions struct {
	// TargetSquadID merges into a specific squad instead of picking one.
	TargetSquadID      string
	IsFreeSummon       bool
	SacrificeReduction int
	// IDs supplies minion ids first, then the new squad id if one is created.
	IDs IDSource
}

// ValidationDetails carries the numbers behind a verdict for display.
type ValidationDetails struct {
	CurrentEssence  int  `json:"current_essence"`
	RequiredEssence int  `json:"required_essence"`
	CurrentMinions  int  `json:"current_minions"`
	MaxMinions      int  `json:"max_minions"`
	CurrentSquads   int  `json:"current_squads"`
	MaxSquads       int  `json:"max_squads"`
	MinionsToSummon int  `json:"minions_to_summon"`
	IsFreeSummon    bool `json:"is_free_summon"`
	TargetSquadSize int  `json:"target_squad_size,omitempty"`
}

// ValidationResult is the verdict of ValidateSummon. Reason is the short form, Message the long one.
type ValidationResult struct {
	CanSummon        bool              `json:"can_summon"`
	Reason           string            `json:"reason,omitempty"`
	Message          string            `json:"message,omitempty"`
	FailedConstraint FailureCode       `json:"failed_constraint,omitempty"`
	Details          ValidationDetails `json:"details"`
}

// RequiredEssence is the essence a summon of t costs after formation and sacrifice.
func RequiredEssence(t *MinionTemplate, f Formation, sacrificeReduction int) int {
	cost := AdjustedCost(t.EssenceCost, f) - sacrificeReduction
	if cost < 0 {
		return 0
	}
	return cost
}

// ValidateSummon decides whether t may be summoned. Checks run essence,
// max minions, max squads, squad composition, squad size and stop at the
// first failure.
func ValidateSummon(c *Character, t *MinionTemplate, opts SummonOptions) ValidationResult {
	if c == nil {
		return ValidationResult{Reason: NoCharacterReason, Message: NoCharacterReason, FailedConstraint: CodeNoCharacter}
	}
	if t == nil {
		return ValidationResult{Reason: "Unknown minion", Message: "Unknown minion template", FailedConstraint: CodeUnknownTemplate}
	}

	count := t.PerSummon()
	required := RequiredEssence(t, c.Formation, opts.SacrificeReduction)
	d := ValidationDetails{
		CurrentEssence:  c.Ledger.Balance,
		RequiredEssence: required,
		CurrentMinions:  c.LiveMinionCount(),
		MaxMinions:      Capacity(c.Formation, c.Level),
		CurrentSquads:   len(c.Squads),
		MaxSquads:       MaxSquads,
		MinionsToSummon: count,
		IsFreeSummon:    opts.IsFreeSummon,
	}
	reject := func(code FailureCode, reason, message string) ValidationResult {
		return ValidationResult{Reason: reason, Message: message, FailedConstraint: code, Details: d}
	}

	if !opts.IsFreeSummon && required > c.Ledger.Balance {
		return reject(CodeEssence,
			fmt.Sprintf("Need %d★", required),
			fmt.Sprintf("Insufficient essence: need %d, have %d", required, c.Ledger.Balance))
	}

	if d.CurrentMinions+count > d.MaxMinions {
		return reject(CodeMaxMinions,
			fmt.Sprintf("%d/%d minions", d.CurrentMinions, d.MaxMinions),
			fmt.Sprintf("Would exceed max minions: %d > %d", d.CurrentMinions+count, d.MaxMinions))
	}

	var target *Squad
	if opts.TargetSquadID != "" {
		s, ok := c.Squad(opts.TargetSquadID)
		if !ok {
			return reject(CodeSquadNotFound, "No squad", fmt.Sprintf("Squad %s not found", opts.TargetSquadID))
		}
		target = s
		d.TargetSquadSize = len(s.Members)
	}

	if target == nil && len(c.Squads) >= MaxSquads && FindCompatibleSquad(c.Squads, t.ID, count) == nil {
		return reject(CodeMaxSquads,
			fmt.Sprintf("%d/%d squads", len(c.Squads), MaxSquads),
			fmt.Sprintf("Maximum squads reached (%d/%d) and no compatible squad available", len(c.Squads), MaxSquads))
	}

	if target != nil && target.TemplateID != t.ID {
		return reject(CodeSquadComposition, "Wrong type", "All minions in a squad must have the same name")
	}

	if target != nil && len(target.Members)+count > MaxSquadSize {
		return reject(CodeSquadSize, "Squad full",
			fmt.Sprintf("Would exceed squad size: %d > %d", len(target.Members)+count, MaxSquadSize))
	}

	return ValidationResult{CanSummon: true, Message: "Can summon", Details: d}
}

// FixtureValidation is the verdict of ValidateFixture.
type FixtureValidation struct {
	CanSummon     bool        `json:"can_summon"`
	Message       string      `json:"message"`
	Code          FailureCode `json:"code,omitempty"`
	HeroLevel     int         `json:"hero_level"`
	RequiredLevel int         `json:"required_level"`
	FixtureActive bool        `json:"fixture_active"`
}

// ValidateFixture checks the level gate and that no fixture is already active.
func ValidateFixture(c *Character) FixtureValidation {
	if c == nil {
		return FixtureValidation{Message: NoCharacterReason, Code: CodeNoCharacter, RequiredLevel: FixtureUnlockLevel}
	}
	v := FixtureValidation{
		HeroLevel:     c.Level,
		RequiredLevel: FixtureUnlockLevel,
		FixtureActive: c.Fixture != nil && c.Fixture.IsActive,
	}
	switch {
	case !FixtureUnlocked(c.Level):
		v.Code = CodeLevelLocked
		v.Message = fmt.Sprintf("Fixture unlocks at Level %d", FixtureUnlockLevel)
	case v.FixtureActive:
		v.Code = CodeFixtureActive
		v.Message = "Fixture is already active"
	default:
		v.CanSummon = true
		v.Message = "Fixture can be summoned"
	}
	return v
}

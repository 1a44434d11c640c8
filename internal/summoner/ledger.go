package summoner

// Ledger is the essence pool. Balance never drops below zero.
type Ledger struct {
	Balance                   int  `json:"balance"`
	GainedThisTurn            int  `json:"gained_this_turn"`
	RoundMinionDeathBonusUsed bool `json:"round_minion_death_bonus_used"`
	SacrificedThisTurn        bool `json:"sacrificed_this_turn"`
}

// Gain adds essence. Non-positive amounts are ignored.
func (l *Ledger) Gain(amount int) {
	if amount <= 0 {
		return
	}
	l.Balance += amount
	l.GainedThisTurn += amount
}

// GrantTurnStart adds the flat per-turn essence.
func (l *Ledger) GrantTurnStart() int {
	l.Balance += EssencePerTurn
	l.GainedThisTurn = EssencePerTurn
	l.SacrificedThisTurn = false
	return EssencePerTurn
}

// GrantOnMinionDeath adds essence the first time a minion dies in a round.
func (l *Ledger) GrantOnMinionDeath() bool {
	if l.RoundMinionDeathBonusUsed {
		return false
	}
	l.Gain(MinionDeathEssence)
	l.RoundMinionDeathBonusUsed = true
	return true
}

// ResetRound re-arms the once-per-round minion death grant.
func (l *Ledger) ResetRound() {
	l.RoundMinionDeathBonusUsed = false
}

// Spend removes amount from the balance, or does nothing and returns false.
func (l *Ledger) Spend(amount int) bool {
	if amount < 0 || amount > l.Balance {
		return false
	}
	l.Balance -= amount
	return true
}

// SacrificeForEssence grants 1 essence for sacrificing a signature minion, once per turn.
func (l *Ledger) SacrificeForEssence() bool {
	if l.SacrificedThisTurn {
		return false
	}
	l.SacrificedThisTurn = true
	l.Gain(1)
	return true
}

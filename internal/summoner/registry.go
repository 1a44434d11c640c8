package summoner

// Minion is a live summoned creature. It belongs to exactly one squad.
type Minion struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	Tier       int    `json:"tier"`
	IsAlive    bool   `json:"is_alive"`
	MaxStamina int    `json:"max_stamina"`
	HasActed   bool   `json:"has_acted"`
	HasMoved   bool   `json:"has_moved"`
}

// Squad groups minions of one template around a shared stamina pool.
type Squad struct {
	ID             string    `json:"id"`
	TemplateID     string    `json:"template_id"`
	Members        []*Minion `json:"members"`
	CurrentStamina int       `json:"current_stamina"`
	MaxStamina     int       `json:"max_stamina"`
}

// SquadDamageResult reports the fallout of damage dealt to a squad pool.
type SquadDamageResult struct {
	Outcome
	MinionsKilled  []string `json:"minions_killed"`
	OverflowDamage int      `json:"overflow_damage"`
	SquadRemoved   bool     `json:"squad_removed"`
	EssenceGained  int      `json:"essence_gained"`
}

// Instantiate builds a minion with stamina baked in from template, formation and level.
func Instantiate(t *MinionTemplate, f Formation, level, index int, id string) *Minion {
	return &Minion{
		ID:         id,
		TemplateID: t.ID,
		Tier:       t.Tier(),
		IsAlive:    true,
		MaxStamina: t.BaseStamina(index) + FormationStaminaBonus(f) + LevelStaminaBonus(t.Tier(), level),
	}
}

// FindCompatibleSquad returns a squad of the same template with room for count more members.
func FindCompatibleSquad(squads []*Squad, templateID string, count int) *Squad {
	for _, s := range squads {
		if s.TemplateID == templateID && len(s.Members)+count <= MaxSquadSize {
			return s
		}
	}
	return nil
}

// MergeOrCreate adds minions to a compatible squad, or appends a new squad seeded with them.
func MergeOrCreate(squads []*Squad, t *MinionTemplate, minions []*Minion, newSquadID string) ([]*Squad, *Squad) {
	if target := FindCompatibleSquad(squads, t.ID, len(minions)); target != nil {
		target.add(minions)
		return squads, target
	}
	s := &Squad{ID: newSquadID, TemplateID: t.ID}
	s.add(minions)
	return append(squads, s), s
}

func (s *Squad) add(minions []*Minion) {
	for _, m := range minions {
		s.Members = append(s.Members, m)
		s.CurrentStamina += m.MaxStamina
		s.MaxStamina += m.MaxStamina
	}
}

// remove drops a member and its stamina contribution from the pool.
func (s *Squad) remove(minionID string) (*Minion, bool) {
	for i, m := range s.Members {
		if m.ID != minionID {
			continue
		}
		s.Members = append(s.Members[:i], s.Members[i+1:]...)
		s.MaxStamina -= m.MaxStamina
		s.CurrentStamina -= m.MaxStamina
		if s.CurrentStamina < 0 {
			s.CurrentStamina = 0
		}
		return m, true
	}
	return nil, false
}

// LiveCount is the number of living members.
func (s *Squad) LiveCount() int {
	n := 0
	for _, m := range s.Members {
		if m.IsAlive {
			n++
		}
	}
	return n
}

// Squad finds a live squad by id.
func (c *Character) Squad(id string) (*Squad, bool) {
	for _, s := range c.Squads {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Minion finds a live minion and the squad that owns it.
func (c *Character) Minion(id string) (*Minion, *Squad, bool) {
	for _, s := range c.Squads {
		for _, m := range s.Members {
			if m.ID == id {
				return m, s, true
			}
		}
	}
	return nil, nil, false
}

// LiveMinionCount totals the living minions across all squads.
func (c *Character) LiveMinionCount() int {
	n := 0
	for _, s := range c.Squads {
		n += s.LiveCount()
	}
	return n
}

func (c *Character) dropSquad(id string) {
	for i, s := range c.Squads {
		if s.ID == id {
			c.Squads = append(c.Squads[:i], c.Squads[i+1:]...)
			return
		}
	}
}

// DamageSquad applies damage to a squad pool. Each full minion's worth of
// pool damage kills the next member; a wiped squad spills 2+level damage onto
// the summoner unless the formation ignores it.
func DamageSquad(c *Character, squadID string, amount int) SquadDamageResult {
	if c == nil {
		return SquadDamageResult{Outcome: noCharacter()}
	}
	s, ok := c.Squad(squadID)
	if !ok {
		return SquadDamageResult{Outcome: fail(CodeSquadNotFound, "Squad not found")}
	}
	if amount < 0 {
		return SquadDamageResult{Outcome: fail(CodeInvalidAmount, "Damage must not be negative")}
	}

	res := SquadDamageResult{Outcome: succeed()}
	s.CurrentStamina -= amount
	wiped := s.CurrentStamina < 0

	for len(s.Members) > 0 && s.MaxStamina-s.CurrentStamina >= s.Members[0].MaxStamina {
		m := s.Members[0]
		s.Members = s.Members[1:]
		s.MaxStamina -= m.MaxStamina
		m.IsAlive = false
		res.MinionsKilled = append(res.MinionsKilled, m.ID)
		if c.Ledger.GrantOnMinionDeath() {
			res.EssenceGained += MinionDeathEssence
		}
	}
	if s.CurrentStamina < 0 {
		s.CurrentStamina = 0
	}

	if wiped && !ModifiersFor(c.Formation).IgnoresWipeOverflow {
		res.OverflowDamage = 2 + c.Level
		c.CurrentStamina -= res.OverflowDamage
	}
	if len(s.Members) == 0 {
		c.dropSquad(s.ID)
		res.SquadRemoved = true
	}
	return res
}

// HealSquad restores pool stamina up to the pool maximum.
func HealSquad(c *Character, squadID string, amount int) Outcome {
	if c == nil {
		return noCharacter()
	}
	s, ok := c.Squad(squadID)
	if !ok {
		return fail(CodeSquadNotFound, "Squad not found")
	}
	if amount < 0 {
		return fail(CodeInvalidAmount, "Healing must not be negative")
	}
	s.CurrentStamina += amount
	if s.CurrentStamina > s.MaxStamina {
		s.CurrentStamina = s.MaxStamina
	}
	return succeed()
}

// MarkMinionActed flags a minion as having acted this turn.
func MarkMinionActed(c *Character, minionID string) Outcome {
	return markMinion(c, minionID, func(m *Minion) { m.HasActed = true })
}

// MarkMinionMoved flags a minion as having moved this turn.
func MarkMinionMoved(c *Character, minionID string) Outcome {
	return markMinion(c, minionID, func(m *Minion) { m.HasMoved = true })
}

func markMinion(c *Character, minionID string, mark func(*Minion)) Outcome {
	if c == nil {
		return noCharacter()
	}
	m, _, ok := c.Minion(minionID)
	if !ok {
		return fail(CodeMinionNotFound, "Minion not found")
	}
	mark(m)
	return succeed()
}

// ResetMinionActions clears per-turn action flags on every minion.
func ResetMinionActions(c *Character) {
	if c == nil {
		return
	}
	for _, s := range c.Squads {
		for _, m := range s.Members {
			m.HasActed = false
			m.HasMoved = false
		}
	}
}

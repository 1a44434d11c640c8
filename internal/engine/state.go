package engine

import (
	"encoding/json"
	"fmt"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

// Catalog resolves the portfolio a hero summons from.
type Catalog interface {
	Portfolio(t summoner.PortfolioType) (*summoner.Portfolio, bool)
}

// IDGenerator mints identifiers of a kind for newly created minions and squads.
type IDGenerator func(kind string) string

// GameState is the actively calculated projection of a hero's event log.
type GameState struct {
	Hero *summoner.Character `json:"hero"`
	// PendingReduction is the essence discount banked by the last sacrifice.
	PendingReduction int `json:"pending_reduction"`

	Portfolio *summoner.Portfolio `json:"-"`
	// NewID is used once an event runs out of recorded ids. When nil the
	// hero sequence is used and nothing is recorded.
	NewID   IDGenerator `json:"-"`
	catalog Catalog
}

// NewGameState creates an empty clean slate bound to a catalog.
func NewGameState(cat Catalog) *GameState {
	return &GameState{catalog: cat}
}

// RestoreState rebuilds a state from its JSON projection and re-binds the portfolio.
func RestoreState(cat Catalog, data []byte) (*GameState, error) {
	s := NewGameState(cat)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if s.Hero == nil {
		return s, nil
	}
	if cat == nil {
		return nil, fmt.Errorf("no portfolio catalog configured")
	}
	p, ok := cat.Portfolio(s.Hero.Portfolio)
	if !ok {
		return nil, fmt.Errorf("portfolio %s is not loaded", s.Hero.Portfolio)
	}
	s.Portfolio = p
	return s, nil
}

// Template resolves a minion template from the hero's portfolio.
func (s *GameState) Template(id string) (*summoner.MinionTemplate, error) {
	if s.Hero == nil {
		return nil, Reject(summoner.CodeNoCharacter, summoner.NoCharacterReason)
	}
	t, ok := s.Portfolio.Template(id)
	if !ok {
		return nil, Reject(summoner.CodeUnknownTemplate, fmt.Sprintf("Unknown minion template %q", id))
	}
	return t, nil
}

// Signature returns the signature template used for free summons. An empty
// id picks the hero's first chosen signature.
func (s *GameState) Signature(id string) (*summoner.MinionTemplate, error) {
	if s.Hero == nil {
		return nil, Reject(summoner.CodeNoCharacter, summoner.NoCharacterReason)
	}
	if id == "" {
		if len(s.Hero.Signatures) > 0 {
			id = s.Hero.Signatures[0]
		} else if s.Portfolio != nil && len(s.Portfolio.Signatures) > 0 {
			id = s.Portfolio.Signatures[0].ID
		}
	}
	t, err := s.Template(id)
	if err != nil {
		return nil, err
	}
	if !t.IsSignature() {
		return nil, Reject(summoner.CodeIneligible, fmt.Sprintf("%s is not a signature minion", t.Name))
	}
	return t, nil
}

// Fixture returns the portfolio fixture template, if any.
func (s *GameState) Fixture() *summoner.FixtureTemplate {
	if s.Portfolio == nil {
		return nil
	}
	return s.Portfolio.Fixture
}

// Champion returns the portfolio champion template, if any.
func (s *GameState) Champion() *summoner.ChampionTemplate {
	if s.Portfolio == nil {
		return nil
	}
	return s.Portfolio.Champion
}

// recorder replays the ids already recorded on an event, then mints new
// ones and records them so the event replays identically.
func (s *GameState) recorder(ids *[]string) summoner.IDSource {
	i := 0
	return func(kind string) string {
		if i < len(*ids) {
			i++
			return (*ids)[i-1]
		}
		if s.NewID == nil {
			return s.Hero.NextID(kind)
		}
		id := s.NewID(kind)
		*ids = append(*ids, id)
		i++
		return id
	}
}

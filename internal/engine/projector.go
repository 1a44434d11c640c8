package engine

// Projector computes GameState from the Event sequence
type Projector struct {
	catalog Catalog
}

// NewProjector creates a projector that resolves portfolios from cat.
func NewProjector(cat Catalog) *Projector {
	return &Projector{catalog: cat}
}

// Build folds the standard apply functions.
func (p *Projector) Build(events []Event) (*GameState, error) {
	return p.BuildFrom(NewGameState(p.catalog), events)
}

// BuildFrom folds events on top of an already projected state.
func (p *Projector) BuildFrom(state *GameState, events []Event) (*GameState, error) {
	for _, evt := range events {
		if err := evt.Apply(state); err != nil {
			return nil, err
		}
	}

	return state, nil
}

package data

import "github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"

// Catalog holds every loaded portfolio.
type Catalog struct {
	portfolios map[summoner.PortfolioType]*summoner.Portfolio
}

// NewCatalog wraps already built portfolios.
func NewCatalog(ps ...*summoner.Portfolio) *Catalog {
	c := &Catalog{portfolios: make(map[summoner.PortfolioType]*summoner.Portfolio)}
	for _, p := range ps {
		c.portfolios[p.Type] = p
	}
	return c
}

func (c *Catalog) Portfolio(t summoner.PortfolioType) (*summoner.Portfolio, bool) {
	p, ok := c.portfolios[t]
	return p, ok
}

// ForCircle resolves the portfolio a circle summons from.
func (c *Catalog) ForCircle(circle summoner.Circle) (*summoner.Portfolio, bool) {
	t, ok := summoner.PortfolioFor(circle)
	if !ok {
		return nil, false
	}
	return c.Portfolio(t)
}

// Package catalog holds the fixed set of property listings shown on the site.
package catalog

import (
	"errors"
	"slices"
	"strings"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/google/uuid"
)

var ErrEmptyQuery = errors.New("catalog: empty search query")

const idLength = 8

// Catalog is an immutable snapshot of listings, agents and reviews. It is
// safe for concurrent use.
type Catalog struct {
	listings []domain.Listing
	byID     map[string]int
	agents   []domain.Agent
	reviews  []domain.Review
}

// New builds a catalog, assigning every listing a fresh short id. Ids already
// set on the input are ignored.
func New(listings []domain.Listing, agents []domain.Agent, reviews []domain.Review) *Catalog {
	c := &Catalog{
		listings: make([]domain.Listing, len(listings)),
		byID:     make(map[string]int, len(listings)),
		agents:   slices.Clone(agents),
		reviews:  slices.Clone(reviews),
	}

	for i, l := range listings {
		id := newID()
		for _, taken := c.byID[id]; taken; _, taken = c.byID[id] {
			id = newID()
		}
		l.ID = id
		c.listings[i] = l
		c.byID[id] = i
	}
	return c
}

func newID() string {
	return uuid.NewString()[:idLength]
}

// All returns every listing in catalog order.
func (c *Catalog) All() []domain.Listing {
	return slices.Clone(c.listings)
}

// ByID returns the listing with the given id, if any.
func (c *Catalog) ByID(id string) (domain.Listing, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Listing{}, false
	}
	return c.listings[i], true
}

// Search returns listings whose keywords, location or type contain query,
// ignoring case. Order follows the catalog.
func (c *Catalog) Search(query string) ([]domain.Listing, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	q := strings.ToLower(query)

	out := []domain.Listing{}
	for _, l := range c.listings {
		if matches(l, q) {
			out = append(out, l)
		}
	}
	return out, nil
}

func matches(l domain.Listing, q string) bool {
	return strings.Contains(strings.ToLower(l.Keywords), q) ||
		strings.Contains(strings.ToLower(l.Location), q) ||
		strings.Contains(strings.ToLower(l.Type), q)
}

func (c *Catalog) Agents() []domain.Agent   { return slices.Clone(c.agents) }
func (c *Catalog) Reviews() []domain.Review { return slices.Clone(c.reviews) }

func (c *Catalog) Len() int { return len(c.listings) }

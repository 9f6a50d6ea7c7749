package cart

import (
	"fmt"
	"sort"

	"github.com/erix3333/site-template/internal/catalog"
)

// Controller owns the cart state: product id → requested quantity.
// Every mutation is clamped against the catalog snapshot taken at
// construction time and persisted through the configured storage, so the
// cart survives reloads the way a browser cart does. The snapshot is not
// refreshed between mutations; checkout re-validates against the live
// catalog on the server side.
type Controller struct {
	items    map[string]int
	products map[string]catalog.Product
	storage  Storage
}

// Line is one cart entry joined with its product snapshot.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Result reports the outcome of a quantity mutation. Limited is set when
// tracked stock prevented the full requested change; callers surface it
// as a notice, not an error.
type Result struct {
	Quantity int
	Limited  bool
}

// NewController restores any persisted cart and binds it to a catalog
// snapshot.
func NewController(snapshot []catalog.Product, storage Storage) (*Controller, error) {
	items, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = map[string]int{}
	}
	index := make(map[string]catalog.Product, len(snapshot))
	for _, p := range snapshot {
		index[p.ID] = p
	}
	return &Controller{items: items, products: index, storage: storage}, nil
}

func (c *Controller) maxFor(id string) (int, bool) {
	p, ok := c.products[id]
	if !ok {
		// Unknown ids are treated as untracked; the server catches them
		// at checkout.
		return 0, false
	}
	return p.EffectiveStock()
}

// Add raises the quantity for id by qty, clamped to effective stock.
// Zero or negative qty counts as one.
func (c *Controller) Add(id string, qty int) (Result, error) {
	if qty < 1 {
		qty = 1
	}
	current := c.items[id]
	next := current + qty
	max, tracked := c.maxFor(id)
	limited := tracked && next > max
	if limited {
		next = max
	}
	c.set(id, next)
	if err := c.persist(); err != nil {
		return Result{}, err
	}
	return Result{Quantity: next, Limited: limited}, nil
}

// Increment raises the quantity by one, subject to the same stock clamp.
func (c *Controller) Increment(id string) (Result, error) {
	return c.Add(id, 1)
}

// Decrement lowers the quantity by one; an entry driven to zero is
// removed, not retained.
func (c *Controller) Decrement(id string) (Result, error) {
	next := c.items[id] - 1
	if next < 0 {
		next = 0
	}
	c.set(id, next)
	if err := c.persist(); err != nil {
		return Result{}, err
	}
	return Result{Quantity: next}, nil
}

// Remove deletes the entry outright.
func (c *Controller) Remove(id string) error {
	delete(c.items, id)
	return c.persist()
}

// Quantity reports the requested quantity for id, zero when absent.
func (c *Controller) Quantity(id string) int {
	return c.items[id]
}

// Count is the total number of units across all entries (the cart badge).
func (c *Controller) Count() int {
	n := 0
	for _, qty := range c.items {
		n += qty
	}
	return n
}

// Lines joins cart entries with the catalog snapshot, ordered by product
// id. Entries whose product no longer exists in the snapshot are skipped.
func (c *Controller) Lines() []Line {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		p, ok := c.products[id]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: c.items[id]})
	}
	return lines
}

// Total sums price × quantity over resolvable entries, in the catalog's
// base currency.
func (c *Controller) Total() float64 {
	total := 0.0
	for id, qty := range c.items {
		p, ok := c.products[id]
		if !ok {
			continue
		}
		total += p.Price * float64(qty)
	}
	return total
}

func (c *Controller) set(id string, qty int) {
	if qty <= 0 {
		delete(c.items, id)
		return
	}
	c.items[id] = qty
}

func (c *Controller) persist() error {
	if err := c.storage.Save(c.items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

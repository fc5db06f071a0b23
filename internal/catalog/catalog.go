// Package catalog holds the editable item point table used to size moves.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/movequote/movequote/internal/shared"
	"github.com/movequote/movequote/internal/snapshot"
)

// Catalog is the item point table. Every mutation persists the whole table;
// persistence is best-effort and failures are only logged.
type Catalog struct {
	mu         sync.RWMutex
	items      []ItemPoint
	index      map[string]int
	categories []Category
	persister  snapshot.Persister
	logger     *slog.Logger
}

// New seeds a catalog from the default categories. Seed points become each
// item's DefaultPoints.
func New(seed []Category, persister snapshot.Persister, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		index:     make(map[string]int),
		persister: persister,
		logger:    logger,
	}
	for _, cat := range seed {
		c.categories = append(c.categories, Category{ID: cat.ID, Name: cat.Name})
		for _, item := range cat.Items {
			if item.ID == "" {
				return nil, fmt.Errorf("catalog: category %s has an item without id", cat.ID)
			}
			if _, dup := c.index[item.ID]; dup {
				return nil, fmt.Errorf("catalog: duplicate item id %s", item.ID)
			}
			item.Category = cat.ID
			item.Points = clampPoints(item.Points)
			item.DefaultPoints = item.Points
			item.AdditionalCost = 0
			c.index[item.ID] = len(c.items)
			c.items = append(c.items, item)
		}
	}
	return c, nil
}

// Restore loads persisted edits from store. Stored items whose id is no
// longer in the default catalog are ignored; default points always come
// from the seed.
func (c *Catalog) Restore(ctx context.Context, store snapshot.Store) error {
	if store == nil {
		return nil
	}
	var stored []ItemPoint
	found, err := store.Load(ctx, Keyspace, &stored)
	if err != nil {
		return fmt.Errorf("catalog: restore: %w", err)
	}
	if !found {
		c.logger.Info("catalog snapshot not found, using defaults", slog.Int("version", Keyspace.Version))
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	restored := 0
	for _, s := range stored {
		idx, ok := c.index[s.ID]
		if !ok {
			continue
		}
		c.items[idx].Points = clampPoints(s.Points)
		c.items[idx].AdditionalCost = clampCost(s.AdditionalCost)
		restored++
	}
	c.logger.Info("catalog snapshot restored", slog.Int("items", restored))
	return nil
}

// Get returns the current state of one item.
func (c *Catalog) Get(id string) (ItemPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.index[id]
	if !ok {
		return ItemPoint{}, fmt.Errorf("item %q: %w", id, shared.ErrNotFound)
	}
	return c.items[idx], nil
}

// List returns every item in catalog order.
func (c *Catalog) List() []ItemPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ItemPoint, len(c.items))
	copy(out, c.items)
	return out
}

// ListByCategory returns the items of one category in catalog order.
func (c *Catalog) ListByCategory(category string) []ItemPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ItemPoint, 0)
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the categories with their current items.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{ID: cat.ID, Name: cat.Name}
		for _, item := range c.items {
			if item.Category == cat.ID {
				out[i].Items = append(out[i].Items, item)
			}
		}
	}
	return out
}

// Lookup returns an id-keyed copy of the catalog for pricing.
func (c *Catalog) Lookup() map[string]ItemPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]ItemPoint, len(c.items))
	for _, item := range c.items {
		out[item.ID] = item
	}
	return out
}

// UpdatePoints sets the item's points, coercing negative input to zero.
func (c *Catalog) UpdatePoints(ctx context.Context, id string, points float64) (ItemPoint, error) {
	return c.mutate(ctx, id, func(item *ItemPoint) {
		item.Points = clampPoints(points)
	})
}

// UpdateAdditionalCost sets the flat yen surcharge, coercing negative input to zero.
func (c *Catalog) UpdateAdditionalCost(ctx context.Context, id string, cost int64) (ItemPoint, error) {
	return c.mutate(ctx, id, func(item *ItemPoint) {
		item.AdditionalCost = clampCost(cost)
	})
}

// ResetToDefault restores the item's default points and clears its cost.
func (c *Catalog) ResetToDefault(ctx context.Context, id string) (ItemPoint, error) {
	return c.mutate(ctx, id, resetItem)
}

// ResetAll resets every item.
func (c *Catalog) ResetAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		resetItem(&c.items[i])
	}
	c.persistLocked(ctx)
}

func (c *Catalog) mutate(ctx context.Context, id string, fn func(*ItemPoint)) (ItemPoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.index[id]
	if !ok {
		return ItemPoint{}, fmt.Errorf("item %q: %w", id, shared.ErrNotFound)
	}
	fn(&c.items[idx])
	c.persistLocked(ctx)
	return c.items[idx], nil
}

// persistLocked runs under the write lock so snapshots reach the persister
// in mutation order.
func (c *Catalog) persistLocked(ctx context.Context) {
	if c.persister == nil {
		return
	}
	items := make([]ItemPoint, len(c.items))
	copy(items, c.items)
	if err := c.persister.Persist(ctx, Keyspace, items); err != nil {
		c.logger.Warn("persist catalog snapshot", slog.Any("error", err))
	}
}

func resetItem(item *ItemPoint) {
	item.Points = item.DefaultPoints
	item.AdditionalCost = 0
}

func clampPoints(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return p
}

func clampCost(c int64) int64 {
	if c < 0 {
		return 0
	}
	return c
}

package catalog

import (
	"context"
	"sync"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// memoryCache is an in-process Cache for service tests
type memoryCache struct {
	mu         sync.RWMutex
	categories map[inventory.Category][]string
	datasets   map[string]inventory.CatalogDataset
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		categories: make(map[inventory.Category][]string),
		datasets:   make(map[string]inventory.CatalogDataset),
	}
}

func (c *memoryCache) GetCategory(_ context.Context, category inventory.Category) ([]inventory.CatalogDataset, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, ok := c.categories[category]
	if !ok {
		return nil, false, nil
	}
	out := make([]inventory.CatalogDataset, 0, len(ids))
	for _, id := range ids {
		ds, ok := c.datasets[id]
		if !ok {
			return nil, false, nil
		}
		out = append(out, ds)
	}
	return out, true, nil
}

func (c *memoryCache) PutCategory(_ context.Context, category inventory.Category, datasets []inventory.CatalogDataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		ids = append(ids, ds.ID)
		c.datasets[ds.ID] = ds
	}
	c.categories[category] = ids
	return nil
}

func (c *memoryCache) GetDataset(_ context.Context, datasetID string) (*inventory.CatalogDataset, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ds, ok := c.datasets[datasetID]
	if !ok {
		return nil, false, nil
	}
	return &ds, true, nil
}

func (c *memoryCache) PutDataset(_ context.Context, dataset inventory.CatalogDataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datasets[dataset.ID] = dataset
	return nil
}

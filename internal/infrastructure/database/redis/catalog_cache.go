// internal/infrastructure/database/redis/catalog_cache.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// CatalogCache caches catalog datasets. A category key lists the dataset
// ids of the category; each dataset is stored under its own key.
type CatalogCache struct {
	client *Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache whose entries expire after ttl
func NewCatalogCache(c *Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: c, ttl: ttl}
}

func categoryKey(category inventory.Category) string { return "catalog:category:" + string(category) }
func datasetKey(id string) string { return "catalog:dataset:" + id }

func (c *CatalogCache) GetCategory(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, bool, error) {
	var ids []string
	if err := c.client.GetJSON(ctx, categoryKey(category), &ids); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(ids) == 0 {
		return []inventory.CatalogDataset{}, true, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = datasetKey(id)
	}
	values, err := c.client.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, false, err
	}

	datasets := make([]inventory.CatalogDataset, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// one dataset expired or was evicted: treat the category as a miss
			return nil, false, nil
		}
		var ds inventory.CatalogDataset
		if err := decodeJSON(raw, &ds); err != nil {
			return nil, false, fmt.Errorf("failed to decode %s: %w", keys[i], err)
		}
		datasets = append(datasets, ds)
	}
	return datasets, true, nil
}

func (c *CatalogCache) PutCategory(ctx context.Context, category inventory.Category, datasets []inventory.CatalogDataset) error {
	ids := make([]string, 0, len(datasets))
	_, err := c.client.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, ds := range datasets {
			data, err := encodeJSON(ds)
			if err != nil {
				return err
			}
			pipe.Set(ctx, datasetKey(ds.ID), data, c.ttl)
			ids = append(ids, ds.ID)
		}
		data, err := encodeJSON(ids)
		if err != nil {
			return err
		}
		pipe.Set(ctx, categoryKey(category), data, c.ttl)
		return nil
	})
	return err
}

func (c *CatalogCache) GetDataset(ctx context.Context, datasetID string) (*inventory.CatalogDataset, bool, error) {
	var ds inventory.CatalogDataset
	if err := c.client.GetJSON(ctx, datasetKey(datasetID), &ds); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &ds, true, nil
}

func (c *CatalogCache) PutDataset(ctx context.Context, dataset inventory.CatalogDataset) error {
	return c.client.SetJSON(ctx, datasetKey(dataset.ID), dataset, c.ttl)
}

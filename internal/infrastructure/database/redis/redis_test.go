package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewClient(rdb)
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.GetCategory(ctx, inventory.CategorySpare)
	require.NoError(t, err)
	assert.False(t, ok)

	datasets := []inventory.CatalogDataset{
		{ID: "a", Category: inventory.CategorySpare, Name: "A", Entries: []inventory.CatalogEntry{{Key: "k1", Label: "L1"}}},
		{ID: "b", Category: inventory.CategorySpare, Name: "B", Entries: []inventory.CatalogEntry{}},
	}
	require.NoError(t, cache.PutCategory(ctx, inventory.CategorySpare, datasets))

	got, ok, err := cache.GetCategory(ctx, inventory.CategorySpare)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, datasets, got)

	ds, ok, err := cache.GetDataset(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A", ds.Name)
}

func TestCatalogCache_DatasetUpdateVisibleInCategory(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.PutCategory(ctx, inventory.CategoryProduct, []inventory.CatalogDataset{{ID: "p", Name: "P"}}))
	require.NoError(t, cache.PutDataset(ctx, inventory.CatalogDataset{ID: "p", Name: "P", Entries: []inventory.CatalogEntry{{Key: "x", Label: "X"}}}))

	got, ok, err := cache.GetCategory(ctx, inventory.CategoryProduct)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got[0].Entries, 1)
}

func TestCatalogCache_Expires(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.PutCategory(ctx, inventory.CategorySpare, []inventory.CatalogDataset{{ID: "a"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.GetCategory(ctx, inventory.CategorySpare)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCache_MissingDatasetIsMiss(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.PutCategory(ctx, inventory.CategorySpare, []inventory.CatalogDataset{{ID: "a"}, {ID: "b"}}))
	mr.Del(datasetKey("b"))

	_, ok, err := cache.GetCategory(ctx, inventory.CategorySpare)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStore(client, time.Hour)
	ctx := context.Background()

	_, err := store.Load(ctx, "nope")
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	txn := reconcile.Transaction{ID: "b1", Kind: reconcile.KindBill, Items: []inventory.CachedItem{{StockID: "s-1", Label: "Screen"}}}
	require.NoError(t, store.Save(ctx, txn))
	assert.True(t, mr.TTL(sessionKey("b1")) > 0)

	got, err := store.Load(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Screen", got.Items[0].Label)

	require.NoError(t, store.Delete(ctx, "b1"))
	_, err = store.Load(ctx, "b1")
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestLocker_Exclusive(t *testing.T) {
	_, client := setupTestRedis(t)
	log, _ := test.NewNullLogger()
	locker := NewLocker(client, 5*time.Second, log)
	locker.retries = 0
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "catalog:lock:a")
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "catalog:lock:a")
	assert.True(t, errors.Is(err, inventory.ErrLockBusy))

	unlock()
	unlock2, err := locker.Lock(ctx, "catalog:lock:a")
	require.NoError(t, err)
	unlock2()
}

func TestLocker_WaitsForHolder(t *testing.T) {
	_, client := setupTestRedis(t)
	log, _ := test.NewNullLogger()
	locker := NewLocker(client, 5*time.Second, log)
	ctx := context.Background()

	var (
		mu      sync.Mutex
		counter int
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "bill:lock:x")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			counter++
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, counter)
}

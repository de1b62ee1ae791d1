// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Cache holds catalog datasets between store reads
type Cache interface {
	GetCategory(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, bool, error)
	PutCategory(ctx context.Context, category inventory.Category, datasets []inventory.CatalogDataset) error
	GetDataset(ctx context.Context, datasetID string) (*inventory.CatalogDataset, bool, error)
	PutDataset(ctx context.Context, dataset inventory.CatalogDataset) error
}

// Locker serializes edits to one dataset across instances. Lock fails
// with an error wrapping inventory.ErrLockBusy while another holder keeps it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Service serves catalog pick-lists and catalog edits
type Service struct {
	store       inventory.CatalogStore
	cache       Cache
	locker      Locker
	log         logrus.FieldLogger
	callTimeout time.Duration
}

// NewService creates a new catalog service. locker may be nil.
func NewService(store inventory.CatalogStore, cache Cache, locker Locker, log logrus.FieldLogger, callTimeout time.Duration) *Service {
	return &Service{
		store:       store,
		cache:       cache,
		locker:      locker,
		log:         log,
		callTimeout: callTimeout,
	}
}

// ListEntries returns every entry of every dataset of the category. It never
// fails: on a store error the result is empty and the error is returned
// alongside for display.
func (s *Service) ListEntries(ctx context.Context, category inventory.Category) ([]inventory.CatalogEntry, error) {
	datasets, err := s.ListDatasets(ctx, category)
	if err != nil {
		return []inventory.CatalogEntry{}, err
	}

	entries := make([]inventory.CatalogEntry, 0)
	for _, ds := range datasets {
		entries = append(entries, ds.Entries...)
	}
	return entries, nil
}

// ListDatasets reads the category's datasets through the cache
func (s *Service) ListDatasets(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, error) {
	log := s.log.WithField("category", category)

	if cached, ok, err := s.cache.GetCategory(ctx, category); err != nil {
		log.WithError(err).Warn("catalog cache read failed")
	} else if ok {
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	datasets, err := s.store.ListDatasets(callCtx, category)
	if err != nil {
		log.WithError(err).Warn("failed to load catalog")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := s.cache.PutCategory(ctx, category, datasets); err != nil {
		log.WithError(err).Warn("catalog cache write failed")
	}
	return datasets, nil
}

// AddEntry adds one entry to a dataset and returns the dataset's entries
func (s *Service) AddEntry(ctx context.Context, datasetID string, entry inventory.CatalogEntry) ([]inventory.CatalogEntry, error) {
	entry.Key = strings.TrimSpace(entry.Key)
	entry.Label = strings.TrimSpace(entry.Label)
	var missing []string
	if entry.Key == "" {
		missing = append(missing, "key")
	}
	if entry.Label == "" {
		missing = append(missing, "label")
	}
	if len(missing) > 0 {
		return nil, inventory.NewValidationError("", missing...)
	}

	unlock, err := s.lock(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cached := s.cachedDataset(ctx, datasetID)
	if cached != nil && indexOf(cached.Entries, entry.Key) >= 0 {
		return nil, inventory.ErrDuplicateKey
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	entries, err := s.store.AddCatalogEntry(callCtx, datasetID, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add catalog entry: %w", err)
	}

	s.refresh(ctx, cached, entries)
	s.log.WithFields(logrus.Fields{"dataset_id": datasetID, "key": entry.Key}).Info("catalog entry added")
	return entries, nil
}

// RemoveEntry removes one entry from a dataset and returns the remaining entries
func (s *Service) RemoveEntry(ctx context.Context, datasetID, key string) ([]inventory.CatalogEntry, error) {
	unlock, err := s.lock(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cached := s.cachedDataset(ctx, datasetID)
	if cached != nil && indexOf(cached.Entries, key) < 0 {
		return nil, inventory.ErrNotFound
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	entries, err := s.store.RemoveCatalogEntry(callCtx, datasetID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to remove catalog entry: %w", err)
	}

	s.refresh(ctx, cached, entries)
	s.log.WithFields(logrus.Fields{"dataset_id": datasetID, "key": key}).Info("catalog entry removed")
	return entries, nil
}

func (s *Service) lock(ctx context.Context, datasetID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	unlock, err := s.locker.Lock(ctx, "catalog:lock:"+datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock catalog dataset: %w", err)
	}
	return unlock, nil
}

func (s *Service) cachedDataset(ctx context.Context, datasetID string) *inventory.CatalogDataset {
	ds, ok, err := s.cache.GetDataset(ctx, datasetID)
	if err != nil {
		s.log.WithError(err).WithField("dataset_id", datasetID).Warn("catalog cache read failed")
		return nil
	}
	if !ok {
		return nil
	}
	return ds
}

// refresh stores the post-write entries; datasets never read are left for
// the next lazy load
func (s *Service) refresh(ctx context.Context, cached *inventory.CatalogDataset, entries []inventory.CatalogEntry) {
	if cached == nil {
		return
	}
	updated := *cached
	updated.Entries = entries
	if err := s.cache.PutDataset(ctx, updated); err != nil {
		s.log.WithError(err).WithField("dataset_id", cached.ID).Warn("catalog cache write failed")
	}
}

func indexOf(entries []inventory.CatalogEntry, key string) int {
	for i, e := range entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// internal/domain/intake/service.go
package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// SubmitMode selects how a bulk batch is sent to the store
type SubmitMode string

const (
	// SubmitBatch sends the whole batch in one call
	SubmitBatch SubmitMode = "batch"
	// SubmitIndividual sends one call per item and keeps going past failures
	SubmitIndividual SubmitMode = "individual"
)

// ParseSubmitMode defaults to batch
func ParseSubmitMode(s string) (SubmitMode, error) {
	switch SubmitMode(s) {
	case "", SubmitBatch:
		return SubmitBatch, nil
	case SubmitIndividual:
		return SubmitIndividual, nil
	}
	return "", fmt.Errorf("unknown submit mode %q", s)
}

// SubmitResult reports what the store accepted
type SubmitResult struct {
	Batch   *inventory.GoodsReceiptBatch `json:"batch"`
	Created []inventory.StockItem        `json:"created"`
	Failed  []FailedItem                 `json:"failed,omitempty"`
}

// FailedItem is one item rejected in individual mode
type FailedItem struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Service validates goods receipts and submits them to the store
type Service struct {
	stock       inventory.StockStore
	ledger      inventory.LedgerStore
	log         logrus.FieldLogger
	callTimeout time.Duration
	now         func() time.Time
}

// NewService creates a new intake service
func NewService(stock inventory.StockStore, ledger inventory.LedgerStore, log logrus.FieldLogger, callTimeout time.Duration) *Service {
	return &Service{
		stock:       stock,
		ledger:      ledger,
		log:         log,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// SubmitManual validates and creates a single manually entered item
func (s *Service) SubmitManual(ctx context.Context, entry ManualEntry) (*SubmitResult, error) {
	batch, err := BuildManual(entry, s.now())
	if err != nil {
		return nil, err
	}
	return s.submitBatch(ctx, batch)
}

// SubmitBulk validates and creates one item per serial
func (s *Service) SubmitBulk(ctx context.Context, entry BulkEntry, mode SubmitMode) (*SubmitResult, error) {
	batch, err := BuildBulk(entry, s.now())
	if err != nil {
		return nil, err
	}
	if mode == SubmitIndividual {
		return s.submitIndividually(ctx, batch)
	}
	return s.submitBatch(ctx, batch)
}

// SubmitAsset validates the asset header and its parts and records the receipt
func (s *Service) SubmitAsset(ctx context.Context, entry AssetEntry) (*inventory.AssetReceipt, error) {
	receipt, err := BuildAsset(entry, s.now())
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	created, err := s.ledger.CreateGoodsReceipt(callCtx, *receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to record asset receipt: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"receipt_id": created.ID,
		"key":        created.Key,
		"parts":      len(created.Parts),
	}).Info("asset receipt recorded")
	return created, nil
}

func (s *Service) submitBatch(ctx context.Context, batch *inventory.GoodsReceiptBatch) (*SubmitResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var (
		created []inventory.StockItem
		err     error
	)
	if len(batch.Items) == 1 {
		var item *inventory.StockItem
		item, err = s.stock.CreateStock(callCtx, batch.Items[0])
		if item != nil {
			created = []inventory.StockItem{*item}
		}
	} else {
		created, err = s.stock.CreateStockBatch(callCtx, batch.Items)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit goods receipt: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"items": len(created),
		"total": batch.Total().String(),
	}).Info("goods receipt submitted")
	return &SubmitResult{Batch: batch, Created: created}, nil
}

func (s *Service) submitIndividually(ctx context.Context, batch *inventory.GoodsReceiptBatch) (*SubmitResult, error) {
	result := &SubmitResult{Batch: batch, Created: make([]inventory.StockItem, 0, len(batch.Items))}
	var firstErr error

	for i, req := range batch.Items {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		item, err := s.stock.CreateStock(callCtx, req)
		cancel()

		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			result.Failed = append(result.Failed, FailedItem{Index: i, Key: req.Key, Error: err.Error()})
			s.log.WithError(err).WithField("index", i).Warn("goods receipt item rejected")
			continue
		}
		result.Created = append(result.Created, *item)
	}

	if len(result.Created) == 0 && firstErr != nil {
		return nil, fmt.Errorf("failed to submit goods receipt: %w", firstErr)
	}
	return result, nil
}

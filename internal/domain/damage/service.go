// internal/domain/damage/service.go
package damage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/schema"
)

// DefaultJobNumber is recorded when no job number is given
const DefaultJobNumber = "N/A"

// CreateRequest represents damage record creation data
type CreateRequest struct {
	TechnicianID string                 `json:"technicianId"`
	Date         *time.Time             `json:"date"`
	JobNumber    string                 `json:"jobNumber"`
	DamageTotal  inventory.LooseDecimal `json:"damageTotal"`
	Remark       string                 `json:"remark"`
	Items        []inventory.CachedItem `json:"items"`
}

// Service writes damage/consumption records
type Service struct {
	ledger      inventory.LedgerStore
	log         logrus.FieldLogger
	callTimeout time.Duration
	now         func() time.Time
}

// NewService creates a new damage service
func NewService(ledger inventory.LedgerStore, log logrus.FieldLogger, callTimeout time.Duration) *Service {
	return &Service{
		ledger:      ledger,
		log:         log,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// Build validates req and snapshots its items into a new record
func (s *Service) Build(req CreateRequest) (*inventory.DamageRecord, error) {
	technician := strings.TrimSpace(req.TechnicianID)
	if technician == "" {
		return nil, inventory.ErrMissingTechnician
	}
	if len(req.Items) == 0 {
		return nil, inventory.ErrEmptyItems
	}

	date := s.today()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	jobNumber := strings.TrimSpace(req.JobNumber)
	if jobNumber == "" {
		jobNumber = DefaultJobNumber
	}

	items := make([]inventory.DamagedItem, 0, len(req.Items))
	for i := range req.Items {
		items = append(items, snapshotItem(&req.Items[i]))
	}

	return &inventory.DamageRecord{
		TechnicianID: technician,
		Date:         date,
		JobNumber:    jobNumber,
		DamageTotal:  req.DamageTotal.Decimal,
		Remark:       req.Remark,
		DamagedItems: items,
	}, nil
}

// Create validates req and submits one new damage record
func (s *Service) Create(ctx context.Context, req CreateRequest) (*inventory.DamageRecord, error) {
	record, err := s.Build(req)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	created, err := s.ledger.CreateDamageRecord(callCtx, *record)
	if err != nil {
		return nil, fmt.Errorf("failed to create damage record: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"record_id":     created.ID,
		"technician_id": created.TechnicianID,
		"job_number":    created.JobNumber,
		"items":         len(created.DamagedItems),
	}).Info("damage record created")
	return created, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// snapshotItem copies the category-relevant attributes of item so the
// record never depends on the live stock record
func snapshotItem(item *inventory.CachedItem) inventory.DamagedItem {
	category := item.Category
	if category == "" {
		category = inventory.CategoryUnknown
	}
	return inventory.DamagedItem{
		StockID:    item.StockID,
		Category:   category,
		Key:        item.Key,
		Label:      item.DisplayName(),
		UnitPrice:  item.UnitPrice.Decimal,
		Attributes: schema.Snapshot(category, item.MergedAttributes()),
	}
}

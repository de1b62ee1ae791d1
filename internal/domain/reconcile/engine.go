// internal/domain/reconcile/engine.go
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// State is a step of the per-item consumption state machine
type State string

const (
	StateInBill             State = "in_bill"
	StateDecrementAttempted State = "decrement_attempted"
	StateDecremented        State = "decremented"
	StateRecreateAttempted  State = "recreate_attempted"
	StateRemoved            State = "removed"
)

// Outcome describes how one consumption resolved. The terminal state is
// always StateRemoved.
type Outcome struct {
	StockID   string                           `json:"stockId,omitempty"`
	Trail     []State                          `json:"trail"`
	Remaining *inventory.StockItem             `json:"remaining,omitempty"`
	Recreated *inventory.StockItem             `json:"recreated,omitempty"`
	WasInList bool                             `json:"wasInList"`
	Notices   []string                         `json:"notices,omitempty"`
	Warning   *inventory.ReconciliationWarning `json:"warning,omitempty"`
}

// Final returns the last state reached
func (o *Outcome) Final() State {
	if len(o.Trail) == 0 {
		return StateInBill
	}
	return o.Trail[len(o.Trail)-1]
}

func (o *Outcome) enter(log logrus.FieldLogger, s State) {
	o.Trail = append(o.Trail, s)
	log.WithField("state", s).Debug("reconcile transition")
}

// Engine consumes items from transactions against the stock store
type Engine struct {
	store       inventory.StockStore
	log         logrus.FieldLogger
	callTimeout time.Duration
}

// NewEngine creates a reconciliation engine. Every store call is bounded
// by callTimeout; a timeout counts as a store failure.
func NewEngine(store inventory.StockStore, log logrus.FieldLogger, callTimeout time.Duration) *Engine {
	return &Engine{
		store:       store,
		log:         log,
		callTimeout: callTimeout,
	}
}

// Consume decrements the stock record behind item by one, recreating it
// from the cached view when the decrement fails, and always removes the
// item from txn. Store failures end up in the outcome, never as an error.
func (e *Engine) Consume(ctx context.Context, txn Transaction, item inventory.CachedItem) (Transaction, Outcome) {
	log := e.log.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"stock_id":       item.StockID,
	})
	out := Outcome{StockID: item.StockID}
	out.enter(log, StateInBill)

	if item.StockID != "" {
		e.reconcile(ctx, log, item, &out)
	}

	next, found := txn.Without(item)
	out.WasInList = found
	out.enter(log, StateRemoved)
	return next, out
}

func (e *Engine) reconcile(ctx context.Context, log logrus.FieldLogger, item inventory.CachedItem, out *Outcome) {
	out.enter(log, StateDecrementAttempted)

	decCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	remaining, decErr := e.store.DecrementStock(decCtx, item.StockID, 1)
	cancel()

	if decErr == nil {
		out.enter(log, StateDecremented)
		out.Remaining = remaining
		out.Notices = append(out.Notices, fmt.Sprintf("Stock updated for %s", item.DisplayName()))
		return
	}

	log.WithError(decErr).Warn("stock decrement failed, recreating record")
	out.enter(log, StateRecreateAttempted)

	createCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	recreated, createErr := e.store.CreateStock(createCtx, RecreateRequest(item))
	cancel()

	if createErr != nil {
		out.Warning = &inventory.ReconciliationWarning{
			StockID:      item.StockID,
			DecrementErr: decErr,
			RecreateErr:  createErr,
		}
		log.WithError(createErr).Error(out.Warning.Error())
		return
	}

	out.Recreated = recreated
	out.Notices = append(out.Notices, fmt.Sprintf("Stock record recreated for %s", item.DisplayName()))
}

// RecreateRequest builds the best-effort replacement record for item from
// whatever the cached view carries.
func RecreateRequest(item inventory.CachedItem) inventory.StockIncrease {
	category := item.Category
	if category == "" {
		category = inventory.CategoryUnknown
	}
	key := item.Key
	if key == "" {
		key = item.StockID
	}
	price := item.UnitPrice.Decimal
	if price.IsNegative() {
		price = decimal.Zero
	}

	return inventory.StockIncrease{
		Category:   category,
		Key:        key,
		Label:      item.DisplayName(),
		Qty:        1,
		UnitPrice:  price,
		LineTotal:  price,
		Attributes: item.MergedAttributes(),
	}
}

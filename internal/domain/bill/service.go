// internal/domain/bill/service.go
package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
)

// SessionStore keeps open transactions between requests. Load fails with
// inventory.ErrNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, txn reconcile.Transaction) error
	Load(ctx context.Context, id string) (*reconcile.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Locker serializes mutations of one session across instances. Lock fails
// with an error wrapping inventory.ErrLockBusy while another holder keeps it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Service manages bill and damage-list sessions and consumes their items
// through the reconciliation engine
type Service struct {
	sessions SessionStore
	locker   Locker
	engine   *reconcile.Engine
	log      logrus.FieldLogger
}

// NewService creates a new bill service
func NewService(sessions SessionStore, locker Locker, engine *reconcile.Engine, log logrus.FieldLogger) *Service {
	return &Service{
		sessions: sessions,
		locker:   locker,
		engine:   engine,
		log:      log,
	}
}

// Open starts an empty session
func (s *Service) Open(ctx context.Context, kind reconcile.Kind, items []inventory.CachedItem) (*reconcile.Transaction, error) {
	if kind == "" {
		kind = reconcile.KindBill
	}
	if kind != reconcile.KindBill && kind != reconcile.KindDamage {
		return nil, inventory.NewValidationError("", "kind")
	}

	txn := reconcile.Transaction{
		ID:    uuid.New().String(),
		Kind:  kind,
		Items: append([]inventory.CachedItem{}, items...),
	}
	if err := s.sessions.Save(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.log.WithFields(logrus.Fields{"transaction_id": txn.ID, "kind": kind}).Info("session opened")
	return &txn, nil
}

// Get returns the session's current state
func (s *Service) Get(ctx context.Context, id string) (*reconcile.Transaction, error) {
	return s.sessions.Load(ctx, id)
}

// AddItem appends one cached line to the session
func (s *Service) AddItem(ctx context.Context, id string, item inventory.CachedItem) (*reconcile.Transaction, error) {
	var out *reconcile.Transaction
	err := s.withSession(ctx, id, func(txn reconcile.Transaction) (reconcile.Transaction, error) {
		next := txn.Add(item)
		out = &next
		return next, nil
	})
	return out, err
}

// Consume reconciles one line against stock and removes it from the
// session. The error is only set when the session itself could not be
// loaded, locked or saved.
func (s *Service) Consume(ctx context.Context, id string, item inventory.CachedItem) (*reconcile.Transaction, *reconcile.Outcome, error) {
	var (
		out     *reconcile.Transaction
		outcome reconcile.Outcome
	)
	err := s.withSession(ctx, id, func(txn reconcile.Transaction) (reconcile.Transaction, error) {
		next, o := s.engine.Consume(ctx, txn, item)
		out, outcome = &next, o
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, &outcome, nil
}

// Close discards the session
func (s *Service) Close(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *Service) withSession(ctx context.Context, id string, fn func(reconcile.Transaction) (reconcile.Transaction, error)) error {
	unlock, err := s.locker.Lock(ctx, "bill:lock:"+id)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	txn, err := s.sessions.Load(ctx, id)
	if err != nil {
		return err
	}

	next, err := fn(*txn)
	if err != nil {
		return err
	}

	if err := s.sessions.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

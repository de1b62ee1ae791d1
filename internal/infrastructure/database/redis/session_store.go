// internal/infrastructure/database/redis/session_store.go
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
)

// SessionStore keeps open bill transactions in Redis. Every save renews
// the TTL.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(c *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: c, ttl: ttl}
}

func sessionKey(id string) string { return "bill:session:" + id }

func (s *SessionStore) Save(ctx context.Context, txn reconcile.Transaction) error {
	return s.client.SetJSON(ctx, sessionKey(txn.ID), txn, s.ttl)
}

func (s *SessionStore) Load(ctx context.Context, id string) (*reconcile.Transaction, error) {
	var txn reconcile.Transaction
	if err := s.client.GetJSON(ctx, sessionKey(id), &txn); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, inventory.ErrNotFound
		}
		return nil, err
	}
	if txn.Items == nil {
		txn.Items = []inventory.CachedItem{}
	}
	return &txn, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id))
}

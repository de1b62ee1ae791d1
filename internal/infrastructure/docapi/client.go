// internal/infrastructure/docapi/client.go
package docapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/your-org/repairshop-backend/internal/config"
	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// StatusError is a non-2xx answer from the document API
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("document API %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client implements inventory.Store against the remote document API
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

var _ inventory.Store = (*Client)(nil)

// NewClient creates a document API client. Only GET requests are retried;
// writes are sent exactly once.
func NewClient(cfg config.DocAPIConfig, log logrus.FieldLogger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryReads).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}

	return &Client{http: client, log: log}
}

func retryReads(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || r.StatusCode() >= http.StatusInternalServerError
}

// do sends one request and decodes a 2xx body into result
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Warn("document API call failed")
		return fmt.Errorf("document API %s %s: %w", method, path, err)
	}
	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode(), Body: truncate(resp.String(), 200)}
	}
	return nil
}

func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// STOCK

// ListStock calls GET /stock, optionally filtered by category. A nil
// answer is returned as an empty slice.
func (c *Client) ListStock(ctx context.Context, category inventory.Category) ([]inventory.StockItem, error) {
	path := "/stock"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}
	var items []inventory.StockItem
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []inventory.StockItem{}
	}
	return items, nil
}

// DecrementStock calls POST /stock/:id/decrement. Not found, conflict and
// unprocessable answers wrap inventory.ErrStockUnavailable.
func (c *Client) DecrementStock(ctx context.Context, id string, amount int) (*inventory.StockItem, error) {
	var item inventory.StockItem
	err := c.do(ctx, http.MethodPost, "/stock/"+url.PathEscape(id)+"/decrement", map[string]int{"amount": amount}, &item)
	switch statusOf(err) {
	case 0:
		if err != nil {
			return nil, err
		}
		return &item, nil
	case http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %v", inventory.ErrStockUnavailable, err)
	}
	return nil, err
}

// CreateStock calls POST /stock
func (c *Client) CreateStock(ctx context.Context, req inventory.StockIncrease) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := c.do(ctx, http.MethodPost, "/stock", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateStockBatch calls POST /stock/batch with every request in one body
func (c *Client) CreateStockBatch(ctx context.Context, reqs []inventory.StockIncrease) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	if err := c.do(ctx, http.MethodPost, "/stock/batch", map[string]interface{}{"items": reqs}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CATALOG

// ListDatasets calls GET /catalog for one category
func (c *Client) ListDatasets(ctx context.Context, category inventory.Category) ([]inventory.CatalogDataset, error) {
	var datasets []inventory.CatalogDataset
	if err := c.do(ctx, http.MethodGet, "/catalog?category="+url.QueryEscape(string(category)), nil, &datasets); err != nil {
		return nil, err
	}
	if datasets == nil {
		datasets = []inventory.CatalogDataset{}
	}
	return datasets, nil
}

// AddCatalogEntry calls POST /catalog/:datasetId/entries and returns the
// dataset's entries. A conflict maps to inventory.ErrDuplicateKey.
func (c *Client) AddCatalogEntry(ctx context.Context, datasetID string, entry inventory.CatalogEntry) ([]inventory.CatalogEntry, error) {
	var entries []inventory.CatalogEntry
	err := c.do(ctx, http.MethodPost, "/catalog/"+url.PathEscape(datasetID)+"/entries", entry, &entries)
	switch statusOf(err) {
	case 0:
		if err != nil {
			return nil, err
		}
		return entries, nil
	case http.StatusConflict:
		return nil, inventory.ErrDuplicateKey
	case http.StatusNotFound:
		return nil, inventory.ErrNotFound
	}
	return nil, err
}

// RemoveCatalogEntry calls DELETE /catalog/:datasetId/entries/:key and
// returns the remaining entries
func (c *Client) RemoveCatalogEntry(ctx context.Context, datasetID, key string) ([]inventory.CatalogEntry, error) {
	var entries []inventory.CatalogEntry
	path := "/catalog/" + url.PathEscape(datasetID) + "/entries/" + url.PathEscape(key)
	err := c.do(ctx, http.MethodDelete, path, nil, &entries)
	switch statusOf(err) {
	case 0:
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []inventory.CatalogEntry{}
		}
		return entries, nil
	case http.StatusNotFound:
		return nil, inventory.ErrNotFound
	}
	return nil, err
}

// LEDGER

// CreateDamageRecord calls POST /damage-records
func (c *Client) CreateDamageRecord(ctx context.Context, rec inventory.DamageRecord) (*inventory.DamageRecord, error) {
	var created inventory.DamageRecord
	if err := c.do(ctx, http.MethodPost, "/damage-records", rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateGoodsReceipt calls POST /goods-receipts
func (c *Client) CreateGoodsReceipt(ctx context.Context, rec inventory.AssetReceipt) (*inventory.AssetReceipt, error) {
	var created inventory.AssetReceipt
	if err := c.do(ctx, http.MethodPost, "/goods-receipts", rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Ping calls the API health endpoint
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

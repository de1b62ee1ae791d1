package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/repairshop-backend/internal/domain/bill"
	"github.com/your-org/repairshop-backend/internal/domain/catalog"
	"github.com/your-org/repairshop-backend/internal/domain/damage"
	"github.com/your-org/repairshop-backend/internal/domain/intake"
	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/inventory/mocks"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
	"github.com/your-org/repairshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	router *gin.Engine
	store  *mocks.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := redis.NewClient(rdb)

	log, _ := test.NewNullLogger()
	store := new(mocks.Store)
	locker := redis.NewLocker(client, 5*time.Second, log)
	engine := reconcile.NewEngine(store, log, time.Second)

	r := gin.New()
	routes.SetupRoutes(r.Group("/api/v1"), routes.Handlers{
		Stock:     handlers.NewStockHandler(store, time.Second),
		Intake:    handlers.NewIntakeHandler(intake.NewService(store, store, log, time.Second)),
		Reconcile: handlers.NewReconcileHandler(engine),
		Bill:      handlers.NewBillHandler(bill.NewService(redis.NewSessionStore(client, time.Hour), locker, engine, log)),
		Damage:    handlers.NewDamageHandler(damage.NewService(store, log, time.Second)),
		Catalog:   handlers.NewCatalogHandler(catalog.NewService(store, redis.NewCatalogCache(client, time.Minute), locker, log, time.Second)),
	})

	return &harness{router: r, store: store}
}

func (h *harness) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// STOCK

func TestListStock(t *testing.T) {
	h := newHarness(t)
	h.store.On("ListStock", mock.Anything, inventory.CategorySpare).
		Return([]inventory.StockItem{{ID: "s-1", Category: inventory.CategorySpare, Qty: 3}}, nil)

	w, resp := h.do(http.MethodGet, "/api/v1/stock?category=spare", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)
}

func TestListStock_InvalidCategory(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodGet, "/api/v1/stock?category=furniture", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.store.AssertNotCalled(t, "ListStock", mock.Anything, mock.Anything)
}

func TestListStock_StoreFailure(t *testing.T) {
	h := newHarness(t)
	h.store.On("ListStock", mock.Anything, inventory.Category("")).Return(nil, errors.New("connection refused"))

	w, resp := h.do(http.MethodGet, "/api/v1/stock", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Inventory store unavailable", resp["error"])
}

// INTAKE

func TestReceiveManual(t *testing.T) {
	h := newHarness(t)
	h.store.On("CreateStock", mock.Anything, mock.MatchedBy(func(req inventory.StockIncrease) bool {
		return req.Key == "screen-x1" && req.Qty == 2 && req.LineTotal.String() == "2000"
	})).Return(&inventory.StockItem{ID: "s-1", Key: "screen-x1", Qty: 2}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/intake/manual", map[string]interface{}{
		"category":   "spare",
		"key":        "screen-x1",
		"qty":        2,
		"unitPrice":  "1000",
		"attributes": map[string]string{"description": "Screen", "compatibility": "X1", "condition": "new"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["created"], 1)
	h.store.AssertExpectations(t)
}

func TestReceiveManual_BindingFieldsUseJSONNames(t *testing.T) {
	h := newHarness(t)

	w, resp := h.do(http.MethodPost, "/api/v1/intake/manual", map[string]interface{}{"qty": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"category": "required"}, resp["fields"])
}

func TestReceiveManual_MissingAttributes(t *testing.T) {
	h := newHarness(t)

	w, resp := h.do(http.MethodPost, "/api/v1/intake/manual", map[string]interface{}{
		"category":   "spare",
		"qty":        1,
		"attributes": map[string]string{"description": "Screen"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.ElementsMatch(t, []interface{}{"compatibility", "condition"}, resp["fields"])
	h.store.AssertNotCalled(t, "CreateStock", mock.Anything, mock.Anything)
}

func TestReceiveManual_InvalidQuantity(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/intake/manual", map[string]interface{}{
		"category":   "accessory",
		"qty":        0,
		"attributes": map[string]string{"description": "Case"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveBulk_UnknownMode(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/intake/bulk?mode=sometimes", map[string]interface{}{
		"category": "accessory", "key": "case", "label": "Case", "serials": []string{"A"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveBulk_EmptySerials(t *testing.T) {
	h := newHarness(t)

	w, resp := h.do(http.MethodPost, "/api/v1/intake/bulk", map[string]interface{}{
		"category": "accessory", "key": "case", "label": "Case", "serials": []string{" ", ""},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, inventory.ErrEmptySerialList.Error(), resp["details"])
}

func TestReceiveBulk_Batch(t *testing.T) {
	h := newHarness(t)
	h.store.On("CreateStockBatch", mock.Anything, mock.MatchedBy(func(reqs []inventory.StockIncrease) bool {
		return len(reqs) == 2
	})).Return([]inventory.StockItem{{ID: "s-1"}, {ID: "s-2"}}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/intake/bulk?mode=batch", map[string]interface{}{
		"category": "accessory", "key": "case", "label": "Case", "unitPrice": 20, "serials": []string{"A", "B"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Goods received successfully", resp["message"])
}

func TestReceiveAsset_EmptyParts(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/intake/asset", map[string]interface{}{
		"attributes": map[string]string{"compatibility": "Laptop Z", "serialNumber": "LZ-01"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.store.AssertNotCalled(t, "CreateGoodsReceipt", mock.Anything, mock.Anything)
}

// RECONCILE

func TestConsume_WarningStillRemoves(t *testing.T) {
	h := newHarness(t)
	h.store.On("DecrementStock", mock.Anything, "s-1", 1).Return(nil, inventory.ErrStockUnavailable)
	h.store.On("CreateStock", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

	item := map[string]interface{}{"id": "s-1", "label": "Screen", "unitPrice": "oops"}
	w, resp := h.do(http.MethodPost, "/api/v1/reconcile/consume", map[string]interface{}{
		"transaction": map[string]interface{}{"id": "b-1", "kind": "bill", "items": []interface{}{item}},
		"item":        item,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, resp, "warning")

	data := resp["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Empty(t, txn["items"])

	outcome := data["outcome"].(map[string]interface{})
	trail := outcome["trail"].([]interface{})
	assert.Equal(t, string(reconcile.StateRemoved), trail[len(trail)-1])
}

func TestConsume_LooseQuantityAndAttributes(t *testing.T) {
	h := newHarness(t)
	h.store.On("DecrementStock", mock.Anything, "s1", 1).Return(&inventory.StockItem{ID: "s1", Qty: 4}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/reconcile/consume", `{
		"transaction": {"id": "b-1", "kind": "bill", "items": [{"id": "s1"}]},
		"item": {"id": "s1", "qty": "1", "attributes": {"ram": 8, "touch": true}}
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, resp, "warning")

	txn := resp["data"].(map[string]interface{})["transaction"].(map[string]interface{})
	assert.Empty(t, txn["items"])
	h.store.AssertExpectations(t)
}

func TestConsume_MalformedBody(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/reconcile/consume", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// BILLS

func TestBillSessionFlow(t *testing.T) {
	h := newHarness(t)
	h.store.On("DecrementStock", mock.Anything, "s-1", 1).Return(&inventory.StockItem{ID: "s-1", Qty: 2}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/bills", map[string]interface{}{"kind": "bill"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := resp["data"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, id)

	w, resp = h.do(http.MethodPost, fmt.Sprintf("/api/v1/bills/%s/items", id), map[string]interface{}{"id": "s-1", "label": "Screen"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].(map[string]interface{})["items"], 1)

	w, resp = h.do(http.MethodPost, fmt.Sprintf("/api/v1/bills/%s/consume", id), map[string]interface{}{"id": "s-1", "label": "Screen"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, resp, "warning")

	w, resp = h.do(http.MethodGet, "/api/v1/bills/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["data"].(map[string]interface{})["items"])

	w, _ = h.do(http.MethodDelete, "/api/v1/bills/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodGet, "/api/v1/bills/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillConsume_LooseQuantityAndAttributes(t *testing.T) {
	h := newHarness(t)
	h.store.On("DecrementStock", mock.Anything, "s1", 1).Return(&inventory.StockItem{ID: "s1", Qty: 0}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/bills", `{"kind": "bill", "items": [{"id": "s1"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := resp["data"].(map[string]interface{})["id"].(string)

	w, _ = h.do(http.MethodPost, "/api/v1/bills/"+id+"/consume", `{"id": "s1", "qty": "1", "attributes": {"ram": 8}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = h.do(http.MethodGet, "/api/v1/bills/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["data"].(map[string]interface{})["items"])
}

func TestOpenBill_UnknownKind(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/bills", map[string]interface{}{"kind": "invoice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// DAMAGE

func TestCreateDamageRecord(t *testing.T) {
	h := newHarness(t)
	h.store.On("CreateDamageRecord", mock.Anything, mock.MatchedBy(func(rec inventory.DamageRecord) bool {
		return rec.TechnicianID == "tech-1" && rec.JobNumber == damage.DefaultJobNumber && len(rec.DamagedItems) == 1
	})).Return(&inventory.DamageRecord{ID: "d-1", TechnicianID: "tech-1"}, nil)

	w, resp := h.do(http.MethodPost, "/api/v1/damage-records", map[string]interface{}{
		"technicianId": "tech-1",
		"damageTotal":  "12.5",
		"items":        []interface{}{map[string]interface{}{"id": "s-1", "category": "spare", "description": "Screen"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "d-1", resp["data"].(map[string]interface{})["id"])
}

func TestCreateDamageRecord_MissingTechnician(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodPost, "/api/v1/damage-records", map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"id": "s-1"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.store.AssertNotCalled(t, "CreateDamageRecord", mock.Anything, mock.Anything)
}

// CATALOG

func TestListEntries_FailureIsEmptyWithWarning(t *testing.T) {
	h := newHarness(t)
	h.store.On("ListDatasets", mock.Anything, inventory.CategoryProduct).Return(nil, errors.New("timeout"))

	w, resp := h.do(http.MethodGet, "/api/v1/catalog/product", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, resp["data"])
	assert.Equal(t, "Failed to load catalog", resp["warning"])
}

func TestListEntries_FlattensDatasets(t *testing.T) {
	h := newHarness(t)
	h.store.On("ListDatasets", mock.Anything, inventory.CategorySpare).Return([]inventory.CatalogDataset{
		{ID: "ds-1", Category: inventory.CategorySpare, Entries: []inventory.CatalogEntry{{Key: "a", Label: "A"}}},
		{ID: "ds-2", Category: inventory.CategorySpare, Entries: []inventory.CatalogEntry{{Key: "b", Label: "B"}}},
	}, nil).Once()

	w, resp := h.do(http.MethodGet, "/api/v1/catalog/spare", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 2)

	// second read is served from the cache
	w, resp = h.do(http.MethodGet, "/api/v1/catalog/spare", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 2)
	h.store.AssertNumberOfCalls(t, "ListDatasets", 1)
}

func TestListEntries_InvalidCategory(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodGet, "/api/v1/catalog/unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddEntry_Duplicate(t *testing.T) {
	h := newHarness(t)
	entry := inventory.CatalogEntry{Key: "screen", Label: "Screen"}
	h.store.On("AddCatalogEntry", mock.Anything, "ds-1", entry).Return(nil, fmt.Errorf("insert: %w", inventory.ErrDuplicateKey))

	w, _ := h.do(http.MethodPost, "/api/v1/catalog/datasets/ds-1/entries", entry)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddEntry_MissingLabel(t *testing.T) {
	h := newHarness(t)

	w, resp := h.do(http.MethodPost, "/api/v1/catalog/datasets/ds-1/entries", map[string]string{"key": "screen"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"label": "required"}, resp["fields"])
}

func TestRemoveEntry(t *testing.T) {
	h := newHarness(t)
	h.store.On("RemoveCatalogEntry", mock.Anything, "ds-1", "screen").Return([]inventory.CatalogEntry{{Key: "battery", Label: "Battery"}}, nil)
	h.store.On("RemoveCatalogEntry", mock.Anything, "ds-1", "ghost").Return(nil, inventory.ErrNotFound)

	w, resp := h.do(http.MethodDelete, "/api/v1/catalog/datasets/ds-1/entries/screen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, _ = h.do(http.MethodDelete, "/api/v1/catalog/datasets/ds-1/entries/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

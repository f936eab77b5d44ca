package purchaseorder

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/cache"
	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/dto"
	"github.com/Additional-Code/procura/internal/entity"
	"github.com/Additional-Code/procura/internal/messaging"
	repo "github.com/Additional-Code/procura/internal/repository/purchaseorder"
	"github.com/Additional-Code/procura/pkg/errorbank"
)

// mapStore is an in-memory cache.Store for asserting cache interactions.
type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestService(t *testing.T, store cache.Store, withTables bool) (*Service, *database.Connections) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	if withTables {
		ctx := context.Background()
		for _, model := range []any{
			(*entity.PurchaseOrder)(nil),
			(*entity.PurchaseOrderItem)(nil),
		} {
			_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
			require.NoError(t, err)
		}
	}

	conns := &database.Connections{Writer: db, Reader: db}
	cfg := config.Config{
		Cache: config.Cache{DefaultTTL: time.Minute},
	}

	svc := NewService(Params{
		Repository: repo.NewRepository(conns),
		Cache:      store,
		Config:     cfg,
		Logger:     zap.NewNop(),
		Publisher:  messaging.NewNoop("purchase-orders.events"),
	})
	return svc, conns
}

func ptr[T any](v T) *T { return &v }

func validRequest() dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		SupplierID:   ptr(int64(1)),
		CreatedBy:    ptr(int64(2)),
		PONumber:     "PO-3001",
		Status:       entity.StatusPending,
		OrderDate:    "2024-03-01",
		ExpectedDate: "2024-03-15",
		TotalAmount:  ptr(30.0),
		Items: []dto.CreatePurchaseOrderItem{
			{ProductID: ptr(int64(5)), Quantity: ptr(3), UnitPrice: ptr(10.0)},
		},
	}
}

func requireBadRequest(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestCreateComputesTotalsAndIgnoresCallerTotal(t *testing.T) {
	svc, conns := newTestService(t, cache.NewNoop(), true)
	ctx := context.Background()

	req := validRequest()
	req.Items[0].TotalPrice = ptr(999.0)

	id, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	stored := new(entity.PurchaseOrderItem)
	require.NoError(t, conns.Reader.NewSelect().Model(stored).Scan(ctx))
	require.Equal(t, 30.0, stored.TotalPrice)
	require.Equal(t, 0, stored.ReceivedQty)
}

func TestCreateValidationFailsBeforeDatabase(t *testing.T) {
	// No tables exist, so any database interaction would error with a
	// missing-table failure instead of a bad request.
	svc, _ := newTestService(t, cache.NewNoop(), false)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.CreatePurchaseOrderRequest)
	}{
		{"missing supplier", func(r *dto.CreatePurchaseOrderRequest) { r.SupplierID = nil }},
		{"missing creator", func(r *dto.CreatePurchaseOrderRequest) { r.CreatedBy = nil }},
		{"missing po number", func(r *dto.CreatePurchaseOrderRequest) { r.PONumber = "" }},
		{"missing status", func(r *dto.CreatePurchaseOrderRequest) { r.Status = "" }},
		{"unknown status", func(r *dto.CreatePurchaseOrderRequest) { r.Status = "shipped" }},
		{"missing order date", func(r *dto.CreatePurchaseOrderRequest) { r.OrderDate = "" }},
		{"garbage order date", func(r *dto.CreatePurchaseOrderRequest) { r.OrderDate = "yesterday" }},
		{"missing expected date", func(r *dto.CreatePurchaseOrderRequest) { r.ExpectedDate = "" }},
		{"missing total", func(r *dto.CreatePurchaseOrderRequest) { r.TotalAmount = nil }},
		{"empty items", func(r *dto.CreatePurchaseOrderRequest) { r.Items = nil }},
		{"item missing product", func(r *dto.CreatePurchaseOrderRequest) { r.Items[0].ProductID = nil }},
		{"item missing quantity", func(r *dto.CreatePurchaseOrderRequest) { r.Items[0].Quantity = nil }},
		{"item zero quantity", func(r *dto.CreatePurchaseOrderRequest) { r.Items[0].Quantity = ptr(0) }},
		{"item missing unit price", func(r *dto.CreatePurchaseOrderRequest) { r.Items[0].UnitPrice = nil }},
		{"item negative unit price", func(r *dto.CreatePurchaseOrderRequest) { r.Items[0].UnitPrice = ptr(-1.0) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			requireBadRequest(t, err)
		})
	}
}

func TestCreateAcceptsZeroUnitPrice(t *testing.T) {
	svc, conns := newTestService(t, cache.NewNoop(), true)
	ctx := context.Background()

	req := validRequest()
	req.Items[0].UnitPrice = ptr(0.0)

	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	stored := new(entity.PurchaseOrderItem)
	require.NoError(t, conns.Reader.NewSelect().Model(stored).Scan(ctx))
	require.Equal(t, 0.0, stored.TotalPrice)
}

func TestCreateInvalidLaterItemLeavesNoRows(t *testing.T) {
	svc, conns := newTestService(t, cache.NewNoop(), true)
	ctx := context.Background()

	req := validRequest()
	req.Items = append(req.Items, dto.CreatePurchaseOrderItem{
		ProductID: ptr(int64(6)), Quantity: nil, UnitPrice: ptr(1.0),
	})

	_, err := svc.Create(ctx, req)
	requireBadRequest(t, err)

	count, err := conns.Reader.NewSelect().Model((*entity.PurchaseOrder)(nil)).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCreateSurfacesPersistenceFailure(t *testing.T) {
	// Tables are absent, so the transaction itself fails; the error must
	// be an internal one carrying the driver message.
	svc, _ := newTestService(t, cache.NewNoop(), false)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	appErr := errorbank.From(err)
	require.Equal(t, errorbank.KindInternal, appErr.Kind())
	require.ErrorContains(t, err, "purchaseorders")
}

func TestListCachesAndCreateInvalidates(t *testing.T) {
	store := newMapStore()
	svc, _ := newTestService(t, store, true)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Contains(t, store.data, "purchase-orders:list")

	_, err = svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NotContains(t, store.data, "purchase-orders:list")

	second, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 2)
}

func TestListReturnsNewestFirstWithItems(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop(), true)
	ctx := context.Background()

	firstID, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.PONumber = "PO-3002"
	req.Items = append(req.Items, dto.CreatePurchaseOrderItem{
		ProductID: ptr(int64(7)), Quantity: ptr(1), UnitPrice: ptr(2.5),
	})
	secondID, err := svc.Create(ctx, req)
	require.NoError(t, err)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, secondID, orders[0].POID)
	require.Equal(t, firstID, orders[1].POID)
	require.Len(t, orders[0].Items, 2)
	require.Len(t, orders[1].Items, 1)
	require.Equal(t, "2024-03-01", orders[0].OrderDate)
}

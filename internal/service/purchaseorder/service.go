package purchaseorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/cache"
	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/dto"
	"github.com/Additional-Code/procura/internal/entity"
	"github.com/Additional-Code/procura/internal/messaging"
	repo "github.com/Additional-Code/procura/internal/repository/purchaseorder"
	"github.com/Additional-Code/procura/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/procura/service/purchaseorder")

const listCacheKey = "purchase-orders:list"

// Service encapsulates business logic around purchase orders.
type Service struct {
	repo      *repo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create validates the request and persists the header with its items
// atomically. Validation fails fast before any database interaction;
// persistence failures carry the original driver message. Returns the
// generated header id.
func (s *Service) Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (int64, error) {
	po, items, err := buildOrder(req)
	if err != nil {
		return 0, err
	}

	ctx, span := serviceTracer.Start(ctx, "PurchaseOrderService.Create", trace.WithAttributes(
		attribute.String("po.number", po.PONumber),
		attribute.Int("po.items", len(items)),
	))
	defer span.End()

	id, err := s.repo.Create(ctx, po, items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return 0, errorbank.Internal("failed to create purchase order", errorbank.WithCause(err))
	}

	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		s.logger.Warn("purchase order cache invalidation failed", zap.Error(err))
	}

	s.publishCreated(ctx, po, len(items))
	return id, nil
}

// List returns all purchase orders, most recent first, each with its
// full item list. The rendered response is cached; any read failure
// aborts the whole response.
func (s *Service) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "PurchaseOrderService.List")
	defer span.End()

	if cached, err := s.listFromCache(ctx); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("purchase order cache read failed", zap.Error(err))
	}

	orders, err := s.repo.ListWithItems(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list purchase orders", errorbank.WithCause(err))
	}

	responses := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		responses = append(responses, dto.NewPurchaseOrderResponse(po))
	}

	if err := s.storeListInCache(ctx, responses); err != nil {
		s.logger.Warn("purchase order cache write failed", zap.Error(err))
	}

	return responses, nil
}

// buildOrder performs the fail-fast structural validation and converts
// the request into entities. Numeric request fields are pointers so an
// absent value is distinguishable from an explicit zero; a unit price of
// zero is accepted (free items are legitimate), a quantity below one is
// not. Caller-supplied item totals are discarded.
func buildOrder(req dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, []*entity.PurchaseOrderItem, error) {
	if req.SupplierID == nil || *req.SupplierID <= 0 {
		return nil, nil, errorbank.BadRequest("supplier_id is required")
	}
	if req.CreatedBy == nil || *req.CreatedBy <= 0 {
		return nil, nil, errorbank.BadRequest("created_by is required")
	}
	if req.PONumber == "" {
		return nil, nil, errorbank.BadRequest("po_number is required")
	}
	if req.Status == "" {
		return nil, nil, errorbank.BadRequest("status is required")
	}
	if !entity.ValidStatus(req.Status) {
		return nil, nil, errorbank.BadRequest("unknown status", errorbank.WithDetail("status", req.Status))
	}
	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		return nil, nil, errorbank.BadRequest("order_date is required", errorbank.WithCause(err))
	}
	expectedDate, err := parseDate(req.ExpectedDate)
	if err != nil {
		return nil, nil, errorbank.BadRequest("expected_date is required", errorbank.WithCause(err))
	}
	if req.TotalAmount == nil || *req.TotalAmount <= 0 {
		return nil, nil, errorbank.BadRequest("total_amount is required")
	}
	if len(req.Items) == 0 {
		return nil, nil, errorbank.BadRequest("items must not be empty")
	}

	items := make([]*entity.PurchaseOrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == nil || *item.ProductID <= 0 {
			return nil, nil, errorbank.BadRequest(fmt.Sprintf("item %d: product_id is required", i))
		}
		if item.Quantity == nil || *item.Quantity < 1 {
			return nil, nil, errorbank.BadRequest(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		if item.UnitPrice == nil || *item.UnitPrice < 0 {
			return nil, nil, errorbank.BadRequest(fmt.Sprintf("item %d: unit_price is required", i))
		}
		items = append(items, &entity.PurchaseOrderItem{
			ProductID: *item.ProductID,
			Quantity:  *item.Quantity,
			UnitPrice: *item.UnitPrice,
		})
	}

	po := &entity.PurchaseOrder{
		SupplierID:   *req.SupplierID,
		CreatedBy:    *req.CreatedBy,
		PONumber:     req.PONumber,
		Status:       req.Status,
		OrderDate:    orderDate,
		ExpectedDate: expectedDate,
		TotalAmount:  *req.TotalAmount,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	return po, items, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse(dto.DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (s *Service) listFromCache(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var responses []dto.PurchaseOrderResponse
	if err := json.Unmarshal(bytes, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *Service) storeListInCache(ctx context.Context, responses []dto.PurchaseOrderResponse) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, listCacheKey, bytes, s.cacheTTL)
}

func (s *Service) publishCreated(ctx context.Context, po *entity.PurchaseOrder, itemCount int) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := PurchaseOrderCreatedEvent{
		POID:        po.ID,
		PONumber:    po.PONumber,
		SupplierID:  po.SupplierID,
		CreatedBy:   po.CreatedBy,
		Status:      po.Status,
		TotalAmount: po.TotalAmount,
		ItemCount:   itemCount,
		CreatedAt:   po.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal purchase order created", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("po-%d", po.ID)), payload); err != nil {
		s.logger.Error("publish purchase order created", zap.Error(err))
	}
}

// PurchaseOrderCreatedEvent is emitted after a purchase order commits.
type PurchaseOrderCreatedEvent struct {
	POID        int64     `json:"po_id"`
	PONumber    string    `json:"po_number"`
	SupplierID  int64     `json:"supplier_id"`
	CreatedBy   int64     `json:"created_by"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

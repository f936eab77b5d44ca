package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/cache"
	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/dto"
	repo "github.com/Additional-Code/procura/internal/repository/catalog"
	"github.com/Additional-Code/procura/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/procura/service/catalog")

// Service exposes the read-only catalog collections.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new catalog Service.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// Products lists all catalog products.
func (s *Service) Products(ctx context.Context) ([]dto.ProductResponse, error) {
	return listThrough(ctx, s, "catalog:products", "products", func(ctx context.Context) ([]dto.ProductResponse, error) {
		products, err := s.repo.Products(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			responses = append(responses, dto.NewProductResponse(p))
		}
		return responses, nil
	})
}

// Suppliers lists all suppliers.
func (s *Service) Suppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	return listThrough(ctx, s, "catalog:suppliers", "suppliers", func(ctx context.Context) ([]dto.SupplierResponse, error) {
		suppliers, err := s.repo.Suppliers(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]dto.SupplierResponse, 0, len(suppliers))
		for _, sup := range suppliers {
			responses = append(responses, dto.NewSupplierResponse(sup))
		}
		return responses, nil
	})
}

// Users lists all internal users.
func (s *Service) Users(ctx context.Context) ([]dto.UserResponse, error) {
	return listThrough(ctx, s, "catalog:users", "users", func(ctx context.Context) ([]dto.UserResponse, error) {
		users, err := s.repo.Users(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			responses = append(responses, dto.NewUserResponse(u))
		}
		return responses, nil
	})
}

// listThrough reads a collection through the cache: cached bytes win,
// otherwise the loader runs and its rendered result is stored.
func listThrough[T any](ctx context.Context, s *Service, key, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.List."+name)
	defer span.End()

	if s.cache != nil {
		if bytes, err := s.cache.Get(ctx, key); err == nil {
			var cached []T
			if err := json.Unmarshal(bytes, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	result, err := load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list "+name, errorbank.WithCause(err))
	}

	if s.cache != nil {
		if bytes, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, bytes, s.cacheTTL); err != nil {
				s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return result, nil
}

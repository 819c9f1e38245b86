// Package catalog serves the storefront's read-only reference data: vehicles,
// branches, campaigns. Slow-moving lists (locations, campaigns) go through a
// short-lived Redis cache; vehicle queries always hit the backend so filters
// and availability stay fresh.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"rentacar/api"
	"rentacar/models"
	"rentacar/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogService exposes the reference data the storefront screens render.
type CatalogService interface {
	Vehicles(ctx context.Context, filters models.FilterParams) ([]models.Vehicle, error)
	Vehicle(ctx context.Context, id string) (*models.Vehicle, error)
	PopularVehicles(ctx context.Context) ([]models.Vehicle, error)
	Locations(ctx context.Context, city string) ([]models.Location, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
}

// DefaultCatalogService implements CatalogService. Cache may be nil, in which
// case every call goes straight to the backend.
type DefaultCatalogService struct {
	Client *api.Client
	Cache  *redis.Client
	Logger *zap.Logger
	TTL    time.Duration
}

func NewCatalogService(client *api.Client, cache *redis.Client, logger *zap.Logger) *DefaultCatalogService {
	return &DefaultCatalogService{
		Client: client,
		Cache:  cache,
		Logger: logger,
		TTL:    utils.ReferenceCacheTTL,
	}
}

func (s *DefaultCatalogService) Vehicles(ctx context.Context, filters models.FilterParams) ([]models.Vehicle, error) {
	return s.Client.Vehicles(ctx, filters)
}

func (s *DefaultCatalogService) Vehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.Client.Vehicle(ctx, id)
}

func (s *DefaultCatalogService) PopularVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.Client.PopularVehicles(ctx)
}

func (s *DefaultCatalogService) Locations(ctx context.Context, city string) ([]models.Location, error) {
	var locations []models.Location
	key := "locations:" + city
	if s.cacheGet(ctx, key, &locations) {
		return locations, nil
	}
	locations, err := s.Client.Locations(ctx, city)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, locations)
	return locations, nil
}

func (s *DefaultCatalogService) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if s.cacheGet(ctx, "campaigns", &campaigns) {
		return campaigns, nil
	}
	campaigns, err := s.Client.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, "campaigns", campaigns)
	return campaigns, nil
}

// cacheGet loads a cached list; a cache failure is only logged, the backend
// remains the source of truth.
func (s *DefaultCatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.Cache == nil {
		return false
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.Logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		s.Logger.Warn("reference cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DefaultCatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, s.TTL).Err(); err != nil {
		s.Logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
	}
}

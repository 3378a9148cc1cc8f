package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripforge/flightbooking/config"
	"github.com/tripforge/flightbooking/internal/domain"
)

// RedisCache keeps recent search result sets keyed by their criteria.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

// GetSearch returns the cached result set for the criteria, or nil on a miss.
func (c *RedisCache) GetSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	data, err := c.client.Get(ctx, searchKey(criteria)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offers []domain.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, criteria domain.SearchCriteria, offers []domain.FlightOffer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(criteria), payload, c.searchTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func searchKey(criteria domain.SearchCriteria) string {
	return fmt.Sprintf("search:%s:%s:%s",
		strings.ToLower(strings.TrimSpace(criteria.Origin)),
		strings.ToLower(strings.TrimSpace(criteria.Destination)),
		criteria.DepartureDate)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// FlightCache stores flight search pages in Redis. Entries live for a short
// TTL; seat availability is never cached, only schedule-level results.
type FlightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlightCache connects a cache to the given Redis instance.
func NewFlightCache(addr, password string, db int, ttl time.Duration) *FlightCache {
	return &FlightCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// Ping checks connectivity.
func (c *FlightCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetSearch returns a cached search page, or nil on miss.
func (c *FlightCache) GetSearch(ctx context.Context, params models.FlightSearchParams) (*models.FlightSearchResult, error) {
	data, err := c.client.Get(ctx, searchKey(params)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}

	var result models.FlightSearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached search: %w", err)
	}
	return &result, nil
}

// SetSearch caches one search page.
func (c *FlightCache) SetSearch(ctx context.Context, params models.FlightSearchParams, result *models.FlightSearchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode search result: %w", err)
	}
	return c.client.Set(ctx, searchKey(params), payload, c.ttl).Err()
}

// Close releases the underlying connection pool.
func (c *FlightCache) Close() error {
	return c.client.Close()
}

func searchKey(p models.FlightSearchParams) string {
	day := ""
	if p.DepartureDate != nil {
		day = p.DepartureDate.Format("2006-01-02")
	}
	rangeStart, rangeEnd := "", ""
	if p.DepartureDateStart != nil {
		rangeStart = p.DepartureDateStart.Format(time.RFC3339)
	}
	if p.DepartureDateEnd != nil {
		rangeEnd = p.DepartureDateEnd.Format(time.RFC3339)
	}
	minFare, maxFare := int64(-1), int64(-1)
	if p.MinFareCents != nil {
		minFare = int64(*p.MinFareCents)
	}
	if p.MaxFareCents != nil {
		maxFare = int64(*p.MaxFareCents)
	}
	return fmt.Sprintf("search:flights:%s:%s:%s:%s:%s:%s:%d:%d:%d:%d",
		day, rangeStart, rangeEnd,
		p.DepartureAirportCode, p.ArrivalAirportCode, p.AirlineCode,
		minFare, maxFare, p.Page, p.Limit)
}

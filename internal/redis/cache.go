package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore caches positive foreign-entity resolutions so repeated ride
// writes for the same driver/passenger do not hammer the owning services.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// ResolutionCacheTTL bounds how stale a cached resolution can be. A short
// TTL keeps a deleted driver/passenger from validating rides for long.
const ResolutionCacheTTL = 30 * time.Second

const (
	driverCachePrefix    = "cache:driver:"
	passengerCachePrefix = "cache:passenger:"
)

// CachedDriver is a cached driver resolution.
type CachedDriver struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// CachedPassenger is a cached passenger resolution.
type CachedPassenger struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// GetDriver retrieves a cached driver resolution. A nil result with nil
// error is a cache miss.
func (s *CacheStore) GetDriver(ctx context.Context, driverID int64) (*CachedDriver, error) {
	data, err := s.client.Get(ctx, driverCachePrefix+formatID(driverID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var driver CachedDriver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// SetDriver caches a driver resolution.
func (s *CacheStore) SetDriver(ctx context.Context, driver *CachedDriver) error {
	data, err := json.Marshal(driver)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, driverCachePrefix+formatID(driver.ID), data, ResolutionCacheTTL).Err()
}

// GetPassenger retrieves a cached passenger resolution. A nil result with
// nil error is a cache miss.
func (s *CacheStore) GetPassenger(ctx context.Context, passengerID int64) (*CachedPassenger, error) {
	data, err := s.client.Get(ctx, passengerCachePrefix+formatID(passengerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var passenger CachedPassenger
	if err := json.Unmarshal(data, &passenger); err != nil {
		return nil, err
	}
	return &passenger, nil
}

// SetPassenger caches a passenger resolution.
func (s *CacheStore) SetPassenger(ctx context.Context, passenger *CachedPassenger) error {
	data, err := json.Marshal(passenger)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, passengerCachePrefix+formatID(passenger.ID), data, ResolutionCacheTTL).Err()
}

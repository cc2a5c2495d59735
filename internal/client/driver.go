package client

import (
	"context"
	"time"

	internalRedis "ridehail/internal/redis"
)

// DriverInfo is the subset of the driver entity the ride service needs.
type DriverInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// DriverClient resolves driver ids against the driver service.
type DriverClient struct {
	http  *httpClient
	cache *internalRedis.CacheStore
}

// NewDriverClient creates a driver resolver. cache may be nil.
func NewDriverClient(baseURL string, timeout time.Duration, cache *internalRedis.CacheStore) *DriverClient {
	return &DriverClient{
		http:  newHTTPClient(baseURL, timeout),
		cache: cache,
	}
}

// ResolveDriver validates that a driver exists and returns its info.
func (c *DriverClient) ResolveDriver(ctx context.Context, id int64) (*DriverInfo, error) {
	if c.cache != nil {
		cached, err := c.cache.GetDriver(ctx, id)
		if err == nil && cached != nil {
			return &DriverInfo{ID: cached.ID, Name: cached.Name, PhoneNumber: cached.PhoneNumber}, nil
		}
		// Cache errors fall through to the owning service.
	}

	var info DriverInfo
	if err := c.http.getEntity(ctx, "Driver", "driver", id, &info); err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.SetDriver(ctx, &internalRedis.CachedDriver{
			ID:          info.ID,
			Name:        info.Name,
			PhoneNumber: info.PhoneNumber,
		})
	}

	return &info, nil
}

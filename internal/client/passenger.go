package client

import (
	"context"
	"time"

	internalRedis "ridehail/internal/redis"
)

// PassengerInfo is the subset of the passenger entity the ride service needs.
type PassengerInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// PassengerClient resolves passenger ids against the passenger service.
type PassengerClient struct {
	http  *httpClient
	cache *internalRedis.CacheStore
}

// NewPassengerClient creates a passenger resolver. cache may be nil.
func NewPassengerClient(baseURL string, timeout time.Duration, cache *internalRedis.CacheStore) *PassengerClient {
	return &PassengerClient{
		http:  newHTTPClient(baseURL, timeout),
		cache: cache,
	}
}

// ResolvePassenger validates that a passenger exists and returns its info.
func (c *PassengerClient) ResolvePassenger(ctx context.Context, id int64) (*PassengerInfo, error) {
	if c.cache != nil {
		cached, err := c.cache.GetPassenger(ctx, id)
		if err == nil && cached != nil {
			return &PassengerInfo{ID: cached.ID, Name: cached.Name, Email: cached.Email, PhoneNumber: cached.PhoneNumber}, nil
		}
	}

	var info PassengerInfo
	if err := c.http.getEntity(ctx, "Passenger", "passenger", id, &info); err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.SetPassenger(ctx, &internalRedis.CachedPassenger{
			ID:          info.ID,
			Name:        info.Name,
			Email:       info.Email,
			PhoneNumber: info.PhoneNumber,
		})
	}

	return &info, nil
}

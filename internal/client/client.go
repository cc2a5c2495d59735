package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"ridehail/internal/domain"
)

// httpClient is the shared transport for foreign-entity lookups. Every
// call carries a bounded timeout so an unresponsive owning service cannot
// hang a ride request.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// getEntity fetches /api/v1/<path>/<id> from the owning service and
// decodes a 200 body into out. A 404 maps to the domain NotFound error
// for the entity; any transport failure or unexpected status maps to
// ErrUpstreamUnavailable so the boundary can answer 502 instead of 404.
func (c *httpClient) getEntity(ctx context.Context, entity, path string, id int64, out any) error {
	url := fmt.Sprintf("%s/api/v1/%s/%d", c.baseURL, path, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	seg := newrelic.StartExternalSegment(newrelic.FromContext(ctx), req)
	resp, err := c.client.Do(req)
	seg.Response = resp
	seg.End()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s response: %v", domain.ErrUpstreamUnavailable, entity, err)
		}
		return nil
	case http.StatusNotFound:
		return domain.NewNotFoundError(entity, id)
	default:
		return fmt.Errorf("%w: %s service answered %d", domain.ErrUpstreamUnavailable, path, resp.StatusCode)
	}
}

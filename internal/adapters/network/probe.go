package network

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober checks reachability of the remote backend and reports the probe
// round-trip time.
type Prober interface {
	Probe(ctx context.Context) (time.Duration, error)
}

// HTTPProber probes connectivity with a lightweight GET against a
// well-known endpoint.
type HTTPProber struct {
	url    string
	client *http.Client
}

// NewHTTPProber creates a new HTTP prober
func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Probe issues the request and returns the observed latency
func (p *HTTPProber) Probe(ctx context.Context) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Any response proves reachability; 5xx still means the path is up.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return 0, fmt.Errorf("probe rejected: status %d", resp.StatusCode)
	}

	return time.Since(start), nil
}

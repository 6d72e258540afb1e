package design

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of an image service response is decoded.
const maxResponseBytes = 4 << 20

// Fetcher retrieves the image descriptors of a grid token.
type Fetcher interface {
	FetchGroup(ctx context.Context, token string) ([]ImageDescriptor, error)
}

// StatusError is returned when the image service answers with a non-2xx code.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL string
	// Timeout bounds one request, including reading the body.
	Timeout time.Duration
	// CacheTTL keeps successful responses for reuse. Zero disables caching.
	CacheTTL time.Duration
	// RequestsPerSecond paces outgoing requests. Zero means unlimited.
	RequestsPerSecond float64
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the kolam image service.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

// NewClient validates the base URL and builds a client.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid image service url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("image service url %q must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Timeout > 0 {
		c := *httpClient
		c.Timeout = opts.Timeout
		httpClient = &c
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	c := &Client{
		base:    base,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c, nil
}

// GroupURL is the endpoint holding the images of token.
func (c *Client) GroupURL(token string) string {
	return c.base.JoinPath("images", "group", token).String()
}

// FetchGroup performs GET {base}/images/group/{token} and decodes the JSON
// array of descriptors. A JSON null body is an error; an empty array is not.
func (c *Client) FetchGroup(ctx context.Context, token string) ([]ImageDescriptor, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(token); ok {
			return slices.Clone(cached.([]ImageDescriptor)), nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting to send request: %w", err)
	}

	endpoint := c.GroupURL(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	var descs []ImageDescriptor
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&descs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if descs == nil {
		return nil, fmt.Errorf("failed to decode response: expected a JSON array")
	}

	if c.cache != nil {
		c.cache.Set(token, slices.Clone(descs), cache.DefaultExpiration)
	}
	return descs, nil
}

package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=restclient.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTClient performs raw GET requests against the Yahoo Finance API.
// Acquire it with NewRESTClient and release it with Close.
type RESTClient struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
	transport  *http.Transport
}

// RESTClientOption is a configuration option for the REST client.
type RESTClientOption func(*RESTClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient HTTPClient) RESTClientOption {
	return func(c *RESTClient) {
		c.httpClient = httpClient
		c.transport = nil
	}
}

// WithUserAgent overrides the browser User-Agent header.
func WithUserAgent(userAgent string) RESTClientOption {
	return func(c *RESTClient) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

func NewRESTClient(baseURL string, timeout time.Duration, options ...RESTClientOption) *RESTClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	c := &RESTClient{
		baseURL:    baseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		transport:  transport,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// Get fetches url and returns the response body. A non-2xx response is
// reported as ErrUnexpectedStatus, but its body is still returned so callers
// can read the API's JSON error document.
func (c *RESTClient) Get(ctx context.Context, url string) ([]byte, error) {
	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, fmt.Errorf("%w: %d, body: %.200s", ErrUnexpectedStatus, resp.StatusCode, body)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// Close releases idle connections held by the client's transport.
func (c *RESTClient) Close() {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
}

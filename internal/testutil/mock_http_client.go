package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing. Like the real client it returns
// an *httpclient.Error for statuses >= 400.
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
	err      error
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a URL suffix
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = resp
}

// RegisterJSONResponse is a helper to register a JSON body with a status
func (m *MockHTTPClient) RegisterJSONResponse(url string, status int, body string) {
	m.RegisterResponse(url, MockResponse{
		StatusCode: status,
		Body:       []byte(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	})
}

// FailWith makes every Send fail as a transport error
func (m *MockHTTPClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	failure := m.err
	m.mu.Unlock()

	if failure != nil {
		return nil, ierr.WithError(failure).
			WithHint("Unable to reach the remote service").
			Mark(ierr.ErrHTTPClient)
	}
	if err := ctx.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to reach the remote service").
			Mark(ierr.ErrHTTPClient)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// longest matching suffix wins so "/verify/abc" beats "/abc"
	var matched MockResponse
	matchedLen := -1
	for route, resp := range m.routes {
		if strings.HasSuffix(req.URL, route) && len(route) > matchedLen {
			matched = resp
			matchedLen = len(route)
		}
	}

	if matchedLen < 0 {
		return nil, httpclient.NewError(http.StatusNotFound, []byte(`{"status":false,"message":"Not Found"}`))
	}
	if matched.StatusCode >= 400 {
		return nil, httpclient.NewError(matched.StatusCode, matched.Body)
	}

	return &httpclient.Response{
		StatusCode: matched.StatusCode,
		Body:       matched.Body,
		Headers:    matched.Headers,
	}, nil
}

// Requests returns every request sent so far
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*httpclient.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
	m.err = nil
}

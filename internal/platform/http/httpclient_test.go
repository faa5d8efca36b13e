package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7 * time.Second)
	assert.Equal(t, 7*time.Second, c.Timeout)

	lt, ok := c.Transport.(*loggingTransport)
	require.True(t, ok)
	tr, ok := lt.next.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 100, tr.MaxIdleConns)
	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
}

func TestNewHTTPClient_RoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/ping", nil)
	require.NoError(t, err)

	res, err := NewHTTPClient(time.Second).Do(req)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestLoggingTransport_Error(t *testing.T) {
	t.Parallel()

	c := &http.Client{Transport: &loggingTransport{next: failingTransport{}}}
	_, err := c.Get("http://example.invalid/quote")
	assert.ErrorContains(t, err, "connection refused")
}

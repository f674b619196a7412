package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	client, err := NewHTTPClient(5*time.Second, "")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.Timeout)

	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.Proxy)
}

func TestNewHTTPClient_Proxy(t *testing.T) {
	t.Parallel()

	client, err := NewHTTPClient(time.Second, "http://proxy.internal:3128")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://query1.finance.yahoo.com/v8/finance/chart/AAPL", nil)
	require.NoError(t, err)
	u, err := client.Transport.(*http.Transport).Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.internal:3128", u.Host)

	_, err = NewHTTPClient(time.Second, "://bad")
	assert.Error(t, err)
}

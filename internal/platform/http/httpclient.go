// Package http builds the outbound HTTP client shared by the market providers.
package http

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// NewHTTPClient returns a client with explicit dial, TLS and overall timeouts.
// proxy, when set, overrides the HTTP_PROXY environment.
func NewHTTPClient(timeout time.Duration, proxy string) (*http.Client, error) {
	proxyFunc := http.ProxyFromEnvironment
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", proxy, err)
		}
		proxyFunc = http.ProxyURL(u)
	}
	t := &http.Transport{
		Proxy: proxyFunc,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}, nil
}

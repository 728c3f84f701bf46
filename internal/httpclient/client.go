package httpclient

import (
	"net/http"
	"net/url"
	"time"
)

// Timeout bounds every outbound request.
const Timeout = 30 * time.Second

// New returns a client with a 30s timeout, routed through proxyURL when set.
// An unparseable proxy URL is ignored.
func New(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   Timeout,
		Transport: transport,
	}
}

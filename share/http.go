package share

import (
	"net/http"
	"net/url"
	"time"
)

var HTTPClient = &http.Client{
	Timeout: 1 * time.Minute,
}

// initTransport sets up the shared upstream transport, optionally through proxy.
func initTransport(proxy string) {
	tr := &http.Transport{
		MaxConnsPerHost:       0,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   64,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		ExpectContinueTimeout: 30 * time.Second,
	}
	if proxy != "" {
		if u, err := url.Parse(proxy); err == nil {
			tr.Proxy = http.ProxyURL(u)
		}
	}
	HTTPClient.Transport = tr
}

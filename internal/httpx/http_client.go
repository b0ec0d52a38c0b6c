package httpx

import (
	"net/http"
	"time"
)

const (
	defaultModelCallTimeout = 90 * time.Second
	userAgent               = "feedback-classifier/1.0"
)

// uaTransport fills in User-Agent on requests that did not set one.
type uaTransport struct {
	base http.RoundTripper
}

func (t uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(clone)
}

var modelClient = &http.Client{
	Timeout:   defaultModelCallTimeout,
	Transport: uaTransport{base: http.DefaultTransport},
}

// ExternalHTTPClient is shared by every outbound model call.
func ExternalHTTPClient() *http.Client {
	return modelClient
}

// ConfigureExternalHTTPClient sets the per-request timeout for model calls
// and returns the value applied. Non-positive seconds keep the default.
func ConfigureExternalHTTPClient(timeoutSeconds int) time.Duration {
	timeout := defaultModelCallTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	modelClient.Timeout = timeout
	return timeout
}

package payments

import "fmt"

// UpstreamError is returned when a provider call fails. StatusCode 0 means
// the request never completed (network error). The message never carries
// provider credentials or response bodies.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// Retryable reports whether the caller may resubmit the same request.
// Network failures and provider 5xx are retryable; 4xx means the request
// itself is wrong and retrying cannot help.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

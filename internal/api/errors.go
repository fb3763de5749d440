package api

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network call when no auth token is configured.
	ErrMissingCredential = errors.New("missing eBay auth token")

	// ErrUpstreamTimeout is returned when the Trading API does not answer within the client timeout.
	ErrUpstreamTimeout = errors.New("ebay request timed out")
)

// UpstreamStatusError carries a non-200 status from the Trading API so it can be forwarded.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("eBay API returned status %d", e.StatusCode)
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"ebaylistings/internal/config"
)

// TradingClient is a small client for the eBay Trading API (XML over POST).
type TradingClient struct {
	httpClient         *resty.Client
	endpoint           string
	authToken          string
	siteID             string
	compatibilityLevel string
}

func NewTradingClient(cfg *config.Config) *TradingClient {
	c := resty.New()
	c.SetTimeout(cfg.UpstreamTimeout)

	return &TradingClient{
		httpClient:         c,
		endpoint:           cfg.EbayAPIURL,
		authToken:          cfg.AuthToken,
		siteID:             cfg.EbaySiteID,
		compatibilityLevel: cfg.CompatibilityLevel,
	}
}

// GetMyeBaySelling fetches one page of the seller's active list and returns
// the raw XML body. It makes a single attempt.
func (c *TradingClient) GetMyeBaySelling(ctx context.Context, p Pagination) ([]byte, error) {
	if c.authToken == "" {
		return nil, ErrMissingCredential
	}

	body, err := buildSellingRequest(c.authToken, p)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeaders(c.headers()).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%s: %w", callName, ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("%s: %w", callName, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &UpstreamStatusError{
			StatusCode: resp.StatusCode(),
			Body:       responseSnippet(resp.Body()),
		}
	}

	return resp.Body(), nil
}

func (c *TradingClient) headers() map[string]string {
	return map[string]string{
		"X-EBAY-API-SITEID":              c.siteID,
		"X-EBAY-API-COMPATIBILITY-LEVEL": c.compatibilityLevel,
		"X-EBAY-API-CALL-NAME":           callName,
		"X-EBAY-API-IAF-TOKEN":           c.authToken,
		"Content-Type":                   "text/xml",
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

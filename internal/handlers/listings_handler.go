package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ebaylistings/internal/api"
)

// ListingsFetcher is implemented by service.ListingsService.
type ListingsFetcher interface {
	FetchListings(ctx context.Context, p api.Pagination) ([]api.Listing, error)
}

type ListingsHandler struct {
	svc ListingsFetcher
	log *zap.SugaredLogger
}

func NewListingsHandler(svc ListingsFetcher, log *zap.SugaredLogger) *ListingsHandler {
	return &ListingsHandler{svc: svc, log: log}
}

// RegisterRoutes wires listing routes into the given router.
func (h *ListingsHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/ebay-listings", h.GetListings)
}

type listingsQuery struct {
	Page           int `form:"page,default=1" binding:"min=1"`
	EntriesPerPage int `form:"entriesPerPage,default=200" binding:"min=1"`
}

// GetListings returns one page of the seller's active listings as a JSON array.
func (h *ListingsHandler) GetListings(c *gin.Context) {
	var q listingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination: " + err.Error()})
		return
	}

	p := api.Pagination{PageNumber: q.Page, EntriesPerPage: q.EntriesPerPage}
	listings, err := h.svc.FetchListings(c.Request.Context(), p)
	if err != nil {
		status, msg := errorResponse(err)
		fields := []interface{}{"status", status, "error", err, "page", p.PageNumber}
		var statusErr *api.UpstreamStatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, "upstream_body", statusErr.Body)
		}
		if status >= http.StatusInternalServerError {
			h.log.Errorw("fetch listings failed", fields...)
		} else {
			h.log.Warnw("fetch listings failed", fields...)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// errorResponse maps a fetch error to the status and message sent to the browser.
func errorResponse(err error) (int, string) {
	var statusErr *api.UpstreamStatusError
	switch {
	case errors.Is(err, api.ErrMissingCredential):
		return http.StatusBadRequest, "Missing eBay auth token"
	case errors.As(err, &statusErr):
		return statusErr.StatusCode, statusErr.Error()
	case errors.Is(err, api.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

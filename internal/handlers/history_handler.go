package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ebaylistings/internal/repository"
)

// FetchHistory lists stored fetch records.
type FetchHistory interface {
	Recent(ctx context.Context, limit int) ([]repository.FetchRecord, error)
}

type HistoryHandler struct {
	history FetchHistory
}

// NewHistoryHandler accepts a nil history, in which case the route answers 503.
func NewHistoryHandler(history FetchHistory) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/fetches", h.GetFetches)
}

type historyQuery struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// GetFetches returns the most recent fetch records, newest first.
func (h *HistoryHandler) GetFetches(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fetch history is disabled"})
		return
	}

	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + err.Error()})
		return
	}

	records, err := h.history.Recent(c.Request.Context(), q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ebaylistings/internal/api"
	"ebaylistings/internal/repository"
)

// SellingClient fetches a raw GetMyeBaySelling document.
type SellingClient interface {
	GetMyeBaySelling(ctx context.Context, p api.Pagination) ([]byte, error)
}

// FetchRecorder stores the outcome of each fetch.
type FetchRecorder interface {
	Save(ctx context.Context, rec *repository.FetchRecord) error
}

// NopRecorder drops every record. Used when the fetch history is disabled.
type NopRecorder struct{}

func (NopRecorder) Save(context.Context, *repository.FetchRecord) error { return nil }

// ListingsService fetches and maps the seller's active listings.
type ListingsService struct {
	client   SellingClient
	recorder FetchRecorder
	log      *zap.SugaredLogger
}

func NewListingsService(client SellingClient, recorder FetchRecorder, log *zap.SugaredLogger) *ListingsService {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ListingsService{
		client:   client,
		recorder: recorder,
		log:      log,
	}
}

// FetchListings returns one page of active listings in upstream document order.
func (s *ListingsService) FetchListings(ctx context.Context, p api.Pagination) ([]api.Listing, error) {
	start := time.Now()

	body, err := s.client.GetMyeBaySelling(ctx, p)
	if err != nil {
		if !errors.Is(err, api.ErrMissingCredential) {
			s.record(ctx, p, start, 0, err)
		}
		return nil, err
	}

	resp, err := api.ParseSellingResponse(body)
	if err != nil {
		err = fmt.Errorf("parse GetMyeBaySelling response: %w", err)
		s.record(ctx, p, start, 0, err)
		return nil, err
	}

	if resp.Failed() {
		msg := api.NotAvailable
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0].ShortMessage
		}
		s.log.Warnw("ebay reported failure ack", "ack", resp.Ack, "message", msg, "page", p.PageNumber)
	}

	s.log.Debugw("fetched listings", "page", p.PageNumber, "entries_per_page", p.EntriesPerPage, "count", len(resp.Listings))
	s.record(ctx, p, start, len(resp.Listings), nil)
	return resp.Listings, nil
}

// record is best-effort; a storage failure never fails the request.
func (s *ListingsService) record(ctx context.Context, p api.Pagination, start time.Time, count int, fetchErr error) {
	rec := &repository.FetchRecord{
		PageNumber:     p.PageNumber,
		EntriesPerPage: p.EntriesPerPage,
		ListingCount:   count,
		Outcome:        outcomeOf(fetchErr),
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if fetchErr != nil {
		msg := fetchErr.Error()
		var statusErr *api.UpstreamStatusError
		if errors.As(fetchErr, &statusErr) {
			rec.UpstreamStatus = statusErr.StatusCode
			msg += ": " + statusErr.Body
		}
		rec.Error = truncate(msg, 512)
	}

	if err := s.recorder.Save(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warnw("failed to record fetch", "error", err, "page", p.PageNumber)
	}
}

func outcomeOf(err error) string {
	var statusErr *api.UpstreamStatusError
	switch {
	case err == nil:
		return repository.OutcomeOK
	case errors.Is(err, api.ErrUpstreamTimeout):
		return repository.OutcomeTimeout
	case errors.As(err, &statusErr):
		return repository.OutcomeUpstreamStatus
	default:
		return repository.OutcomeError
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Fetch outcomes stored with each record.
const (
	OutcomeOK             = "ok"
	OutcomeUpstreamStatus = "upstream_status"
	OutcomeTimeout        = "timeout"
	OutcomeError          = "error"
)

// FetchRecord stores one call to the listings endpoint. Listings themselves are not kept.
type FetchRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PageNumber     int       `gorm:"not null" json:"page"`
	EntriesPerPage int       `gorm:"not null" json:"entriesPerPage"`
	ListingCount   int       `gorm:"not null" json:"listingCount"`
	Outcome        string    `gorm:"size:32;index;not null" json:"outcome"`
	UpstreamStatus int       `json:"upstreamStatus,omitempty"`
	Error          string    `gorm:"size:512" json:"error,omitempty"`
	DurationMillis int64     `gorm:"not null" json:"durationMillis"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

type FetchRepository struct {
	db *gorm.DB
}

func NewFetchRepository(db *gorm.DB) *FetchRepository {
	return &FetchRepository{db: db}
}

// AutoMigrate ensures DB schema is up to date for this repository.
func (r *FetchRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&FetchRecord{})
}

// Save persists one fetch record.
func (r *FetchRepository) Save(ctx context.Context, rec *FetchRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Recent returns the latest records, newest first.
func (r *FetchRepository) Recent(ctx context.Context, limit int) ([]FetchRecord, error) {
	var out []FetchRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

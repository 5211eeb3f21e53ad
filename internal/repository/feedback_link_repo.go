package repository

import (
	"context"

	"feedback-link-service/internal/apperr"
	"feedback-link-service/internal/models"

	"gorm.io/gorm"
)

type FeedbackLinkRepo struct {
	db *gorm.DB
}

func NewFeedbackLinkRepo(db *gorm.DB) *FeedbackLinkRepo {
	return &FeedbackLinkRepo{db: db}
}

// Create inserts link and sets link.ID to the id assigned by the store.
// The insert runs on a connection held only for the duration of the call.
func (r *FeedbackLinkRepo) Create(ctx context.Context, link *models.FeedbackLink) error {
	err := r.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return tx.Create(link).Error
	})
	if err != nil {
		return apperr.NewStorageError("failed to create feedback link", err)
	}
	return nil
}

// ListRecent returns at most limit links, newest first.
func (r *FeedbackLinkRepo) ListRecent(ctx context.Context, limit int) ([]models.FeedbackLink, error) {
	links := make([]models.FeedbackLink, 0, limit)
	err := r.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return tx.Order("id DESC").Limit(limit).Find(&links).Error
	})
	if err != nil {
		return nil, apperr.NewStorageError("failed to list feedback links", err)
	}
	return links, nil
}

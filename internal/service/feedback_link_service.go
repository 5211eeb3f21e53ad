package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedback-link-service/internal/apperr"
	"feedback-link-service/internal/models"
	"feedback-link-service/internal/notify"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// FeedbackIDLength is the number of hex characters kept from a random UUID.
	FeedbackIDLength = 10

	// CreatedAtLayout is ISO-8601 UTC with microseconds and a trailing Z.
	CreatedAtLayout = "2006-01-02T15:04:05.000000Z"

	MsgMissingFields = "Missing required fields: cust_sr_no, cust_mob_no, cust_veh_no"
)

// Store is the persistence the service needs.
type Store interface {
	Create(ctx context.Context, link *models.FeedbackLink) error
	ListRecent(ctx context.Context, limit int) ([]models.FeedbackLink, error)
}

// CreateLinkInput identifies the customer a link is issued for.
type CreateLinkInput struct {
	CustSrNo  string `validate:"required"`
	CustMobNo string `validate:"required"`
	CustVehNo string `validate:"required"`
}

type FeedbackLinkService struct {
	store      Store
	notifier   notify.Notifier
	validate   *validator.Validate
	domain     string
	listLimit  int
	now        func() time.Time
	feedbackID func() string
}

func NewFeedbackLinkService(store Store, notifier notify.Notifier, domain string, listLimit int) *FeedbackLinkService {
	return &FeedbackLinkService{
		store:      store,
		notifier:   notifier,
		validate:   validator.New(),
		domain:     domain,
		listLimit:  listLimit,
		now:        time.Now,
		feedbackID: NewFeedbackID,
	}
}

// NewFeedbackID returns the first FeedbackIDLength hex characters of a random UUID.
// Collisions are not checked.
func NewFeedbackID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:FeedbackIDLength]
}

// BuildLink composes the customer-facing URL for feedbackID.
func BuildLink(domain, feedbackID string) string {
	return fmt.Sprintf("https://feedback.%s/feedback/%s", domain, feedbackID)
}

// Create validates in, generates the id and link, and persists one record.
// Identical inputs always produce distinct records.
func (s *FeedbackLinkService) Create(ctx context.Context, in CreateLinkInput) (*models.FeedbackLink, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.NewValidationError(MsgMissingFields)
	}

	feedbackID := s.feedbackID()
	link := &models.FeedbackLink{
		CustomerServiceNumber: in.CustSrNo,
		CustomerMobileNumber:  in.CustMobNo,
		CustomerVehicleNumber: in.CustVehNo,
		FeedbackID:            feedbackID,
		Link:                  BuildLink(s.domain, feedbackID),
		CreatedAt:             s.now().UTC().Format(CreatedAtLayout),
	}

	if err := s.store.Create(ctx, link); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		issued := *link
		go func() {
			if err := s.notifier.LinkIssued(context.Background(), issued); err != nil {
				log.Error().Err(err).Str("feedback_id", issued.FeedbackID).Msg("failed to publish issued link")
			}
		}()
	}

	return link, nil
}

// ListRecent returns the newest links, capped at the configured limit.
func (s *FeedbackLinkService) ListRecent(ctx context.Context) ([]models.FeedbackLink, error) {
	return s.store.ListRecent(ctx, s.listLimit)
}

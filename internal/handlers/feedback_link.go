package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"feedback-link-service/internal/apperr"
	"feedback-link-service/internal/models"
	"feedback-link-service/internal/service"

	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes      = 1 << 20
	msgInvalidPayload = "Invalid or missing JSON payload"
)

// LinkService is what the HTTP layer needs from the service.
type LinkService interface {
	Create(ctx context.Context, in service.CreateLinkInput) (*models.FeedbackLink, error)
	ListRecent(ctx context.Context) ([]models.FeedbackLink, error)
}

type FeedbackLinkHandler struct {
	links LinkService
}

func NewFeedbackLinkHandler(links LinkService) *FeedbackLinkHandler {
	return &FeedbackLinkHandler{links: links}
}

type CreateLinkResponse struct {
	CustSrNo   string `json:"cust_sr_no"`
	CustMobNo  string `json:"cust_mob_no"`
	CustVehNo  string `json:"cust_veh_no"`
	Link       string `json:"link"`
	FeedbackID string `json:"feedback_id"`
	CreatedAt  string `json:"created_at"`
}

// --- POST /create-feedback-link ---

func (h *FeedbackLinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCreateRequest(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	link, err := h.links.Create(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateLinkResponse{
		CustSrNo:   link.CustomerServiceNumber,
		CustMobNo:  link.CustomerMobileNumber,
		CustVehNo:  link.CustomerVehicleNumber,
		Link:       link.Link,
		FeedbackID: link.FeedbackID,
		CreatedAt:  link.CreatedAt,
	})
}

// --- GET /links ---

func (h *FeedbackLinkHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.ListRecent(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if links == nil {
		links = []models.FeedbackLink{}
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *FeedbackLinkHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		log.Debug().Err(err).Msg("rejected feedback link request")
		writeError(w, http.StatusBadRequest, apperr.Message(err))
	case apperr.IsStorage(err):
		log.Error().Err(err).Msg("storage failure")
		writeError(w, http.StatusInternalServerError, apperr.Message(err))
	default:
		log.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeCreateRequest reads the body as JSON whatever the Content-Type.
// Anything other than a non-empty object with string (or null) fields is an
// invalid payload; empty or absent fields are left for the service to reject.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (service.CreateLinkInput, error) {
	var in service.CreateLinkInput
	invalid := apperr.NewValidationError(msgInvalidPayload)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return in, invalid
	}

	// Unmarshal rejects trailing data after the object, a Decoder would not
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return in, invalid
	}

	targets := map[string]*string{
		"cust_sr_no":  &in.CustSrNo,
		"cust_mob_no": &in.CustMobNo,
		"cust_veh_no": &in.CustVehNo,
	}
	for key, dst := range targets {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return in, invalid
		}
	}
	return in, nil
}

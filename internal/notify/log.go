package notify

import (
	"context"

	"feedback-link-service/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogNotifier writes one structured log line per issued link. It stands in
// until an SMS gateway delivers links to customers.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.With().Str("component", "notifier").Logger()}
}

// NewLogNotifierWith is used by tests to capture output.
func NewLogNotifierWith(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) LinkIssued(ctx context.Context, link models.FeedbackLink) error {
	n.logger.Info().
		Int64("id", link.ID).
		Str("feedback_id", link.FeedbackID).
		Str("cust_mob_no", link.CustomerMobileNumber).
		Str("link", link.Link).
		Msg("feedback link issued")
	return nil
}

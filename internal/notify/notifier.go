package notify

import (
	"context"

	"feedback-link-service/internal/models"
)

// Notifier is told about every link that has been issued. Implementations
// must not block for long; callers run them off the request path.
type Notifier interface {
	LinkIssued(ctx context.Context, link models.FeedbackLink) error
}

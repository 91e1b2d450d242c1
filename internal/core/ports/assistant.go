package ports

import (
	"context"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// AssistantRequest is one model invocation: the fixed system instruction,
// the replayed window of prior turns, and the new user message.
type AssistantRequest struct {
	System  string
	History []domain.ChatTurn
	Message string
}

// AssistantClient abstracts the external generative-model host.
type AssistantClient interface {
	Reply(ctx context.Context, req AssistantRequest) (string, error)
}

// AssistantService drives the chat proxy. Model failures never surface as
// errors from Send; conversational continuity wins over strict signaling.
type AssistantService interface {
	Send(ctx context.Context, userID, message string) (reply, lang string, err error)
	Reset(ctx context.Context, userID string) error
	DetectLanguage(text string) string
}

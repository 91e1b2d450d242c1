package ports

import (
	"context"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// ChatRepository persists per-user assistant transcripts.
type ChatRepository interface {
	// GetOrCreate returns the session for userID, creating an empty one
	// when absent. The second return reports whether it was just created.
	GetOrCreate(ctx context.Context, userID string) (*domain.ChatSession, bool, error)
	// AppendTurn appends atomically and keeps only the most recent
	// domain.MaxChatTurns turns.
	AppendTurn(ctx context.Context, userID string, turn domain.ChatTurn) error
	// Reset clears the turn list, keeping the session document.
	Reset(ctx context.Context, userID string) error
}

package domain

import "time"

const (
	// MaxChatTurns bounds a stored transcript; older turns are dropped
	// from the front after every append.
	MaxChatTurns = 30
	// ChatPromptWindow is the number of recent turns replayed to the
	// model on each request.
	ChatPromptWindow = 15

	TurnRoleUser  = "user"
	TurnRoleModel = "model"
)

// ChatTurn is a single utterance in an assistant conversation.
type ChatTurn struct {
	Role string    `json:"role" bson:"role"`
	Text string    `json:"text" bson:"text"`
	At   time.Time `json:"at" bson:"at"`
}

// ChatSession is the per-user assistant transcript, a bounded sliding
// window of the most recent MaxChatTurns turns.
type ChatSession struct {
	ID         string
	UserID     string
	Turns      []ChatTurn
	LastActive time.Time
}

// Append adds a turn and trims the transcript to MaxChatTurns, dropping
// the oldest turns first.
func (s *ChatSession) Append(t ChatTurn) {
	s.Turns = append(s.Turns, t)
	if n := len(s.Turns); n > MaxChatTurns {
		s.Turns = s.Turns[n-MaxChatTurns:]
	}
	s.LastActive = t.At
}

// RecentWindow returns the most recent ChatPromptWindow turns in order.
func (s *ChatSession) RecentWindow() []ChatTurn {
	if len(s.Turns) <= ChatPromptWindow {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-ChatPromptWindow:]
}

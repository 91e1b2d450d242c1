package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestChatSession_Append_CapsAtMaxTurns(t *testing.T) {
	s := &ChatSession{UserID: "u1"}
	for i := 0; i < 35; i++ {
		s.Append(ChatTurn{Role: TurnRoleUser, Text: fmt.Sprintf("m%d", i), At: time.Now()})
	}

	if len(s.Turns) != MaxChatTurns {
		t.Fatalf("expected %d turns, got %d", MaxChatTurns, len(s.Turns))
	}
	// The oldest five were dropped from the front.
	if s.Turns[0].Text != "m5" {
		t.Fatalf("expected oldest turn m5, got %s", s.Turns[0].Text)
	}
	if s.Turns[len(s.Turns)-1].Text != "m34" {
		t.Fatalf("expected newest turn m34, got %s", s.Turns[len(s.Turns)-1].Text)
	}
}

func TestChatSession_RecentWindow(t *testing.T) {
	s := &ChatSession{UserID: "u1"}
	for i := 0; i < 4; i++ {
		s.Append(ChatTurn{Role: TurnRoleUser, Text: fmt.Sprintf("m%d", i)})
	}
	if got := s.RecentWindow(); len(got) != 4 {
		t.Fatalf("expected full short history, got %d turns", len(got))
	}

	for i := 4; i < 25; i++ {
		s.Append(ChatTurn{Role: TurnRoleUser, Text: fmt.Sprintf("m%d", i)})
	}
	got := s.RecentWindow()
	if len(got) != ChatPromptWindow {
		t.Fatalf("expected %d turns, got %d", ChatPromptWindow, len(got))
	}
	if got[len(got)-1].Text != "m24" {
		t.Fatalf("window must end at the newest turn, got %s", got[len(got)-1].Text)
	}
}

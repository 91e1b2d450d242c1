package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubAssistantService struct {
	sendFn  func(ctx context.Context, userID, message string) (string, string, error)
	resetFn func(ctx context.Context, userID string) error
	langFn  func(text string) string
}

func (s *stubAssistantService) Send(ctx context.Context, userID, message string) (string, string, error) {
	return s.sendFn(ctx, userID, message)
}

func (s *stubAssistantService) Reset(ctx context.Context, userID string) error {
	return s.resetFn(ctx, userID)
}

func (s *stubAssistantService) DetectLanguage(text string) string {
	return s.langFn(text)
}

func newAssistantEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAssistantHandler_Send_UsesTokenIdentity(t *testing.T) {
	e := newAssistantEcho()
	stub := &stubAssistantService{
		sendFn: func(ctx context.Context, userID, message string) (string, string, error) {
			if userID != "token-user" {
				t.Fatalf("expected token identity, got %s", userID)
			}
			if message != "paint ideas?" {
				t.Fatalf("unexpected message %q", message)
			}
			return "try warm tones", "en", nil
		},
	}
	handler := NewAssistantHandler(stub)

	// The body names a different user; the token identity must win.
	c, rec := jsonContext(e, http.MethodPost, "/assistant",
		`{"message":"paint ideas?","userId":"spoofed-user"}`)
	c.Set("user_id", "token-user")
	c.Set("role", "owner")

	if err := handler.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["reply"] != "try warm tones" || resp["lang"] != "en" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAssistantHandler_Send_RequiresMessage(t *testing.T) {
	e := newAssistantEcho()
	stub := &stubAssistantService{
		sendFn: func(ctx context.Context, userID, message string) (string, string, error) {
			t.Fatalf("should not be called")
			return "", "", nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/assistant", `{"message":""}`)
	c.Set("user_id", "u1")

	err := handler.Send(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAssistantHandler_Send_Unauthenticated(t *testing.T) {
	e := newAssistantEcho()
	stub := &stubAssistantService{
		sendFn: func(ctx context.Context, userID, message string) (string, string, error) {
			t.Fatalf("should not be called")
			return "", "", nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/assistant", `{"message":"hi"}`)

	err := handler.Send(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAssistantHandler_Reset(t *testing.T) {
	e := newAssistantEcho()
	resetFor := ""
	stub := &stubAssistantService{
		resetFn: func(ctx context.Context, userID string) error {
			resetFor = userID
			return nil
		},
	}
	handler := NewAssistantHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/assistant/reset", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resetFor != "u1" {
		t.Fatalf("reset keyed by %q", resetFor)
	}
}

func TestAssistantHandler_DetectLang(t *testing.T) {
	e := newAssistantEcho()
	stub := &stubAssistantService{
		langFn: func(text string) string {
			if text != "नमस्ते" {
				t.Fatalf("unexpected text %q", text)
			}
			return "hi"
		},
	}
	handler := NewAssistantHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/assistant/detect-lang", `{"text":"नमस्ते"}`)

	if err := handler.DetectLang(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["lang"] != "hi" {
		t.Fatalf("expected hi, got %s", resp["lang"])
	}
}

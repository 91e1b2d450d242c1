package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nirmaanhetu/marketplace-api/internal/api/metrics"
	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

const (
	langEnglish = "en"
	langHindi   = "hi"

	greetingReply = "Hi! I'm Nirmaan 👋 What home idea can I help with first?"
	apologyReply  = "Sorry, I couldn't process that right now. Could you try asking in a simpler way?"

	// systemPrompt is the fixed instruction injected ahead of every model
	// call; it never enters the stored transcript.
	systemPrompt = `You are Nirmaan Hetu's friendly, non-robotic home assistant.
Help with everything about homes — paint choices, décor, ceiling, lighting, furniture, and more.

Rules:
1. Always ask for missing details before giving suggestions.
2. Keep replies short: usually 2 lines max, casual and friendly.
3. Share advice step by step, not all at once.
4. Sound like a real person, not a robot.
5. If unsure, politely say so instead of making things up.
6. For important queries, reply in 4-5 warm, helpful lines.

Tips:
- For paint: suggest 2-3 combos (Asian Paints vs Berger).
- For décor: share quick modern ideas, affordable ideas.
- For ceilings: suggest fall ceiling or POP options.
- Always rephrase to sound like real conversation.`

	hindiDirective = "The user is writing in Hindi. Reply in simple, friendly Hindi (Devanagari script)."
)

var errNoAssistantClient = errors.New("assistant model host not configured")

// AssistantService proxies the chat assistant: it windows the stored
// transcript, calls the external model, and degrades to a static apology
// when the model is unavailable.
type AssistantService struct {
	repo   ports.ChatRepository
	client ports.AssistantClient
	log    zerolog.Logger
}

// NewAssistantService accepts a nil client; every message is then answered
// with the apology string, which keeps the chat surface alive when no model
// host is configured.
func NewAssistantService(repo ports.ChatRepository, client ports.AssistantClient, log zerolog.Logger) *AssistantService {
	return &AssistantService{repo: repo, client: client, log: log}
}

func (s *AssistantService) Send(ctx context.Context, userID, message string) (string, string, error) {
	lang := s.DetectLanguage(message)

	session, created, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return "", "", err
	}
	// First contact: greet without spending a model call.
	if created {
		metrics.AssistantRequestsTotal.WithLabelValues("greeting").Inc()
		return greetingReply, lang, nil
	}

	// Window the history before the new turn is stored so the model never
	// sees the message twice.
	history := session.RecentWindow()
	if lang == langHindi {
		history = append([]domain.ChatTurn{{Role: domain.TurnRoleUser, Text: hindiDirective}}, history...)
	}

	now := time.Now().UTC()
	if err := s.repo.AppendTurn(ctx, userID, domain.ChatTurn{Role: domain.TurnRoleUser, Text: message, At: now}); err != nil {
		return "", "", err
	}

	reply, callErr := s.reply(ctx, history, message)
	result := "ok"
	if callErr != nil {
		// Deliberate degradation: the conversation continues with an
		// apology instead of an HTTP error.
		s.log.Warn().Err(callErr).Str("user_id", userID).Msg("assistant model call failed")
		reply = apologyReply
		result = "degraded"
	}

	if err := s.repo.AppendTurn(ctx, userID, domain.ChatTurn{Role: domain.TurnRoleModel, Text: reply, At: time.Now().UTC()}); err != nil {
		return "", "", err
	}

	metrics.AssistantRequestsTotal.WithLabelValues(result).Inc()
	return reply, lang, nil
}

func (s *AssistantService) Reset(ctx context.Context, userID string) error {
	return s.repo.Reset(ctx, userID)
}

// DetectLanguage classifies text as Hindi when it contains any Devanagari
// rune, English otherwise. Good enough for the two-language UI.
func (s *AssistantService) DetectLanguage(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return langHindi
		}
	}
	return langEnglish
}

func (s *AssistantService) reply(ctx context.Context, history []domain.ChatTurn, message string) (string, error) {
	if s.client == nil {
		return "", errNoAssistantClient
	}

	timer := prometheus.NewTimer(metrics.AssistantReplyDuration)
	defer timer.ObserveDuration()

	return s.client.Reply(ctx, ports.AssistantRequest{
		System:  systemPrompt,
		History: history,
		Message: message,
	})
}

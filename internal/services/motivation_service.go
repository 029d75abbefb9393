package services

import (
	"context"
	"strings"

	"github.com/vamos-sujal/ai-glow-fit/internal/ai"
)

// FallbackQuote is served whenever the gateway call fails. The refresher
// never propagates errors past its boundary.
const FallbackQuote = "Push your limits. Your body achieves what your mind believes."

// defaultQuote covers the rarer case of a successful call with empty content.
const defaultQuote = "Every workout brings you closer to the best version of yourself."

const motivationSystemPrompt = "You are a motivational fitness coach. " +
	"Generate a short, powerful motivational quote about fitness, health, or personal growth. " +
	"Keep it under 30 words. Be inspiring and energetic."

// MotivationService fetches a short quote independent of the plan lifecycle.
type MotivationService struct {
	client Completer
}

func NewMotivationService(client Completer) *MotivationService {
	return &MotivationService{client: client}
}

// FetchQuote returns a fresh quote, or the baked-in fallback on any failure.
// No retry; the user triggers re-fetch.
func (s *MotivationService) FetchQuote(ctx context.Context) string {
	content, err := s.client.Complete(ctx, motivationModel, []ai.Message{
		{Role: "system", Content: motivationSystemPrompt},
		{Role: "user", Content: "Give me today's motivational fitness quote."},
	})
	if err != nil {
		return FallbackQuote
	}
	quote := strings.TrimSpace(content)
	if quote == "" {
		return defaultQuote
	}
	return quote
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vamos-sujal/ai-glow-fit/internal/ai"
)

func TestFetchQuoteReturnsContent(t *testing.T) {
	completer := &stubCompleter{content: "  Sweat today, shine tomorrow.\n"}
	service := NewMotivationService(completer)

	quote := service.FetchQuote(context.Background())
	assert.Equal(t, "Sweat today, shine tomorrow.", quote)
}

func TestFetchQuoteFallsBackOnError(t *testing.T) {
	completer := &stubCompleter{err: ai.ErrRateLimited}
	service := NewMotivationService(completer)

	assert.Equal(t, FallbackQuote, service.FetchQuote(context.Background()))
}

func TestFetchQuoteEmptyContentUsesDefault(t *testing.T) {
	completer := &stubCompleter{content: "   "}
	service := NewMotivationService(completer)

	assert.Equal(t, defaultQuote, service.FetchQuote(context.Background()))
}

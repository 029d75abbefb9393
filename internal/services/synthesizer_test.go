package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testElevenLabs(serverURL, apiKey string) *ElevenLabsSynthesizer {
	s := NewElevenLabsSynthesizer(apiKey)
	s.baseURL = serverURL
	return s
}

func TestElevenLabsMissingKeyNotConfigured(t *testing.T) {
	s := NewElevenLabsSynthesizer("")
	_, err := s.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrSpeechNotConfigured)
}

func TestElevenLabsEmptyTextRejected(t *testing.T) {
	s := NewElevenLabsSynthesizer("key")
	_, err := s.Synthesize(context.Background(), "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSpeechNotConfigured)
}

func TestElevenLabsRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/"+defaultVoiceID, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))

		var payload struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "read this aloud", payload.Text)
		assert.Equal(t, "eleven_turbo_v2", payload.ModelID)
		assert.Equal(t, 0.5, payload.VoiceSettings.Stability)
		assert.Equal(t, 0.75, payload.VoiceSettings.SimilarityBoost)

		w.Write([]byte("mp3 bytes"))
	}))
	defer server.Close()

	s := testElevenLabs(server.URL, "secret")
	audio, err := s.Synthesize(context.Background(), "read this aloud")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3 bytes"), audio)
}

func TestElevenLabsTruncatesLongText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Len(t, payload.Text, maxSpeechLength)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	s := testElevenLabs(server.URL, "secret")
	_, err := s.Synthesize(context.Background(), strings.Repeat("a", maxSpeechLength+500))
	require.NoError(t, err)
}

func TestElevenLabsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s := testElevenLabs(server.URL, "bad-key")
	_, err := s.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSpeechNotConfigured)
}

func TestLocalSynthesizerMissingBinaryNotConfigured(t *testing.T) {
	s := &LocalSynthesizer{}
	_, err := s.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrSpeechNotConfigured)
}

func TestPreferredVoice(t *testing.T) {
	assert.Equal(t, "en-us", preferredVoice([]string{"en-gb", "en-us", "fr"}))
	assert.Equal(t, "English", preferredVoice([]string{"de", "English"}))
	assert.Equal(t, "en-gb", preferredVoice([]string{"en-gb"}))
	assert.Equal(t, "", preferredVoice(nil))
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
)

// ErrSpeechNotConfigured marks the distinguished "service not configured"
// condition. Handlers map it to SpeechNotConfiguredMessage instead of a
// generic failure.
var ErrSpeechNotConfigured = errors.New("voice synthesis is not configured")

// SpeechNotConfiguredMessage is the user-facing text for ErrSpeechNotConfigured.
const SpeechNotConfiguredMessage = "Voice feature requires an ElevenLabs API key. Add it in settings."

// maxSpeechLength caps the synthesized text per the upstream contract.
const maxSpeechLength = 5000

// Synthesizer converts flattened plan text into encoded audio. Two
// implementations exist: a remote ElevenLabs-backed one and a local
// engine with no network dependency. Deployment config picks one.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const (
	defaultElevenLabsURL = "https://api.elevenlabs.io"
	// "Brian", a professional male voice.
	defaultVoiceID = "nPczCjzI2devNBz1zQrb"
)

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech API and returns
// MP3 bytes.
type ElevenLabsSynthesizer struct {
	baseURL    string
	apiKey     string
	voiceID    string
	httpClient *http.Client
}

func NewElevenLabsSynthesizer(apiKey string) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{
		baseURL:    defaultElevenLabsURL,
		apiKey:     apiKey,
		voiceID:    defaultVoiceID,
		httpClient: http.DefaultClient,
	}
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrSpeechNotConfigured
	}
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if len(text) > maxSpeechLength {
		text = text[:maxSpeechLength]
	}

	payload := map[string]any{
		"text":     text,
		"model_id": "eleven_turbo_v2",
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal speech payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", strings.TrimRight(s.baseURL, "/"), s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text-to-speech failed: status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return audio, nil
}

// LocalSynthesizer shells out to espeak-ng (or espeak) and returns WAV
// bytes. It needs no network access, which makes it the default for
// deployments without an ElevenLabs key.
type LocalSynthesizer struct {
	command string
	voice   string
}

func NewLocalSynthesizer() *LocalSynthesizer {
	s := &LocalSynthesizer{}
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			s.command = path
			break
		}
	}
	if s.command != "" {
		s.voice = preferredVoice(listVoices(s.command))
	}
	return s
}

func (s *LocalSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.command == "" {
		return nil, ErrSpeechNotConfigured
	}
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if len(text) > maxSpeechLength {
		text = text[:maxSpeechLength]
	}

	args := []string{"--stdout"}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	args = append(args, text)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("local speech synthesis: %w", err)
	}
	return out.Bytes(), nil
}

// listVoices parses `espeak --voices=en` output into voice names.
func listVoices(command string) []string {
	out, err := exec.Command(command, "--voices=en").Output()
	if err != nil {
		return nil
	}
	var voices []string
	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, fields[3])
		}
	}
	return voices
}

// preferredVoice picks the most natural-sounding English voice available.
func preferredVoice(voices []string) string {
	for _, name := range voices {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "en-us") || strings.Contains(lower, "english") {
			return name
		}
	}
	if len(voices) > 0 {
		return voices[0]
	}
	return ""
}

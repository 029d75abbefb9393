package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ErrImageInFlight is returned while another illustration request is
// outstanding. The UI disables the control rather than queueing.
var ErrImageInFlight = errors.New("image generation already in progress")

// ImageGenerator produces an illustrative image URL for an item name.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, kind string) (string, error)
}

// ImageService caches generated images by item name for the lifetime of the
// instance and allows a single in-flight request at a time. The cache
// guarantees at most one upstream request per identical key, which is what
// keeps duplicate billing off the table.
type ImageService struct {
	generator ImageGenerator

	mu       sync.Mutex
	cache    map[string]string
	inFlight bool
}

func NewImageService(generator ImageGenerator) *ImageService {
	return &ImageService{
		generator: generator,
		cache:     make(map[string]string),
	}
}

// ItemImage returns a cached URL for name, or requests one. kind is
// "exercise" or "food" and shapes the upstream prompt context.
func (s *ImageService) ItemImage(ctx context.Context, name, kind string) (string, error) {
	s.mu.Lock()
	if url, ok := s.cache[name]; ok {
		s.mu.Unlock()
		return url, nil
	}
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrImageInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	url, err := s.generator.GenerateImage(ctx, name, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	s.cache[name] = url
	return url, nil
}

// RemoteImageGenerator calls the image-generation collaborator over HTTP.
type RemoteImageGenerator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRemoteImageGenerator(baseURL, apiKey string) *RemoteImageGenerator {
	return &RemoteImageGenerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

func (g *RemoteImageGenerator) GenerateImage(ctx context.Context, prompt, kind string) (string, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt, "type": kind})
	if err != nil {
		return "", fmt.Errorf("marshal image payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generate-image", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("image generation failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var response struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if response.ImageURL == "" {
		return "", fmt.Errorf("image url missing from response")
	}
	return response.ImageURL, nil
}

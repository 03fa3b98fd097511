// Package vision analyzes poster images with a vision-capable chat
// model and turns the response into a structured attribution result.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/affiche-studio/affiche/domain/attribution"
)

const analysisPrompt = `You are cataloguing a vintage poster. Inspect the image and report who made it.

Respond with a single JSON object, no prose, with exactly these keys:
{
  "artist": "name of the artist, or empty string",
  "printer": "name of the printing house, or empty string",
  "publisher": "name of the publication or publisher, or empty string",
  "artist_confidence": "confirmed" | "likely" | "uncertain" | "unknown",
  "artist_basis": "visible_signature" | "printed_credit" | "stylistic_analysis" | "unknown",
  "notes": "one sentence on what you saw"
}

Use "confirmed" only when a signature or printed credit is clearly legible.
Report names exactly as they appear on the poster; do not translate them.`

// analysisReply is the JSON shape the model is asked to produce.
type analysisReply struct {
	Artist           string `json:"artist"`
	Printer          string `json:"printer"`
	Publisher        string `json:"publisher"`
	ArtistConfidence string `json:"artist_confidence"`
	ArtistBasis      string `json:"artist_basis"`
	Notes            string `json:"notes"`
}

// Analyzer extracts attribution candidates from poster images using an
// OpenAI-compatible vision endpoint.
type Analyzer struct {
	client     *openai.Client
	model      string
	maxRetries int
	delay      time.Duration
	logger     *slog.Logger
}

// Config holds configuration for the vision analyzer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewAnalyzer creates an Analyzer from configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: 3,
		delay:      2 * time.Second,
		logger:     logger,
	}
}

// Analyze submits the poster image and parses the model's reply into an
// analysis result. The result's origin is always analysis; research
// results come from elsewhere.
func (a *Analyzer) Analyze(ctx context.Context, imageURL string) (attribution.AnalysisResult, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: analysisPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var resp openai.ChatCompletionResponse
	err := a.withRetry(ctx, func() error {
		var err error
		resp, err = a.client.CreateChatCompletion(ctx, req)
		return err
	})
	if err != nil {
		return attribution.AnalysisResult{}, fmt.Errorf("vision analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return attribution.AnalysisResult{}, fmt.Errorf("vision analysis: empty response")
	}

	return parseReply(resp.Choices[0].Message.Content)
}

// parseReply decodes the model output strictly: anything that is not
// the requested JSON object is an error, never a guessed attribution.
func parseReply(content string) (attribution.AnalysisResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var reply analysisReply
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reply); err != nil {
		return attribution.AnalysisResult{}, fmt.Errorf("parse analysis reply: %w", err)
	}

	return attribution.AnalysisResult{
		Artist:            strings.TrimSpace(reply.Artist),
		Printer:           strings.TrimSpace(reply.Printer),
		Publisher:         strings.TrimSpace(reply.Publisher),
		ArtistTier:        attribution.ParseTier(reply.ArtistConfidence),
		Basis:             attribution.ParseBasis(reply.ArtistBasis),
		SourceDescription: strings.TrimSpace(reply.Notes),
		Origin:            attribution.OriginAnalysis,
	}, nil
}

// withRetry executes fn with fixed-delay retries on transient failures.
func (a *Analyzer) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		if attempt < a.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.delay):
			}
		}
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	var reqErr *openai.RequestError
	return errors.As(err, &reqErr)
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/siva9346/formating-app/pkg/logger"
	"github.com/siva9346/formating-app/pkg/metrics"
	"github.com/siva9346/formating-app/pkg/tracer"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

var ErrMissingAPIKey = errors.New("missing GOOGLE_GEMINI_API_KEY env var")

// APIError is a non-2xx answer from generateContent.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error: %s - %s", e.Status, e.Body)
}

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiClient builds a client for the generateContent REST endpoint.
// Empty model or baseURL fall back to the defaults. A zero timeout means the
// call is bounded only by ctx.
func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// Extract sends text to Gemini once and normalizes the answer.
// There is no retry.
func (g *GeminiClient) Extract(ctx context.Context, text string) ([]MenuItem, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	ctx, span := tracer.Start(ctx, "gemini.generateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("gemini.model", g.model),
		attribute.Int("input.bytes", len(text)),
	)

	raw, err := g.generate(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	items, outcome, err := NormalizeResponse(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.ExtractionsTotal.WithLabelValues(string(outcome)).Inc()
	metrics.ItemsExtracted.Add(float64(len(items)))
	span.SetAttributes(
		attribute.String("extraction.outcome", string(outcome)),
		attribute.Int("extraction.items", len(items)),
	)

	if outcome != OutcomeOK {
		logger.Warn(ctx, "model output degraded to empty result",
			"outcome", outcome,
			"response_bytes", len(raw),
		)
	}

	return items, nil
}

func (g *GeminiClient) generate(ctx context.Context, text string) ([]byte, error) {
	prompt := BuildExtractionPrompt(text)
	parts := make([]part, 0, len(prompt))
	for _, p := range prompt {
		parts = append(parts, part{Text: p})
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL,
		url.PathEscape(g.model),
		url.QueryEscape(g.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		metrics.GeminiRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		// url.Error would echo the key-bearing URL
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("gemini request failed: %w", uerr.Err)
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	metrics.GeminiRequestDuration.WithLabelValues(fmt.Sprint(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("read gemini response: %w", err)
	}

	logger.Debug(ctx, "gemini response received",
		"status", resp.StatusCode,
		"bytes", len(raw),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}

	return raw, nil
}

// Package hf implements the extractive QA provider on top of the
// Hugging Face Inference API.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storelens/storelens/internal/domain"
	"github.com/storelens/storelens/internal/metrics"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// Client is an extractive question-answering provider.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the QA provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewClient creates a Hugging Face Inference API QA client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   cfg.Model,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  cfg.Logger,
	}
}

type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// Answer implements domain.AnswerModel. Extracts an answer span from the
// passage along with the model's confidence score.
func (c *Client) Answer(ctx context.Context, question, passage string) (domain.AnswerResult, error) {
	body, err := json.Marshal(qaRequest{Inputs: qaInputs{Question: question, Context: passage}})
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()

	resp, err := c.http.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.QARequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.AnswerResult{}, fmt.Errorf("qa request failed: %w", domain.ErrAnswerModelError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.QARequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.AnswerResult{}, parseAPIError(resp)
	}

	var result qaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.QARequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.AnswerResult{}, fmt.Errorf("decode qa response: %w", domain.ErrAnswerModelError)
	}

	metrics.QARequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.QARequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	return domain.AnswerResult{
		Answer: result.Answer,
		Score:  result.Score,
	}, nil
}

// HealthCheck verifies the model endpoint is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qa model unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("qa model: status %d", resp.StatusCode)
	}
	return nil
}

// parseAPIError extracts the "error" field from a JSON error body.
// All errors are wrapped with domain.ErrAnswerModelError.
func parseAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		return fmt.Errorf("qa API error %d: %s: %w",
			resp.StatusCode, parsed.Error, domain.ErrAnswerModelError)
	}
	return fmt.Errorf("qa API error %d: %w", resp.StatusCode, domain.ErrAnswerModelError)
}

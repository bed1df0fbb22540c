// Package cohere is a minimal client for the Cohere v1 generate endpoint.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the hosted Cohere API root.
	DefaultBaseURL = "https://api.cohere.ai"
	// DefaultModel is the generation model used when none is configured.
	DefaultModel = "command"
)

// ErrNoGenerations is returned when the service answers without candidates.
var ErrNoGenerations = errors.New("cohere: response contained no generations")

// Client calls the Cohere generate API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// NewClient creates a generate API client for the given model.
func NewClient(apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

// GenerateRequest is the wire shape of a generate call.
type GenerateRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
}

// Generation is a single generated candidate.
type Generation struct {
	Text string `json:"text"`
}

// GenerateResponse is the wire shape of a generate response.
type GenerateResponse struct {
	Generations []Generation `json:"generations"`
}

// Generate posts the request to /v1/generate and decodes the candidates.
func (c *Client) Generate(ctx context.Context, genReq GenerateRequest) (*GenerateResponse, error) {
	if genReq.StopSequences == nil {
		genReq.StopSequences = []string{}
	}

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("generate request: unexpected status code %d: %s", resp.StatusCode, msg)
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}
	return &gr, nil
}

// GenerateText runs a greedy single-candidate generation with the fixed
// call parameters of the analysis flow (no stop sequences, no likelihoods)
// and returns the first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.Generate(ctx, GenerateRequest{
		Model:             c.model,
		Prompt:            prompt,
		MaxTokens:         maxTokens,
		Temperature:       temperature,
		K:                 0,
		StopSequences:     []string{},
		ReturnLikelihoods: "NONE",
	})
	if err != nil {
		return "", err
	}
	if len(resp.Generations) == 0 {
		return "", ErrNoGenerations
	}

	c.logger.Debug("generation completed",
		zap.String("model", c.model),
		zap.Int("candidates", len(resp.Generations)))
	return resp.Generations[0].Text, nil
}

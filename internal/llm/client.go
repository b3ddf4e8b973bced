// Package llm builds prompts for and talks to an OpenAI-compatible chat
// completions endpoint, wrapping it with the retry, timeout, and cost
// accounting policy the rest of the backend relies on.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Generator is the completion surface the orchestration services depend
// on. This allows for mocking in tests.
type Generator interface {
	GenerateJSON(ctx context.Context, messages []Message, model string) (CompletionResult, error)
}

// Usage is the token accounting reported by the provider. Zero values
// mean the provider omitted it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is a successful completion plus its metadata. Model is
// always the identifier that was actually sent to the provider.
type CompletionResult struct {
	Content string
	Usage   Usage
	Cost    float64
	Model   string
}

// Config carries the knobs for a completion client.
type Config struct {
	BaseURL        string
	APIKey         string
	AttemptTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Verbose        bool
}

const (
	defaultAttemptTimeout = 30 * time.Second
	defaultRetryBackoff   = 2 * time.Second

	// maxResponseBytes bounds how much of a provider response is read.
	maxResponseBytes = 10 << 20
)

// Client talks to the chat completions endpoint of an OpenAI-compatible
// provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	verbose    bool

	// sleep is swapped out in tests to keep backoff deterministic.
	sleep func(ctx context.Context, d time.Duration) error
}

// Compile-time check that Client satisfies Generator.
var _ Generator = (*Client)(nil)

// NewClient builds a Client. Zero durations fall back to defaults and a
// MaxRetries of zero means a single attempt.
func NewClient(cfg Config) *Client {
	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		maxRetries: retries,
		backoff:    backoff,
		verbose:    cfg.Verbose,
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// --- Wire format ---

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage    `json:"usage"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// GenerateJSON requests a structured (JSON object) completion. Transient
// failures, including empty completions and provider timeouts, are
// retried with a linear backoff: the wait before retry i is backoff*i.
// Cancellation of ctx aborts the loop immediately and is not classified
// as a provider timeout.
func (c *Client) GenerateJSON(ctx context.Context, messages []Message, model string) (CompletionResult, error) {
	var lastErr error
	timedOut := false
	attempts := 0

	for attempt := 0; ; attempt++ {
		attempts++
		result, err := c.attempt(ctx, messages, model)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			// The caller gave up; don't keep retrying on its behalf.
			return CompletionResult{}, &GenerationError{Model: model, Attempts: attempts, Err: ctx.Err()}
		}
		lastErr = err
		timedOut = errors.Is(err, context.DeadlineExceeded)

		if attempt == c.maxRetries {
			break
		}
		delay := time.Duration(attempt+1) * c.backoff
		log.Printf("WARN [LLMClient] attempt %d/%d with model %s failed (%v), retrying in %s", attempts, c.maxRetries+1, model, err, delay)
		if err := c.sleep(ctx, delay); err != nil {
			return CompletionResult{}, &GenerationError{Model: model, Attempts: attempts, Err: err}
		}
	}

	return CompletionResult{}, &GenerationError{Model: model, Attempts: attempts, Timeout: timedOut, Err: lastErr}
}

// attempt performs one completion request under the per-attempt timeout.
func (c *Client) attempt(parent context.Context, messages []Message, model string) (CompletionResult, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatCompletionRequest{
		Model:          model,
		Messages:       messages,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return CompletionResult{}, fmt.Errorf("marshaling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return CompletionResult{}, fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if c.verbose {
		log.Printf("[LLMClient] POST %s model=%s messages=%d", c.baseURL+"/chat/completions", model, len(messages))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return CompletionResult{}, fmt.Errorf("reading completion response: %w", err)
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return CompletionResult{}, fmt.Errorf("provider returned status %d", resp.StatusCode)
		}
		return CompletionResult{}, fmt.Errorf("decoding completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := ""
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return CompletionResult{}, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, msg)
	}
	if len(decoded.Choices) == 0 {
		return CompletionResult{}, errors.New("provider returned no choices")
	}

	content := decoded.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return CompletionResult{}, errors.New("provider returned empty content")
	}

	result := CompletionResult{Content: content, Model: model}
	if decoded.Usage != nil {
		result.Usage = *decoded.Usage
	}
	if cost, err := CompletionCost(model, result.Usage); err != nil {
		log.Printf("WARN [LLMClient] cost calculation failed: %v", err)
	} else {
		result.Cost = cost
	}

	if c.verbose {
		log.Printf("[LLMClient] model %s responded: %d prompt + %d completion tokens, cost $%.6f",
			model, result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Cost)
	}
	return result, nil
}

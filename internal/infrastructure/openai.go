package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultCompletionsURL = "https://api.openai.com/v1/chat/completions"

	completionTimeout = 10 * time.Second
	maxReplyTokens    = 300
	// Low temperature keeps answers close to the supplied facts.
	completionTemperature = 0.2
)

// FailureReason tags why a completion call produced no usable text.
type FailureReason string

const (
	FailureNetwork   FailureReason = "network"
	FailureStatus    FailureReason = "status"
	FailureMalformed FailureReason = "malformed"
)

// CompletionError is the tagged failure returned by the OpenAI client.
// The relay maps every one of these to the configured fallback string.
type CompletionError struct {
	Reason FailureReason
	Err    error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion %s failure: %v", e.Reason, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// OpenAIClient calls the chat-completions endpoint with the cached
// system context plus the user's message.
type OpenAIClient struct {
	apiKey  string
	model   string
	system  string
	baseURL string
	hc      *http.Client
	logger  zerolog.Logger
}

func NewOpenAIClient(apiKey, model, systemContext string, logger zerolog.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		system:  systemContext,
		baseURL: defaultCompletionsURL,
		hc:      &http.Client{Timeout: completionTimeout},
		logger:  logger.With().Str("component", "openai").Logger(),
	}
}

// WithBaseURL points the client at a different completions endpoint.
// Used by tests.
func (c *OpenAIClient) WithBaseURL(url string) *OpenAIClient {
	c.baseURL = url
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReply issues one synchronous completion request and returns
// the first choice's text. Every failure comes back as a
// *CompletionError; nothing is retried.
func (c *OpenAIClient) GenerateReply(ctx context.Context, userText string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if c.system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userText})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxReplyTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", &CompletionError{Reason: FailureMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", &CompletionError{Reason: FailureNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &CompletionError{Reason: FailureNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		return "", &CompletionError{
			Reason: FailureStatus,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, string(detail)),
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &CompletionError{Reason: FailureMalformed, Err: err}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &CompletionError{Reason: FailureMalformed, Err: fmt.Errorf("empty choices")}
	}

	c.logger.Debug().Int("user_chars", len(userText)).Msg("completion ok")
	return parsed.Choices[0].Message.Content, nil
}

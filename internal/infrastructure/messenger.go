package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultGraphAPIBase = "https://graph.facebook.com/v18.0"

	sendTimeout = 10 * time.Second
	// Response bodies are only read for logging; cap what we pull in.
	maxLoggedBody = 1024
)

// MessengerClient posts replies to the Messenger send API.
type MessengerClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
	logger      zerolog.Logger
}

func NewMessengerClient(accessToken string, logger zerolog.Logger) *MessengerClient {
	return &MessengerClient{
		accessToken: accessToken,
		baseURL:     defaultGraphAPIBase,
		hc:          &http.Client{Timeout: sendTimeout},
		logger:      logger.With().Str("component", "messenger").Logger(),
	}
}

// WithBaseURL points the client at a different Graph API host. Used by
// tests.
func (m *MessengerClient) WithBaseURL(url string) *MessengerClient {
	m.baseURL = url
	return m
}

type sendPayload struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SendMessage posts {recipient:{id},message:{text}} to /me/messages.
// The send is attempted once; the caller decides what a failure means.
func (m *MessengerClient) SendMessage(ctx context.Context, recipientID, text string) error {
	var payload sendPayload
	payload.Recipient.ID = recipientID
	payload.Message.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s", m.baseURL, url.QueryEscape(m.accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.hc.Do(req)
	if err != nil {
		return fmt.Errorf("post to send API: %w", err)
	}
	defer resp.Body.Close()

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	m.logger.Info().
		Str("recipient", recipientID).
		Int("status", resp.StatusCode).
		Str("body", string(detail)).
		Msg("send API response")

	if resp.StatusCode >= 400 {
		return fmt.Errorf("send API returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

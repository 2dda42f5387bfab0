package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client posts messages to Discord incoming webhooks.
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a webhook client with the default timeout.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Send POSTs the message to the webhook URL. Any non-2xx response is an
// error carrying the response body text.
func (c *Client) Send(url string, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	resp, err := c.HTTPClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to execute webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// TestMessage builds the fixed payload used to verify a webhook end to end.
func TestMessage(username, avatarURL string, now time.Time) *Message {
	msg := &Message{
		Username: defaultUsername,
		Embeds: []Embed{{
			Title:       "🧪 Test Message",
			Description: "This is a test message from CurseForge Mod Tracker!",
			Color:       DefaultColor,
			Footer:      &EmbedFooter{Text: "Test completed successfully"},
			Timestamp:   now.UTC().Format(time.RFC3339),
		}},
	}
	if username != "" {
		msg.Username = username
	}
	if avatarURL != "" {
		msg.AvatarURL = avatarURL
	}
	return msg
}

// DefaultColor is the accent color used by the test message and the seeded
// default template.
const DefaultColor = 5814783

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookChannel posts a JSON payload to an incoming-webhook URL. The
// payload shape is channel-specific and supplied by the constructor.
type WebhookChannel struct {
	name    string
	url     string
	client  *http.Client
	payload func(Notification) any
}

// NewSlackChannel builds the chat-ops channel. Slack webhooks take a single
// text field; the one-line summary goes there.
func NewSlackChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		name:   "slack",
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		payload: func(n Notification) any {
			return map[string]string{"text": n.Summary}
		},
	}
}

// NewTeamsChannel builds the team-messaging channel with a title/text card.
func NewTeamsChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		name:   "teams",
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		payload: func(n Notification) any {
			title := n.Subject
			if title == "" {
				title = "Claims Update"
			}
			return map[string]string{"title": title, "text": n.Body}
		},
	}
}

func (c *WebhookChannel) Name() string { return c.name }

func (c *WebhookChannel) Send(ctx context.Context, n Notification) error {
	if c.url == "" {
		return fmt.Errorf("%s webhook URL is not configured", c.name)
	}

	body, err := json.Marshal(c.payload(n))
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s webhook: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s webhook returned status %d", c.name, resp.StatusCode)
	}
	return nil
}

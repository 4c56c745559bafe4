package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const sendgridURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridChannel sends email through the SendGrid v3 mail API.
type SendGridChannel struct {
	apiKey string
	from   string
	client *http.Client
}

func NewSendGridChannel(apiKey, from string) *SendGridChannel {
	return &SendGridChannel{apiKey: apiKey, from: from, client: &http.Client{}}
}

func (c *SendGridChannel) Name() string { return "sendgrid" }

func (c *SendGridChannel) Send(ctx context.Context, to, subject, body string) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": c.from},
		"subject": subject,
		"content": []map[string]string{{"type": "text/plain", "value": body}},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendgridURL, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

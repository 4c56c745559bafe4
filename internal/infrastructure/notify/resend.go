package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const resendURL = "https://api.resend.com/emails"

// ResendChannel sends email through the Resend HTTP API.
type ResendChannel struct {
	apiKey string
	from   string
	client *http.Client
}

func NewResendChannel(apiKey, from string) *ResendChannel {
	return &ResendChannel{apiKey: apiKey, from: from, client: &http.Client{}}
}

func (c *ResendChannel) Name() string { return "resend" }

func (c *ResendChannel) Send(ctx context.Context, to, subject, body string) error {
	payload := map[string]interface{}{
		"from":    c.from,
		"to":      []string{to},
		"subject": subject,
		"text":    body,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendURL, bytes.NewReader(buf))
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
		return fmt.Errorf("resend responded %d", resp.StatusCode)
	}
	return nil
}

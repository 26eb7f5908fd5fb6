package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/datadues/campaign-api/internal/logger"
)

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	notifierUsername = "Campaign API"
	colorGreen       = "#00FF00"
)

// WebhookNotifier posts enrollment notices to a Slack-compatible webhook.
// With no URL configured it does nothing.
type WebhookNotifier struct {
	webhookURL string
	log        *logger.Logger
}

func NewWebhookNotifier(webhookURL string, baseLog *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		log:        baseLog.With("component", "webhook"),
	}
}

// NotifyEnrollment fires and forgets: a webhook outage must not fail the
// enrollment that triggered it.
func (n *WebhookNotifier) NotifyEnrollment(campaignSlug, username, motive string) {
	if n.webhookURL == "" {
		return
	}

	payload := SlackWebhookRequest{
		Username: notifierUsername,
		Text:     "New campaign enrollment",
		Attachments: []SlackAttachment{
			{
				Color: colorGreen,
				Title: fmt.Sprintf("%s joined %s", username, campaignSlug),
				Fields: []SlackField{
					{Title: "Campaign", Value: campaignSlug, Short: true},
					{Title: "Motive", Value: motive, Short: true},
				},
				Footer:    "campaign-api",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	go func() {
		if err := n.send(payload); err != nil {
			n.log.Warn("enrollment notification failed", "error", err)
		}
	}()
}

func (n *WebhookNotifier) send(payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := http.Post(n.webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

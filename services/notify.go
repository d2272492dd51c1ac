package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/personal-goal-tracker-backend/config"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// slackMessage is the payload for a Slack incoming webhook
type slackMessage struct {
	Text string `json:"text"`
}

// Notifier delivers review and gate notifications to project owners over
// email (Resend) and Slack. Both channels are optional: an unset API key or
// webhook URL disables that channel. Delivery failures are logged and never
// surfaced to API callers.
type Notifier struct {
	logger zerolog.Logger
	client *http.Client

	resendAPIKey    string
	resendFromEmail string
	slackWebhookURL string
}

func NewNotifier(c map[string]string) Notifier {
	return Notifier{
		logger:          log.With().Str("serviceName", "notifier").Logger(),
		client:          &http.Client{Timeout: 10 * time.Second},
		resendAPIKey:    config.GetString(c, "RESEND_API_KEY", ""),
		resendFromEmail: config.GetString(c, "RESEND_FROM_EMAIL", "Goal Tracker <notifications@goaltracker.local>"),
		slackWebhookURL: config.GetString(c, "SLACK_WEBHOOK_URL", ""),
	}
}

// VerdictSubmitted notifies the project owner that a reviewer submitted a verdict.
func (n Notifier) VerdictSubmitted(project *models.Project, owner, reviewer *models.User, review *models.Review) {
	verdict := "requested changes on"
	if review.IsApproved {
		verdict = "approved"
	}
	subject := fmt.Sprintf("%s %s %q", reviewer.Name, verdict, project.Title)
	text := subject
	if review.Body != "" {
		text = fmt.Sprintf("%s:\n\n%s", subject, review.Body)
	}

	n.sendEmail(subject, text, owner.Email)
	n.sendSlack(owner, text)
}

// GateApproved notifies the project owner that the project cleared the
// dual-approval gate and entered execution.
func (n Notifier) GateApproved(project *models.Project, owner *models.User) {
	text := fmt.Sprintf("%q has been approved by two reviewers and is now in execution.", project.Title)
	n.sendEmail(fmt.Sprintf("%q is ready to execute", project.Title), text, owner.Email)
	n.sendSlack(owner, text)
}

// sendEmail sends a plain-text email through the Resend API.
func (n Notifier) sendEmail(subject, text, recipient string) {
	if n.resendAPIKey == "" {
		return
	}

	payload, err := json.Marshal(ResendEmailRequest{
		From:    n.resendFromEmail,
		To:      []string{recipient},
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		n.logger.Error().Err(err).Msg("Error marshaling email request")
		return
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(payload))
	if err != nil {
		n.logger.Error().Err(err).Msg("Error creating email request")
		return
	}
	req.Header.Set("Authorization", "Bearer "+n.resendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("Error sending email")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Error().Int("status", resp.StatusCode).Str("recipient", recipient).Msg("Email service returned non-200 status")
	}
}

// sendSlack posts a message to the configured incoming webhook, mentioning
// the owner when their Slack user ID is on record.
func (n Notifier) sendSlack(owner *models.User, text string) {
	if n.slackWebhookURL == "" {
		return
	}

	if owner.SlackUserID != nil && *owner.SlackUserID != "" {
		text = fmt.Sprintf("<@%s> %s", *owner.SlackUserID, text)
	}

	payload, err := json.Marshal(slackMessage{Text: text})
	if err != nil {
		n.logger.Error().Err(err).Msg("Error marshaling Slack message")
		return
	}

	resp, err := n.client.Post(n.slackWebhookURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		n.logger.Error().Err(err).Msg("Error sending Slack message")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Error().Int("status", resp.StatusCode).Msg("Slack webhook returned non-200 status")
	}
}

package subscription

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends the subscription confirmation email. Sending is a
// best effort: when no API key is configured the mailer is a no-op.
type SendGridMailer struct {
	APIKey string
	From   string
}

// SendSubscriptionActive emails the user that their subscription is live.
func (m SendGridMailer) SendSubscriptionActive(toEmail string) error {
	if m.APIKey == "" || m.From == "" {
		return nil
	}

	from := mail.NewEmail("PAGEX", m.From)
	to := mail.NewEmail("", toEmail)
	subject := "Your PAGEX subscription is active"
	plain := "Your subscription is active. The full directory of grants and residencies is now open to you."
	html := "<p>Your subscription is active. The full directory of grants and residencies is now open to you.</p>"
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(m.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("confirmation email rejected with status %d", resp.StatusCode)
	}
	return nil
}

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
)

// EmailChannel delivers over SMTP. The recipient comes from the
// notification (the claimant's contact record), falling back to the
// operator address when the claimant has none.
type EmailChannel struct {
	host       string
	port       int
	user       string
	pass       string
	from       string
	fallbackTo string
}

func NewEmailChannel(cfg *config.Config) *EmailChannel {
	return &EmailChannel{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		pass:       cfg.SMTPPass,
		from:       cfg.FromEmail,
		fallbackTo: cfg.OperatorEmail,
	}
}

func (c *EmailChannel) Name() string { return "email" }

// recipient resolves the delivery address: the claimant's contact when
// present, the operator fallback otherwise.
func (c *EmailChannel) recipient(n Notification) string {
	if n.Recipient != "" {
		return n.Recipient
	}
	return c.fallbackTo
}

func (c *EmailChannel) Send(ctx context.Context, n Notification) error {
	if c.host == "" || c.user == "" || c.pass == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	to := c.recipient(n)
	if to == "" {
		return fmt.Errorf("no recipient and no operator fallback configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", c.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", n.Subject)
	msg.WriteString("\r\n")
	msg.WriteString(n.Body)

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	auth := smtp.PlainAuth("", c.user, c.pass, c.host)
	if err := smtp.SendMail(addr, auth, c.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", addr, err)
	}
	return nil
}

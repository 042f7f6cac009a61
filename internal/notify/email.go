package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/dailysky/apodrelay/internal/domain"
)

const smtpTimeout = 30 * time.Second

// Email delivers the day's image as a multipart message: plain-text body
// plus the image as a binary attachment, over an authenticated session with
// opportunistic TLS upgrade.
type Email struct {
	Host     string
	Port     int
	From     string
	Password string
	To       []string
	Log      Logger
}

// Channel returns the email channel identifier.
func (e *Email) Channel() domain.Channel { return domain.ChannelEmail }

// Notify builds and sends the message. The attachment must exist locally;
// connection, authentication, and recipient-rejection errors are surfaced
// distinctly in Detail, and all of them downgrade to Delivered=false.
func (e *Email) Notify(ctx context.Context, n domain.Notification) domain.Outcome {
	outcome := domain.Outcome{Channel: domain.ChannelEmail}

	if n.AttachmentPath != "" {
		if fi, err := os.Stat(n.AttachmentPath); err != nil || !fi.Mode().IsRegular() {
			outcome.Detail = fmt.Sprintf("attachment missing: %s", n.AttachmentPath)
			e.Log.Error("Email attachment not found: %s", n.AttachmentPath)
			return outcome
		}
	}

	msg := mail.NewMsg()
	if err := msg.From(e.From); err != nil {
		outcome.Detail = fmt.Sprintf("invalid sender: %v", err)
		return outcome
	}
	if err := msg.To(e.To...); err != nil {
		outcome.Detail = fmt.Sprintf("invalid recipient: %v", err)
		return outcome
	}
	msg.Subject(n.Title)
	msg.SetBodyString(mail.TypeTextPlain, n.Message)
	if n.AttachmentPath != "" {
		msg.AttachFile(n.AttachmentPath)
	}

	client, err := mail.NewClient(e.Host,
		mail.WithPort(e.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.From),
		mail.WithPassword(e.Password),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		outcome.Detail = fmt.Sprintf("smtp client: %v", err)
		e.Log.Error("Email client setup failed: %v", err)
		return outcome
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		var se *mail.SendError
		if errors.As(err, &se) {
			// Protocol-level rejection (sender, recipient, data phase).
			outcome.Detail = fmt.Sprintf("smtp rejected: %v", se)
		} else {
			// Connection or authentication failure before submission.
			outcome.Detail = fmt.Sprintf("smtp session: %v", err)
		}
		e.Log.Error("Email delivery failed: %v", err)
		return outcome
	}

	outcome.Delivered = true
	e.Log.Debug("Email delivered to %d recipient(s)", len(e.To))
	return outcome
}

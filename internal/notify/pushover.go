package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/gregdel/pushover"

	"github.com/dailysky/apodrelay/internal/domain"
)

// attachmentWarnBytes is the service's documented attachment ceiling
// (~2.6 MB). Oversize attachments are logged and the send still attempted;
// the service's own rejection becomes an undelivered outcome.
const attachmentWarnBytes = 26 * 1024 * 1024 / 10

// Pushover delivers push notifications with an optional image attachment.
type Pushover struct {
	Token string
	User  string
	Log   Logger
}

// Channel returns the push channel identifier.
func (p *Pushover) Channel() domain.Channel { return domain.ChannelPush }

// Notify posts the notification. Failures of any kind (missing attachment,
// transport error, API rejection) downgrade to Delivered=false.
func (p *Pushover) Notify(ctx context.Context, n domain.Notification) domain.Outcome {
	outcome := domain.Outcome{Channel: domain.ChannelPush}

	app := pushover.New(p.Token)
	recipient := pushover.NewRecipient(p.User)
	message := pushover.NewMessageWithTitle(n.Message, n.Title)

	if n.AttachmentPath != "" {
		fi, err := os.Stat(n.AttachmentPath)
		if err != nil {
			outcome.Detail = fmt.Sprintf("attachment missing: %v", err)
			p.Log.Error("Push attachment not found: %s", n.AttachmentPath)
			return outcome
		}
		if fi.Size() > attachmentWarnBytes {
			p.Log.Warn("Push attachment %s exceeds the size ceiling (%d bytes); attempting anyway",
				n.AttachmentPath, fi.Size())
		}

		f, err := os.Open(n.AttachmentPath)
		if err != nil {
			outcome.Detail = fmt.Sprintf("open attachment: %v", err)
			return outcome
		}
		defer f.Close()

		if err := message.AddAttachment(f); err != nil {
			// Send the text anyway; the photo just won't be inline.
			p.Log.Warn("Push attachment rejected (%v), sending without it", err)
		}
	}

	resp, err := app.SendMessage(message, recipient)
	if err != nil {
		outcome.Detail = fmt.Sprintf("send: %v", err)
		p.Log.Error("Push notification failed: %v", err)
		return outcome
	}
	if resp.Status != 1 {
		outcome.Detail = fmt.Sprintf("service status %d", resp.Status)
		p.Log.Error("Push notification rejected: %s", resp)
		return outcome
	}

	outcome.Delivered = true
	p.Log.Debug("Push notification delivered (id %s)", resp.ID)
	return outcome
}

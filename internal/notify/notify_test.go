package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dailysky/apodrelay/internal/domain"
)

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestPushover_MissingAttachmentIsUndelivered(t *testing.T) {
	log := &recordingLogger{}
	p := &Pushover{Token: "t", User: "u", Log: log}
	out := p.Notify(context.Background(), domain.Notification{
		Title:          "New picture",
		Message:        "body",
		AttachmentPath: filepath.Join(t.TempDir(), "absent.jpg"),
	})
	if out.Delivered {
		t.Error("Delivered = true, want false")
	}
	if out.Channel != domain.ChannelPush {
		t.Errorf("Channel = %q, want push", out.Channel)
	}
	if !strings.Contains(out.Detail, "attachment") {
		t.Errorf("Detail = %q, want attachment diagnostic", out.Detail)
	}
}

func TestEmail_MissingAttachmentIsUndelivered(t *testing.T) {
	log := &recordingLogger{}
	e := &Email{Host: "localhost", Port: 587, From: "a@b.c", Password: "x", To: []string{"d@e.f"}, Log: log}
	out := e.Notify(context.Background(), domain.Notification{
		Title:          "Subject",
		Message:        "body",
		AttachmentPath: filepath.Join(t.TempDir(), "absent.jpg"),
	})
	if out.Delivered {
		t.Error("Delivered = true, want false")
	}
	if out.Channel != domain.ChannelEmail {
		t.Errorf("Channel = %q, want email", out.Channel)
	}
	if !strings.Contains(out.Detail, "attachment missing") {
		t.Errorf("Detail = %q, want missing-attachment diagnostic", out.Detail)
	}
	if len(log.errors) == 0 {
		t.Error("expected an error log line")
	}
}

func TestEmail_InvalidSenderIsUndelivered(t *testing.T) {
	e := &Email{Host: "localhost", Port: 587, From: "not-an-address", To: []string{"d@e.f"}, Log: &recordingLogger{}}
	out := e.Notify(context.Background(), domain.Notification{Title: "s", Message: "b"})
	if out.Delivered {
		t.Error("Delivered = true, want false")
	}
	if !strings.Contains(out.Detail, "sender") {
		t.Errorf("Detail = %q, want sender diagnostic", out.Detail)
	}
}

func TestEmail_InvalidRecipientIsUndelivered(t *testing.T) {
	e := &Email{Host: "localhost", Port: 587, From: "a@b.c", To: []string{"nope"}, Log: &recordingLogger{}}
	out := e.Notify(context.Background(), domain.Notification{Title: "s", Message: "b"})
	if out.Delivered {
		t.Error("Delivered = true, want false")
	}
	if !strings.Contains(out.Detail, "recipient") {
		t.Errorf("Detail = %q, want recipient diagnostic", out.Detail)
	}
}

func TestChannels(t *testing.T) {
	if (&Pushover{}).Channel() != domain.ChannelPush {
		t.Error("Pushover channel mismatch")
	}
	if (&Email{}).Channel() != domain.ChannelEmail {
		t.Error("Email channel mismatch")
	}
}

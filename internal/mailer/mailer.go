package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Sender delivers one message. Errors are returned to the caller as-is and
// never retried here.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the log instead of a mail server.
type LogSender struct {
	From string
	Log  *logrus.Logger
}

func NewLogSender(from string, log *logrus.Logger) *LogSender {
	return &LogSender{From: from, Log: log}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	s.Log.WithFields(logrus.Fields{
		"from":    s.From,
		"to":      to,
		"subject": subject,
	}).Info(body)
	return nil
}

// ConfirmationMessage is the subject and body of a signup mail.
func ConfirmationMessage(username, code string) (subject, body string) {
	subject = "YaMDb confirmation code"
	body = fmt.Sprintf("Hello %s, your confirmation code is %s", username, code)
	return subject, body
}

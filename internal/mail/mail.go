// Package mail delivers transactional email. The service only ever
// sends password-reset links.
package mail

import (
	"context"
	"log"
)

// Mailer sends a message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the process log instead of delivering
// them. Used in development and tests.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("mail to=%s subject=%q\n%s", to, subject, body)
	return nil
}

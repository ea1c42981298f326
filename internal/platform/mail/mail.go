// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package mail provides outbound email delivery for the platform.

It defines the minimal [Sender] contract consumed by domain services and two
implementations: a real SMTP transport and a development sender that only
logs.

# Architecture

Email delivery is a best-effort side effect. No domain flow is allowed to
fail because a message could not be delivered: callers log and swallow
errors from [Sender.Send] (see the password recovery service for why this is
a security property, not sloppiness).
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a single HTML email to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// # SMTP Transport

// SMTPSender delivers mail through an authenticated SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender constructs a [SMTPSender].
//
// # Parameters
//   - host, port: SMTP relay endpoint (STARTTLS on 587 by convention).
//   - username, password: PLAIN auth credentials.
//   - from: The envelope sender address stamped on every message.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one HTML message. The SMTP dial happens per call: delivery
// volume here is password-reset scale, not newsletter scale, so connection
// reuse is not worth the pooling complexity.
func (sender *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	message := gomail.NewMsg()
	if err := message.From(sender.from); err != nil {
		return fmt.Errorf("mail: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(sender.host,
		gomail.WithPort(sender.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(sender.username),
		gomail.WithPassword(sender.password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("mail: failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail: delivery failed: %w", err)
	}

	return nil
}

// # Development Transport

// LogSender writes outgoing mail to the structured log instead of sending it.
//
// Used when no SMTP relay is configured so that the reset-link flow remains
// fully exercisable in local development.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a [LogSender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (sender *LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	sender.logger.InfoContext(ctx, "email_logged_not_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(htmlBody)),
	)
	return nil
}

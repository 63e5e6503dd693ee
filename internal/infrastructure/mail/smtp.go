// Package mail implements the outbound email sender used by the
// notification service.
package mail

import (
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"
	"github.com/rs/zerolog"
)

// SMTPSender delivers notification emails over SMTP with STARTTLS.
type SMTPSender struct {
	host     string
	port     int
	from     string
	username string
	password string
	logger   zerolog.Logger
}

func NewSMTPSender(host string, port int, from, username, password string, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
		logger:   logger,
	}
}

// Send delivers a plain-text email. Blocks until the SMTP conversation
// completes, so callers run it from the notification workers, never from a
// request path.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.host, s.port, s.username, s.password)
	d.TLSConfig = &tls.Config{ServerName: s.host}

	if err := d.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("smtp send failed")
		return fmt.Errorf("smtp send: %w", err)
	}

	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

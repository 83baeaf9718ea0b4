// Package email delivers out-of-band SMTP alerts. Only critical tickets go
// through here; everything else stays in the in-app notification feed.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"fieldops/internal/application/notification/usecases"
	"fieldops/internal/shared/config"
	"fieldops/internal/shared/logger"
)

// SMTPAlertSender mails critical-ticket alerts to the configured
// distribution list.
type SMTPAlertSender struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPAlertSender(cfg *config.EmailConfig, log logger.Interface) *SMTPAlertSender {
	return &SMTPAlertSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: log.Named("alert-mailer"),
	}
}

func (s *SMTPAlertSender) SendCriticalTicketAlert(ctx context.Context, ticketID uint, number, title string) error {
	if len(s.cfg.AlertRecipients) == 0 {
		s.logger.Warnw("critical ticket raised but no alert recipients configured",
			"ticket_id", ticketID,
			"number", number,
		)
		return nil
	}

	subject := fmt.Sprintf("[CRITICAL] %s: %s", number, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Critical ticket raised</h2>
			<p><strong>%s</strong>: %s</p>
			<p>A critical-priority ticket was just created and needs immediate triage.</p>
		</body>
		</html>
	`, number, title)
	plainBody := fmt.Sprintf("Critical ticket raised\n\n%s: %s\n\nA critical-priority ticket was just created and needs immediate triage.\n", number, title)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.AlertRecipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send critical ticket alert: %w", err)
	}

	s.logger.Infow("critical ticket alert sent",
		"ticket_id", ticketID,
		"number", number,
		"recipients", len(s.cfg.AlertRecipients),
	)
	return nil
}

// NoopAlertSender is used when email is disabled.
type NoopAlertSender struct{}

func (NoopAlertSender) SendCriticalTicketAlert(ctx context.Context, ticketID uint, number, title string) error {
	return nil
}

var _ usecases.CriticalAlertSender = (*SMTPAlertSender)(nil)
var _ usecases.CriticalAlertSender = NoopAlertSender{}

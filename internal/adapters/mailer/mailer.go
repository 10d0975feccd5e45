// Package mailer delivers outbound email through Mailgun, SMTP or the log.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/mailgun/mailgun-go/v4"
	"gopkg.in/gomail.v2"
)

var errNoRecipients = errors.New("email has no recipients")

// NewMailer picks the transport named by cfg.MailProvider. Incomplete provider settings fall back to the log mailer.
func NewMailer(cfg *config.Config, logger *slog.Logger) gateways.Mailer {
	provider := strings.ToLower(cfg.MailProvider)
	logger.Info("Initializing mailer", slog.String("provider", provider))

	switch provider {
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			logger.Warn("Mailgun configuration incomplete (domain or API key missing). Falling back to log mailer.")
			return NewLogMailer(logger)
		}
		return NewMailgunMailer(mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey), cfg.MailFrom)
	case "smtp":
		if cfg.SMTPHost == "" {
			logger.Warn("SMTP configuration incomplete (host missing). Falling back to log mailer.")
			return NewLogMailer(logger)
		}
		return NewSMTPMailer(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), cfg.MailFrom)
	default:
		return NewLogMailer(logger)
	}
}

// MailgunMailer sends through the Mailgun HTTP API.
type MailgunMailer struct {
	mg   mailgun.Mailgun
	from string
}

var _ gateways.Mailer = (*MailgunMailer)(nil)

func NewMailgunMailer(mg mailgun.Mailgun, from string) *MailgunMailer {
	return &MailgunMailer{mg: mg, from: from}
}

func (m *MailgunMailer) Send(ctx context.Context, email domain.Email) error {
	if len(email.To) == 0 {
		return errNoRecipients
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	msg := m.mg.NewMessage(m.from, email.Subject, "", email.To...)
	msg.SetHtml(email.HTML)
	for _, cc := range email.CC {
		msg.AddCC(cc)
	}
	for _, a := range email.Attachments {
		msg.AddBufferAttachment(a.Filename, a.Data)
	}

	resp, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		logger.Error("Failed to send email via Mailgun", slog.String("error", err.Error()), slog.String("subject", email.Subject), slog.String("mailgunResp", resp))
		return fmt.Errorf("mailgun send failed: %w", err)
	}
	logger.Info("Email sent via Mailgun", slog.String("subject", email.Subject), slog.String("id", id))
	return nil
}

// dialer is the part of gomail.Dialer the SMTP mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	dialer dialer
	from   string
}

var _ gateways.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(d dialer, from string) *SMTPMailer {
	return &SMTPMailer{dialer: d, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	if len(email.To) == 0 {
		return errNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := m.dialer.DialAndSend(buildMessage(m.from, email)); err != nil {
		logger.Error("Failed to send email via SMTP", slog.String("error", err.Error()), slog.String("subject", email.Subject))
		return fmt.Errorf("smtp send failed: %w", err)
	}
	logger.Info("Email sent via SMTP", slog.String("subject", email.Subject))
	return nil
}

func buildMessage(from string, email domain.Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", email.To...)
	if len(email.CC) > 0 {
		msg.SetHeader("Cc", email.CC...)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	for _, a := range email.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		msg.Attach(a.Filename, settings...)
	}
	return msg
}

// LogMailer only logs outgoing mail. It keeps what it sent for inspection.
type LogMailer struct {
	logger *slog.Logger

	mu   sync.Mutex
	sent []domain.Email
}

var _ gateways.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, email domain.Email) error {
	if len(email.To) == 0 {
		return errNoRecipients
	}
	names := make([]string, 0, len(email.Attachments))
	for _, a := range email.Attachments {
		names = append(names, a.Filename)
	}
	m.logger.Info("Email (log mailer)",
		slog.Any("to", email.To),
		slog.Any("cc", email.CC),
		slog.String("subject", email.Subject),
		slog.Any("attachments", names),
	)

	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of the emails handed to the mailer.
func (m *LogMailer) Sent() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Email(nil), m.sent...)
}

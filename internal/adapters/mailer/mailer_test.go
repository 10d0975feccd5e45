package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func sampleEmail() domain.Email {
	return domain.Email{
		To:      []string{"ops@example.com"},
		CC:      []string{"desk@example.com"},
		Subject: "A2 form for order o-1",
		HTML:    "<p>Order o-1</p>",
		Attachments: []domain.Attachment{
			{Filename: "Order_o-1_documents.zip", ContentType: "application/zip", Data: []byte("PK")},
		},
	}
}

func TestNewMailer_ProviderSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want any
	}{
		{"mailgun", config.Config{MailProvider: "mailgun", MailgunDomain: "mg.example.com", MailgunAPIKey: "key"}, &MailgunMailer{}},
		{"mailgun incomplete", config.Config{MailProvider: "mailgun"}, &LogMailer{}},
		{"smtp", config.Config{MailProvider: "SMTP", SMTPHost: "smtp.example.com", SMTPPort: 587}, &SMTPMailer{}},
		{"smtp incomplete", config.Config{MailProvider: "smtp"}, &LogMailer{}},
		{"default", config.Config{MailProvider: "log"}, &LogMailer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.IsType(t, tt.want, NewMailer(&cfg, testLogger))
		})
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &fakeDialer{}
	m := NewSMTPMailer(d, "Desk <no-reply@example.com>")

	require.NoError(t, m.Send(context.Background(), sampleEmail()))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"ops@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"desk@example.com"}, msg.GetHeader("Cc"))
	assert.Equal(t, []string{"A2 form for order o-1"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Order_o-1_documents.zip")
}

func TestSMTPMailer_Errors(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	m := NewSMTPMailer(d, "from@example.com")
	assert.Error(t, m.Send(context.Background(), sampleEmail()))

	assert.ErrorIs(t, m.Send(context.Background(), domain.Email{Subject: "x"}), errNoRecipients)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewSMTPMailer(&fakeDialer{}, "f").Send(ctx, sampleEmail()), context.Canceled)
}

func TestLogMailer_RecordsSent(t *testing.T) {
	m := NewLogMailer(testLogger)
	require.NoError(t, m.Send(context.Background(), sampleEmail()))
	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "A2 form for order o-1", sent[0].Subject)
}

package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/diewo77/product-organizer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithoutCredentials(t *testing.T) {
	tr := NewSMTPTransport(config.MailConfig{Host: "smtp.example.com", Port: 587}, logger.Discard())
	err := tr.Send(context.Background(), Message{To: "buyer@example.com", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestBuild(t *testing.T) {
	m, err := Build(Message{
		From:       "shop@example.com",
		To:         "buyer@example.com",
		Subject:    "Sharing: Guide",
		Body:       "Please find the attached file.",
		Attachment: &Attachment{Name: "guide.pdf", Data: []byte("%PDF-1.4 fake")},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Subject: Sharing: Guide")
	assert.Contains(t, raw, "buyer@example.com")
	assert.Contains(t, raw, "application/octet-stream")
	assert.Contains(t, raw, `filename="guide.pdf"`)
}

func TestBuildRejectsBadRecipient(t *testing.T) {
	_, err := Build(Message{From: "shop@example.com", To: "nope", Subject: "s", Body: "b"})
	assert.Error(t, err)
}

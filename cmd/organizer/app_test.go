package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/diewo77/product-organizer/internal/db/dbtest"
	"github.com/diewo77/product-organizer/internal/logger"
	"github.com/diewo77/product-organizer/internal/mailer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	sent []mailer.Message
}

func (f *fakeTransport) Send(_ context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

type harness struct {
	app       *App
	fs        afero.Fs
	transport *fakeTransport
	opened    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Seed: true},
		Mail:     config.MailConfig{Username: "shop@example.com"},
		Files:    config.FilesConfig{Root: "files"},
		Receipt:  config.ReceiptConfig{Currency: "$", Open: true},
	}
	h := &harness{fs: afero.NewMemMapFs(), transport: &fakeTransport{}}
	h.app = NewApp(cfg, logger.Discard(), dbtest.Open(t), h.fs, h.transport)
	h.app.open = func(path string) error {
		h.opened = append(h.opened, path)
		return nil
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(h.app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProductCommands(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/src/guide.pdf", []byte("%PDF"), 0o644))

	out, err := h.run(t, "product", "add", "/src/guide.pdf", "--title", "Guide", "--tags", "pdf,howto", "--category", "Books")
	require.NoError(t, err)
	assert.Contains(t, out, "Product #1 added")

	out, err = h.run(t, "product", "search", "HOWTO")
	require.NoError(t, err)
	assert.Contains(t, out, "Guide")
	assert.Contains(t, out, "guide.pdf")

	out, err = h.run(t, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "pdf, howto")

	_, err = h.run(t, "product", "open", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("files", "guide.pdf")}, h.opened)
	_, err = h.run(t, "product", "open", "9")
	assert.Error(t, err)

	out, err = h.run(t, "product", "export", "-o", "catalogue.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 products")
	csv, err := afero.ReadFile(h.fs, "catalogue.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "Title,Tags,Category,File,Date Added"))

	_, err = h.run(t, "product", "delete", "1")
	require.NoError(t, err)
	out, err = h.run(t, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found")
}

func TestTemplatesAreSeeded(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "File delivery")
	assert.Contains(t, out, "Thank you")
}

func TestSendProductWithReceipt(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/src/guide.pdf", []byte("%PDF"), 0o644))
	_, err := h.run(t, "product", "add", "/src/guide.pdf", "--title", "Guide")
	require.NoError(t, err)

	out, err := h.run(t, "send", "--product", "1", "--to", "jane@example.com", "--name", "Jane Doe",
		"--price", "10", "--discount", "3", "--tax", "10", "--store-receipt")
	require.NoError(t, err)

	require.Len(t, h.transport.sent, 1)
	msg := h.transport.sent[0]
	assert.Equal(t, "Sharing: Guide", msg.Subject)
	assert.Equal(t, defaultBody, msg.Body)
	assert.Equal(t, "shop@example.com", msg.From)
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "guide.pdf", msg.Attachment.Name)

	assert.Contains(t, out, "Email sent to jane@example.com")
	assert.Contains(t, out, "New client recorded: Jane Doe")
	assert.Contains(t, out, "Receipt saved: "+filepath.Join("files", "receipts", "Jane_Doe_"))
	assert.Contains(t, out, "Receipt stored in "+filepath.Join("files", "ClientFiles", "Jane_Doe"))
	require.Len(t, h.opened, 1)

	out, err = h.run(t, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
}

func TestSendClientFileWithTemplate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/src/pack.zip", []byte("zip"), 0o644))
	_, err := h.run(t, "send", "--to", "sam@example.com", "--subject", "Hello", "--no-open")
	require.NoError(t, err)

	_, err = h.run(t, "client", "files", "add", "1", "/src/pack.zip")
	require.NoError(t, err)
	out, err := h.run(t, "client", "files", "list", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "pack.zip")

	_, err = h.run(t, "send", "--client", "1", "--file", "pack.zip", "--subject", "Your pack", "--template", "Thank you")
	require.NoError(t, err)
	require.Len(t, h.transport.sent, 2)
	last := h.transport.sent[1]
	assert.Equal(t, "sam@example.com", last.To)
	assert.Equal(t, "pack.zip", last.Attachment.Name)
	assert.NotEqual(t, defaultBody, last.Body)
	assert.Empty(t, h.opened, "no price, no receipt")
}

func TestSendRejectsMissingSubject(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "send", "--to", "sam@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject")
	assert.Empty(t, h.transport.sent)
}

func TestClientEditAndDelete(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "send", "--to", "kim@example.com", "--subject", "Hi")
	require.NoError(t, err)

	_, err = h.run(t, "client", "edit", "1", "Kim Lee")
	require.NoError(t, err)
	out, err := h.run(t, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Kim Lee")

	_, err = h.run(t, "client", "delete", "1")
	require.NoError(t, err)
	_, err = h.run(t, "client", "delete", "x")
	assert.Error(t, err)
}

func TestSendTypedAddressUsesStoredClientFolder(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/src/pack.zip", []byte("zip"), 0o644))
	_, err := h.run(t, "send", "--to", "kim@example.com", "--name", "Kim Lee", "--subject", "Hi")
	require.NoError(t, err)
	out, err := h.run(t, "client", "files", "add", "1", "/src/pack.zip")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("files", "ClientFiles", "Kim_Lee", "pack.zip"))

	out, err = h.run(t, "send", "--to", "kim@example.com", "--file", "pack.zip", "--subject", "Your pack",
		"--price", "5", "--store-receipt", "--no-open")
	require.NoError(t, err)
	require.Len(t, h.transport.sent, 2)
	assert.Equal(t, "pack.zip", h.transport.sent[1].Attachment.Name)
	assert.Contains(t, out, "Receipt stored in "+filepath.Join("files", "ClientFiles", "Kim_Lee"))
}

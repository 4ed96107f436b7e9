package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/diewo77/product-organizer/internal/db/dbtest"
	"github.com/diewo77/product-organizer/internal/logger"
	"github.com/diewo77/product-organizer/internal/mailer"
	"github.com/diewo77/product-organizer/internal/receipt"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingTransport captures messages instead of talking to a server.
type recordingTransport struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingTransport) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, receipt.Request) (*receipt.Document, error) {
	return nil, errors.New("disk full")
}

type fixture struct {
	db        *gorm.DB
	fs        afero.Fs
	transport *recordingTransport
	clients   *ClientService
	templates *TemplateService
	catalog   *CatalogService
	send      *SendService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	fs := afero.NewMemMapFs()
	log := logger.Discard()
	f := &fixture{
		db:        conn,
		fs:        fs,
		transport: &recordingTransport{},
		clients:   NewClientService(conn),
		templates: NewTemplateService(conn),
		catalog:   NewCatalogService(conn, fs, "files", log),
	}
	f.send = NewSendService(f.transport, f.clients, f.templates, newTestRenderer(fs), fs, SendOptions{From: "shop@example.com"}, log)
	return f
}

func newTestRenderer(fs afero.Fs) *receipt.Renderer {
	return receipt.NewRenderer(receipt.Options{
		Dir:    filepath.Join("files", "receipts"),
		Fs:     fs,
		Clock:  func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) },
		Logger: logger.Discard(),
	})
}

// mkdirDeniedFs refuses to create one directory.
type mkdirDeniedFs struct {
	afero.Fs
	denied string
}

func (f mkdirDeniedFs) MkdirAll(path string, perm os.FileMode) error {
	if filepath.Clean(path) == f.denied {
		return os.ErrPermission
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *fixture) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0o644))
}

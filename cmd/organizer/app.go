package main

import (
	"context"
	"io"
	"os"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/diewo77/product-organizer/internal/db"
	"github.com/diewo77/product-organizer/internal/mailer"
	"github.com/diewo77/product-organizer/internal/receipt"
	"github.com/diewo77/product-organizer/internal/services"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// App holds everything the commands need.
type App struct {
	cfg *config.Config
	log logrus.FieldLogger
	db  *gorm.DB
	fs  afero.Fs

	catalog     *services.CatalogService
	clients     *services.ClientService
	templates   *services.TemplateService
	clientFiles *services.ClientFiles
	sender      *services.SendService

	// open reveals a generated receipt to the user.
	open func(path string) error
}

// NewApp wires the services on top of an open database and a filesystem.
func NewApp(cfg *config.Config, log logrus.FieldLogger, conn *gorm.DB, fs afero.Fs, transport mailer.Transport) *App {
	a := &App{
		cfg:         cfg,
		log:         log,
		db:          conn,
		fs:          fs,
		catalog:     services.NewCatalogService(conn, fs, cfg.Files.Root, log),
		clients:     services.NewClientService(conn),
		templates:   services.NewTemplateService(conn),
		clientFiles: services.NewClientFiles(fs, cfg.Files.ClientFilesDir()),
		open:        openWithBrowser,
	}
	renderer := receipt.NewRenderer(receipt.Options{
		Dir:      cfg.Files.ReceiptsDir(),
		Currency: cfg.Receipt.Currency,
		Fs:       fs,
		Logger:   log,
	})
	a.sender = services.NewSendService(transport, a.clients, a.templates, renderer, fs, services.SendOptions{
		From:               cfg.Mail.Username,
		AllowNegativeTotal: cfg.Receipt.AllowNegativeTotal,
	}, log)
	return a
}

// prepare brings the schema up to date and seeds the default templates.
func (a *App) prepare(ctx context.Context) error {
	if err := db.Migrate(a.db.WithContext(ctx), a.cfg.Database); err != nil {
		return err
	}
	if !a.cfg.Database.Seed {
		return nil
	}
	return db.Seed(a.db.WithContext(ctx))
}

// openWithBrowser hands the file to the desktop's default viewer.
func openWithBrowser(path string) error {
	browser.Stdout = io.Discard
	browser.Stderr = os.Stderr
	return browser.OpenFile(path)
}

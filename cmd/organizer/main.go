package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/diewo77/product-organizer/internal/db"
	"github.com/diewo77/product-organizer/internal/logger"
	"github.com/diewo77/product-organizer/internal/mailer"
	"github.com/spf13/afero"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log, os.Stderr)

	conn, err := db.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	app := NewApp(cfg, log, conn, afero.NewOsFs(), mailer.NewSMTPTransport(cfg.Mail, log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

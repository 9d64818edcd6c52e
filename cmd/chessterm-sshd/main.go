package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/qnkhuat/chessduel/pkg/config"
	"github.com/qnkhuat/chessduel/pkg/logging"
	"github.com/qnkhuat/chessduel/pkg/sshd"
)

func main() {
	fs := flag.NewFlagSet("chessterm-sshd", flag.ContinueOnError)
	cfg, err := config.Parse(fs, os.Args[1:], config.SSHD)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Log.Path, "sshd", cfg.Log.Level)
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv, err := sshd.New(cfg.SSHD, logger)
	if err != nil {
		logger.Error("failed to create ssh server", zap.Error(err))
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Wait for terminate signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logger.Info("shutting down", zap.Stringer("signal", sig))
		srv.Close()
	}()

	color.Cyan("Serving chessterm over SSH on %s (client %s)", cfg.SSHD.Addr, cfg.SSHD.Client)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("ssh server stopped", zap.Error(err))
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/satmihir/smchash/internal/cli"
	"github.com/satmihir/smchash/internal/config"
	"github.com/satmihir/smchash/internal/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := utils.Must(cli.NewLogger(cfg.Environment))
	log := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Deps{Config: cfg, Fs: afero.NewOsFs(), Log: log})
	if err := root.ExecuteContext(ctx); err != nil {
		log.Errorw("command failed", zap.Error(err))
		return 1
	}
	return 0
}

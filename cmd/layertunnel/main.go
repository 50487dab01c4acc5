package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/fosdem/layertunnel/lib/config"
	"github.com/fosdem/layertunnel/lib/log"
	"github.com/fosdem/layertunnel/lib/mixer"
	"golang.org/x/sys/unix"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	slog.SetDefault(slog.New(log.NewHandler(os.Stdout, nil)))

	cfg := config.Default()
	if len(os.Args) > 2 {
		fatal("Usage: %s [config file]", os.Args[0])
	}
	if len(os.Args) == 2 {
		var err error
		cfg, err = config.Parse(os.Args[1])
		if err != nil {
			fatal("%s", err)
		}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fatal("%s", err)
	}
	slog.SetDefault(slog.New(log.NewHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	err = mixer.MakeWindowAndMix(ctx, cfg)
	if err != nil {
		fatal("%s", err)
	}
}

func fatal(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...), slog.String("module", "main"))
	os.Exit(1)
}

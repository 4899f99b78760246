package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ShareIt/internal/cli/commands"
	"ShareIt/internal/config"
)

// заполняются через -ldflags "-X main.version=..."
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// -h/--help до имени команды обрабатывает пакет flag; показываем справку по командам
	flag.Usage = func() {
		fmt.Fprint(commands.Out, commands.FormatGlobalUsage())
		fmt.Fprintln(commands.Out, "\nFlags:")
		flag.CommandLine.SetOutput(commands.Out)
		flag.PrintDefaults()
	}
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Fprintf(commands.Out, "shareit %s (built %s)\nserver: %s\n", version, buildDate, cfg.ServerURL)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	if code != commands.ExitOK {
		os.Exit(code)
	}
}

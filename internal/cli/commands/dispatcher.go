package commands

import (
	"ShareIt/internal/cli/api"
	"ShareIt/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Коды выхода shareit.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitAuth: нет токена или сервер его не принял.
	ExitAuth = 3
)

// Dispatch находит команду по args[0], выполняет её и возвращает код выхода.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "help", "-h", "--help":
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	return report(c, c.Run(ctx, cfg, args[1:]))
}

// help: shareit help [command]
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(strings.ToLower(args[0]))
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	fmt.Fprintf(Out, "Usage: shareit %s\n  %s\n", c.Usage(), c.Description())
	return ExitOK
}

// report печатает результат команды и переводит ошибку в код выхода.
func report(c Command, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: shareit %s\n", c.Usage())
		return ExitUsage
	case errors.Is(err, errNoToken):
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitAuth
	case api.IsStatus(err, http.StatusUnauthorized):
		fmt.Fprintf(Out, "%s error: %v\nsaved token was rejected, run `shareit register` again\n", c.Name(), err)
		return ExitAuth
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitError
	}
}

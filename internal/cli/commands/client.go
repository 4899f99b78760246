package commands

import (
	"errors"
	"flag"
	"io"
	"net/url"
	"strconv"
	"time"

	"ShareIt/internal/cli/api"
	fsrepo "ShareIt/internal/cli/repo/fs"
	"ShareIt/internal/config"
)

// errNoToken: команда требует регистрации
var errNoToken = errors.New("not registered: run `shareit register <name> <email>` first")

func tokenStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{Path: cfg.TokenFile}
}

// newClient создаёт API-клиент с сохранённым токеном (если он есть)
func newClient(cfg *config.Config) *api.Client {
	tok, _ := tokenStore(cfg).Load()
	return api.NewClient(cfg.ServerURL, tok)
}

// authClient: клиент для команд, которым нужен пользователь
func authClient(cfg *config.Config) (*api.Client, error) {
	c := newClient(cfg)
	if c.Token == "" {
		return nil, errNoToken
	}
	return c, nil
}

// parseFlags разбирает префиксные флаги команды; ошибка разбора: ErrUsage
func parseFlags(name string, args []string, define func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)
	if err := fs.Parse(args); err != nil {
		return nil, ErrUsage
	}
	return fs.Args(), nil
}

// pageFlags регистрирует --from/--size
func pageFlags(fs *flag.FlagSet, from, size *int) {
	fs.IntVar(from, "from", 0, "offset")
	fs.IntVar(size, "size", 0, "page size")
}

func pageValues(from, size int) url.Values {
	v := url.Values{}
	if from > 0 {
		v.Set("from", strconv.Itoa(from))
	}
	if size > 0 {
		v.Set("size", strconv.Itoa(size))
	}
	return v
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseTime принимает RFC3339, локальный формат без зоны (UTC) или дату
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrUsage
}

func fmtTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

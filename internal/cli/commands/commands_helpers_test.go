package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	fsrepo "ShareIt/internal/cli/repo/fs"
	"ShareIt/internal/config"
)

// withTempConfig: конфиг клиента с токен-файлом во временном каталоге
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: serverURL, TokenFile: filepath.Join(t.TempDir(), "ShareIt", "auth_token")}
}

// withToken сохраняет токен, чтобы команды считали пользователя зарегистрированным
func withToken(t *testing.T, cfg *config.Config, tok string) {
	t.Helper()
	if err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Save(tok); err != nil {
		t.Fatalf("save token: %v", err)
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// recorded: запрос, полученный фейковым сервером
type recorded struct {
	Method string
	Path   string
	Query  string
	Cookie string
	Body   map[string]any
}

// fakeAPI отвечает status/body на любой запрос и запоминает последний
func fakeAPI(t *testing.T, status int, body string, cookies ...*http.Cookie) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method, rec.Path, rec.Query = r.Method, r.URL.Path, r.URL.RawQuery
		rec.Cookie = r.Header.Get("Cookie")
		rec.Body = nil
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		for _, c := range cookies {
			http.SetCookie(w, c)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, rec
}

package handlers_test

import (
	"ShareIt/internal/config"
	"ShareIt/internal/handlers"
	"ShareIt/internal/middleware"
	"ShareIt/internal/repo"
	"ShareIt/internal/service"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// testServer: роутер поверх настоящих сервисов и in-memory SQLite
type testServer struct {
	t      *testing.T
	router http.Handler
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:h_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ts := &testServer{t: t, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	logger := zap.NewNop().Sugar()
	opts := []service.Option{service.WithLogger(logger), service.WithClock(func() time.Time { return ts.now })}

	tx := repo.NewTransactor(db)
	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	bookings := repo.NewBookingRepository(db)
	comments := repo.NewCommentRepository(db)
	requests := repo.NewRequestRepository(db)

	svc := handlers.Services{
		Users: service.NewUserService(users, tx, opts...),
		Items: service.NewItemService(service.ItemDeps{
			Tx: tx, Items: items, Users: users, Requests: requests, Comments: comments, Bookings: bookings,
		}, opts...),
		Bookings: service.NewBookingService(service.BookingDeps{Tx: tx, Bookings: bookings, Items: items, Users: users}, opts...),
		Requests: service.NewRequestService(service.RequestDeps{Tx: tx, Requests: requests, Items: items, Users: users}, opts...),
	}
	cfg := &config.Config{AuthSecret: testSecret, DefaultPageSize: 10}
	ts.router = handlers.NewHandler(svc, logger, cfg).Router
	return ts
}

// do выполняет запрос от имени uid (0: анонимно) и возвращает рекордер
func (ts *testServer) do(method, path string, uid int64, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var rd io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			rd = strings.NewReader(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(ts.t, err)
			rd = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if uid > 0 {
		req.Header.Set(middleware.UserIDHeader, strconv.FormatInt(uid, 10))
	}
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

// decode разбирает JSON-ответ
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type idDTO struct {
	ID int64 `json:"id"`
}

func (ts *testServer) user(name string) int64 {
	ts.t.Helper()
	rr := ts.do(http.MethodPost, "/users", 0, map[string]any{"name": name, "email": strings.ToLower(name) + "@example.com"})
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[idDTO](ts.t, rr).ID
}

func (ts *testServer) item(owner int64, name string) int64 {
	ts.t.Helper()
	rr := ts.do(http.MethodPost, "/items", owner, map[string]any{"name": name, "description": "desc " + name, "available": true})
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[idDTO](ts.t, rr).ID
}

func (ts *testServer) at(h int) string {
	return ts.now.Add(time.Duration(h) * time.Hour).Format(time.RFC3339)
}

func (ts *testServer) booking(booker, item int64, from, to int) int64 {
	ts.t.Helper()
	rr := ts.do(http.MethodPost, "/bookings", booker, map[string]any{"itemId": item, "start": ts.at(from), "end": ts.at(to)})
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[idDTO](ts.t, rr).ID
}

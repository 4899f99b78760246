package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// testClock: управляемые часы; Advance сдвигает «сейчас» для всех сервисов окружения
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// env: сервисы поверх настоящих репозиториев на in-memory SQLite
type env struct {
	clock    *testClock
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService

	owner  *model.User
	booker *model.User
	other  *model.User
	item   *model.Item
}

func newEnv(t *testing.T) *env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts := []Option{WithClock(clock.Now)}

	tx := repo.NewTransactor(db)
	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	bookings := repo.NewBookingRepository(db)
	comments := repo.NewCommentRepository(db)
	requests := repo.NewRequestRepository(db)

	e := &env{
		clock: clock,
		users: NewUserService(users, tx, opts...),
		items: NewItemService(ItemDeps{
			Tx: tx, Items: items, Users: users, Requests: requests, Comments: comments, Bookings: bookings,
		}, opts...),
		bookings: NewBookingService(BookingDeps{Tx: tx, Bookings: bookings, Items: items, Users: users}, opts...),
		requests: NewRequestService(RequestDeps{Tx: tx, Requests: requests, Items: items, Users: users}, opts...),
	}

	ctx := context.Background()
	e.owner, err = e.users.Register(ctx, "Owner", "owner@example.com")
	require.NoError(t, err)
	e.booker, err = e.users.Register(ctx, "Booker", "booker@example.com")
	require.NoError(t, err)
	e.other, err = e.users.Register(ctx, "Other", "other@example.com")
	require.NoError(t, err)
	e.item, err = e.items.Create(ctx, e.owner.ID, NewItem{Name: "Drill", Description: "cordless drill", Available: true})
	require.NoError(t, err)
	return e
}

// at: момент через h часов от начального «сейчас»
func (e *env) at(h int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(h) * time.Hour)
}

// approved создаёт и сразу одобряет бронирование
func (e *env) approved(t *testing.T, bookerID int64, from, to int) *model.BookingView {
	t.Helper()
	ctx := context.Background()
	b, err := e.bookings.Create(ctx, bookerID, NewBooking{ItemID: e.item.ID, Start: e.at(from), End: e.at(to)})
	require.NoError(t, err)
	b, err = e.bookings.Approve(ctx, b.ID, true, e.owner.ID)
	require.NoError(t, err)
	return b
}

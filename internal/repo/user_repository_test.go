package repo

import (
	"ShareIt/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	// успешное создание
	u, err := r.CreateUser(ctx, &model.User{Name: "John", Email: "john@example.com"})
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, err := r.GetUserByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "john@example.com", got.Email)

	// уникальный email: вторая вставка должна дать ошибку дубликата
	_, err = r.CreateUser(ctx, &model.User{Name: "Other", Email: "john@example.com"})
	assert.Error(t, err)
	assert.True(t, IsDuplicate(err))

	// поиск несуществующего: ожидаем gorm.ErrRecordNotFound
	got, err = r.GetUserByID(ctx, 999)
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_EmailTaken(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u, _ := r.CreateUser(ctx, &model.User{Name: "A", Email: "a@example.com"})

	taken, err := r.EmailTaken(ctx, "A@Example.com", 0)
	assert.NoError(t, err)
	assert.True(t, taken)

	// собственный email пользователя не считается занятым
	taken, err = r.EmailTaken(ctx, "a@example.com", u.ID)
	assert.NoError(t, err)
	assert.False(t, taken)

	taken, err = r.EmailTaken(ctx, "free@example.com", 0)
	assert.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_UpdateDeleteList(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	a, _ := r.CreateUser(ctx, &model.User{Name: "A", Email: "a@example.com"})
	b, _ := r.CreateUser(ctx, &model.User{Name: "B", Email: "b@example.com"})

	a.Name = "A2"
	assert.NoError(t, r.UpdateUser(ctx, a))
	got, _ := r.GetUserByID(ctx, a.ID)
	assert.Equal(t, "A2", got.Name)

	list, err := r.ListUsers(ctx, model.Page{Offset: 1, Limit: 10})
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, b.ID, list[0].ID)
	}

	byIDs, err := r.GetUsersByIDs(ctx, []int64{b.ID, a.ID})
	assert.NoError(t, err)
	assert.Len(t, byIDs, 2)

	deleted, err := r.DeleteUser(ctx, b.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.DeleteUser(ctx, b.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserRepository_IsReferenced(t *testing.T) {
	f := newFixture(t)
	r := NewUserRepository(f.db)
	ctx := context.Background()

	// владелец вещи
	ref, err := r.IsReferenced(ctx, f.owner.ID)
	assert.NoError(t, err)
	assert.True(t, ref)

	// пока без бронирований
	ref, err = r.IsReferenced(ctx, f.other.ID)
	assert.NoError(t, err)
	assert.False(t, ref)

	now := time.Now().UTC()
	f.booking(t, f.item.ID, now.Add(time.Hour), now.Add(2*time.Hour), model.StatusWaiting)
	ref, err = r.IsReferenced(ctx, f.other.ID)
	assert.NoError(t, err)
	assert.True(t, ref)
}

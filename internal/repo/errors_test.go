package repo

import (
	"ShareIt/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicate_SQLiteUniqueOnUpdate(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	_, err := r.CreateUser(ctx, &model.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	b, err := r.CreateUser(ctx, &model.User{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	b.Email = "a@example.com"
	err = r.UpdateUser(ctx, b)
	require.Error(t, err)
	assert.True(t, IsDuplicate(err), "unexpected error %T: %v", err, err)
	assert.False(t, IsNotFound(err))
}

func TestIsDuplicate_OtherErrors(t *testing.T) {
	assert.False(t, IsDuplicate(nil))
	assert.False(t, IsDuplicate(errors.New("boom")))
	assert.False(t, IsDuplicate(gorm.ErrRecordNotFound))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
}

func TestIsDuplicate_ForeignKeyIsNotDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// вещь с несуществующим владельцем: нарушение FK, а не уникальности
	err := NewItemRepository(db).Create(ctx, &model.Item{OwnerID: 404, Name: "x", Available: true})
	require.Error(t, err)
	assert.False(t, IsDuplicate(err))
}

package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUsersByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context, page model.Page) ([]model.User, error) {
	args := m.Called(ctx, page)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// noTx выполняет функцию без транзакции
type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func strPtr(s string) *string { return &s }

// newUserSvc: свой мок на каждый подтест, чтобы история вызовов не протекала между ними
func newUserSvc() (*mockUserRepo, *UserService) {
	m := new(mockUserRepo)
	return m, NewUserService(m, noTx{})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	t.Run("ok when email free", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("EmailTaken", mock.Anything, "john@example.com", int64(0)).Return(false, nil).Once()
		created := &model.User{ID: 10, Name: "John", Email: "john@example.com"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "John" && u.Email == "john@example.com"
		})).Return(created, nil).Once()

		user, err := svc.Register(ctx, " John ", "john@example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when email taken", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("EmailTaken", mock.Anything, "john@example.com", int64(0)).Return(true, nil).Once()

		user, err := svc.Register(ctx, "John", "john@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrConflict)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("conflict on unique violation race", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("EmailTaken", mock.Anything, "john@example.com", int64(0)).Return(false, nil).Once()
		m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, gorm.ErrDuplicatedKey).Once()

		_, err := svc.Register(ctx, "John", "john@example.com")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("validation", func(t *testing.T) {
		m, svc := newUserSvc()
		_, err := svc.Register(ctx, "  ", "john@example.com")
		assert.ErrorIs(t, err, ErrConditionsNotMet)

		_, err = svc.Register(ctx, "John", "not-an-email")
		assert.ErrorIs(t, err, ErrConditionsNotMet)

		_, err = svc.Register(ctx, "John", "")
		assert.ErrorIs(t, err, ErrConditionsNotMet)
		m.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	t.Run("not found", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, 7, UserPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("only name changes", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "old", Email: "a@example.com"}, nil).Once()
		m.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "new" && u.Email == "a@example.com"
		})).Return(nil).Once()

		u, err := svc.Update(ctx, 1, UserPatch{Name: strPtr("new")})
		assert.NoError(t, err)
		assert.Equal(t, "new", u.Name)
		m.AssertExpectations(t)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "n", Email: "a@example.com"}, nil).Once()
		m.On("EmailTaken", mock.Anything, "b@example.com", int64(1)).Return(true, nil).Once()

		_, err := svc.Update(ctx, 1, UserPatch{Email: strPtr("b@example.com")})
		assert.ErrorIs(t, err, ErrConflict)
		m.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Name: "n", Email: "a@example.com"}, nil).Once()

		_, err := svc.Update(ctx, 1, UserPatch{Name: strPtr(" ")})
		assert.ErrorIs(t, err, ErrConditionsNotMet)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	t.Run("absent user", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound).Once()

		ok, err := svc.Delete(ctx, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("referenced user", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
		m.On("IsReferenced", mock.Anything, int64(3)).Return(true, nil).Once()

		ok, err := svc.Delete(ctx, 3)
		assert.ErrorIs(t, err, ErrConflict)
		assert.False(t, ok)
	})

	t.Run("deleted", func(t *testing.T) {
		m, svc := newUserSvc()
		m.On("GetUserByID", mock.Anything, int64(3)).Return(&model.User{ID: 3}, nil).Once()
		m.On("IsReferenced", mock.Anything, int64(3)).Return(false, nil).Once()
		m.On("DeleteUser", mock.Anything, int64(3)).Return(true, nil).Once()

		ok, err := svc.Delete(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("repository error passes through", func(t *testing.T) {
		m, svc := newUserSvc()
		boom := errors.New("db down")
		m.On("GetUserByID", mock.Anything, int64(3)).Return(nil, boom).Once()

		_, err := svc.Delete(ctx, 3)
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserService_ListNormalizesPage(t *testing.T) {
	m := new(mockUserRepo)
	svc := NewUserService(m, noTx{})
	m.On("ListUsers", mock.Anything, model.Page{Offset: 0, Limit: model.DefaultPageSize}).Return([]model.User{{ID: 1}}, nil).Once()

	list, err := svc.List(context.Background(), model.Page{Offset: -5})
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	m.AssertExpectations(t)
}

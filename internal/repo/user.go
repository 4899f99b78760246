package repo

import (
	"ShareIt/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository: доступ к пользователям.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	// EmailTaken проверяет email среди всех пользователей, кроме exceptID.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) (bool, error)
	ListUsers(ctx context.Context, page model.Page) ([]model.User, error)
	// IsReferenced сообщает, ссылаются ли на пользователя вещи, бронирования, отзывы или запросы.
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := conn(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUsersByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	users := []model.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := conn(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

func (r *userRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return conn(ctx, r.db).Model(user).Select("name", "email").Updates(user).Error
}

func (r *userRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tx := conn(ctx, r.db).Delete(&model.User{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepo) ListUsers(ctx context.Context, page model.Page) ([]model.User, error) {
	users := []model.User{}
	err := conn(ctx, r.db).Order("id").Scopes(paginate(page)).Find(&users).Error
	return users, err
}

func (r *userRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	checks := []struct {
		model  any
		column string
	}{
		{&model.Item{}, "owner_id"},
		{&model.Booking{}, "booker_id"},
		{&model.Comment{}, "author_id"},
		{&model.ItemRequest{}, "requestor_id"},
	}
	db := conn(ctx, r.db)
	for _, c := range checks {
		var n int64
		if err := db.Model(c.model).Where(c.column+" = ?", id).Limit(1).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"strings"

	"go.uber.org/zap"
)

// UserService: регистрация и изменение пользователей.
type UserService struct {
	users  repo.UserRepository
	tx     repo.Transactor
	logger *zap.SugaredLogger
}

// UserPatch: частичное обновление; nil-поля не меняются.
type UserPatch struct {
	Name  *string
	Email *string
}

func NewUserService(users repo.UserRepository, tx repo.Transactor, opts ...Option) *UserService {
	o := buildOptions(opts)
	return &UserService{users: users, tx: tx, logger: o.logger}
}

// Register создаёт пользователя с уникальным email.
func (s *UserService) Register(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, conditionsNotMet("name must not be blank")
	}
	if !validEmail(email) {
		return nil, conditionsNotMet("invalid email: %q", email)
	}

	var created *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.users.EmailTaken(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict("email %s is already in use", email)
		}
		created, err = s.users.CreateUser(ctx, &model.User{Name: name, Email: email})
		if repo.IsDuplicate(err) {
			return conflict("email %s is already in use", email)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", created.ID)
	return created, nil
}

// Update меняет только переданные поля. Пустое значение считается ошибкой, а не очисткой.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*model.User, error) {
	var updated *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetUserByID(ctx, id)
		if err != nil {
			return lookup(err, "user %d not found", id)
		}

		if patch.Name != nil {
			if isBlank(*patch.Name) {
				return conditionsNotMet("name must not be blank")
			}
			u.Name = strings.TrimSpace(*patch.Name)
		}

		if patch.Email != nil {
			email := strings.TrimSpace(*patch.Email)
			if email == "" {
				return conditionsNotMet("email must not be blank")
			}
			if !validEmail(email) {
				return conditionsNotMet("invalid email: %q", email)
			}
			taken, err := s.users.EmailTaken(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return conflict("email %s is already in use", email)
			}
			u.Email = email
		}

		if err := s.users.UpdateUser(ctx, u); err != nil {
			if repo.IsDuplicate(err) {
				return conflict("email %s is already in use", u.Email)
			}
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete удаляет пользователя, на которого ничего не ссылается.
// Возвращает false, если пользователя не было.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, id); err != nil {
			if repo.IsNotFound(err) {
				return nil
			}
			return err
		}
		referenced, err := s.users.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return conflict("user %d still has items, bookings, comments or requests", id)
		}
		deleted, err = s.users.DeleteUser(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Infow("user deleted", "user_id", id)
	}
	return deleted, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "user %d not found", id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, page model.Page) ([]model.User, error) {
	return s.users.ListUsers(ctx, page.Normalize())
}

package repo

import (
	"ShareIt/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BookingRepository: доступ к бронированиям.
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error

	// HasApprovedOverlap ищет одобренное бронирование вещи, пересекающее [start, end).
	// Бронирование exceptID в проверке не участвует.
	HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, exceptID int64) (bool, error)

	// FindByBooker и FindByOwner сортируют по start DESC, id ASC.
	FindByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error)
	FindByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error)

	// FindLastApproved: одобренные с end < now, порядок item_id, end DESC, id ASC.
	FindLastApproved(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)
	// FindNextApproved: одобренные с start >= now, порядок item_id, start ASC, id ASC.
	FindNextApproved(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error)

	// HasCompleted сообщает, есть ли у пользователя завершённое одобренное бронирование вещи.
	HasCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepository создаёт реализацию репозитория бронирований.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return conn(ctx, r.db).Create(b).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	tx := conn(ctx, r.db).Model(&model.Booking{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, exceptID int64) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Booking{}).
		Where("item_id = ? AND status = ? AND id <> ?", itemID, model.StatusApproved, exceptID).
		Where("start_at < ? AND end_at > ?", end, start).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *bookingRepo) FindByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error) {
	out := []model.Booking{}
	err := conn(ctx, r.db).
		Where("bookings.booker_id = ?", bookerID).
		Scopes(stateScope(state, now), newestFirst, paginate(page)).
		Find(&out).Error
	return out, err
}

func (r *bookingRepo) FindByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]model.Booking, error) {
	out := []model.Booking{}
	err := conn(ctx, r.db).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(stateScope(state, now), newestFirst, paginate(page)).
		Find(&out).Error
	return out, err
}

func (r *bookingRepo) FindLastApproved(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	out := []model.Booking{}
	if len(itemIDs) == 0 {
		return out, nil
	}
	err := conn(ctx, r.db).
		Where("item_id IN ? AND status = ? AND end_at < ?", itemIDs, model.StatusApproved, now).
		Order("item_id").Order("end_at DESC").Order("id").
		Find(&out).Error
	return out, err
}

func (r *bookingRepo) FindNextApproved(ctx context.Context, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	out := []model.Booking{}
	if len(itemIDs) == 0 {
		return out, nil
	}
	err := conn(ctx, r.db).
		Where("item_id IN ? AND status = ? AND start_at >= ?", itemIDs, model.StatusApproved, now).
		Order("item_id").Order("start_at").Order("id").
		Find(&out).Error
	return out, err
}

func (r *bookingRepo) HasCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Booking{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?", itemID, bookerID, model.StatusApproved, now).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// stateScope переводит BookingState в условия WHERE; зеркалит BookingState.Match.
func stateScope(state model.BookingState, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch state {
		case model.StateAll:
			return q
		case model.StateCurrent:
			return q.Where("bookings.start_at <= ? AND bookings.end_at >= ?", now, now)
		case model.StatePast:
			return q.Where("bookings.end_at < ?", now)
		case model.StateFuture:
			return q.Where("bookings.start_at > ?", now)
		case model.StateWaiting:
			return q.Where("bookings.status = ?", model.StatusWaiting)
		case model.StateRejected:
			return q.Where("bookings.status = ?", model.StatusRejected)
		default:
			_ = q.AddError(fmt.Errorf("unsupported booking state %v", state))
			return q
		}
	}
}

func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("bookings.start_at DESC").Order("bookings.id ASC")
}

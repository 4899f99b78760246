package model

import "time"

// BookingStatus: статус бронирования.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// Terminal сообщает, что статус больше не может меняться.
func (s BookingStatus) Terminal() bool {
	return s != StatusWaiting
}

// Booking: заявка пользователя на вещь в интервале [Start, End).
type Booking struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Start time.Time `gorm:"column:start_at;not null;index" json:"start"`
	End   time.Time `gorm:"column:end_at;not null;index" json:"end"`

	ItemID   int64 `gorm:"not null;index" json:"itemId"`
	BookerID int64 `gorm:"not null;index" json:"bookerId"`

	Item   *Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Booker *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index" json:"status"`
}

// BookingDates: даты ближайшего бронирования в карточке вещи.
type BookingDates struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// DatesOf сворачивает бронирование до BookingDates.
func DatesOf(b Booking) *BookingDates {
	return &BookingDates{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

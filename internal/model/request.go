package model

import "time"

// ItemRequest: запрос пользователя на вещь, которой ещё нет.
type ItemRequest struct {
	ID          int64 `gorm:"primaryKey" json:"id"`
	RequestorID int64 `gorm:"not null;index" json:"requestorId"`
	Requestor   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Description string    `gorm:"not null" json:"description"`
	Created     time.Time `gorm:"not null;index" json:"created"`
}

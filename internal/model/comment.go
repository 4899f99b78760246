package model

import "time"

// Comment: отзыв арендатора о вещи после завершённого бронирования.
type Comment struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	ItemID   int64 `gorm:"not null;index" json:"itemId"`
	AuthorID int64 `gorm:"not null;index" json:"authorId"`

	Item   *Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Author *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Text    string    `gorm:"not null" json:"text"`
	Created time.Time `gorm:"not null" json:"created"`
}

// CommentView: комментарий с именем автора.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

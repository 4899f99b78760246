package model

// Item: вещь, которую владелец выставил для бронирования.
type Item struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OwnerID int64 `gorm:"not null;index" json:"ownerId"` // ссылка на users.id

	// Связи нужны только для внешних ключей, сервисы их не подгружают.
	Owner   *User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Request *ItemRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Available   bool   `gorm:"not null" json:"available"`

	RequestID *int64 `gorm:"index" json:"requestId,omitempty"` // опциональная ссылка на item_requests.id
}

// ItemRef: краткое представление вещи во вложенных ответах.
type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId,omitempty"`
}

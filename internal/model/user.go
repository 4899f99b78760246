package model

// User: зарегистрированный участник шеринга.
type User struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null;uniqueIndex" json:"email"`
}

// UserRef: краткое представление пользователя во вложенных ответах.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

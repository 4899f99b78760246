package model

import "time"

// ItemView: карточка вещи с ближайшими бронированиями и отзывами.
// LastBooking и NextBooking заполняются только для владельца.
type ItemView struct {
	Item
	LastBooking *BookingDates `json:"lastBooking"`
	NextBooking *BookingDates `json:"nextBooking"`
	Comments    []CommentView `json:"comments"`
}

// BookingView: бронирование с краткими данными вещи и арендатора.
type BookingView struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   ItemRef       `json:"item"`
	Booker UserRef       `json:"booker"`
}

// RequestView: запрос на вещь вместе с вещами, которые его закрывают.
type RequestView struct {
	ItemRequest
	Items []ItemRef `json:"items"`
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// BookingState: фильтр выборки бронирований.
type BookingState int

const (
	StateAll BookingState = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = [...]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

func (s BookingState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("BookingState(%d)", int(s))
	}
	return stateNames[s]
}

// ErrUnknownState возвращается ParseBookingState для неизвестного значения.
type ErrUnknownState struct {
	Value string
}

func (e ErrUnknownState) Error() string {
	return "unknown state: " + e.Value
}

// ParseBookingState разбирает значение параметра state без учёта регистра.
// Пустая строка означает ALL.
func ParseBookingState(s string) (BookingState, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return StateAll, nil
	}
	for i, name := range stateNames {
		if name == v {
			return BookingState(i), nil
		}
	}
	return StateAll, ErrUnknownState{Value: s}
}

// Match проверяет, попадает ли бронирование в выборку на момент now.
// CURRENT включает обе границы, поэтому PAST, CURRENT и FUTURE не пересекаются и вместе дают ALL.
func (s BookingState) Match(b Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

package service

import (
	"time"

	"go.uber.org/zap"
)

// Clock возвращает текущее время; в тестах подменяется.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

type options struct {
	now    Clock
	logger *zap.SugaredLogger
}

// Option настраивает сервис.
type Option func(*options)

// WithClock задаёт источник текущего времени.
func WithClock(c Clock) Option {
	return func(o *options) { o.now = c }
}

// WithLogger задаёт логгер сервиса.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{now: systemClock, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// clock читает часы один раз на операцию и приводит время к UTC.
func (o options) clock() time.Time {
	return o.now().UTC()
}

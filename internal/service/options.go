package service

import (
	"math/rand/v2"
	"time"
)

// Clock возвращает текущее время. Подменяется в тестах.
type Clock func() time.Time

// RandomSource - источник случайных чисел из [0, 1)
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

type options struct {
	now  Clock
	rand RandomSource
}

// Option настраивает сервис
type Option func(*options)

// WithClock задает источник времени
func WithClock(now Clock) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRandom задает источник случайных чисел для размытия координат
func WithRandom(r RandomSource) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:  time.Now,
		rand: globalRandom{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

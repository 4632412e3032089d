package monitor

import "time"

// Timer - отменяемый отложенный вызов
type Timer interface {
	Stop() bool
}

// Clock - источник времени и таймеров для движка
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock возвращает часы на основе пакета time
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

package monitor

import (
	"time"
)

// IdleWatchdog периодически сравнивает время простоя с таймаутом.
// Состояние защищено блокировкой Monitor.
type IdleWatchdog struct {
	interval   time.Duration
	timeout    time.Duration
	clock      Clock
	timer      Timer
	generation uint64
	running    bool
	armed      bool
}

func NewIdleWatchdog(interval, timeout time.Duration, clock Clock) *IdleWatchdog {
	return &IdleWatchdog{
		interval: interval,
		timeout:  timeout,
		clock:    clock,
		armed:    true,
	}
}

// Start планирует первый тик. Колбэк получает номер поколения,
// по которому отсекаются тики, сработавшие после Stop.
func (w *IdleWatchdog) Start(onTick func(generation uint64)) {
	if w.running {
		return
	}
	w.running = true
	w.armed = true
	w.generation++
	w.schedule(onTick)
}

// Reschedule планирует следующий тик того же поколения
func (w *IdleWatchdog) Reschedule(generation uint64, onTick func(generation uint64)) {
	if !w.Current(generation) {
		return
	}
	w.schedule(onTick)
}

func (w *IdleWatchdog) schedule(onTick func(generation uint64)) {
	gen := w.generation
	w.timer = w.clock.AfterFunc(w.interval, func() { onTick(gen) })
}

// Current сообщает, относится ли тик к действующему запуску
func (w *IdleWatchdog) Current(generation uint64) bool {
	return w.running && generation == w.generation
}

// Evaluate решает, нужно ли открывать сессию на этом тике.
// После срабатывания сторож молчит, пока простой не опустится до таймаута.
func (w *IdleWatchdog) Evaluate(idle time.Duration, sessionActive bool) bool {
	if idle <= w.timeout {
		w.armed = true
		return false
	}
	if sessionActive || !w.armed {
		return false
	}
	w.armed = false
	return true
}

// Rearm снова разрешает срабатывание (новое движение или подтверждение)
func (w *IdleWatchdog) Rearm() {
	w.armed = true
}

// Stop отменяет ожидающий таймер; повторный вызов ничего не делает
func (w *IdleWatchdog) Stop() {
	if !w.running {
		return
	}
	w.running = false
	w.generation++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *IdleWatchdog) Running() bool {
	return w.running
}

func (w *IdleWatchdog) Armed() bool {
	return w.armed
}

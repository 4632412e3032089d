package monitor

import (
	"context"
	"sort"
	"sync"
)

// Registry хранит по одному движку на пользователя
type Registry struct {
	mu       sync.Mutex
	settings Settings
	deps     Dependencies
	monitors map[string]*Monitor
}

func NewRegistry(settings Settings, deps Dependencies) *Registry {
	return &Registry{
		settings: settings,
		deps:     deps,
		monitors: make(map[string]*Monitor),
	}
}

// Get возвращает монитор пользователя, создавая его при первом обращении
func (r *Registry) Get(userID string) *Monitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.monitors[userID]
	if !ok {
		m = NewMonitor(userID, r.settings, r.deps)
		r.monitors[userID] = m
	}
	return m
}

// Lookup возвращает монитор без создания
func (r *Registry) Lookup(userID string) (*Monitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.monitors[userID]
	return m, ok
}

// Users возвращает отсортированный список известных пользователей
func (r *Registry) Users() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]string, 0, len(r.monitors))
	for userID := range r.monitors {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}

// StopAll останавливает слежение для всех пользователей
func (r *Registry) StopAll() {
	for _, m := range r.snapshot() {
		m.Stop()
	}
}

// Drain ждет отправок, уже запущенных таймерами, но не дольше ctx.
// Вызывается после StopAll.
func (r *Registry) Drain(ctx context.Context) error {
	monitors := r.snapshot()

	done := make(chan struct{})
	go func() {
		for _, m := range monitors {
			m.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Registry) snapshot() []*Monitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	monitors := make([]*Monitor, 0, len(r.monitors))
	for _, m := range r.monitors {
		monitors = append(monitors, m)
	}
	return monitors
}

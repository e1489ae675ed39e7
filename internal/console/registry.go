package console

import (
	"sync"
	"time"

	"eventflow/internal/feed"
	"eventflow/internal/models"

	"github.com/google/uuid"
)

// Registry хранит открытые консоли по их идентификаторам. Каждая консоль
// принадлежит одному экрану оператора; между собой экраны делят состояние
// только через хранилище и ленту, не через общую проекцию.
type Registry struct {
	mu       sync.Mutex
	consoles map[string]*Console
}

// Active — реестр консолей процесса.
var Active = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{consoles: make(map[string]*Console)}
}

func (r *Registry) Open(event models.Event, store Store, bus *feed.Bus) (*Console, error) {
	c, err := Open(uuid.NewString(), event, store, bus)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.consoles[c.ID] = c
	r.mu.Unlock()
	return c, nil
}

func (r *Registry) Get(id string) (*Console, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.consoles[id]
	return c, ok
}

// Close закрывает консоль и убирает её из реестра.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	c, ok := r.consoles[id]
	delete(r.consoles, id)
	r.mu.Unlock()
	if ok {
		c.Close()
	}
	return ok
}

// EvictIdle закрывает консоли, которые не трогали дольше maxIdle.
// Запускается планировщиком: брошенный экран не должен держать подписку вечно.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*Console
	for id, c := range r.consoles {
		if c.IdleSince(cutoff) {
			stale = append(stale, c)
			delete(r.consoles, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	return len(stale)
}

package engine

import (
	"errors"
	"sync"

	"rogue-server/internal/domain"
)

var ErrNoSavedGame = errors.New("no saved game")

// MemoryPersistence хранит одну сохраненную партию в памяти процесса.
// Загрузка забирает сохранение: продолжить партию можно только один раз.
type MemoryPersistence struct {
	mu    sync.Mutex
	saved *domain.World
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Save(w *domain.World) error {
	if w == nil {
		return errors.New("nothing to save")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = w
	return nil
}

func (p *MemoryPersistence) Load() (*domain.World, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saved == nil {
		return nil, ErrNoSavedGame
	}
	w := p.saved
	p.saved = nil
	return w, nil
}

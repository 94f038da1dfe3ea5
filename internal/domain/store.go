package domain

import "rogue-server/internal/core/types"

// AnyStore - типонезависимый интерфейс хранилища. Нужен миру, чтобы
// удалять сущность сразу из всех хранилищ.
type AnyStore interface {
	Remove(id types.EntityID)
	Has(id types.EntityID) bool
	Len() int
	Clear()
}

// Store - разреженное хранилище компонента типа T.
// Порядок обхода Entities() совпадает с порядком вставки и не меняется
// при удалении, поэтому фазы обходят сущности детерминированно.
type Store[T any] struct {
	components map[types.EntityID]*T
	entities   []types.EntityID
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[types.EntityID]*T),
		entities:   make([]types.EntityID, 0, 64),
	}
}

// Insert добавляет или заменяет компонент.
func (s *Store[T]) Insert(id types.EntityID, val T) *T {
	if ptr, ok := s.components[id]; ok {
		*ptr = val
		return ptr
	}
	ptr := &val
	s.components[id] = ptr
	s.entities = append(s.entities, id)
	return ptr
}

// Get возвращает указатель на компонент (изменения видны всем фазам).
func (s *Store[T]) Get(id types.EntityID) (*T, bool) {
	ptr, ok := s.components[id]
	return ptr, ok
}

func (s *Store[T]) Has(id types.EntityID) bool {
	_, ok := s.components[id]
	return ok
}

func (s *Store[T]) Remove(id types.EntityID) {
	if _, ok := s.components[id]; !ok {
		return
	}
	delete(s.components, id)

	for i, e := range s.entities {
		if e == id {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Entities возвращает копию списка владельцев: по ней можно безопасно
// итерироваться, удаляя компоненты.
func (s *Store[T]) Entities() []types.EntityID {
	out := make([]types.EntityID, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Clear опустошает хранилище. Так фаза "осушает" свой входящий ящик.
func (s *Store[T]) Clear() {
	if len(s.entities) == 0 {
		return
	}
	s.components = make(map[types.EntityID]*T)
	s.entities = s.entities[:0]
}

package types

// Registry - центральный владелец сущностей (arena + free list).
//
// Удаление слота увеличивает его поколение, поэтому старые EntityID
// перестают быть живыми, даже если слот переиспользован.
type Registry struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

func NewRegistry() *Registry {
	return &Registry{
		generations: make([]uint32, 0, 128),
		alive:       make([]bool, 0, 128),
	}
}

// Create выделяет новую сущность, переиспользуя освобождённые слоты.
func (r *Registry) Create() EntityID {
	r.count++

	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.alive[idx] = true
		return PackEntityID(r.generations[idx], idx)
	}

	idx := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	r.alive = append(r.alive, true)
	return PackEntityID(1, idx)
}

// Destroy освобождает слот. Возвращает false для мёртвой или чужой ссылки.
func (r *Registry) Destroy(id EntityID) bool {
	if !r.Alive(id) {
		return false
	}

	idx := id.Index()
	r.alive[idx] = false
	r.generations[idx]++
	if r.generations[idx] == 0 {
		r.generations[idx] = 1
	}
	r.free = append(r.free, idx)
	r.count--
	return true
}

// Alive проверяет, что ссылка указывает на текущее поколение живого слота.
func (r *Registry) Alive(id EntityID) bool {
	if id.IsNil() {
		return false
	}
	idx := id.Index()
	if int(idx) >= len(r.generations) {
		return false
	}
	return r.alive[idx] && r.generations[idx] == id.Generation()
}

// Len возвращает количество живых сущностей.
func (r *Registry) Len() int {
	return r.count
}

// Entities возвращает живые сущности в порядке индексов слотов.
func (r *Registry) Entities() []EntityID {
	out := make([]EntityID, 0, r.count)
	for idx, ok := range r.alive {
		if ok {
			out = append(out, PackEntityID(r.generations[idx], uint32(idx)))
		}
	}
	return out
}

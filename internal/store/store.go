// Package store holds the in-memory, id-keyed repositories for users and
// playlists. Every repository guards its map and id counter with its own
// mutex so concurrent requests never observe duplicate or lost ids.
package store

import (
	"sort"
	"sync"
)

// Entity is anything a Repository can assign an id to.
type Entity interface {
	SetID(id int)
}

// Repository is a mutex-guarded map keyed by a monotonically increasing id.
type Repository[T Entity] struct {
	items  map[int]T
	nextID int
	mutex  sync.RWMutex
}

// NewRepository creates an empty repository whose first id is 1.
func NewRepository[T Entity]() *Repository[T] {
	return &Repository[T]{
		items:  make(map[int]T),
		nextID: 1,
	}
}

// Insert assigns the next id to entity, stores it and returns the id.
// Ids are never reused.
func (r *Repository[T]) Insert(entity T) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	id := r.nextID
	r.nextID++

	entity.SetID(id)
	r.items[id] = entity
	return id
}

// Get retrieves an entity by id.
func (r *Repository[T]) Get(id int) (T, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entity, exists := r.items[id]
	return entity, exists
}

// ListWhere scans every entity in id order and returns those matching pred.
func (r *Repository[T]) ListWhere(pred func(T) bool) []T {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ids := make([]int, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]T, 0)
	for _, id := range ids {
		if entity := r.items[id]; pred(entity) {
			result = append(result, entity)
		}
	}
	return result
}

// Len returns the number of stored entities.
func (r *Repository[T]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.items)
}

package game

import "sync"

// Registry holds every live room, keyed by game id. Rooms are independent
// aggregates; the registry only hands them out.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for id, building it with the notifier on
// first use.
func (reg *Registry) GetOrCreate(id string, notifier Notifier) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[id]; ok {
		return room
	}
	room := NewRoom(id, notifier)
	reg.rooms[id] = room
	return room
}

// Get returns an existing room.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	return room, ok
}

// Remove drops a room from the registry.
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

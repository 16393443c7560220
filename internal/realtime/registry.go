package realtime

import "sync"

// Registry tracks which sessions are currently connected to which
// board. It is the injectable replacement for ambient presence state:
// everything that needs to know who is in a room goes through here.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[*Session]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Session]struct{}),
	}
}

// Join adds the session to the board's room, creating the room on
// first join. It returns how many sessions the session's user now has
// in the room; the membership change and the count are one atomic
// step, so of two concurrent joins by the same user exactly one
// observes 1.
func (r *Registry) Join(boardID string, s *Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[boardID]
	if !ok {
		room = make(map[*Session]struct{})
		r.rooms[boardID] = room
	}
	room[s] = struct{}{}
	return r.countForUserLocked(boardID, s.user.ID)
}

// Leave removes the session and returns how many sessions the
// session's user still has in the room; exactly one of the user's
// concurrent leaves observes 0. The room itself is dropped once
// empty.
func (r *Registry) Leave(boardID string, s *Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[boardID]
	if !ok {
		return 0
	}
	delete(room, s)
	if len(room) == 0 {
		delete(r.rooms, boardID)
	}
	return r.countForUserLocked(boardID, s.user.ID)
}

func (r *Registry) countForUserLocked(boardID string, userID uint64) int {
	count := 0
	for s := range r.rooms[boardID] {
		if s.user.ID == userID {
			count++
		}
	}
	return count
}

// Sessions returns a snapshot of the board's live sessions.
func (r *Registry) Sessions(boardID string) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[boardID]
	out := make([]*Session, 0, len(room))
	for s := range room {
		out = append(out, s)
	}
	return out
}

// forEach runs fn for every session in the room while holding the
// registry lock, so concurrent broadcasts enqueue their frames in a
// single order that all room members observe.
func (r *Registry) forEach(boardID string, fn func(s *Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for s := range r.rooms[boardID] {
		fn(s)
	}
}

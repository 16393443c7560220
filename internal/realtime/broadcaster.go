package realtime

// Broadcaster delivers an event to every live session of a board's
// room. Delivery is at-least-once for the members registered at the
// time of the call; later joiners do not see it.
type Broadcaster interface {
	Broadcast(boardID string, event Event)
}

// RoomBroadcaster fans out through the Registry into each session's
// outbound queue. Enqueueing happens under the registry lock, so all
// members see events in the order the server applied them.
type RoomBroadcaster struct {
	registry *Registry
}

func NewRoomBroadcaster(registry *Registry) *RoomBroadcaster {
	return &RoomBroadcaster{registry: registry}
}

func (b *RoomBroadcaster) Broadcast(boardID string, event Event) {
	b.registry.forEach(boardID, func(s *Session) {
		s.enqueue(event)
	})
}

package core

// undoFrame records one reversible mutation of a room's event log.
// Exactly one variant applies: a push frame (one event was appended) or a
// clear frame (the whole log was emptied; snapshot holds the prior contents).
type undoFrame struct {
	clear    bool
	snapshot []DrawEvent
}

// Room groups clients drawing on the same board and owns that board's
// history: the bounded event log and the undo stack.
type Room struct {
	ID      string
	clients map[*Client]struct{}

	log   []DrawEvent
	undo  []undoFrame
	limit int
}

// NewRoom constructs an empty room. historyLimit caps the event log;
// values <= 0 fall back to the default cap.
func NewRoom(id string, historyLimit int) *Room {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
		limit:   historyLimit,
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all clients in the room.
func (r *Room) Broadcast(event *Event) {
	for client := range r.clients {
		client.send(event)
	}
}

// BroadcastExcept sends an event to all clients in the room but one,
// typically the sender that already applied the change locally.
func (r *Room) BroadcastExcept(event *Event, skip *Client) {
	for client := range r.clients {
		if client == skip {
			continue
		}
		client.send(event)
	}
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}

// Append adds an event to the log and pushes a matching undo frame.
// When the log exceeds its cap the oldest event is discarded; the undo
// frame for the evicted event stays on the stack. The cap exists purely to
// bound memory of long-running boards, trading undo fidelity for very old
// events against a hard ceiling.
func (r *Room) Append(event DrawEvent) {
	r.log = append(r.log, event)
	r.undo = append(r.undo, undoFrame{})
	if len(r.log) > r.limit {
		r.log = r.log[len(r.log)-r.limit:]
	}
}

// Clear snapshots the current log into an undo frame, then empties the log.
// The prior contents are returned so callers can archive them.
func (r *Room) Clear() []DrawEvent {
	prior := r.log
	r.undo = append(r.undo, undoFrame{clear: true, snapshot: prior})
	r.log = nil
	return prior
}

// Undo pops the most recent undo frame. A push frame removes the last log
// entry; a clear frame restores the snapshot wholesale. An empty stack is a
// no-op, not an error, and the unchanged log is still returned so callers
// can re-broadcast idempotently.
func (r *Room) Undo() []DrawEvent {
	if len(r.undo) == 0 {
		return r.History()
	}
	frame := r.undo[len(r.undo)-1]
	r.undo = r.undo[:len(r.undo)-1]

	if frame.clear {
		r.log = append([]DrawEvent(nil), frame.snapshot...)
	} else if len(r.log) > 0 {
		r.log = r.log[:len(r.log)-1]
	}
	return r.History()
}

// History returns a copy of the event log in append order.
func (r *Room) History() []DrawEvent {
	return append([]DrawEvent(nil), r.log...)
}

// EventCount returns the current length of the event log.
func (r *Room) EventCount() int {
	return len(r.log)
}

// UndoDepth returns the number of frames on the undo stack.
func (r *Room) UndoDepth() int {
	return len(r.undo)
}

package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers a board's full event log: once to a joiner,
	// and to the whole room after an undo resyncs everyone.
	EventHistory EventKind = iota
	// EventUserCount carries the room's live participant count.
	EventUserCount
	// EventRemoteDraw relays a peer's draw event.
	EventRemoteDraw
	// EventRemoteErase relays a peer's erase event.
	EventRemoteErase
	// EventBoardCleared notifies the room that the board was wiped.
	EventBoardCleared
	// EventChatMessage relays an ephemeral chat message.
	EventChatMessage
	// EventPeerLeft notifies the room that a connection went away, so
	// clients can discard that peer's live cursor.
	EventPeerLeft
	// EventRemoteCursor relays a peer's live pointer position.
	EventRemoteCursor
	// EventError notifies a client about a refused request.
	EventError
)

// Event is sent to clients to describe what happened on their board.
// Only the fields matching Kind are set.
type Event struct {
	Kind EventKind
	Room string

	History   []DrawEvent
	Count     int
	Stroke    *DrawEvent
	ClearedBy string
	Chat      ChatMessage
	Peer      string
	Cursor    CursorEvent
	Error     *CoreError
}

// CursorEvent is a peer's pointer position with server-stamped attribution.
type CursorEvent struct {
	X            float64
	Y            float64
	ConnectionID string
	Name         string
}

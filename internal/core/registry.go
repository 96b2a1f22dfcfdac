package core

import "strings"

// DefaultRoomID is the implicit shared board every client lands on unless
// it asks for a private one.
const DefaultRoomID = "public"

// DefaultHistoryLimit caps a room's event log when no explicit limit is set.
const DefaultHistoryLimit = 1000

// RoomType values accepted in a join request.
const (
	RoomTypePublic  = "public"
	RoomTypePrivate = "private"
)

// JoinRequest is the payload a client presents to establish room membership.
type JoinRequest struct {
	Username string
	RoomType string
	PassKey  string
}

// Registry maps room ids to their isolated state. Rooms are created lazily
// on first join and live until process exit; their history is bounded, so
// abandoned rooms cost a fixed amount of memory.
type Registry struct {
	rooms        map[string]*Room
	historyLimit int
}

// NewRegistry constructs an empty registry. historyLimit applies to every
// room it creates; values <= 0 fall back to the default cap.
func NewRegistry(historyLimit int) *Registry {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Registry{
		rooms:        make(map[string]*Room),
		historyLimit: historyLimit,
	}
}

// ResolveRoomID derives the room id from a join request. Private rooms are
// keyed by their trimmed passkey; everything else lands on the default
// board. A private request with an empty or whitespace-only passkey is
// refused rather than silently demoted to the public board.
func ResolveRoomID(join JoinRequest) (string, error) {
	if join.RoomType != RoomTypePrivate {
		return DefaultRoomID, nil
	}
	key := strings.TrimSpace(join.PassKey)
	if key == "" {
		return "", ErrEmptyPassKey
	}
	return key, nil
}

// GetOrCreate returns the room for an id, creating it on first use.
// Creation cannot fail and the call is idempotent.
func (g *Registry) GetOrCreate(id string) *Room {
	if room, ok := g.rooms[id]; ok {
		return room
	}
	room := NewRoom(id, g.historyLimit)
	g.rooms[id] = room
	return room
}

// Lookup returns the room for an id without creating it.
func (g *Registry) Lookup(id string) (*Room, bool) {
	room, ok := g.rooms[id]
	return room, ok
}

// RoomIDs lists the ids of all rooms created so far.
func (g *Registry) RoomIDs() []string {
	ids := make([]string, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	return ids
}

// TotalEvents sums event log lengths across all rooms.
func (g *Registry) TotalEvents() int {
	n := 0
	for _, room := range g.rooms {
		n += room.EventCount()
	}
	return n
}

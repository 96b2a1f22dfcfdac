package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkrelay/inkrelay-server/internal/store"
)

// submission pairs a command with the client that issued it.
type submission struct {
	client *Client
	cmd    *Command
}

// Stats is a point-in-time snapshot of hub-wide counters.
type Stats struct {
	TotalParticipants int
	TotalEvents       int
	RoomIDs           []string
}

type statsRequest struct {
	reply chan Stats
}

// Hub is the relay dispatcher. A single goroutine (Run) owns every room,
// every participant record, and every board history; commands from all
// clients funnel through one inbound queue and are processed start to
// finish, one at a time. That serialization is what lets the event log and
// undo stack use plain appends and pops with no locking: no two mutations
// of the same room can ever interleave.
type Hub struct {
	registry *Registry
	presence *Presence
	archive  store.Archiver
	log      *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	inbound    chan submission
	stats      chan statsRequest

	clients map[*Client]struct{}
}

// NewHub constructs a hub. archive may be nil to disable clear-board
// archiving; logger may be nil in tests.
func NewHub(archive store.Archiver, logger *zerolog.Logger, historyLimit int) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   NewRegistry(historyLimit),
		presence:   NewPresence(),
		archive:    archive,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan submission, 64),
		stats:      make(chan statsRequest),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient hands a freshly accepted connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient tears down a connection. Safe to call more than once;
// only the first call has any effect.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Stats reads hub-wide counters through the dispatcher loop, so it observes
// a consistent snapshot without a second mutation path.
func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	req := statsRequest{reply: make(chan Stats, 1)}
	select {
	case h.stats <- req:
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
	select {
	case s := <-req.reply:
		return s, nil
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// Run processes registrations, teardowns, and client commands until the
// context is canceled. All state mutation happens on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.forward(ctx, c)
			h.log.Debug().Str("connection_id", c.ID).Msg("client registered")

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case sub := <-h.inbound:
			h.dispatch(sub.client, sub.cmd)

		case req := <-h.stats:
			req.reply <- Stats{
				TotalParticipants: h.presence.Total(),
				TotalEvents:       h.registry.TotalEvents(),
				RoomIDs:           h.registry.RoomIDs(),
			}

		case <-ctx.Done():
			return
		}
	}
}

// forward drains one client's command channel into the shared inbound
// queue. Per-client ordering is preserved; the hub loop serializes the rest.
func (h *Hub) forward(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbound <- submission{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	if _, registered := h.clients[c]; !registered {
		// Disconnected clients are terminal; late commands are discarded.
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd.Join)
	case CommandDraw:
		h.handleStroke(c, StrokeDraw, cmd.Stroke)
	case CommandErase:
		h.handleStroke(c, StrokeErase, cmd.Stroke)
	case CommandClearBoard:
		h.handleClearBoard(c)
	case CommandUndo:
		h.handleUndo(c)
	case CommandChat:
		h.handleChat(c, cmd.Chat)
	case CommandCursorMove:
		h.handleCursorMove(c, cmd.Cursor)
	default:
		h.log.Warn().Str("connection_id", c.ID).Int("kind", int(cmd.Kind)).Msg("unknown command kind")
	}
}

func (h *Hub) handleJoin(c *Client, join JoinRequest) {
	if _, joined := h.presence.Lookup(c.ID); joined {
		// Room assignment is immutable per connection; repeated joins are ignored.
		h.log.Warn().Str("connection_id", c.ID).Msg("duplicate join ignored")
		return
	}

	roomID, err := ResolveRoomID(join)
	if err != nil {
		if errors.Is(err, ErrEmptyPassKey) {
			c.send(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "private room requires a passkey")})
			return
		}
		c.send(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, err.Error())})
		return
	}

	name := join.Username
	if name == "" {
		name = defaultName(c.ID)
	}

	participant := &Participant{
		ConnectionID: c.ID,
		Name:         name,
		RoomID:       roomID,
		JoinedAt:     time.Now(),
	}
	if err := h.presence.Register(participant); err != nil {
		h.log.Warn().Err(err).Str("connection_id", c.ID).Msg("register participant")
		return
	}

	room := h.registry.GetOrCreate(roomID)
	room.AddClient(c)
	c.Name = name

	// History goes to the joiner only; the updated count to the whole room.
	c.send(&Event{Kind: EventHistory, Room: roomID, History: room.History()})
	room.Broadcast(&Event{Kind: EventUserCount, Room: roomID, Count: h.presence.CountInRoom(roomID)})

	h.log.Info().
		Str("connection_id", c.ID).
		Str("room", roomID).
		Str("user", name).
		Int("participants", h.presence.CountInRoom(roomID)).
		Msg("user joined")
}

func (h *Hub) handleStroke(c *Client, kind StrokeKind, stroke *DrawEvent) {
	participant, room := h.senderRoom(c)
	if room == nil || stroke == nil {
		return
	}

	event := *stroke
	event.Kind = kind
	event.normalize()
	event.ConnectionID = c.ID
	event.AuthorName = participant.Name
	event.Timestamp = time.Now()

	room.Append(event)

	remoteKind := EventRemoteDraw
	if kind == StrokeErase {
		remoteKind = EventRemoteErase
	}
	// The sender already rendered the stroke locally.
	room.BroadcastExcept(&Event{Kind: remoteKind, Room: room.ID, Stroke: &event}, c)
}

func (h *Hub) handleClearBoard(c *Client) {
	_, room := h.senderRoom(c)
	if room == nil {
		return
	}

	prior := room.Clear()
	room.Broadcast(&Event{Kind: EventBoardCleared, Room: room.ID, ClearedBy: c.ID})

	h.log.Info().Str("connection_id", c.ID).Str("room", room.ID).Int("discarded", len(prior)).Msg("board cleared")

	if h.archive != nil && len(prior) > 0 {
		go h.archiveClear(room.ID, c.ID, prior)
	}
}

func (h *Hub) handleUndo(c *Client) {
	_, room := h.senderRoom(c)
	if room == nil {
		return
	}

	// Resync every peer with the full log; simplest correct recovery after
	// a structural change.
	history := room.Undo()
	room.Broadcast(&Event{Kind: EventHistory, Room: room.ID, History: history})
}

func (h *Hub) handleChat(c *Client, msg ChatMessage) {
	participant, room := h.senderRoom(c)
	if room == nil {
		return
	}

	name := participant.Name
	if name == "" {
		name = msg.Name
	}
	if name == "" {
		name = "anonymous"
	}

	room.Broadcast(&Event{
		Kind: EventChatMessage,
		Room: room.ID,
		Chat: ChatMessage{Name: name, Text: msg.Text, SentAt: time.Now()},
	})
}

func (h *Hub) handleCursorMove(c *Client, pos CursorPosition) {
	participant, room := h.senderRoom(c)
	if room == nil {
		return
	}

	room.BroadcastExcept(&Event{
		Kind: EventRemoteCursor,
		Room: room.ID,
		Cursor: CursorEvent{
			X:            pos.X,
			Y:            pos.Y,
			ConnectionID: c.ID,
			Name:         participant.Name,
		},
	}, c)
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, registered := h.clients[c]; !registered {
		return
	}
	delete(h.clients, c)

	participant, existed := h.presence.Remove(c.ID)
	if existed {
		if room, ok := h.registry.Lookup(participant.RoomID); ok {
			room.RemoveClient(c)
			room.Broadcast(&Event{Kind: EventUserCount, Room: room.ID, Count: h.presence.CountInRoom(room.ID)})
			room.Broadcast(&Event{Kind: EventPeerLeft, Room: room.ID, Peer: c.ID})
		}
		h.log.Info().Str("connection_id", c.ID).Str("room", participant.RoomID).Msg("user disconnected")
	}

	close(c.Events)
}

// senderRoom resolves the room a command applies to. A connection with no
// participant record gets both returns nil: messages sent before joining
// are dropped silently rather than surfaced as errors.
func (h *Hub) senderRoom(c *Client) (*Participant, *Room) {
	participant, ok := h.presence.Lookup(c.ID)
	if !ok {
		h.log.Debug().Str("connection_id", c.ID).Msg("message from unjoined connection dropped")
		return nil, nil
	}
	room, ok := h.registry.Lookup(participant.RoomID)
	if !ok {
		return nil, nil
	}
	return participant, room
}

func (h *Hub) archiveClear(roomID, clearedBy string, events []DrawEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(events)
	if err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("marshal clear snapshot")
		return
	}
	snap := store.BoardSnapshot{
		RoomID:    roomID,
		ClearedBy: clearedBy,
		Events:    payload,
		ClearedAt: time.Now(),
	}
	if err := h.archive.ArchiveClear(ctx, snap); err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("archive clear snapshot")
	}
}

func defaultName(connectionID string) string {
	if len(connectionID) > 6 {
		connectionID = connectionID[:6]
	}
	return "user_" + connectionID
}

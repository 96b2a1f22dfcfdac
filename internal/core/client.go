package core

// Client is one connected drawing surface as seen by the core layer.
// The transport feeds inbound messages into Commands and drains Events
// back out to the wire; the hub owns everything in between.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels. The name stays
// empty until the client joins a room.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// send delivers an event without blocking. A client whose outbound buffer
// is full simply misses the event; delivery is best-effort by contract.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}

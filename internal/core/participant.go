package core

import "time"

// Participant is the server-side record of one live connection: its identity,
// the room it occupies, and when it joined. The room assignment is made once
// at join time and never changes for the lifetime of the connection.
type Participant struct {
	ConnectionID string
	Name         string
	RoomID       string
	JoinedAt     time.Time
}

// Presence tracks all live participants keyed by connection id. It is the
// sole owner of Participant records; rooms derive membership by filtering.
type Presence struct {
	byConn map[string]*Participant
}

// NewPresence constructs an empty presence tracker.
func NewPresence() *Presence {
	return &Presence{byConn: make(map[string]*Participant)}
}

// Register stores a participant record. Returns ErrAlreadyJoined if the
// connection already has one; the existing record is left untouched.
func (p *Presence) Register(part *Participant) error {
	if _, exists := p.byConn[part.ConnectionID]; exists {
		return ErrAlreadyJoined
	}
	p.byConn[part.ConnectionID] = part
	return nil
}

// Remove deletes and returns the participant for a connection.
// The second return is false if the connection was never registered.
func (p *Presence) Remove(connectionID string) (*Participant, bool) {
	part, ok := p.byConn[connectionID]
	if !ok {
		return nil, false
	}
	delete(p.byConn, connectionID)
	return part, true
}

// Lookup returns the participant for a connection, if any.
func (p *Presence) Lookup(connectionID string) (*Participant, bool) {
	part, ok := p.byConn[connectionID]
	return part, ok
}

// CountInRoom counts live participants in a room. Computed on demand so the
// count can never go stale after disconnects.
func (p *Presence) CountInRoom(roomID string) int {
	n := 0
	for _, part := range p.byConn {
		if part.RoomID == roomID {
			n++
		}
	}
	return n
}

// Total returns the number of live participants across all rooms.
func (p *Presence) Total() int {
	return len(p.byConn)
}

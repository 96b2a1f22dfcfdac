package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin       = "user_join"
	InboundTypeDraw       = "draw"
	InboundTypeErase      = "erase"
	InboundTypeClearBoard = "clear_board"
	InboundTypeUndo       = "undo"
	InboundTypeChat       = "chat_message"
	InboundTypeCursorMove = "cursor_move"

	OutboundTypeHistory      = "drawing_history"
	OutboundTypeUserCount    = "user_count_update"
	OutboundTypeRemoteDraw   = "remote_draw"
	OutboundTypeRemoteErase  = "remote_erase"
	OutboundTypeBoardCleared = "board_cleared"
	OutboundTypeChat         = "chat_message"
	OutboundTypePeerLeft     = "user_disconnected"
	OutboundTypeRemoteCursor = "remote_cursor"
	OutboundTypeError        = "error"
)

// JoinData establishes room membership for the connection.
type JoinData struct {
	Username string `json:"username,omitempty"`
	RoomType string `json:"roomType,omitempty"`
	PassKey  string `json:"passKey,omitempty"`
}

// StrokeData is one stroke segment or shape as sent by the client.
// Attribution fields are absent on purpose; the server stamps them.
type StrokeData struct {
	FromX      float64 `json:"fromX"`
	FromY      float64 `json:"fromY"`
	ToX        float64 `json:"toX"`
	ToY        float64 `json:"toY"`
	Color      string  `json:"color,omitempty"`
	Size       float64 `json:"size,omitempty"`
	EraserSize float64 `json:"eraserSize,omitempty"`
	Shape      string  `json:"shape,omitempty"`
	LineStyle  string  `json:"lineStyle,omitempty"`
}

// ChatData is an ephemeral chat message from the client.
type ChatData struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// CursorData reports the client's live pointer position.
type CursorData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// DrawEventData is a draw or erase event enriched with server attribution,
// as relayed to peers and replayed in history snapshots.
type DrawEventData struct {
	Kind         string  `json:"kind"`
	Shape        string  `json:"shape"`
	FromX        float64 `json:"fromX"`
	FromY        float64 `json:"fromY"`
	ToX          float64 `json:"toX"`
	ToY          float64 `json:"toY"`
	Color        string  `json:"color,omitempty"`
	Size         float64 `json:"size,omitempty"`
	EraserSize   float64 `json:"eraserSize,omitempty"`
	LineStyle    string  `json:"lineStyle,omitempty"`
	ConnectionID string  `json:"connectionId"`
	AuthorName   string  `json:"authorName,omitempty"`
	Timestamp    int64   `json:"timestamp"`
}

// BoardClearedData notifies the room that the board was wiped.
type BoardClearedData struct {
	ClearedBy string `json:"clearedBy"`
}

// ChatEventData is a relayed chat message with the server send time.
type ChatEventData struct {
	Name      string `json:"name"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// PeerLeftData tells remaining clients to drop a peer's live cursor.
type PeerLeftData struct {
	ConnectionID string `json:"connectionId"`
}

// CursorEventData is a peer's live pointer position.
type CursorEventData struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	ConnectionID string  `json:"connectionId"`
	Name         string  `json:"name,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

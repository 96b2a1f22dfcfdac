package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin establishes room membership for the connection.
	CommandJoin CommandKind = iota
	// CommandDraw appends a stroke or shape to the sender's board.
	CommandDraw
	// CommandErase appends an eraser stroke to the sender's board.
	CommandErase
	// CommandClearBoard wipes the sender's board.
	CommandClearBoard
	// CommandUndo reverts the most recent board mutation.
	CommandUndo
	// CommandChat relays an ephemeral text message to the room.
	CommandChat
	// CommandCursorMove relays the sender's live pointer position.
	CommandCursorMove
)

// Command represents an action requested by a client. Only the field
// matching Kind is meaningful.
type Command struct {
	Kind   CommandKind
	Join   JoinRequest
	Stroke *DrawEvent
	Chat   ChatMessage
	Cursor CursorPosition
}

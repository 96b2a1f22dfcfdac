package core

import "time"

// StrokeKind distinguishes pigment strokes from eraser strokes.
type StrokeKind string

const (
	StrokeDraw  StrokeKind = "draw"
	StrokeErase StrokeKind = "erase"
)

// Shape identifies the geometry a draw event describes.
type Shape string

const (
	// ShapeFree is one segment of a freehand stroke, the default.
	ShapeFree      Shape = "free"
	ShapeLine      Shape = "line"
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeEllipse   Shape = "ellipse"
	ShapeArrow     Shape = "arrow"
)

// LineStyle selects how a stroke outline is rendered.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// DrawEvent is one atomic stroke segment or shape placement. It is the unit
// of board history: appending events in order reproduces the board.
//
// Geometry and style fields are taken from the client as-is; attribution
// fields are stamped by the hub and never trusted from the wire.
type DrawEvent struct {
	Kind  StrokeKind
	Shape Shape

	FromX float64
	FromY float64
	ToX   float64
	ToY   float64

	Color       string
	StrokeWidth float64
	EraserWidth float64
	LineStyle   LineStyle

	ConnectionID string
	AuthorName   string
	Timestamp    time.Time
}

// normalize fills in defaults for optional style fields.
func (e *DrawEvent) normalize() {
	if e.Shape == "" {
		e.Shape = ShapeFree
	}
	if e.LineStyle == "" {
		e.LineStyle = LineSolid
	}
}

// ChatMessage is an ephemeral room-scoped text message. Chat is never stored
// and never replayed to late joiners.
type ChatMessage struct {
	Name   string
	Text   string
	SentAt time.Time
}

// CursorPosition is a live pointer location reported by a client.
type CursorPosition struct {
	X float64
	Y float64
}

package core

import "testing"

func stroke(x float64) DrawEvent {
	return DrawEvent{Kind: StrokeDraw, Shape: ShapeFree, FromX: x, ToX: x + 1}
}

func TestRoomAppendKeepsSendOrder(t *testing.T) {
	room := NewRoom("board", 0)

	for i := 0; i < 10; i++ {
		room.Append(stroke(float64(i)))
	}

	history := room.History()
	if len(history) != 10 {
		t.Fatalf("expected 10 events, got %d", len(history))
	}
	for i, ev := range history {
		if ev.FromX != float64(i) {
			t.Fatalf("event %d out of order: %+v", i, ev)
		}
	}
}

func TestRoomAppendEvictsOldestAtCap(t *testing.T) {
	room := NewRoom("board", 5)

	for i := 0; i < 8; i++ {
		room.Append(stroke(float64(i)))
	}

	history := room.History()
	if len(history) != 5 {
		t.Fatalf("expected log capped at 5, got %d", len(history))
	}
	if history[0].FromX != 3 || history[4].FromX != 7 {
		t.Fatalf("expected events 3..7, got first=%v last=%v", history[0].FromX, history[4].FromX)
	}
	// Undo frames for evicted events stay on the stack.
	if room.UndoDepth() != 8 {
		t.Fatalf("expected 8 undo frames, got %d", room.UndoDepth())
	}
}

func TestRoomUndoPopsLastEvent(t *testing.T) {
	room := NewRoom("board", 0)
	room.Append(stroke(0))
	room.Append(stroke(1))
	room.Append(stroke(2))

	history := room.Undo()
	if len(history) != 2 {
		t.Fatalf("expected 2 events after undo, got %d", len(history))
	}
	if history[1].FromX != 1 {
		t.Fatalf("expected last event 1, got %v", history[1].FromX)
	}
}

func TestRoomClearSnapshotRoundTrip(t *testing.T) {
	room := NewRoom("board", 0)
	room.Append(stroke(0))
	room.Append(stroke(1))

	prior := room.Clear()
	if len(prior) != 2 {
		t.Fatalf("expected clear to return 2 events, got %d", len(prior))
	}
	if room.EventCount() != 0 {
		t.Fatalf("expected empty log after clear, got %d", room.EventCount())
	}

	history := room.Undo()
	if len(history) != 2 || history[0].FromX != 0 || history[1].FromX != 1 {
		t.Fatalf("expected snapshot restored verbatim, got %+v", history)
	}
}

func TestRoomUndoEmptyStackIsNoop(t *testing.T) {
	room := NewRoom("board", 0)

	first := room.Undo()
	second := room.Undo()
	if len(first) != 0 || len(second) != 0 {
		t.Fatalf("expected empty histories, got %d and %d", len(first), len(second))
	}

	room.Append(stroke(0))
	room.Undo()
	if got := room.Undo(); len(got) != 0 {
		t.Fatalf("expected empty log after exhausting stack, got %d", len(got))
	}
}

func TestRoomHistoryReturnsCopy(t *testing.T) {
	room := NewRoom("board", 0)
	room.Append(stroke(0))

	history := room.History()
	history[0].FromX = 99

	if room.History()[0].FromX != 0 {
		t.Fatal("history must not alias the internal log")
	}
}

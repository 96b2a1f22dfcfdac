package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/inkrelay/inkrelay-server/internal/config"
	"github.com/inkrelay/inkrelay-server/internal/core"
	"github.com/inkrelay/inkrelay-server/internal/proto"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := core.NewHub(nil, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	nop := zerolog.Nop()
	server := NewServer(hub, nil, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &nop)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

// envelope mirrors proto.Outbound with raw data for test-side decoding.
type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()

	for {
		var env envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("read while waiting for %q: %v", wantType, err)
		}
		if env.Type == wantType {
			return env.Data
		}
	}
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	var payload json.RawMessage
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal %s: %v", msgType, err)
		}
		payload = raw
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", msgType, err)
	}
}

// waitForEventTotal polls the stats endpoint until the aggregate event
// count reaches n, proving earlier draws were fully processed.
func waitForEventTotal(t *testing.T, ts *httptest.Server, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := ts.Client().Get(ts.URL + "/api/stats")
		if err != nil {
			t.Fatalf("stats request failed: %v", err)
		}
		var body StatsResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("decode stats body: %v", err)
		}
		if body.TotalEvents >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("event total never reached %d", n)
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body.Status != "OK" {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("stats request failed: %v", err)
	}
	defer resp.Body.Close()

	var body StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode stats body: %v", err)
	}
	if body.TotalParticipants != 0 || body.TotalEvents != 0 {
		t.Fatalf("expected zero counters, got %+v", body)
	}
	if body.ArchivedClears != nil {
		t.Fatal("archive counter must be absent when archiving is disabled")
	}
}

func TestRoomClearsWithoutArchive(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/public/clears")
	if err != nil {
		t.Fatalf("clears request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 with archive disabled, got %d", resp.StatusCode)
	}
}

func TestWebSocketDrawClearUndoScenario(t *testing.T) {
	ts := startTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close(websocket.StatusNormalClosure, "done")

	send(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{Username: "alice"})
	historyRaw := readUntil(t, ctx, connA, proto.OutboundTypeHistory)
	var history []proto.DrawEventData
	if err := json.Unmarshal(historyRaw, &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty board, got %d events", len(history))
	}

	send(t, ctx, connA, proto.InboundTypeDraw, proto.StrokeData{
		FromX: 0, FromY: 0, ToX: 10, ToY: 10, Color: "#000", Size: 3,
	})
	waitForEventTotal(t, ts, 1)

	// The second client joins after the draw and replays it from history.
	connB, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close(websocket.StatusNormalClosure, "done")

	send(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{Username: "bob"})

	historyRaw = readUntil(t, ctx, connB, proto.OutboundTypeHistory)
	if err := json.Unmarshal(historyRaw, &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one event in history, got %d", len(history))
	}
	if history[0].ToX != 10 || history[0].AuthorName != "alice" || history[0].Kind != "draw" {
		t.Fatalf("unexpected replayed event: %+v", history[0])
	}
	if history[0].ConnectionID == "" {
		t.Fatal("server must stamp connection id")
	}

	// A draw from B reaches A as remote_draw.
	send(t, ctx, connB, proto.InboundTypeDraw, proto.StrokeData{
		FromX: 5, FromY: 5, ToX: 6, ToY: 6, Color: "#ef4444", Size: 2,
	})
	var remote proto.DrawEventData
	if err := json.Unmarshal(readUntil(t, ctx, connA, proto.OutboundTypeRemoteDraw), &remote); err != nil {
		t.Fatalf("unmarshal remote draw: %v", err)
	}
	if remote.AuthorName != "bob" || remote.ToX != 6 {
		t.Fatalf("unexpected remote draw: %+v", remote)
	}

	// Clear notifies both ends, then undo restores the board for both.
	send(t, ctx, connB, proto.InboundTypeClearBoard, nil)
	var cleared proto.BoardClearedData
	if err := json.Unmarshal(readUntil(t, ctx, connA, proto.OutboundTypeBoardCleared), &cleared); err != nil {
		t.Fatalf("unmarshal board cleared: %v", err)
	}
	if cleared.ClearedBy == "" {
		t.Fatal("board_cleared must carry the clearing connection id")
	}
	readUntil(t, ctx, connB, proto.OutboundTypeBoardCleared)

	send(t, ctx, connA, proto.InboundTypeUndo, nil)
	for _, conn := range []*websocket.Conn{connA, connB} {
		if err := json.Unmarshal(readUntil(t, ctx, conn, proto.OutboundTypeHistory), &history); err != nil {
			t.Fatalf("unmarshal restored history: %v", err)
		}
		if len(history) == 0 {
			t.Fatal("undo after clear must restore the snapshot")
		}
	}
}

func TestWebSocketUnknownTypeGetsError(t *testing.T) {
	ts := startTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	send(t, ctx, conn, "resize_canvas", nil)

	var env envelope
	if err := wsjson.Read(ctx, conn, &env); err != nil {
		t.Fatalf("read error response: %v", err)
	}
	if env.Type != proto.OutboundTypeError || env.Error == nil || env.Error.Code != core.ErrCodeInvalidMessage {
		t.Fatalf("expected invalid_message error, got %+v", env)
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/inkrelay/inkrelay-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	user := flag.String("user", "tester", "username to join with")
	passKey := flag.String("passkey", "", "private room passkey (empty joins the public board)")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", msgType, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", msgType, err)
		}
		return nil
	}

	join := proto.JoinData{Username: *user}
	if *passKey != "" {
		join.RoomType = "private"
		join.PassKey = *passKey
	}
	if err := send(proto.InboundTypeJoin, join); err != nil {
		return err
	}

	if err := send(proto.InboundTypeDraw, proto.StrokeData{
		FromX: 0, FromY: 0, ToX: 10, ToY: 10,
		Color: "#000000", Size: 3,
	}); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("received: type=%s", outbound.Type)
		if outbound.Error != nil {
			fmt.Printf(" error=%s(%s)", outbound.Error.Code, outbound.Error.Msg)
		}
		if outbound.Data != nil {
			raw, _ := json.Marshal(outbound.Data)
			fmt.Printf(" data=%s", raw)
		}
		fmt.Println()
	}
}

package http

import (
	"encoding/json"
	"time"

	"github.com/inkrelay/inkrelay-server/internal/core"
	"github.com/inkrelay/inkrelay-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &join); err != nil {
				return nil, nil, err
			}
		}
		return &core.Command{
			Kind: core.CommandJoin,
			Join: core.JoinRequest{
				Username: join.Username,
				RoomType: join.RoomType,
				PassKey:  join.PassKey,
			},
		}, nil, nil

	case proto.InboundTypeDraw, proto.InboundTypeErase:
		var stroke proto.StrokeData
		if err := json.Unmarshal(inbound.Data, &stroke); err != nil {
			return nil, nil, err
		}
		kind := core.CommandDraw
		if inbound.Type == proto.InboundTypeErase {
			kind = core.CommandErase
		}
		// Geometry and style pass through as-is; bounds checking is the
		// renderer's concern.
		return &core.Command{
			Kind: kind,
			Stroke: &core.DrawEvent{
				FromX:       stroke.FromX,
				FromY:       stroke.FromY,
				ToX:         stroke.ToX,
				ToY:         stroke.ToY,
				Color:       stroke.Color,
				StrokeWidth: stroke.Size,
				EraserWidth: stroke.EraserSize,
				Shape:       core.Shape(stroke.Shape),
				LineStyle:   core.LineStyle(stroke.LineStyle),
			},
		}, nil, nil

	case proto.InboundTypeClearBoard:
		return &core.Command{Kind: core.CommandClearBoard}, nil, nil

	case proto.InboundTypeUndo:
		return &core.Command{Kind: core.CommandUndo}, nil, nil

	case proto.InboundTypeChat:
		var chat proto.ChatData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, nil, err
		}
		if chat.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandChat,
			Chat: core.ChatMessage{Name: chat.Name, Text: chat.Text},
		}, nil, nil

	case proto.InboundTypeCursorMove:
		var cursor proto.CursorData
		if err := json.Unmarshal(inbound.Data, &cursor); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:   core.CommandCursorMove,
			Cursor: core.CursorPosition{X: cursor.X, Y: cursor.Y},
		}, nil, nil

	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventHistory:
		history := make([]proto.DrawEventData, 0, len(event.History))
		for i := range event.History {
			history = append(history, drawEventData(&event.History[i]))
		}
		return proto.Outbound{Type: proto.OutboundTypeHistory, Data: history}

	case core.EventUserCount:
		return proto.Outbound{Type: proto.OutboundTypeUserCount, Data: event.Count}

	case core.EventRemoteDraw:
		return proto.Outbound{Type: proto.OutboundTypeRemoteDraw, Data: drawEventData(event.Stroke)}

	case core.EventRemoteErase:
		return proto.Outbound{Type: proto.OutboundTypeRemoteErase, Data: drawEventData(event.Stroke)}

	case core.EventBoardCleared:
		return proto.Outbound{
			Type: proto.OutboundTypeBoardCleared,
			Data: proto.BoardClearedData{ClearedBy: event.ClearedBy},
		}

	case core.EventChatMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeChat,
			Data: proto.ChatEventData{
				Name:      event.Chat.Name,
				Text:      event.Chat.Text,
				Timestamp: event.Chat.SentAt.UnixMilli(),
			},
		}

	case core.EventPeerLeft:
		return proto.Outbound{
			Type: proto.OutboundTypePeerLeft,
			Data: proto.PeerLeftData{ConnectionID: event.Peer},
		}

	case core.EventRemoteCursor:
		return proto.Outbound{
			Type: proto.OutboundTypeRemoteCursor,
			Data: proto.CursorEventData{
				X:            event.Cursor.X,
				Y:            event.Cursor.Y,
				ConnectionID: event.Cursor.ConnectionID,
				Name:         event.Cursor.Name,
			},
		}

	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}

	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}

func drawEventData(ev *core.DrawEvent) proto.DrawEventData {
	if ev == nil {
		return proto.DrawEventData{}
	}
	var ts int64
	if !ev.Timestamp.IsZero() {
		ts = ev.Timestamp.UnixMilli()
	} else {
		ts = time.Now().UnixMilli()
	}
	return proto.DrawEventData{
		Kind:         string(ev.Kind),
		Shape:        string(ev.Shape),
		FromX:        ev.FromX,
		FromY:        ev.FromY,
		ToX:          ev.ToX,
		ToY:          ev.ToY,
		Color:        ev.Color,
		Size:         ev.StrokeWidth,
		EraserSize:   ev.EraserWidth,
		LineStyle:    string(ev.LineStyle),
		ConnectionID: ev.ConnectionID,
		AuthorName:   ev.AuthorName,
		Timestamp:    ts,
	}
}

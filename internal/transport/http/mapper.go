package http

import (
	"encoding/json"

	"github.com/Harrybandukda/gochat-server/internal/core"
	"github.com/Harrybandukda/gochat-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a hub command. Unknown event names
// return a nil command and are dropped; the realtime path signals no errors
// back to the client.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Event {
	case proto.InboundJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Username: join.Username,
			Room:     join.Room,
		}, nil
	case proto.InboundChatMessage:
		var msg proto.ChatMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandSendMessage,
			Username: msg.Username,
			Room:     msg.Room,
			Message:  msg.Message,
		}, nil
	case proto.InboundTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandTyping,
			Username: typing.Username,
			Room:     typing.Room,
		}, nil
	case proto.InboundStopTyping:
		var stop proto.StopTypingData
		if err := json.Unmarshal(inbound.Data, &stop); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind: core.CommandStopTyping,
			Room: stop.Room,
		}, nil
	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserJoined:
		return proto.Outbound{
			Event: proto.OutboundUserJoined,
			Data: proto.UserJoinedData{
				Username: event.Username,
				Message:  event.Message,
			},
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Event: proto.OutboundChatMessage,
			Data: proto.ChatMessageEvent{
				Username:  event.Username,
				Message:   event.Message,
				Timestamp: event.SentAt,
			},
		}
	case core.EventUserTyping:
		return proto.Outbound{
			Event: proto.OutboundUserTyping,
			Data: proto.UserTypingData{
				Username: event.Username,
			},
		}
	case core.EventUserStopTyping:
		return proto.Outbound{
			Event: proto.OutboundUserStopTyping,
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Event: proto.OutboundUserLeft,
			Data: proto.UserLeftData{
				Username: event.Username,
				Message:  event.Message,
			},
		}
	default:
		return proto.Outbound{Event: "event"}
	}
}

package log

import (
	"fmt"
	"time"

	"github.com/aerolens/camsync/pkg/setting"
	"github.com/aerolens/camsync/pkg/wire"
)

// TransitionEventFor builds the event recording a setting transition.
// Requests and rejections are local, everything else comes from the camera.
func TransitionEventFor(sessionID string, tr setting.Transition) Event {
	dir := DirectionIn
	if tr.Kind == setting.KindRequest || tr.Kind == setting.KindReject {
		dir = DirectionOut
	}
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: dir,
		Layer:     LayerSetting,
		Category:  CategoryTransition,
		Transition: &TransitionEvent{
			Setting: tr.Setting,
			Kind:    tr.Kind.String(),
			From:    fmt.Sprintf("%+v", tr.From),
			To:      fmt.Sprintf("%+v", tr.To),
		},
	}
}

// RequestEvent builds the event recording a request.
func RequestEvent(sessionID string, dir Direction, req *wire.Request) Event {
	msg := &MessageEvent{
		Type:       MessageTypeRequest,
		MessageID:  req.MessageID,
		Operation:  &req.Operation,
		Feature:    &req.Feature,
		Attributes: req.Params.IDs(),
	}
	if req.Operation == wire.OpInvoke {
		msg.Command = &req.Command
	}
	return messageEvent(sessionID, dir, msg)
}

// ResponseEvent builds the event recording a response.
func ResponseEvent(sessionID string, dir Direction, resp *wire.Response) Event {
	return messageEvent(sessionID, dir, &MessageEvent{
		Type:      MessageTypeResponse,
		MessageID: resp.MessageID,
		Status:    &resp.Status,
		Reason:    resp.Message,
	})
}

// NotificationEvent builds the event recording a notification.
func NotificationEvent(sessionID string, dir Direction, notif *wire.Notification) Event {
	return messageEvent(sessionID, dir, &MessageEvent{
		Type:       MessageTypeNotification,
		Feature:    &notif.Feature,
		Attributes: notif.Changes.IDs(),
	})
}

func messageEvent(sessionID string, dir Direction, msg *MessageEvent) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: dir,
		Layer:     LayerWire,
		Category:  CategoryMessage,
		Message:   msg,
	}
}

// StateEvent builds the event recording a lifecycle change.
func StateEvent(sessionID string, entity StateEntity, oldState, newState, reason string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Layer:     LayerSession,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	}
}

// ErrorEvent builds the event recording an error.
func ErrorEvent(sessionID string, layer Layer, err error, context string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Layer:     layer,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	}
}

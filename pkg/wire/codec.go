package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for camsync messages.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for camsync messages.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient decoding so that newer cameras can add keys.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// EncodeRequest encodes a request message to CBOR bytes.
func EncodeRequest(req *Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return Marshal(req)
}

// DecodeRequest decodes CBOR bytes into a request message.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// EncodeResponse encodes a response message to CBOR bytes.
func EncodeResponse(resp *Response) ([]byte, error) {
	if resp.MessageID == NotificationMessageID {
		return nil, fmt.Errorf("%w: response without messageId", ErrInvalidMessage)
	}
	return Marshal(resp)
}

// DecodeResponse decodes CBOR bytes into a response message.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// notificationWire is the on-wire notification, with the reserved
// messageId made explicit.
type notificationWire struct {
	MessageID uint32     `cbor:"1,keyasint"`
	Feature   FeatureID  `cbor:"3,keyasint"`
	Changes   Attributes `cbor:"5,keyasint"`
}

// EncodeNotification encodes a notification message to CBOR bytes.
// Notifications have messageId=0 which is handled automatically.
func EncodeNotification(notif *Notification) ([]byte, error) {
	if notif.Feature == 0 {
		return nil, fmt.Errorf("%w: notification without feature", ErrInvalidMessage)
	}
	return Marshal(notificationWire{
		MessageID: NotificationMessageID,
		Feature:   notif.Feature,
		Changes:   notif.Changes,
	})
}

// DecodeNotification decodes CBOR bytes into a notification message.
func DecodeNotification(data []byte) (*Notification, error) {
	var msg notificationWire
	if err := Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	if msg.MessageID != NotificationMessageID {
		return nil, fmt.Errorf("%w: not a notification: messageId=%d", ErrInvalidMessage, msg.MessageID)
	}
	return &Notification{Feature: msg.Feature, Changes: msg.Changes}, nil
}

// MessageType represents the type of a decoded message.
type MessageType int

const (
	MessageTypeUnknown MessageType = iota
	MessageTypeRequest
	MessageTypeResponse
	MessageTypeNotification
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MessageTypeRequest:
		return "Request"
	case MessageTypeResponse:
		return "Response"
	case MessageTypeNotification:
		return "Notification"
	default:
		return "Unknown"
	}
}

// PeekMessageType examines CBOR data to determine the message type
// without fully decoding it.
//
//   - Notification: messageId (key 1) = 0
//   - Request: feature (key 3) present
//   - Response: anything else
func PeekMessageType(data []byte) (MessageType, error) {
	var peek struct {
		MessageID uint32    `cbor:"1,keyasint"`
		Feature   FeatureID `cbor:"3,keyasint,omitempty"`
	}
	if err := Unmarshal(data, &peek); err != nil {
		return MessageTypeUnknown, fmt.Errorf("failed to peek message: %w", err)
	}
	switch {
	case peek.MessageID == NotificationMessageID:
		return MessageTypeNotification, nil
	case peek.Feature != 0:
		return MessageTypeRequest, nil
	default:
		return MessageTypeResponse, nil
	}
}

// Equal compares two values by their CBOR encoding.
func Equal(a, b any) bool {
	dataA, errA := Marshal(a)
	dataB, errB := Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(dataA, dataB)
}

package wire

import (
	"errors"
	"fmt"
)

// CBOR map keys for message encoding.
const (
	KeyMessageID  = 1
	KeyOpOrStatus = 2 // Operation (request) or Status (response)
	KeyFeatureID  = 3
	KeyCommandID  = 4
	KeyAttributes = 5
	KeyMessage    = 6
)

// MessageID 0 is reserved to indicate a notification message.
const NotificationMessageID uint32 = 0

// Validation errors.
var (
	// ErrInvalidMessage indicates a message that violates the wire format.
	ErrInvalidMessage = errors.New("invalid message")
)

// Request represents a request from client to camera.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32
//	  2: operation,    // uint8: 1=Read, 2=Write, 3=Invoke
//	  3: featureId,    // uint8
//	  4: commandId,    // uint8, Invoke only
//	  5: attributes    // written attributes or command parameters
//	}
type Request struct {
	MessageID uint32     `cbor:"1,keyasint"`
	Operation Operation  `cbor:"2,keyasint"`
	Feature   FeatureID  `cbor:"3,keyasint"`
	Command   CommandID  `cbor:"4,keyasint,omitempty"`
	Params    Attributes `cbor:"5,keyasint,omitempty"`
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MessageID == NotificationMessageID {
		return fmt.Errorf("%w: messageId 0 is reserved for notifications", ErrInvalidMessage)
	}
	if !r.Operation.IsValid() {
		return fmt.Errorf("%w: operation %d", ErrInvalidMessage, r.Operation)
	}
	if r.Feature == 0 {
		return fmt.Errorf("%w: missing feature", ErrInvalidMessage)
	}
	switch r.Operation {
	case OpWrite:
		if len(r.Params) == 0 {
			return fmt.Errorf("%w: write without attributes", ErrInvalidMessage)
		}
	case OpInvoke:
		if r.Command == 0 {
			return fmt.Errorf("%w: invoke without command", ErrInvalidMessage)
		}
	}
	return nil
}

// Response acknowledges a request.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32: matches request
//	  2: status,       // uint8: 0=success, or error code
//	  6: message       // optional human-readable reason
//	}
type Response struct {
	MessageID uint32 `cbor:"1,keyasint"`
	Status    Status `cbor:"2,keyasint"`
	Message   string `cbor:"6,keyasint,omitempty"`
}

// IsSuccess returns true if the response indicates success.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// Notification carries attribute values pushed by the camera.
//
// CBOR encoding:
//
//	{
//	  1: 0,            // messageId 0 = notification
//	  3: featureId,    // uint8
//	  5: changes       // changed attributes
//	}
type Notification struct {
	Feature FeatureID  `cbor:"3,keyasint"`
	Changes Attributes `cbor:"5,keyasint"`
}

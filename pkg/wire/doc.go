// Package wire defines the CBOR wire format spoken between a camsync
// client and a camera peripheral.
//
// All messages use CBOR (RFC 8949) maps with integer keys. Attribute
// values travel as raw CBOR so that each side decodes them into its own
// types.
//
// # Message Types
//
// There are three message types:
//   - Request: client to camera (Read, Write, Invoke)
//   - Response: camera to client, acknowledging a request
//   - Notification: camera to client, carrying attribute changes
//
// A Response only says whether the camera accepted a request. The new
// values themselves always arrive through a Notification, which is how
// the client learns that an optimistic change was confirmed or overridden.
//
// # Features and Attributes
//
// Each setting group of the camera is a feature. Attributes are numbered
// per feature; the same number means different things in different
// features. Notifications for tuple-valued settings carry the full tuple.
package wire

// Package transport moves encoded camsync messages between a client and a
// camera.
//
// Every message travels as one frame: a 4-byte big-endian length followed
// by the CBOR payload. A Link wraps any net.Conn (TCP, or net.Pipe for
// in-process simulation) and optionally records each frame into a
// log.Logger.
//
//	┌────────────────────────────────┐
//	│      CBOR Messages (wire)      │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│     TCP or in-memory pipe      │
//	└────────────────────────────────┘
package transport

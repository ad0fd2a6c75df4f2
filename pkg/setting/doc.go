// Package setting implements optimistic synchronization of device settings.
//
// Every mutable camera setting goes through a Controller:
//
//	request (local)                 update (device push)
//	  validate, skip if unchanged     cancel pending rollback
//	  snapshot, apply locally         apply if changed or cancelled
//	  send to backend                 notify (batched)
//	  on accept: post rollback,
//	             notify (immediate)
//	  on reject: undo
//
// A setting is "updating" while a rollback snapshot is pending. There is no
// confirmation timeout: a request the device never answers stays updating
// until the next authoritative update, or until the owner discards it.
//
// Enum, Bool and Ranged wrap a Controller for the common single-value
// cases. Multi-field settings keep their fields in one comparable struct so
// that a request is validated and rolled back as one unit.
package setting

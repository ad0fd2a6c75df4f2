// Package log captures what happens on a camsync session as a stream of
// machine-readable events.
//
// It is separate from operational logging (slog): capture records every
// setting transition and every wire message, so that a run can be replayed
// and inspected afterwards with camlog.
//
// # Basic Usage
//
// Capture is configured through interaction.Config.Capture, next to the
// operational slog logger in interaction.Config.Logger:
//
//	file, err := log.NewFileLogger("session.clog")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//
//	cfg := interaction.Config{
//		Logger:  logger,
//		Capture: log.Tee(log.NewSlogAdapter(logger), file),
//	}
//
// # Event Types
//
//   - Transport: raw frame bytes (FrameEvent)
//   - Wire: decoded messages (MessageEvent)
//   - Setting: optimistic transitions (TransitionEvent)
//   - Session: link and camera lifecycle (StateChangeEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Capture files are a concatenation of CBOR-encoded events with integer
// keys, using the .clog extension.
package log

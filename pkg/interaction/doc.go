// Package interaction connects a camera.Camera to a camera over the wire
// protocol.
//
// A Client implements camera.Backend: each setting request is encoded as
// a Write or Invoke and queued without blocking. A Dispatcher decodes
// notifications into setting updates. A Session owns both, runs them
// over a message link and confines the camera to a single goroutine.
//
//	client, cam := transport.Pipe(transport.Config{}, transport.Config{})
//	go device.Serve(ctx, cam)
//
//	session := interaction.NewSession(client, interaction.DefaultConfig())
//	session.OnChange(func(c *camera.Camera) { render(c) })
//	go session.Run(ctx)
//
//	err := session.Do(ctx, func(c *camera.Camera) {
//	    c.Exposure().SetISO(camera.ISO400)
//	})
//
// # Batching
//
// The session applies every notification already received before it
// notifies observers, so a burst of device updates produces one change
// callback. The camera becomes published when the first camera
// notification arrives and is unpublished when the session ends,
// discarding requests still awaiting confirmation.
//
// # Responses
//
// Responses only acknowledge requests. Accepted values, and the
// authoritative values after a refusal, arrive as notifications.
package interaction

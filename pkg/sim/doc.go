// Package sim provides a simulated camera for development and tests.
//
// A Device is built from a Profile, a YAML description of what the camera
// supports, its initial values and how it behaves on the link:
//
//	profile, err := sim.LoadProfile("standard")
//	if err != nil {
//		return err
//	}
//	device, err := sim.NewDevice(profile, sim.Config{Logger: logger})
//	if err != nil {
//		return err
//	}
//	return device.Serve(ctx, link)
//
// On a new link the device pushes the full state of every feature, the
// camera feature last. Requests are then validated against the supported
// values: accepted ones are applied after the profile latency and notified,
// refused ones are answered with an error status and followed by a
// notification of the current values. A profile may also drop every n-th
// request to exercise clients that never get an answer.
package sim

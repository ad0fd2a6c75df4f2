// Package camera implements the settings of a drone camera peripheral on
// top of the optimistic update engine in package setting.
//
// # Settings
//
// Each setting groups fields that change together (e.g. exposure mode,
// shutter speed, ISO, max ISO and metering) and validates requests against
// the capabilities last pushed by the device:
//
//   - Exposure, WhiteBalance, ImageStyle, Alignment
//   - Photo and Recording, validated against a capability.Matrix
//   - ExposureLock and WhiteBalanceLock
//   - Zoom, whose level and velocity commands are fire-and-forget
//
// Invalid requests are silently ignored. Accepted requests are applied
// locally at once and reported as updating until the device answers.
//
// # Device updates
//
// The link layer calls the Update* methods with values reported by the
// device, then Camera.NotifyUpdated to publish the batch:
//
//	cam.Exposure().UpdateSupportedModes(camera.ExposureAutomatic, camera.ExposureManual)
//	cam.Exposure().UpdateMode(camera.ExposureManual)
//	cam.NotifyUpdated()
//
// All types in this package must be used from a single goroutine.
package camera

// Package lamp drives the binary output device (flashlight LED, relay,
// bare GPIO pin) that the transmitter and the manual toggle share.
package lamp

// Lamp is a binary output device. Set is synchronous and idempotent:
// setting an already-on lamp on again is harmless.
type Lamp interface {
	Set(on bool) error
}

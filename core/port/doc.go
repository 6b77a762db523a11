// Package port finds a free TCP port at or above a preferred one.
//
//	p, err := port.Resolve(ctx, 8000)
//	if errors.Is(err, port.ErrPortExhausted) {
//		// nothing free in [8000, 8100)
//	}
//
// A port is considered free when a listener can be bound to it on the probe
// host. The listener is closed immediately, so another process may claim the
// port before the caller binds it.
package port

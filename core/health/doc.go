// Package health provides HTTP handlers for dev server health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependency checks pass
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/__devserver/live", health.Liveness)
//	r.Get("/__devserver/ready", health.Readiness(log, health.DirCheck("./dist")))
//	r.Get("/__devserver/ping", health.NoContent)
//
// Dependency checks must follow func(context.Context) error signature.
package health

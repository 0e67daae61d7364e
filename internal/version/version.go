// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - HTTP API with websocket elevation stream, Prometheus metrics, rate limiting
// 0.3.0 - Twilight phase tracker and Bubble Tea dashboard, day curve view
// 0.2.0 - suncalc and go-sunrise reference backends, side-by-side comparison, day ranges
// 0.1.0 - Initial release: single-pass and two-pass solar event engines, headless table and JSON output

// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Orbit camera controls, Prometheus metrics, snapshot and catalog commands
// 0.2.0 - Control panel with per-planet speed sliders, pause, reset and theme toggle
// 0.1.0 - Initial release: 3D half-block renderer, animated orbits, hover labels

// Package component defines lifecycle-managed extensions and the registry
// an application keeps them in.
//
// The Registry doubles as the application's extension registry: extensions
// register under a name, are discoverable through Get, and are started and
// stopped by the host.
//
// # Interfaces
//
//   - Component: Name/Start/Stop/Health
//   - Describable: startup summary description
package component

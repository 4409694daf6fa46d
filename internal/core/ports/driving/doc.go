// Package driving defines the driving ports (primary adapter interfaces)
// for the hexagonal architecture. The CLI and TUI adapters depend only on
// these interfaces, implemented by the core services.
package driving

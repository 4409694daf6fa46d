// Package driven defines the driven ports (secondary adapters interfaces)
// for the hexagonal architecture. These are implemented by infrastructure
// adapters: renderers, evaluators, storage, and configuration.
package driven

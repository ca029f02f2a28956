// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Probe ports are implemented by outbound adapters and consumed by the health
// aggregator. Capability identifiers name the registry bindings that connect
// the two at startup.
package ports

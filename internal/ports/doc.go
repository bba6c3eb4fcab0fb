// Package ports defines the interfaces (ports) that connect the relay
// application layer to transport adapters.
//
// The relay depends only on these interfaces. Adapters (internal/adapters)
// implement them over concrete transports, currently QUIC. Tests implement
// them over in-memory pipes, so truncation, cap-exceeded, and shutdown
// behavior can be exercised deterministically without a network stack.
package ports

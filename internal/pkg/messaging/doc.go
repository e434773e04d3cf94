// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Business code stays independent from the underlying system (NATS, Kafka)
// as long as it relies on the interfaces in this package.
package messaging

// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Use-case code depends on the Messaging interface; the concrete driver
// (NATS, NSQ, Kafka, Google Pub/Sub or the in-process memory broker) is chosen
// from configuration through NewFromDriver.
package messaging

// Package pubsub is a small typed fan-out used to push background events
// (log lines, store reloads) into the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType tags what happened to the payload.
type EventType string

const (
	// CreatedEvent carries a new item, such as a log line.
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	// ReloadedEvent means persisted state changed underneath the reader.
	ReloadedEvent EventType = "reloaded"
)

// Event wraps a payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

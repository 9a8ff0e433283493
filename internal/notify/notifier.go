// Package notify is a small in-process notification bus. Publishing
// never blocks: when the buffer is full or notifications are disabled,
// the event is dropped.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Notification is a transient user-facing event.
type Notification struct {
	Level   string
	Message string
	At      codec.Time
}

// Notifier fans notifications out to a single consumer channel.
type Notifier struct {
	ch      chan Notification
	enabled func() bool
	log     zerolog.Logger
}

// New builds a notifier with the given buffer size. enabled is checked
// per publish; nil means always enabled.
func New(buffer int, enabled func() bool, log zerolog.Logger) *Notifier {
	if buffer <= 0 {
		buffer = 16
	}
	return &Notifier{
		ch:      make(chan Notification, buffer),
		enabled: enabled,
		log:     log.With().Str("component", "notify").Logger(),
	}
}

// C is the consumer channel, drained by the UI.
func (n *Notifier) C() <-chan Notification {
	return n.ch
}

// Publish emits a notification without blocking. Dropped events are
// logged at debug level only.
func (n *Notifier) Publish(level, message string) {
	if n.enabled != nil && !n.enabled() {
		return
	}

	event := Notification{Level: level, Message: message, At: codec.Now()}
	select {
	case n.ch <- event:
	default:
		n.log.Debug().Str("level", level).Str("message", message).Msg("notification dropped")
	}
}

// Success publishes a success notification.
func (n *Notifier) Success(message string) { n.Publish(LevelSuccess, message) }

// Error publishes an error notification.
func (n *Notifier) Error(message string) { n.Publish(LevelError, message) }

// Info publishes an info notification.
func (n *Notifier) Info(message string) { n.Publish(LevelInfo, message) }

// Warning publishes a warning notification.
func (n *Notifier) Warning(message string) { n.Publish(LevelWarning, message) }

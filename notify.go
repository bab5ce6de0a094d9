package re2compat

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// NotificationLevel controls what happens when a pattern has to fall back
// to the backtracking engine.
type NotificationLevel int32

const (
	// Quiet falls back silently.
	Quiet NotificationLevel = iota
	// Warn falls back and logs a warning.
	Warn
	// Raise refuses to fall back and fails the compile.
	Raise
)

func (l NotificationLevel) String() string {
	switch l {
	case Warn:
		return "warn"
	case Raise:
		return "raise"
	}
	return "quiet"
}

// ParseNotificationLevel parses "quiet", "warn" or "raise".
func ParseNotificationLevel(s string) (NotificationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quiet":
		return Quiet, nil
	case "warn", "warning":
		return Warn, nil
	case "raise", "error":
		return Raise, nil
	}
	return Quiet, fmt.Errorf("re2compat: unknown notification level %q", s)
}

func (l *NotificationLevel) UnmarshalText(text []byte) error {
	v, err := ParseNotificationLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Notification holds a NotificationLevel that may be read and changed
// concurrently. Compilers read it at decision time, so a change applies to
// the next compile.
type Notification struct {
	level atomic.Int32
}

// NewNotification returns a Notification set to level.
func NewNotification(level NotificationLevel) *Notification {
	n := &Notification{}
	n.Set(level)
	return n
}

func (n *Notification) Set(level NotificationLevel) {
	n.level.Store(int32(level))
}

func (n *Notification) Level() NotificationLevel {
	return NotificationLevel(n.level.Load())
}

// process wide setting used by compilers without their own
var defaultNotification Notification

// SetFallbackNotification sets the process wide notification level.
func SetFallbackNotification(level NotificationLevel) {
	defaultNotification.Set(level)
}

// FallbackNotification returns the process wide notification level.
func FallbackNotification() NotificationLevel {
	return defaultNotification.Level()
}

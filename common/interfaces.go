// Package common provides shared constants, types, and utilities
// used across the Network Settings application.
package common

// Dispatcher schedules fn on the thread that owns the UI. The GUI passes a
// glib.IdleAdd wrapper; tests run fn inline.
type Dispatcher func(fn func())

// Inline is a Dispatcher that runs fn immediately on the calling goroutine.
func Inline(fn func()) {
	fn()
}

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
	// NotifyWithIcon sends a notification with a custom icon.
	NotifyWithIcon(title, message, icon string) error
}

// SecretStore remembers secrets such as tethering passphrases.
type SecretStore interface {
	Store(key, secret string) error
	Get(key string) (string, error)
	Delete(key string) error
}

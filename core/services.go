package core

import "time"

type (
	// Logger is any structured logging backend.
	// args may carry errors, maps of extra data or the user the log entry is about.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Store is a synchronous key-value persistence collaborator.
	// Writes are last-write-wins; Load returns ErrNotFound for unknown keys.
	Store interface {
		Load(key string) ([]byte, error)
		Save(key string, value []byte) error
	}

	// Notifier delivers user-visible feedback about the outcome of an operation.
	Notifier interface {
		Notify(n Notification)
	}
)

// NotificationKind classifies a Notification.
type NotificationKind string

const (
	KindSuccess   NotificationKind = "success"
	KindError     NotificationKind = "error"
	KindMilestone NotificationKind = "milestone"
)

type Notification struct {
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	CreatedAt time.Time        `json:"created_at"`
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// StoreKey builds a Store key from a namespace and an id, e.g. "savings:42".
func StoreKey(namespace, id string) string {
	return namespace + ":" + id
}

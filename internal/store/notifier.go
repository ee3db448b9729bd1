package store

import (
	"log/slog"

	"invoicehero/internal/log"
)

// LogNotifier is the default Notifier: toasts land in the log.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) logger() *log.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return log.New(log.ComponentStore, slog.LevelInfo)
}

func (n LogNotifier) Success(msg string) {
	n.logger().Info("Notification", "kind", "success", "message", msg)
}

func (n LogNotifier) Failure(msg string) {
	n.logger().Warn("Notification", "kind", "danger", "message", msg)
}

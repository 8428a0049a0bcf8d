package notify

import "log/slog"

// Notifier surfaces short user-facing messages. The log implementation is
// the default; richer frontends can provide their own.
type Notifier interface {
	Success(message string)
	Info(message string)
	Warning(message string)
	Error(message string)
}

type logNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Success(message string) {
	n.log.Info("✅ " + message)
}

func (n *logNotifier) Info(message string) {
	n.log.Info("ℹ️ " + message)
}

func (n *logNotifier) Warning(message string) {
	n.log.Warn("⚠️ " + message)
}

func (n *logNotifier) Error(message string) {
	n.log.Error("❌ " + message)
}

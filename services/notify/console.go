// Package notifysvc implements the session.Notifier contract. The dashboard
// surfaces these as transient, auto-dismissing toasts; here they land in the
// application log.
package notifysvc

import (
	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/session"
)

type consoleNotifier struct {
	logger core.Logger
}

var _ session.Notifier = (*consoleNotifier)(nil)

func NewConsoleNotifier(logger core.Logger) session.Notifier {
	return &consoleNotifier{logger: logger}
}

func (n *consoleNotifier) Success(msg string) {
	n.logger.Info("notification: " + msg)
}

func (n *consoleNotifier) Error(msg string) {
	n.logger.Warn("notification: " + msg)
}

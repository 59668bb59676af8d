package notifysvc

import (
	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/user"
)

// UserFinder resolves the accounts a notification is about.
type UserFinder interface {
	GetByID(id string) (user.User, error)
}

// Multi forwards every notification to each of its notifiers, in order.
type Multi []core.Notifier

func (m Multi) Notify(n core.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

type logNotifier struct {
	logger core.Logger
}

// NewLogNotifier writes every notification to logger.
func NewLogNotifier(logger core.Logger) core.Notifier {
	return logNotifier{logger: logger}
}

func (ln logNotifier) Notify(n core.Notification) {
	extra := map[string]interface{}{"user_id": n.UserID, "kind": n.Kind, "message": n.Message}
	if n.Kind == core.KindError {
		ln.logger.Warn(n.Title, extra)
		return
	}
	ln.logger.Info(n.Title, extra)
}

package notifysvc

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
)

// InboxSize is the number of notifications kept per user.
const InboxSize = 50

// Inbox keeps the latest notifications of each user in a Store, under "notifications:<user id>".
type Inbox struct {
	store   core.Store
	logger  core.Logger
	nowFunc func() time.Time
	mu      sync.Mutex
}

func NewInbox(store core.Store, logger core.Logger) *Inbox {
	return &Inbox{store: store, logger: logger, nowFunc: time.Now}
}

func (in *Inbox) Notify(n core.Notification) {
	if n.UserID == "" {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = in.nowFunc().UTC()
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	list, err := in.load(n.UserID)
	if err == nil {
		list = append([]core.Notification{n}, list...)
		if len(list) > InboxSize {
			list = list[:InboxSize]
		}
		err = in.save(n.UserID, list)
	}
	if err != nil {
		in.logger.Error("storing notification", err, map[string]interface{}{"user_id": n.UserID})
	}
}

// List returns the notifications of userID, newest first.
func (in *Inbox) List(userID string) ([]core.Notification, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.load(userID)
}

func (in *Inbox) Clear(userID string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.save(userID, []core.Notification{})
}

func (in *Inbox) load(userID string) ([]core.Notification, error) {
	list := make([]core.Notification, 0)
	data, err := in.store.Load(core.StoreKey("notifications", userID))
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return list, nil
		}
		return nil, errors.Wrap(err, "loading notifications")
	}
	if err = json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "decoding notifications")
	}
	return list, nil
}

func (in *Inbox) save(userID string, list []core.Notification) error {
	data, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "encoding notifications")
	}
	return errors.Wrap(in.store.Save(core.StoreKey("notifications", userID), data), "saving notifications")
}

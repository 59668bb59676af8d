package shared

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/games"
	"github.com/growthapp/garden/core/growth"
	"github.com/growthapp/garden/core/user"
	emailsvc "github.com/growthapp/garden/services/email"
	notifysvc "github.com/growthapp/garden/services/notify"
	"github.com/growthapp/garden/storage"
	"github.com/growthapp/garden/storage/repos"
)

// App holds the services shared by the api and admin binaries.
type App struct {
	Conf   *core.Config
	Logger core.Logger
	Store  core.Store
	Mailer core.EmailService

	UserSvc   *user.Service
	GrowthSvc *growth.Service
	Points    *games.PointsLedger
	Games     *games.Registry
	Content   *games.Content
	Inbox     *notifysvc.Inbox
	Notifier  core.Notifier

	closeStore func() error
}

// NewApp opens the configured store and wires every service on top of it.
func NewApp(conf *core.Config, logger core.Logger) (*App, error) {
	store, closeStore, err := storage.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening storage")
	}
	return NewAppWithStore(conf, logger, store, closeStore)
}

// NewAppWithStore wires every service on top of store. closeStore may be nil.
func NewAppWithStore(conf *core.Config, logger core.Logger, store core.Store, closeStore func() error) (*App, error) {
	if closeStore == nil {
		closeStore = func() error { return nil }
	}
	app := &App{
		Conf:       conf,
		Logger:     logger,
		Store:      store,
		Mailer:     emailsvc.NewService(conf, logger),
		Content:    games.DefaultContent(),
		Inbox:      notifysvc.NewInbox(store, logger),
		closeStore: closeStore,
	}
	app.UserSvc = user.NewService(repos.NewUserRepository(store))

	notifiers := notifysvc.Multi{
		notifysvc.NewLogNotifier(logger),
		app.Inbox,
		notifysvc.NewParentEmailNotifier(app.UserSvc, app.Mailer, logger),
	}
	if conf.Telegram.Token != "" {
		tg, err := notifysvc.NewTelegramNotifier(conf, app.UserSvc, logger)
		if err != nil {
			_ = closeStore()
			return nil, errors.Wrap(err, "connecting telegram bot")
		}
		notifiers = append(notifiers, tg)
	}
	app.Notifier = notifiers

	app.GrowthSvc = growth.NewService(repos.NewGardenRepository(store), growth.DefaultCatalog(), app.Notifier)
	app.Points = games.NewPointsLedger(repos.NewPointsRepository(store))
	app.Games = games.NewRegistry(app.creditGame)
	return app, nil
}

// creditGame adds the final score of a finished game to the player's points.
func (app *App) creditGame(userID string, kind games.Kind, score int) {
	p, err := app.Points.Credit(userID, kind, score)
	if err != nil {
		app.Logger.Error("crediting game points", err, map[string]interface{}{"user_id": userID, "game": kind})
		app.Inbox.Notify(core.Notification{
			UserID:  userID,
			Kind:    core.KindError,
			Title:   "Points not saved",
			Message: "Your game score could not be saved. Please try again.",
		})
		return
	}
	app.Inbox.Notify(core.Notification{
		UserID:  userID,
		Kind:    core.KindSuccess,
		Title:   "Game complete",
		Message: fmt.Sprintf("You scored %d points. Total: %d", score, p.Total),
	})
}

func (app *App) Close() error {
	return app.closeStore()
}

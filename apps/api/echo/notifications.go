package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core/user"
	notifysvc "github.com/growthapp/garden/services/notify"
)

type notificationApi struct {
	usrSvc *user.Service
	inbox  *notifysvc.Inbox
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := notificationApi{usrSvc: deps.UserSvc, inbox: deps.Inbox}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.query)
	ng.DELETE("", api.clear)
}

func (api *notificationApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	list, err := api.inbox.List(usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing notifications")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *notificationApi) clear(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err = api.inbox.Clear(usr.ID); err != nil {
		return errors.Wrap(err, "clearing notifications")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Notifications cleared."})
}

package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core/user"
)

var contextObjectKey = "object"

// roleMiddleware only lets through users holding one of roles.
func roleMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(user.RoleAdmin)
}

// supervisedChildMiddleware puts the child account :uid in the context "object"
// when the context user may supervise it.
func supervisedChildMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxUsr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			child, err := svc.GetChild(ctxUsr, ctx.Param("uid"))
			if err != nil {
				switch errors.Cause(err) {
				case user.ErrNotFound, user.ErrNotAChild:
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding child")
			}
			ctx.Set(contextObjectKey, child)
			return next(ctx)
		}
	}
}

func getContextObject(ctx echo.Context) (user.User, error) {
	usr, ok := ctx.Get(contextObjectKey).(user.User)
	if !ok {
		return user.User{}, errors.Wrap(errUsrNotFoundInCtx, "retrieving object from context")
	}
	return usr, nil
}

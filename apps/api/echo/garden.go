package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/growth"
	"github.com/growthapp/garden/core/user"
)

type gardenApi struct {
	usrSvc   *user.Service
	svc      *growth.Service
	validate *validator.Validate
}

func registerGardenAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := gardenApi{
		usrSvc:   deps.UserSvc,
		svc:      deps.GrowthSvc,
		validate: deps.Validate,
	}

	gg := g.Group("/garden", jwt)
	gg.GET("", api.retrieve)
	gg.GET("/deposits", api.queryDeposits)
	gg.POST("/deposits", api.recordDeposit, roleMiddleware(user.RoleChild))
	gg.GET("/plants", api.queryPlants)
	gg.POST("/plants/:id/select", api.selectPlant, roleMiddleware(user.RoleChild))
	gg.GET("/matching-bonus", api.matchingBonus)

	// parents follow the gardens of their children
	cg := g.Group("/children/:uid", jwt, roleMiddleware(user.RoleParent, user.RoleAdmin), supervisedChildMiddleware(api.usrSvc))
	cg.GET("/garden", api.retrieveChild)
	cg.GET("/deposits", api.queryChildDeposits)
	cg.POST("/deposits/:id/verify", api.verifyDeposit)
}

func (api *gardenApi) ctxUserID(ctx echo.Context) (string, error) {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}
	return usr.ID, nil
}

// Handlers

func (api *gardenApi) retrieve(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	garden, err := api.svc.Garden(uid)
	if err != nil {
		return errors.Wrap(err, "getting garden")
	}
	return ctx.JSON(http.StatusOK, garden)
}

func (api *gardenApi) queryDeposits(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	return api.deposits(ctx, uid)
}

func (api *gardenApi) deposits(ctx echo.Context, uid string) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	deposits, err := api.svc.Deposits(uid, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying deposits")
	}
	return ctx.JSON(http.StatusOK, deposits)
}

func (api *gardenApi) recordDeposit(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}

	var data DepositRequest
	if err = ctx.Bind(&data); err != nil {
		return core.NewValidationError(errors.New("invalid deposit"), core.FieldError{Field: "amount", Error: "amount must be a number"})
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.RecordDeposit(uid, data.Amount, data.Description)
	if err != nil {
		return errors.Wrap(err, "recording deposit")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *gardenApi) queryPlants(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	plants, err := api.svc.AvailablePlants(uid)
	if err != nil {
		return errors.Wrap(err, "querying available plants")
	}
	return ctx.JSON(http.StatusOK, plants)
}

func (api *gardenApi) selectPlant(ctx echo.Context) error {
	uid, err := api.ctxUserID(ctx)
	if err != nil {
		return err
	}
	state, err := api.svc.SelectPlant(uid, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "selecting plant")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *gardenApi) matchingBonus(ctx echo.Context) error {
	amount, err := decimal.NewFromString(ctx.QueryParam("amount"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "amount", Error: "amount must be a number"})
	}
	return ctx.JSON(http.StatusOK, MatchingBonusResponse{
		Amount:        amount,
		MatchingBonus: growth.ComputeMatchingBonus(amount),
	})
}

func (api *gardenApi) retrieveChild(ctx echo.Context) error {
	child, err := getContextObject(ctx)
	if err != nil {
		return err
	}
	garden, err := api.svc.Garden(child.ID)
	if err != nil {
		return errors.Wrap(err, "getting garden")
	}
	return ctx.JSON(http.StatusOK, ChildGardenResponse{Child: child, Garden: garden})
}

func (api *gardenApi) queryChildDeposits(ctx echo.Context) error {
	child, err := getContextObject(ctx)
	if err != nil {
		return err
	}
	return api.deposits(ctx, child.ID)
}

func (api *gardenApi) verifyDeposit(ctx echo.Context) error {
	child, err := getContextObject(ctx)
	if err != nil {
		return err
	}
	verifier, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	event, err := api.svc.VerifyDeposit(child.ID, ctx.Param("id"), verifier.ID)
	if err != nil {
		return errors.Wrap(err, "verifying deposit")
	}
	return ctx.JSON(http.StatusOK, event)
}

type (
	DepositRequest struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description" validate:"max=200"`
	}

	MatchingBonusResponse struct {
		Amount        decimal.Decimal `json:"amount"`
		MatchingBonus decimal.Decimal `json:"matching_bonus"`
	}

	ChildGardenResponse struct {
		Child  user.User     `json:"child"`
		Garden growth.Garden `json:"garden"`
	}
)

func (dr *DepositRequest) Validate(validate *validator.Validate) error {
	dr.Description = core.CleanString(dr.Description)
	return validate.Struct(dr)
}

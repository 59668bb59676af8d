package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/growthapp/garden/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

// Bind reads the comma separated "ordering" query param, e.g. ?ordering=-created_at,amount
func (ord *Ordering) Bind(ctx echo.Context) {
	if raw := ctx.QueryParam(orderingParam); raw != "" {
		ord.Orderings = core.ParseOrderings(raw)
	}
}

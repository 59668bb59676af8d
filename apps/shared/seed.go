package shared

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/growth"
	"github.com/growthapp/garden/core/user"
	"github.com/growthapp/garden/storage/repos"
)

// demoDeposits make up the 45.50 saved by the demo child.
var demoDeposits = []struct {
	amount      string
	description string
	verified    bool
}{
	{"20.00", "Birthday money from Grandma", true},
	{"15.50", "Helped wash the car", true},
	{"10.00", "Weekly allowance", false},
}

// SeedDemoData creates the demo accounts that are missing.
// A newly created demo child also gets a sunflower and a few deposits.
func (app *App) SeedDemoData() ([]user.User, error) {
	created, err := app.UserSvc.SeedDemoUsers()
	if err != nil {
		return created, errors.Wrap(err, "seeding demo users")
	}

	// seeding must not notify anyone
	svc := growth.NewService(repos.NewGardenRepository(app.Store), growth.DefaultCatalog(), core.NopNotifier{})
	for _, usr := range created {
		if !usr.IsChild() {
			continue
		}
		if err = seedGarden(svc, usr); err != nil {
			return created, errors.Wrapf(err, "seeding garden of %s", usr.Email)
		}
	}
	return created, nil
}

func seedGarden(svc *growth.Service, child user.User) error {
	if _, err := svc.SelectPlant(child.ID, "1" /* Sunflower */); err != nil {
		return err
	}
	for _, d := range demoDeposits {
		res, err := svc.RecordDeposit(child.ID, decimal.RequireFromString(d.amount), d.description)
		if err != nil {
			return err
		}
		if d.verified && child.ParentID != "" {
			if _, err = svc.VerifyDeposit(child.ID, res.Deposit.ID, child.ParentID); err != nil {
				return err
			}
		}
	}
	return nil
}

package user

import "github.com/pkg/errors"

// DemoPassword is the password of every demo account.
const DemoPassword = "password"

// DemoUsers are the accounts of the demo login screen.
var DemoUsers = []User{
	{
		ID:     "1",
		Name:   "Alex Garden",
		Email:  "child@demo.com",
		Role:   RoleChild,
		Age:    10,
		Avatar: "🌱",
		Streak: 7,
		Badges: []string{"First Deposit", "Week Warrior", "Plant Parent"},
		// Sarah Garden
		ParentID: "2",
	},
	{ID: "2", Name: "Sarah Garden", Email: "parent@demo.com", Role: RoleParent, Avatar: "🌻"},
	{ID: "3", Name: "Growth Admin", Email: "admin@demo.com", Role: RoleAdmin, Avatar: "🌳"},
}

// SeedDemoUsers creates the demo accounts that do not exist yet and returns the created ones.
func (svc *Service) SeedDemoUsers() ([]User, error) {
	var created []User
	for _, demo := range DemoUsers {
		if _, err := svc.repo.GetUserByEmail(demo.Email); err == nil {
			continue
		} else if errors.Cause(err) != ErrNotFound {
			return created, errors.Wrapf(err, "finding %s", demo.Email)
		}

		usr := demo
		usr.Badges = append([]string{}, demo.Badges...)
		usr.IsActive = true
		usr.CreatedAt = svc.nowFunc().UTC()
		usr.UpdatedAt = usr.CreatedAt
		if err := usr.SetPassword(DemoPassword); err != nil {
			return created, err
		}
		usr, err := svc.repo.CreateUser(usr)
		if err != nil {
			return created, errors.Wrapf(err, "creating %s", demo.Email)
		}
		created = append(created, usr)
	}
	return created, nil
}

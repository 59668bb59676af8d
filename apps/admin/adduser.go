package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/user"
)

// addUser updates or creates an active user.User
func (cli *commandLine) addUser(name, email, pwd, role, parentEmail string) error {
	svc := cli.app.UserSvc
	email = core.CleanString(email, true /* lower */)

	usr, err := svc.GetByEmail(email)
	switch errors.Cause(err) {
	case nil:
		if _, err = svc.ResetPassword(usr.ID, pwd); err != nil {
			return err
		}
		if _, err = svc.SetActive(usr.ID, true); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", usr.Email)
		return nil
	case user.ErrNotFound: // create
	default:
		return err
	}

	r := user.Role(role)
	if !r.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	nu := user.NewUser{
		Name:     core.CleanString(name),
		Email:    email,
		Role:     r,
		Password: pwd,
	}
	if parentEmail != "" {
		if r != user.RoleChild {
			return errors.New("only child accounts have a parent")
		}
		parent, err := svc.GetByEmail(parentEmail)
		if err != nil {
			return errors.Wrap(err, "finding parent")
		}
		if !parent.IsParent() {
			return fmt.Errorf("%s is not a parent account", parent.Email)
		}
		nu.ParentID = parent.ID
	}
	if usr, err = svc.Create(nu, true); err != nil {
		return err
	}
	fmt.Printf("created %s (%s)\n", usr.Email, usr.Role)
	return nil
}

package main

import "fmt"

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.app.UserSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	_, err = cli.app.UserSvc.ResetPassword(usr.ID, pwd)
	return err
}

// approve activates a pending account, e.g. a self-registered parent.
func (cli *commandLine) approve(email string) error {
	usr, err := cli.app.UserSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	if usr.IsActive {
		fmt.Printf("%s is already active\n", usr.Email)
		return nil
	}
	_, err = cli.app.UserSvc.SetActive(usr.ID, true)
	return err
}

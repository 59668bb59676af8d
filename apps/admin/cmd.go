package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/growthapp/garden/apps/shared"
	"github.com/growthapp/garden/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	app *shared.App
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -email EMAIL -name NAME [-role child|parent|admin] [-parent EMAIL] - create or update an active user")
	fmt.Println("  resetpassword -email EMAIL - reset user's password")
	fmt.Println("  approve -email EMAIL - activate a pending account")
	fmt.Println("  deposit -email EMAIL -amount AMOUNT [-description TEXT] - record a deposit for a child")
	fmt.Println("  migrate - create the SQL schema of the configured storage")
	fmt.Println("  seed - create the demo accounts")
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserRole := addUserCmd.String("role", "admin", "One of child, parent or admin.")
	addUserParent := addUserCmd.String("parent", "", "The parent's email, for child accounts.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	approveCmd := flag.NewFlagSet("approve", flag.ContinueOnError)
	approveEmail := approveCmd.String("email", "", "The email of the account to activate.")

	depositCmd := flag.NewFlagSet("deposit", flag.ContinueOnError)
	depositEmail := depositCmd.String("email", "", "The child's email.")
	depositAmount := depositCmd.String("amount", "", "The deposited amount, e.g. 12.50")
	depositDesc := depositCmd.String("description", "", "What the money is from.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, pwd, *addUserRole, *addUserParent)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)

	case "approve":
		if err := approveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *approveEmail == "" {
			approveCmd.Usage()
			return errHelp
		}
		return cli.approve(*approveEmail)

	case "deposit":
		if err := depositCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *depositEmail == "" || *depositAmount == "" {
			depositCmd.Usage()
			return errHelp
		}
		amount, err := decimal.NewFromString(*depositAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q", *depositAmount)
		}
		return cli.deposit(*depositEmail, amount, *depositDesc)

	case "migrate":
		return cli.migrate()

	case "seed":
		created, err := cli.app.SeedDemoData()
		if err != nil {
			return err
		}
		for _, usr := range created {
			fmt.Printf("created %s (%s)\n", usr.Email, usr.Role)
		}
		fmt.Printf("%d demo accounts created\n", len(created))
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) deposit(email string, amount decimal.Decimal, description string) error {
	usr, err := cli.app.UserSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	if !usr.IsChild() {
		return fmt.Errorf("%s is not a child account", usr.Email)
	}
	res, err := cli.app.GrowthSvc.RecordDeposit(usr.ID, amount, description)
	if err != nil {
		return err
	}
	fmt.Printf("%s saved %s, total %s (level %d)\n",
		usr.Name, core.FormatMoney(amount), core.FormatMoney(res.Account.TotalSavings), res.Account.Level,
	)
	return nil
}

package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/storage/database"
)

// migrate creates the SQL schema of the configured storage. Other drivers have none.
func (cli *commandLine) migrate() error {
	conf := cli.app.Conf
	switch conf.Storage.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		fmt.Printf("%q storage has no schema to migrate\n", conf.Storage.Driver)
		return nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer db.Close()

	if err = database.Migrate(db); err != nil {
		return err
	}
	fmt.Printf("%s database migrated\n", conf.Storage.Driver)
	return nil
}

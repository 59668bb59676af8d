package storage

import (
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/storage/database"
	"github.com/growthapp/garden/storage/database/inmem"
	"github.com/growthapp/garden/storage/database/sqlx"
	"github.com/growthapp/garden/storage/gdata"
)

const (
	DriverMemory = "memory"
	DriverGData  = "gdata"
)

// Open returns the Store selected by conf.Storage.Driver and a function releasing it.
func Open(conf *core.Config) (core.Store, func() error, error) {
	nop := func() error { return nil }
	switch conf.Storage.Driver {
	case "", DriverMemory:
		return inmemdb.NewStore(), nop, nil
	case DriverGData:
		s, err := gdatastore.Open(conf.Storage.AppName)
		return s, nop, err
	case database.DriverSQLite, database.DriverPostgres:
		db, err := database.Open(conf)
		if err != nil {
			return nil, nop, err
		}
		return sqlxrepos.NewStore(db), db.Close, nil
	}
	return nil, nop, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
}

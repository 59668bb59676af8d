package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
)

type kvRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type store struct {
	db      *sqlx.DB
	nowFunc func() time.Time
}

// NewStore returns a core.Store persisting values in the kv table of db.
func NewStore(db *sqlx.DB) core.Store {
	return &store{db: db, nowFunc: time.Now}
}

func (s *store) Load(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, s.db.Rebind("SELECT value FROM kv WHERE key = ?"), key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrNotFound
		}
		return nil, errors.Wrapf(err, "loading %s", key)
	}
	return value, nil
}

func (s *store) Save(key string, value []byte) error {
	row := kvRow{Key: key, Value: value, UpdatedAt: s.nowFunc().UTC()}
	q := `INSERT INTO kv (key, value, updated_at) VALUES (:key, :value, :updated_at)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.NamedExec(q, row); err != nil {
		return errors.Wrapf(err, "saving %s", key)
	}
	return nil
}

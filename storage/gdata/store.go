package gdatastore

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/quasilyte/gdata/v2"

	"github.com/growthapp/garden/core"
)

const defaultProp = "value"

type store struct {
	m *gdata.Manager
}

// Open returns a core.Store saving every value as a file of the per-user data directory of appName.
func Open(appName string) (core.Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, errors.Wrap(err, "opening gdata")
	}
	return &store{m: m}, nil
}

// split maps "savings:42" to the object "savings" and the property "42".
func split(key string) (object, prop string) {
	object, prop, found := strings.Cut(key, ":")
	if !found || prop == "" {
		return object, defaultProp
	}
	return object, strings.ReplaceAll(prop, ":", "_")
}

func (s *store) Load(key string) ([]byte, error) {
	object, prop := split(key)
	if !s.m.ObjectPropExists(object, prop) {
		return nil, core.ErrNotFound
	}
	data, err := s.m.LoadObjectProp(object, prop)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", key)
	}
	return data, nil
}

func (s *store) Save(key string, value []byte) error {
	object, prop := split(key)
	return errors.Wrapf(s.m.SaveObjectProp(object, prop, value), "saving %s", key)
}

package inmemdb

import (
	"sync"

	"github.com/growthapp/garden/core"
)

type store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

// NewStore returns a process-local core.Store. Values are copied in and out.
func NewStore() core.Store {
	return &store{table: make(map[string][]byte)}
}

func (s *store) Load(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.table[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *store) Save(key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.table[key] = append([]byte(nil), value...)
	return nil
}

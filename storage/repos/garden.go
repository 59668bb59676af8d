package repos

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/games"
	"github.com/growthapp/garden/core/growth"
)

type gardenRepository struct {
	store core.Store
}

// NewGardenRepository returns a growth.Repository saving each user's snapshot under "savings:<user id>".
func NewGardenRepository(store core.Store) growth.Repository {
	return &gardenRepository{store: store}
}

func (repo *gardenRepository) LoadGarden(userID string) (growth.Snapshot, error) {
	var snap growth.Snapshot
	err := loadJSON(repo.store, core.StoreKey("savings", userID), &snap)
	return snap, err
}

func (repo *gardenRepository) SaveGarden(userID string, snap growth.Snapshot) error {
	return saveJSON(repo.store, core.StoreKey("savings", userID), snap)
}

type pointsRepository struct {
	store core.Store
}

// NewPointsRepository returns a games.PointsRepository saving each user's points under "points:<user id>".
func NewPointsRepository(store core.Store) games.PointsRepository {
	return &pointsRepository{store: store}
}

func (repo *pointsRepository) LoadPoints(userID string) (games.Points, error) {
	var p games.Points
	err := loadJSON(repo.store, core.StoreKey("points", userID), &p)
	return p, err
}

func (repo *pointsRepository) SavePoints(userID string, p games.Points) error {
	return saveJSON(repo.store, core.StoreKey("points", userID), p)
}

// loadJSON decodes the value saved under key into v, leaving v untouched when nothing is saved.
func loadJSON(store core.Store, key string, v interface{}) error {
	data, err := store.Load(key)
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return nil
		}
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decoding %s", key)
}

func saveJSON(store core.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return store.Save(key, data)
}

package repos

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/user"
)

var usersKey = core.StoreKey("users", "all")

// userRecord is the stored form of a user.User, which never serializes its password hash.
type userRecord struct {
	user.User
	PasswordHash []byte `json:"password_hash"`
}

type userRepository struct {
	mutex sync.RWMutex
	store core.Store
}

// NewUserRepository returns a user.Repository keeping the whole user table under one Store key.
func NewUserRepository(store core.Store) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) load() ([]user.User, error) {
	data, err := repo.store.Load(usersKey)
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return []user.User{}, nil
		}
		return nil, err
	}
	var records []userRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	users := make([]user.User, 0, len(records))
	for _, rec := range records {
		usr := rec.User
		usr.PasswordHash = rec.PasswordHash
		users = append(users, usr)
	}
	return users, nil
}

func (repo *userRepository) save(users []user.User) error {
	records := make([]userRecord, 0, len(users))
	for _, usr := range users {
		records = append(records, userRecord{User: usr, PasswordHash: usr.PasswordHash})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encoding users")
	}
	return repo.store.Save(usersKey, data)
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, ex := range excludedUsers {
		if ex.ID == usr.ID {
			return true
		}
	}
	return false
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	users, err := repo.load()
	if err != nil {
		return err
	}
	for _, usr := range users {
		if usr.Email == email && !isExcluded(usr, excludedUsers) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	users, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if u.ID == usr.ID {
			return user.User{}, errors.Errorf("duplicate user id %s", usr.ID)
		}
	}
	if err = repo.save(append(users, usr)); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	users, err := repo.load()
	if err != nil || filter.IsEmpty() {
		return users, err
	}
	res := make([]user.User, 0)
	for _, usr := range users {
		if filter.Match(usr) {
			res = append(res, usr)
		}
	}
	return res, nil
}

func (repo *userRepository) getBy(match func(user.User) bool) (user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	users, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if match(usr) {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getBy(func(usr user.User) bool { return usr.ID == id })
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getBy(func(usr user.User) bool { return usr.Email == email })
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	users, err := repo.load()
	if err != nil {
		return user.User{}, err
	}
	for i, u := range users {
		if u.ID == usr.ID {
			users[i] = usr
			return usr, repo.save(users)
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	users, err := repo.load()
	if err != nil {
		return err
	}
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		deleted[id] = true
	}
	kept := users[:0]
	for _, usr := range users {
		if !deleted[usr.ID] {
			kept = append(kept, usr)
		}
	}
	return repo.save(kept)
}

package user

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/growthapp/garden/core"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrEmailExists          = errors.New("a user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAChild            = errors.New("user is not a child account")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields. An empty filter matches all users.
		FilterUsers(filter QueryFilter) ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		UpdateUser(usr User) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service struct {
		repo      Repository
		nowFunc   func() time.Time
		newIDFunc func() string
	}
)

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		nowFunc:   time.Now,
		newIDFunc: uuid.NewString,
	}
}

func (svc *Service) checkUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Login is the authentication provider: it resolves an (email, password, role) triple to an active user.
// Unknown emails, wrong passwords, role mismatches and inactive accounts all fail with ErrAuthenticationFailed.
func (svc *Service) Login(email, password string, role Role) (User, error) {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if usr.Role != role || !usr.IsActive {
		return User{}, ErrAuthenticationFailed
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrAuthenticationFailed
	}
	return svc.SetLastLogin(usr)
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	now := svc.nowFunc().UTC()
	usr.LastLogin = &now
	return svc.repo.UpdateUser(usr)
}

// Create stores a new user without validating nu.
func (svc *Service) Create(nu NewUser, active bool) (User, error) {
	now := svc.nowFunc().UTC()
	role := nu.Role
	if role == "" {
		role = RoleChild
	}
	avatar := nu.Avatar
	if avatar == "" {
		avatar = defaultAvatars[role]
	}
	usr := User{
		ID:        svc.newIDFunc(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      role,
		Age:       nu.Age,
		ParentID:  nu.ParentID,
		Avatar:    avatar,
		Badges:    []string{},
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

// Register creates a self-registered account. Parent accounts stay inactive until an admin approves them.
func (svc *Service) Register(nu NewUser) (User, error) {
	nu.ParentID = ""
	return svc.Create(nu, nu.Role != RoleParent)
}

// AddChild creates a child account supervised by parent.
func (svc *Service) AddChild(parent User, nu NewUser) (User, error) {
	nu.Role = RoleChild
	nu.ParentID = parent.ID
	return svc.Create(nu, true)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// GetChild returns the child account uid if viewer may supervise it.
// Children outside of the viewer's reach are reported as ErrNotFound.
func (svc *Service) GetChild(viewer User, uid string) (User, error) {
	child, err := svc.GetByID(uid)
	if err != nil {
		return User{}, err
	}
	if !viewer.CanSupervise(child) {
		return User{}, ErrNotFound
	}
	if !child.IsChild() {
		return User{}, ErrNotAChild
	}
	return child, nil
}

// Query returns the users matching filter, sorted by orderings (name, email, role, created_at).
func (svc *Service) Query(filter QueryFilter, orderings ...core.Ordering) ([]User, error) {
	users, err := svc.repo.FilterUsers(filter)
	if err != nil {
		return nil, err
	}
	if len(orderings) > 0 {
		sortUsers(users, orderings)
	}
	return users, nil
}

// Children returns the child accounts of parentID, oldest first.
func (svc *Service) Children(parentID string) ([]User, error) {
	return svc.Query(
		QueryFilter{Roles: []Role{RoleChild}, ParentID: parentID},
		core.Ordering{Field: "created_at", Ascending: true},
	)
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Name = uu.Name
	usr.Email = uu.Email
	usr.Avatar = uu.Avatar
	if uu.Age != nil {
		usr.Age = *uu.Age
	}
	if uu.IsActive != nil {
		usr.IsActive = *uu.IsActive
	}
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.UpdateUser(usr)
}

// SetActive activates or deactivates an account, e.g. to approve a parent registration.
func (svc *Service) SetActive(id string, active bool) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.IsActive = active
	usr.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.UpdateUser(usr)
}

// ResetPassword sets a new password without applying the password policy.
func (svc *Service) ResetPassword(id, password string) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(password); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

func sortUsers(users []User, orderings []core.Ordering) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		for _, ord := range orderings {
			var cmp int
			switch ord.Field {
			case "name":
				cmp = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			case "email":
				cmp = strings.Compare(a.Email, b.Email)
			case "role":
				cmp = strings.Compare(string(a.Role), string(b.Role))
			case "created_at":
				switch {
				case a.CreatedAt.Before(b.CreatedAt):
					cmp = -1
				case a.CreatedAt.After(b.CreatedAt):
					cmp = 1
				}
			}
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

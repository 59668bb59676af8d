package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/growthapp/garden/core"
)

// Role of a user. Every user has exactly one.
type Role string

const (
	RoleChild  Role = "child"
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

var (
	AllRoles = []Role{RoleChild, RoleParent, RoleAdmin}

	defaultAvatars = map[Role]string{
		RoleChild:  "🌱",
		RoleParent: "🌻",
		RoleAdmin:  "🌳",
	}
)

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Age          int        `json:"age,omitempty"`
	ParentID     string     `json:"parent_id,omitempty"`
	Avatar       string     `json:"avatar"`
	Streak       int        `json:"streak"`
	Badges       []string   `json:"badges"`
	IsActive     bool       `json:"is_active"`
	PasswordHash []byte     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"` // UTC
	UpdatedAt    time.Time  `json:"updated_at"` // UTC
	LastLogin    *time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool  { return u.Role == RoleAdmin }
func (u *User) IsParent() bool { return u.Role == RoleParent }
func (u *User) IsChild() bool  { return u.Role == RoleChild }

// CanSupervise reports whether u may see and verify the savings of child.
func (u *User) CanSupervise(child User) bool {
	return u.IsAdmin() || (u.IsParent() && child.ParentID == u.ID)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Role            Role   `json:"role" validate:"omitempty,oneof=child parent"`
	Age             int    `json:"age" validate:"omitempty,min=3,max=18"`
	Avatar          string `json:"avatar" validate:"omitempty,max=16"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	ParentID        string `json:"-"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Avatar = core.CleanString(nu.Avatar)
	if nu.Role == "" {
		nu.Role = RoleChild
	}

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string `json:"name" validate:"omitempty,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Age             *int   `json:"age" validate:"omitempty,min=3,max=18"`
	Avatar          string `json:"avatar" validate:"omitempty,max=16"`
	IsActive        *bool  `json:"is_active"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc *Service) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if avatar := core.CleanString(uu.Avatar); avatar != "" {
		uu.Avatar = avatar
	} else {
		uu.Avatar = origUsr.Avatar
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.checkUniqueness(uu.Email, origUsr)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Roles    []Role `query:"role"`
	IsActive *bool  `query:"is_active"`
	ParentID string `query:"parent_id"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.ParentID == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match reports whether usr passes every set field of the filter.
// Search is a case-insensitive match on the name or the email.
func (qf *QueryFilter) Match(usr User) bool {
	if qf.Search != "" {
		s := strings.ToLower(qf.Search)
		if !strings.Contains(strings.ToLower(usr.Name), s) && !strings.Contains(usr.Email, s) {
			return false
		}
	}
	if len(qf.Roles) > 0 {
		var found bool
		for _, r := range qf.Roles {
			if usr.Role == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if qf.IsActive != nil && usr.IsActive != *qf.IsActive {
		return false
	}
	if qf.ParentID != "" && usr.ParentID != qf.ParentID {
		return false
	}
	return true
}

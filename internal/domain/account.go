// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameAlreadyExists indicates that the login identifier is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrWrongPassword indicates that the given password does not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrWrongPasscode indicates that the given passcode does not match.
	ErrWrongPasscode = errors.New("invalid passcode")
	// ErrInvalidPasscodeFormat indicates a passcode that is not exactly 4 digits.
	ErrInvalidPasscodeFormat = errors.New("passcode must be exactly 4 digits")
	// ErrWeakPassword indicates a password shorter than MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 6 characters long")
	// ErrInvalidRole indicates an unknown account role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrRateLimited indicates too many failed attempts within the limiter window.
	ErrRateLimited = errors.New("too many attempts, try again later")
	// ErrUnauthorized indicates that the caller may not act on the resource.
	ErrUnauthorized = errors.New("unauthorized")
)

// MinPasswordLen is the minimal accepted password length.
const MinPasswordLen = 6

var passcodeRx = regexp.MustCompile(`^\d{4}$`)

// ValidPasscode reports whether p is exactly 4 ASCII digits.
func ValidPasscode(p string) bool {
	return passcodeRx.MatchString(p)
}

// Role determines which part of the portal an account can use.
type Role string

// Account roles.
const (
	RoleStudent     Role = "student"
	RoleParent      Role = "parent"
	RoleInstitution Role = "institution"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleInstitution, RoleAdmin:
		return true
	}

	return false
}

// Profile holds optional contact and enrollment details.
type Profile struct {
	Phone       string `json:"phone,omitempty"`
	ParentName  string `json:"parent_name,omitempty"`
	ParentPhone string `json:"parent_phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Course      string `json:"course,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Account is a portal identity. Students carry a tuition balance.
type Account struct {
	Username       string          `json:"username"`
	HashedPassword string          `json:"hashed_password"`
	HashedPasscode string          `json:"hashed_passcode,omitempty"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Role           Role            `json:"role"`
	IsAdmin        bool            `json:"is_admin"`
	Profile        Profile         `json:"profile"`
	Children       []string        `json:"children,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HasChild reports whether username is linked to the account as a child.
func (a Account) HasChild(username string) bool {
	for _, c := range a.Children {
		if c == username {
			return true
		}
	}

	return false
}

// WithoutSecrets strips credential hashes from the account.
func (a Account) WithoutSecrets() AccountWithoutSecrets {
	return AccountWithoutSecrets{
		Username:  a.Username,
		FullName:  a.FullName,
		Email:     a.Email,
		Role:      a.Role,
		IsAdmin:   a.IsAdmin,
		Profile:   a.Profile,
		Children:  append([]string(nil), a.Children...),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	a.Children = append([]string(nil), a.Children...)
	return a
}

// AccountWithoutSecrets is the account representation safe to return to clients.
type AccountWithoutSecrets struct {
	Username  string          `json:"username"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      Role            `json:"role"`
	IsAdmin   bool            `json:"is_admin"`
	Profile   Profile         `json:"profile"`
	Children  []string        `json:"children,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data for account provisioning.
type CreateAccountParams struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Passcode string   `json:"passcode"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	Profile  Profile  `json:"profile"`
	Children []string `json:"children"`
	Balance  string   `json:"balance"`
}

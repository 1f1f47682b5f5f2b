// Package passpkg hashes and checks secrets such as passwords and passcodes.
package passpkg

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces salted one-way hashes and checks plain values against them.
type Hasher interface {
	Hash(plain string) (string, error)
	Check(plain, hashed string) error
}

// Bcrypt is a Hasher backed by bcrypt with a configurable cost.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt Hasher. Costs outside bcrypt's range fall back to the default cost.
func NewBcrypt(cost int) Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (b Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Check compares plain with hashed in constant time.
func (b Bcrypt) Check(plain, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// Hash returns the bcrypt hash of the password with the default cost.
func Hash(password string) (string, error) {
	return NewBcrypt(bcrypt.DefaultCost).Hash(password)
}

// Check checks if the provided password is correct or not.
func Check(password, hashedPassword string) error {
	return NewBcrypt(bcrypt.DefaultCost).Check(password, hashedPassword)
}

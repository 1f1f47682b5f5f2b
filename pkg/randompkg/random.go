// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer in [min, max].
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

func fromSet(set string, n int) string {
	var sb strings.Builder

	k := len(set)

	for i := 0; i < n; i++ {
		c := set[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromSet(alphabet, n)
}

// Username generates a random login identifier.
func Username() string {
	return String(8)
}

// Passcode generates a random 4 digit passcode.
func Passcode() string {
	return fromSet(digits, 4)
}

// MoneyAmountBetween generates a random amount of money in [min, max] with two decimals.
func MoneyAmountBetween(min, max int64) string {
	cents := IntBetween(int(min*100), int(max*100))
	return decimal.New(cents, -2).StringFixed(2)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

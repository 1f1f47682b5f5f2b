package domain

import (
	"errors"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	// ErrFeeClassNotFound indicates a course and year missing from the fee structure.
	ErrFeeClassNotFound = errors.New("course or year not found")
	// ErrFeeNotFound indicates a fee type the student's course and year do not charge.
	ErrFeeNotFound = errors.New("fee not found for the student's course and year")
	// ErrInvalidFeeType indicates a malformed fee type.
	ErrInvalidFeeType = errors.New("fee type must be lowercase letters")
)

var feeTypeRx = regexp.MustCompile(`^[a-z][a-z_]{0,31}$`)

// ValidFeeType reports whether t can name a fee.
func ValidFeeType(t string) bool {
	return feeTypeRx.MatchString(t)
}

// FeeClass is the fee schedule of one year of one course.
type FeeClass struct {
	Course string                     `json:"course"`
	Year   string                     `json:"year"`
	Fees   map[string]decimal.Decimal `json:"fees"`
}

// Total sums every fee of the class.
func (c FeeClass) Total() decimal.Decimal {
	total := decimal.Zero
	for _, f := range c.Fees {
		total = total.Add(f)
	}

	return total
}

// Clone returns a deep copy of the class.
func (c FeeClass) Clone() FeeClass {
	fees := make(map[string]decimal.Decimal, len(c.Fees))
	for k, v := range c.Fees {
		fees[k] = v
	}

	c.Fees = fees

	return c
}

// FeeStructure lists the fee classes of the institution.
type FeeStructure []FeeClass

// Find returns the class of course and year.
func (s FeeStructure) Find(course, year string) (FeeClass, bool) {
	for _, c := range s {
		if c.Course == course && c.Year == year {
			return c, true
		}
	}

	return FeeClass{}, false
}

// Sort orders the classes by course, then year.
func (s FeeStructure) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Course != s[j].Course {
			return s[i].Course < s[j].Course
		}

		return s[i].Year < s[j].Year
	})
}

// UpdateFeeParams is the input data to change one fee of the structure.
type UpdateFeeParams struct {
	Course  string
	Year    string
	FeeType string
	Amount  string
}

// FeeDescription is the invoice description of a fee type, e.g. "Tuition Fee".
func FeeDescription(feeType string) string {
	b := []byte(feeType)
	for i := range b {
		switch {
		case b[i] == '_':
			b[i] = ' '
		case i == 0 || b[i-1] == ' ':
			if b[i] >= 'a' && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
	}

	return string(b) + " Fee"
}

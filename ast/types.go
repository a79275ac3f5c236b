package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Amount represents a numerical value with its associated currency or
// commodity symbol. The value is stored as a string to preserve the exact
// decimal representation, avoiding floating-point precision issues.
type Amount struct {
	Value    string
	Currency string
}

// String returns the amount in "VALUE CURRENCY" form.
func (a *Amount) String() string {
	if a == nil {
		return ""
	}
	return a.Value + " " + a.Currency
}

// Account represents a Beancount account name consisting of at least two
// colon-separated segments. The first segment must be one of the five account
// categories: Assets, Liabilities, Equity, Income, or Expenses. Subsequent
// segments must start with an uppercase letter or digit and can contain
// letters, numbers, and hyphens.
//
// Example accounts:
//
//	Assets:PayPal
//	Assets:US:BofA:Checking
//	Expenses:Financial:Fees
type Account string

// accountSegmentRegex validates account segments after the first one.
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

// NewAccount creates an Account from the given name string and validates it
// against the Beancount account naming rules.
func NewAccount(name string) (Account, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("account must have at least two segments: %s", name)
	}

	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return "", fmt.Errorf("unexpected account type %q", parts[0])
	}

	for i := 1; i < len(parts); i++ {
		if !accountSegmentRegex.MatchString(parts[i]) {
			return "", fmt.Errorf("invalid account segment at position %d: %s", i, parts[i])
		}
	}

	return Account(name), nil
}

// Date represents a calendar date. Beancount renders dates in ISO 8601
// format (YYYY-MM-DD); all directives must carry one.
type Date struct {
	time.Time
}

// NewDate parses a date string in YYYY-MM-DD format and returns a Date.
func NewDate(s string) (*Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", s)
	}
	return &Date{Time: t}, nil
}

// NewDateFromTime creates a Date from a time.Time value.
func NewDateFromTime(t time.Time) *Date {
	return &Date{Time: t}
}

// String renders the date in ISO 8601 format. Nil-safe.
func (d *Date) String() string {
	if d == nil || d.Time.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// IsZero returns true if the Date is nil or represents the zero time.
func (d *Date) IsZero() bool {
	return d == nil || d.Time.IsZero()
}

// Metadata represents a key-value pair attached to a directive. Entries are
// rendered indented on the lines following the directive they annotate.
// Importers emit string values only, so no typed value union is needed here.
type Metadata struct {
	Key   string
	Value string
}

// NewMetadata creates a Metadata key-value pair.
func NewMetadata(key, value string) *Metadata {
	return &Metadata{Key: key, Value: value}
}

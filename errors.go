package paypal

import (
	"fmt"
	"strings"
)

// Error types for extraction failures. None of these are transient: every
// failure is a structural or data-quality issue in the source file, so the
// importer aborts the whole extraction instead of retrying or returning a
// partially built entry list.

// MalformedRowError is returned when a required field of a row is missing or
// cannot be parsed under the active locale's format.
type MalformedRowError struct {
	Index int    // zero-based row index within the data section of the file
	Field string // canonical field name
	Err   error  // underlying parse error, nil if the field was absent
}

func (e *MalformedRowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("row %d: missing required field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("row %d: malformed field %q: %v", e.Index, e.Field, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

func (e *MalformedRowError) GetIndex() int    { return e.Index }
func (e *MalformedRowError) GetField() string { return e.Field }

// InvalidConversionError is returned when the buffered currency-conversion
// legs of an event are inconsistent: wrong leg count, wrong currency pairing,
// or a leg total that does not match the event's postings.
type InvalidConversionError struct {
	TxnID  string
	Reason string
}

func (e *InvalidConversionError) Error() string {
	return fmt.Sprintf("transaction %s: invalid currency conversion: %s", e.TxnID, e.Reason)
}

func (e *InvalidConversionError) GetTxnID() string { return e.TxnID }

// AmbiguousCurrencyError is returned when an event's postings span more than
// one currency where a single currency is required.
type AmbiguousCurrencyError struct {
	TxnID      string
	Currencies []string
}

func (e *AmbiguousCurrencyError) Error() string {
	return fmt.Sprintf("transaction %s: postings span multiple currencies: %s",
		e.TxnID, strings.Join(e.Currencies, ", "))
}

func (e *AmbiguousCurrencyError) GetTxnID() string { return e.TxnID }

// DecodeError is returned when the source stream is not a validly encoded
// CSV file. It surfaces as "file not extractable" rather than as a partial
// result.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode file: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

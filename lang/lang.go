// Package lang provides the locale strategies for reading PayPal activity
// exports. PayPal localizes both the CSV header fields and the transaction
// type titles, so every supported language carries its own field map, date
// layout, and classification titles.
//
// The set of languages is closed: use EN or DE to obtain a strategy and pass
// it to the importer at construction time.
package lang

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical row keys produced by NormalizeKeys, independent of locale.
const (
	KeyDate          = "date"
	KeyName          = "name"
	KeyType          = "txn_type"
	KeyCurrency      = "currency"
	KeyGross         = "gross"
	KeyFee           = "fee"
	KeyNet           = "net"
	KeyFrom          = "from"
	KeyTo            = "to"
	KeyTxnID         = "txn_id"
	KeyReferenceID   = "reference_txn_id"
	KeyBalanceImpact = "balance_impact"
	KeyItemTitle     = "item_title"
	KeySubject       = "subject"
	KeyNote          = "note"
	KeyBalance       = "balance"
	KeyTxnCode       = "txn_code"
	KeyInvoiceNumber = "invoice_number"
)

// Language is the locale strategy consumed by the importer. Implementations
// classify rows by their language-agnostic PayPal T-code when the export
// carries one, falling back to the localized transaction type title.
type Language interface {
	// Name returns the language tag, e.g. "en" or "de".
	Name() string

	// Identify reports whether the given CSV header matches this locale's
	// expected field set.
	Identify(header []string) bool

	// NormalizeKeys maps the locale-specific field names of a raw row to
	// their canonical keys. Unknown fields are passed through unchanged.
	NormalizeKeys(row map[string]string) map[string]string

	// ParseDate parses a date in this locale's format.
	ParseDate(s string) (time.Time, error)

	// ParseDecimal parses a decimal number in this locale's format.
	ParseDecimal(s string) (decimal.Decimal, error)

	// TxnFromChecking reports a bank deposit into the PayPal account.
	TxnFromChecking(row map[string]string) bool

	// TxnToChecking reports a withdrawal to the linked bank account.
	TxnToChecking(row map[string]string) bool

	// TxnCurrencyConversion reports one leg of a currency conversion.
	TxnCurrencyConversion(row map[string]string) bool

	// TxnRefund reports a payment refund.
	TxnRefund(row map[string]string) bool

	// TxnMemo reports a row that does not affect balances.
	TxnMemo(row map[string]string) bool

	// TxnInvoiceSent reports a row recording that an invoice was sent.
	TxnInvoiceSent(row map[string]string) bool

	// TxnKind returns the label describing the row's transaction type.
	TxnKind(row map[string]string) string
}

// PayPal "T-Codes" identify a transaction type in a language-agnostic way.
// See their developer documentation for the full list.
var (
	codesFromChecking = map[string]bool{"T0300": true}
	codesToChecking   = map[string]bool{"T0400": true}
	codesConversion   = map[string]bool{"T0200": true, "T0201": true, "T0202": true}
	codesRefund       = map[string]bool{"T1107": true}
)

// field maps one locale-specific header name to its canonical key.
type field struct {
	header    string
	canonical string
}

// language is the shared implementation behind EN and DE. Only the field
// map, date layout, and localized titles differ per locale.
type language struct {
	name       string
	dateLayout string

	// fields lists the expected header fields in export order. The trailing
	// optionalFields entries may be absent from an export.
	fields         []field
	optionalFields int

	// Localized transaction type titles, used when no T-code is present.
	fromChecking string
	toChecking   string
	conversion   string
	refund       string
	invoiceSent  string

	// Localized "Balance Impact" value marking memo rows.
	memo string
}

func (l *language) Name() string { return l.name }

func (l *language) Identify(header []string) bool {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	required := l.fields[:len(l.fields)-l.optionalFields]
	for _, f := range required {
		if !present[f.header] {
			return false
		}
	}
	return true
}

func (l *language) NormalizeKeys(row map[string]string) map[string]string {
	canonical := make(map[string]string, len(l.fields))
	for _, f := range l.fields {
		canonical[f.header] = f.canonical
	}

	normalized := make(map[string]string, len(row))
	for k, v := range row {
		if c, ok := canonical[k]; ok {
			normalized[c] = v
		} else {
			normalized[k] = v
		}
	}
	return normalized
}

func (l *language) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(l.dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseDecimal parses amounts as PayPal writes them in European exports:
// "." as thousands separator and "," as decimal mark (e.g. "1.234,56").
func (l *language) ParseDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

// isType checks the language-agnostic T-code first, then the localized title.
func (l *language) isType(row map[string]string, codes map[string]bool, title string) bool {
	return codes[row[KeyTxnCode]] || row[KeyType] == title
}

func (l *language) TxnFromChecking(row map[string]string) bool {
	return l.isType(row, codesFromChecking, l.fromChecking)
}

func (l *language) TxnToChecking(row map[string]string) bool {
	return l.isType(row, codesToChecking, l.toChecking)
}

func (l *language) TxnCurrencyConversion(row map[string]string) bool {
	return l.isType(row, codesConversion, l.conversion)
}

func (l *language) TxnRefund(row map[string]string) bool {
	return l.isType(row, codesRefund, l.refund)
}

func (l *language) TxnMemo(row map[string]string) bool {
	return row[KeyBalanceImpact] == l.memo
}

func (l *language) TxnInvoiceSent(row map[string]string) bool {
	return row[KeyType] == l.invoiceSent
}

func (l *language) TxnKind(row map[string]string) string {
	if code := row[KeyTxnCode]; code != "" {
		return code + " " + row[KeyType]
	}
	return row[KeyType]
}

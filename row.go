package paypal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hartenfels/beancount-paypal/lang"
)

// Row is the canonical, typed form of one line of a PayPal activity export.
// All locale-specific field naming and number/date formatting has already
// been resolved by the active lang.Language.
type Row struct {
	Index int // zero-based position within the data section of the file

	Date      time.Time
	Name      string
	Narration string // first non-empty of item title, subject, note
	Kind      string // transaction kind label, e.g. "T0400 General Withdrawal - Bank Transfer"

	Currency string
	Gross    decimal.Decimal
	Fee      decimal.Decimal
	Net      decimal.Decimal

	From        string
	To          string
	TxnID       string
	ReferenceID string
	Invoice     string

	// Balance is the running account balance, when the export carries one.
	Balance *decimal.Decimal

	// Classifications derived from the transaction type.
	FromChecking bool
	ToChecking   bool
	Conversion   bool
	Memo         bool
	Refund       bool
}

// requiredFields must be present and non-empty on every row.
var requiredFields = []string{
	lang.KeyDate,
	lang.KeyCurrency,
	lang.KeyGross,
	lang.KeyFee,
	lang.KeyNet,
	lang.KeyTxnID,
}

// normalizeRow converts a key-normalized raw record into a Row. It is pure
// and deterministic; any missing or unparseable required field yields a
// MalformedRowError.
func normalizeRow(l lang.Language, raw map[string]string, index int) (Row, error) {
	for _, field := range requiredFields {
		if raw[field] == "" {
			return Row{}, &MalformedRowError{Index: index, Field: field}
		}
	}

	date, err := l.ParseDate(raw[lang.KeyDate])
	if err != nil {
		return Row{}, &MalformedRowError{Index: index, Field: lang.KeyDate, Err: err}
	}

	gross, err := l.ParseDecimal(raw[lang.KeyGross])
	if err != nil {
		return Row{}, &MalformedRowError{Index: index, Field: lang.KeyGross, Err: err}
	}

	fee, err := l.ParseDecimal(raw[lang.KeyFee])
	if err != nil {
		return Row{}, &MalformedRowError{Index: index, Field: lang.KeyFee, Err: err}
	}

	net, err := l.ParseDecimal(raw[lang.KeyNet])
	if err != nil {
		return Row{}, &MalformedRowError{Index: index, Field: lang.KeyNet, Err: err}
	}

	row := Row{
		Index:       index,
		Date:        date,
		Name:        raw[lang.KeyName],
		Narration:   narrationFor(raw),
		Kind:        l.TxnKind(raw),
		Currency:    raw[lang.KeyCurrency],
		Gross:       gross,
		Fee:         fee,
		Net:         net,
		From:        raw[lang.KeyFrom],
		To:          raw[lang.KeyTo],
		TxnID:       raw[lang.KeyTxnID],
		ReferenceID: raw[lang.KeyReferenceID],
		Invoice:     raw[lang.KeyInvoiceNumber],

		FromChecking: l.TxnFromChecking(raw),
		ToChecking:   l.TxnToChecking(raw),
		Conversion:   l.TxnCurrencyConversion(raw),
		Memo:         l.TxnMemo(raw),
		Refund:       l.TxnRefund(raw),
	}

	if s := raw[lang.KeyBalance]; s != "" {
		balance, err := l.ParseDecimal(s)
		if err != nil {
			return Row{}, &MalformedRowError{Index: index, Field: lang.KeyBalance, Err: err}
		}
		row.Balance = &balance
	}

	return row, nil
}

// narrationFor picks the most descriptive free-text field of the row.
func narrationFor(raw map[string]string) string {
	for _, key := range []string{lang.KeyItemTitle, lang.KeySubject, lang.KeyNote} {
		if raw[key] != "" {
			return raw[key]
		}
	}
	return ""
}

package paypal

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hartenfels/beancount-paypal/ast"
)

// Role tags the economic function of a posting within an entry.
type Role string

const (
	RoleFromCheckingTransfer Role = "from_checking_transfer"
	RoleToCheckingTransfer   Role = "to_checking_transfer"
	RoleReceive              Role = "receive"
	RoleSend                 Role = "send"
	RoleFee                  Role = "fee"
	RoleCategory             Role = "category"
)

// Posting is one monetary leg of an entry, before currency conversion.
type Posting struct {
	Role     Role
	Account  ast.Account
	Amount   decimal.Decimal
	Currency string
}

// conversionLeg is one of the two rows that together describe a currency
// exchange tied to an entry.
type conversionLeg struct {
	gross    decimal.Decimal
	currency string
}

// Entry accumulates all rows that describe one logical economic event.
// A PayPal export legitimately spreads a single transaction over several
// rows (the original movement plus linked fee, conversion, or reversal
// rows); the session folds those into one Entry, which is finalized exactly
// once into a single emitted transaction.
//
// Once an entry has postings its economic direction is locked: continuation
// rows contribute metadata only, except conversion legs, which always
// buffer.
type Entry struct {
	// TxnID is the transaction identifier of the row that created the entry.
	TxnID string

	Date      time.Time
	Payee     string
	Narration string
	Kind      string

	Postings []Posting

	txnIDs      []string // every folded transaction id, first-seen order
	conversions []conversionLeg
	parties     map[string]struct{}
	invoices    map[string]struct{}
}

// newEntry starts a logical event from its originating row.
func newEntry(row Row) *Entry {
	return &Entry{
		TxnID:     row.TxnID,
		Date:      row.Date,
		Payee:     row.Name,
		Narration: row.Narration,
		Kind:      row.Kind,
		txnIDs:    []string{row.TxnID},
		parties:   make(map[string]struct{}),
		invoices:  make(map[string]struct{}),
	}
}

// fold records a continuation row's transaction identifier.
func (e *Entry) fold(txnID string) {
	for _, id := range e.txnIDs {
		if id == txnID {
			return
		}
	}
	e.txnIDs = append(e.txnIDs, txnID)
}

// merge accumulates the row's counterparties and invoice number. This runs
// for every folded row, independent of which row created the postings.
func (e *Entry) merge(row Row, own map[string]bool) {
	for _, party := range []string{row.From, row.To} {
		if party != "" && !own[party] {
			e.parties[party] = struct{}{}
		}
	}
	if row.Invoice != "" {
		e.invoices[row.Invoice] = struct{}{}
	}
}

// post appends a monetary posting.
func (e *Entry) post(role Role, account ast.Account, amount decimal.Decimal, currency string) {
	e.Postings = append(e.Postings, Posting{
		Role:     role,
		Account:  account,
		Amount:   amount,
		Currency: currency,
	})
}

// bufferConversion records one conversion leg for resolution at finalize
// time. The two legs of an exchange are not guaranteed to be adjacent in
// the stream, so they are buffered rather than resolved eagerly.
func (e *Entry) bufferConversion(row Row) {
	e.conversions = append(e.conversions, conversionLeg{
		gross:    row.Gross,
		currency: row.Currency,
	})
}

// TxnIDs returns every transaction identifier folded into the entry, in
// first-seen order.
func (e *Entry) TxnIDs() []string {
	return e.txnIDs
}

// metadata derives the emitted transaction's metadata. Transaction ids keep
// their first-seen order; counterparties and invoice numbers are sorted
// lexicographically so identical inputs always yield identical output.
func (e *Entry) metadata() []*ast.Metadata {
	var meta []*ast.Metadata

	if e.Kind != "" {
		meta = append(meta, ast.NewMetadata("type", e.Kind))
	}

	meta = appendNumbered(meta, "txnid", e.txnIDs)
	meta = appendNumbered(meta, "party", sortedKeys(e.parties))
	meta = appendNumbered(meta, "invoiceno", sortedKeys(e.invoices))

	return meta
}

// appendNumbered emits key, key2, key3, ... for each value in order.
func appendNumbered(meta []*ast.Metadata, key string, values []string) []*ast.Metadata {
	for i, value := range values {
		k := key
		if i > 0 {
			k = fmt.Sprintf("%s%d", key, i+1)
		}
		meta = append(meta, ast.NewMetadata(k, value))
	}
	return meta
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package ast

// Transaction flags as used in emitted directives.
const (
	// FlagOkay marks a transaction as cleared/complete.
	FlagOkay = "*"
	// FlagPending marks a transaction as pending/uncleared.
	FlagPending = "!"
)

// Transaction records a financial transaction with a date, flag, optional
// payee, narration, and a list of postings. Each transaction should have
// postings that balance to zero under double-entry bookkeeping; this package
// does not enforce that, it only models the directive.
//
// Example:
//
//	2023-05-01 * "Cafe Mogador" "Lamb tagine with wine"
//	  Assets:PayPal       -37.45 USD
//	  Expenses:Restaurant  37.45 USD
type Transaction struct {
	Date      *Date
	Flag      string
	Payee     string
	Narration string

	withMetadata

	Postings []*Posting
}

var _ Directive = &Transaction{}

func (t *Transaction) date() *Date       { return t.Date }
func (t *Transaction) Directive() string { return "transaction" }

// Posting represents a single leg of a transaction, specifying an account
// and an amount. A posting with a nil Amount leaves the value to be inferred
// by the consuming ledger.
type Posting struct {
	Account Account
	Amount  *Amount

	withMetadata
}

// Balance asserts that an account should have a specific balance at the
// beginning of a given date. Importers derive these from statement rows that
// carry a running balance, letting the consuming ledger verify integrity
// against the source data.
//
// Example:
//
//	2023-05-02 balance Assets:PayPal 523.17 USD
type Balance struct {
	Date    *Date
	Account Account
	Amount  *Amount

	withMetadata
}

var _ Directive = &Balance{}

func (b *Balance) date() *Date       { return b.Date }
func (b *Balance) Directive() string { return "balance" }

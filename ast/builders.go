// Builder constructors for programmatically assembling directives, such as
// from CSV importers or other data sources. Complex types use functional
// options, following the usual Go idiom for configurable constructors.
package ast

import "github.com/shopspring/decimal"

// NewAmount creates a new Amount with the given value and currency.
// The value should be a decimal string (e.g., "100.50", "-42.00").
// No validation is performed on the value or currency.
func NewAmount(value, currency string) *Amount {
	return &Amount{
		Value:    value,
		Currency: currency,
	}
}

// NewAmountFromDecimal creates an Amount from a decimal value. Values are
// rendered with at least two fractional digits, the way ledger amounts are
// conventionally written; higher precision is preserved as-is.
func NewAmountFromDecimal(d decimal.Decimal, currency string) *Amount {
	value := d.String()
	if d.Exponent() >= -2 {
		value = d.StringFixed(2)
	}
	return &Amount{
		Value:    value,
		Currency: currency,
	}
}

// TransactionOption is a functional option for configuring a Transaction.
type TransactionOption func(*Transaction)

// NewTransaction creates a new Transaction with the given date and
// narration. Additional fields can be set using functional options.
//
// Example:
//
//	txn := ast.NewTransaction(date, "Lamb tagine with wine",
//	    ast.WithFlag(ast.FlagOkay),
//	    ast.WithPayee("Cafe Mogador"),
//	    ast.WithPostings(
//	        ast.NewPosting(expenses, ast.WithAmount("45.60", "USD")),
//	        ast.NewPosting(checking),
//	    ),
//	)
func NewTransaction(date *Date, narration string, opts ...TransactionOption) *Transaction {
	txn := &Transaction{
		Date:      date,
		Narration: narration,
	}

	for _, opt := range opts {
		opt(txn)
	}

	return txn
}

// WithFlag sets the transaction flag.
func WithFlag(flag string) TransactionOption {
	return func(t *Transaction) {
		t.Flag = flag
	}
}

// WithPayee sets the transaction payee.
func WithPayee(payee string) TransactionOption {
	return func(t *Transaction) {
		t.Payee = payee
	}
}

// WithTransactionMetadata adds metadata entries to the transaction.
func WithTransactionMetadata(metadata ...*Metadata) TransactionOption {
	return func(t *Transaction) {
		t.AddMetadata(metadata...)
	}
}

// WithPostings sets the postings for the transaction.
func WithPostings(postings ...*Posting) TransactionOption {
	return func(t *Transaction) {
		t.Postings = postings
	}
}

// PostingOption is a functional option for configuring a Posting.
type PostingOption func(*Posting)

// NewPosting creates a new Posting for the given account.
func NewPosting(account Account, opts ...PostingOption) *Posting {
	posting := &Posting{
		Account: account,
	}

	for _, opt := range opts {
		opt(posting)
	}

	return posting
}

// WithAmount sets the amount for a posting.
func WithAmount(value, currency string) PostingOption {
	return func(p *Posting) {
		p.Amount = NewAmount(value, currency)
	}
}

// WithDecimalAmount sets the amount for a posting from a decimal value.
func WithDecimalAmount(d decimal.Decimal, currency string) PostingOption {
	return func(p *Posting) {
		p.Amount = NewAmountFromDecimal(d, currency)
	}
}

// NewBalance creates a Balance assertion directive.
func NewBalance(date *Date, account Account, amount *Amount) *Balance {
	return &Balance{
		Date:    date,
		Account: account,
		Amount:  amount,
	}
}

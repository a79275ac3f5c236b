package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) *Date {
	t.Helper()
	d, err := NewDate(s)
	assert.NoError(t, err)
	return d
}

func TestNewAccount(t *testing.T) {
	valid := []string{
		"Assets:PayPal",
		"Assets:US:BofA:Checking",
		"Expenses:Financial:Fees",
		"Liabilities:CreditCard",
		"Income:Salary",
		"Equity:Opening-Balances",
		"Assets:2023:Savings",
	}
	for _, name := range valid {
		account, err := NewAccount(name)
		assert.NoError(t, err)
		assert.Equal(t, Account(name), account)
	}

	invalid := []string{
		"",
		"Assets",
		"Cash:Wallet",
		"Assets:lowercase",
		"Assets:-Dash",
		"assets:PayPal",
	}
	for _, name := range invalid {
		_, err := NewAccount(name)
		assert.Error(t, err)
	}
}

func TestNewDate(t *testing.T) {
	d := mustDate(t, "2023-05-01")
	assert.Equal(t, "2023-05-01", d.String())
	assert.False(t, d.IsZero())

	_, err := NewDate("01/05/2023")
	assert.Error(t, err)

	var nilDate *Date
	assert.Equal(t, "", nilDate.String())
	assert.True(t, nilDate.IsZero())
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "48.50 USD", NewAmount("48.50", "USD").String())

	var nilAmount *Amount
	assert.Equal(t, "", nilAmount.String())
}

func TestNewAmountFromDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"48.50", "48.50"},
		{"-91.00", "-91.00"},
		{"1000", "1000.00"},
		{"0.5", "0.50"},
		{"1.8274", "1.8274"},
	}

	for _, test := range tests {
		d, err := decimal.NewFromString(test.input)
		assert.NoError(t, err)
		assert.Equal(t, test.want, NewAmountFromDecimal(d, "USD").Value)
	}
}

func TestNewTransaction(t *testing.T) {
	txn := NewTransaction(mustDate(t, "2023-05-01"), "Lamb tagine with wine",
		WithFlag(FlagOkay),
		WithPayee("Cafe Mogador"),
		WithTransactionMetadata(NewMetadata("txnid", "TX1")),
		WithPostings(
			NewPosting("Expenses:Restaurant", WithAmount("37.45", "USD")),
			NewPosting("Assets:PayPal"),
		),
	)

	assert.Equal(t, "*", txn.Flag)
	assert.Equal(t, "Cafe Mogador", txn.Payee)
	assert.Equal(t, "Lamb tagine with wine", txn.Narration)
	assert.Equal(t, 1, len(txn.Metadata))
	assert.Equal(t, 2, len(txn.Postings))
	assert.Equal(t, "37.45 USD", txn.Postings[0].Amount.String())
	assert.Zero(t, txn.Postings[1].Amount)
}

func TestSortDirectives(t *testing.T) {
	may1 := mustDate(t, "2023-05-01")
	may2 := mustDate(t, "2023-05-02")

	first := NewTransaction(may1, "first")
	second := NewTransaction(may1, "second")
	later := NewTransaction(may2, "later")
	balance := NewBalance(may1, "Assets:PayPal", NewAmount("10.00", "USD"))

	directives := Directives{later, balance, first, second}
	SortDirectives(directives)

	// Same-day transactions keep their relative order and precede the
	// balance assertion for that day.
	assert.Equal(t, Directives{first, second, balance, later}, directives)
}

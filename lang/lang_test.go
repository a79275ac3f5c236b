package lang

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

var enRequiredHeader = []string{
	"Date", "Time", "TimeZone", "Name", "Type", "Status", "Currency",
	"Gross", "Fee", "Net", "From Email Address", "To Email Address",
	"Transaction ID", "Reference Txn ID", "Receipt ID", "Balance Impact",
}

func TestName(t *testing.T) {
	assert.Equal(t, "en", EN().Name())
	assert.Equal(t, "de", DE().Name())
}

func TestIdentify_RequiredFieldsOnly(t *testing.T) {
	// Older exports omit the optional columns entirely.
	assert.True(t, EN().Identify(enRequiredHeader))
}

func TestIdentify_MissingRequiredField(t *testing.T) {
	header := make([]string, 0, len(enRequiredHeader))
	for _, h := range enRequiredHeader {
		if h != "Gross" {
			header = append(header, h)
		}
	}
	assert.False(t, EN().Identify(header))
}

func TestIdentify_ForeignLocale(t *testing.T) {
	assert.False(t, DE().Identify(enRequiredHeader))
}

func TestNormalizeKeys(t *testing.T) {
	row := EN().NormalizeKeys(map[string]string{
		"Date":             "01/05/2023",
		"Gross":            "50,00",
		"To Email Address": "owner@example.com",
		"Something Else":   "kept",
	})

	assert.Equal(t, "01/05/2023", row[KeyDate])
	assert.Equal(t, "50,00", row[KeyGross])
	assert.Equal(t, "owner@example.com", row[KeyTo])
	assert.Equal(t, "kept", row["Something Else"])
}

func TestParseDate(t *testing.T) {
	en, err := EN().ParseDate("01/05/2023")
	assert.NoError(t, err)
	assert.Equal(t, "2023-05-01", en.Format("2006-01-02"))

	de, err := DE().ParseDate("01.05.2023")
	assert.NoError(t, err)
	assert.Equal(t, "2023-05-01", de.Format("2006-01-02"))

	_, err = EN().ParseDate("2023-05-01")
	assert.Error(t, err)
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"50,00", "50"},
		{"-1,50", "-1.5"},
		{"1.234,56", "1234.56"},
		{"0,00", "0"},
	}

	for _, test := range tests {
		d, err := EN().ParseDecimal(test.input)
		assert.NoError(t, err)
		assert.Equal(t, test.want, d.String())
	}

	_, err := EN().ParseDecimal("fifty")
	assert.Error(t, err)
}

func TestTxnClassificationByTitle(t *testing.T) {
	en := EN()

	assert.True(t, en.TxnFromChecking(map[string]string{KeyType: "Bank Deposit to PP Account "}))
	assert.True(t, en.TxnToChecking(map[string]string{KeyType: "General Withdrawal - Bank Transfer"}))
	assert.True(t, en.TxnCurrencyConversion(map[string]string{KeyType: "General Currency Conversion"}))
	assert.True(t, en.TxnRefund(map[string]string{KeyType: "Payment Refund"}))
	assert.True(t, en.TxnInvoiceSent(map[string]string{KeyType: "Invoice Sent"}))
	assert.False(t, en.TxnFromChecking(map[string]string{KeyType: "Website Payment"}))

	de := DE()

	assert.True(t, de.TxnFromChecking(map[string]string{KeyType: "Bankgutschrift auf PayPal-Konto"}))
	assert.True(t, de.TxnToChecking(map[string]string{KeyType: "Allgemeine Abbuchung"}))
	assert.True(t, de.TxnCurrencyConversion(map[string]string{KeyType: "Allgemeine Währungsumrechnung"}))
	assert.True(t, de.TxnRefund(map[string]string{KeyType: "Rückzahlung"}))
	assert.True(t, de.TxnInvoiceSent(map[string]string{KeyType: "Rechnung gesendet"}))
}

func TestTxnClassificationByCode(t *testing.T) {
	// T-codes win over the localized title, so an export with codes
	// classifies the same under every locale.
	for _, l := range []Language{EN(), DE()} {
		assert.True(t, l.TxnFromChecking(map[string]string{KeyTxnCode: "T0300"}))
		assert.True(t, l.TxnToChecking(map[string]string{KeyTxnCode: "T0400"}))
		assert.True(t, l.TxnCurrencyConversion(map[string]string{KeyTxnCode: "T0200"}))
		assert.True(t, l.TxnCurrencyConversion(map[string]string{KeyTxnCode: "T0201"}))
		assert.True(t, l.TxnCurrencyConversion(map[string]string{KeyTxnCode: "T0202"}))
		assert.True(t, l.TxnRefund(map[string]string{KeyTxnCode: "T1107"}))
		assert.False(t, l.TxnRefund(map[string]string{KeyTxnCode: "T0006"}))
	}
}

func TestTxnMemo(t *testing.T) {
	assert.True(t, EN().TxnMemo(map[string]string{KeyBalanceImpact: "Memo"}))
	assert.False(t, EN().TxnMemo(map[string]string{KeyBalanceImpact: "Credit"}))
}

func TestTxnKind(t *testing.T) {
	en := EN()

	kind := en.TxnKind(map[string]string{
		KeyTxnCode: "T0400",
		KeyType:    "General Withdrawal - Bank Transfer",
	})
	assert.Equal(t, "T0400 General Withdrawal - Bank Transfer", kind)

	kind = en.TxnKind(map[string]string{KeyType: "Website Payment"})
	assert.Equal(t, "Website Payment", kind)
}

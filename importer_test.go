package paypal

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/hartenfels/beancount-paypal/ast"
	"github.com/hartenfels/beancount-paypal/lang"
)

var enHeader = []string{
	"Date", "Time", "TimeZone", "Name", "Type", "Status", "Currency",
	"Gross", "Fee", "Net", "From Email Address", "To Email Address",
	"Transaction ID", "Reference Txn ID", "Receipt ID", "Balance Impact",
	"Item Title", "Subject", "Note", "Balance", "Transaction Event Code",
	"Invoice Number",
}

var deHeader = []string{
	"Datum", "Uhrzeit", "Zeitzone", "Name", "Typ", "Status", "Währung",
	"Brutto", "Gebühr", "Netto", "Absender E-Mail-Adresse",
	"Empfänger E-Mail-Adresse", "Transaktionscode",
	"Zugehöriger Transaktionscode", "Empfangsnummer",
	"Auswirkung auf Guthaben", "Artikelbezeichnung", "Betreff", "Hinweis",
	"Guthaben", "Transaktionsereigniscode", "Rechnungsnummer",
}

// buildCSV renders rows against a header, quoting values as needed. Fields
// absent from a row come out empty, like PayPal leaves them.
func buildCSV(t *testing.T, header []string, rows []map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	assert.NoError(t, w.Write(header))

	for _, row := range rows {
		record := make([]string, len(header))
		for i, field := range header {
			record[i] = row[field]
		}
		assert.NoError(t, w.Write(record))
	}

	w.Flush()
	assert.NoError(t, w.Error())
	return buf.String()
}

func TestNew_RequiresEmail(t *testing.T) {
	_, err := New(Config{
		Account:           "Assets:PayPal",
		CheckingAccount:   "Assets:Checking",
		CommissionAccount: "Expenses:Financial:Fees",
	})
	assert.Error(t, err)
}

func TestNew_ValidatesAccounts(t *testing.T) {
	_, err := New(Config{
		Email:             []string{"owner@example.com"},
		Account:           "paypal",
		CheckingAccount:   "Assets:Checking",
		CommissionAccount: "Expenses:Financial:Fees",
	})
	assert.Error(t, err)
}

func TestImporter_Account(t *testing.T) {
	imp := testImporter(t)
	assert.Equal(t, ast.Account("Assets:PayPal"), imp.Account())
}

func TestIdentify_MatchesEnglishExport(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, enHeader, []map[string]string{
		{
			"Date":               "01/05/2023",
			"Type":               "Website Payment",
			"Currency":           "USD",
			"Gross":              "50,00",
			"Fee":                "-1,50",
			"Net":                "48,50",
			"From Email Address": "jane@example.com",
			"To Email Address":   "owner@example.com",
			"Transaction ID":     "TX1",
		},
	})

	// PayPal exports start with a UTF-8 byte order mark.
	ok, err := imp.Identify(strings.NewReader("\xef\xbb\xbf" + content))
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestIdentify_RejectsForeignHeader(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, deHeader, []map[string]string{
		{"Empfänger E-Mail-Adresse": "owner@example.com"},
	})

	ok, err := imp.Identify(strings.NewReader(content))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentify_RejectsUnknownAccountOwner(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, enHeader, []map[string]string{
		{
			"From Email Address": "jane@example.com",
			"To Email Address":   "shop@example.com",
		},
	})

	ok, err := imp.Identify(strings.NewReader(content))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentify_UndecodableInputIsNotRecognized(t *testing.T) {
	imp := testImporter(t)

	ok, err := imp.Identify(bytes.NewReader([]byte{0xff, 0xfe, 0x00}))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentify_German(t *testing.T) {
	imp := testImporter(t, func(cfg *Config) {
		cfg.Language = lang.DE()
	})

	content := buildCSV(t, deHeader, []map[string]string{
		{
			"Datum":                    "01.05.2023",
			"Absender E-Mail-Adresse":  "owner@example.com",
			"Empfänger E-Mail-Adresse": "shop@example.com",
		},
	})

	ok, err := imp.Identify(strings.NewReader(content))
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestExtract_EnglishEndToEnd(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, enHeader, []map[string]string{
		{
			"Date":               "01/05/2023",
			"Name":               "Jane Doe",
			"Type":               "Website Payment",
			"Currency":           "USD",
			"Gross":              "50,00",
			"Fee":                "-1,50",
			"Net":                "48,50",
			"From Email Address": "jane@example.com",
			"To Email Address":   "owner@example.com",
			"Transaction ID":     "TX1",
			"Item Title":         "Widget",
			"Balance":            "148,50",
			"Invoice Number":     "INV-1",
		},
		// Sending the invoice itself moved no money; only its payment did.
		{
			"Date":           "01/05/2023",
			"Name":           "Jane Doe",
			"Type":           "Invoice Sent",
			"Currency":       "USD",
			"Gross":          "0,00",
			"Fee":            "0,00",
			"Net":            "0,00",
			"Transaction ID": "TX2",
			"Invoice Number": "INV-1",
		},
		{
			"Date":               "02/05/2023",
			"Name":               "Merchant",
			"Type":               "General Payment",
			"Currency":           "USD",
			"Gross":              "-100,00",
			"Fee":                "0,00",
			"Net":                "-100,00",
			"From Email Address": "owner@example.com",
			"To Email Address":   "merchant@example.com",
			"Transaction ID":     "TX3",
			"Note":               "Lunch",
		},
		{
			"Date":             "02/05/2023",
			"Type":             "General Currency Conversion",
			"Currency":         "USD",
			"Gross":            "-100,00",
			"Fee":              "0,00",
			"Net":              "-100,00",
			"Transaction ID":   "TX4",
			"Reference Txn ID": "TX3",
		},
		{
			"Date":             "02/05/2023",
			"Type":             "General Currency Conversion",
			"Currency":         "EUR",
			"Gross":            "91,00",
			"Fee":              "0,00",
			"Net":              "91,00",
			"Transaction ID":   "TX5",
			"Reference Txn ID": "TX3",
			"Balance":          "139,50",
		},
	})

	directives, err := imp.Extract(context.Background(), "paypal.csv", strings.NewReader(content))
	assert.NoError(t, err)
	assert.Equal(t, 3, len(directives))

	payment := directives[0].(*ast.Transaction)
	assert.Equal(t, "2023-05-01", payment.Date.String())
	assert.Equal(t, "Jane Doe", payment.Payee)
	assert.Equal(t, "Widget", payment.Narration)
	assert.Equal(t, 2, len(payment.Postings))
	assert.Equal(t, ast.Account("Assets:PayPal"), payment.Postings[0].Account)
	assert.Equal(t, "48.50", payment.Postings[0].Amount.Value)
	assert.Equal(t, "USD", payment.Postings[0].Amount.Currency)
	assert.Equal(t, ast.Account("Expenses:Financial:Fees"), payment.Postings[1].Account)
	assert.Equal(t, "1.50", payment.Postings[1].Amount.Value)

	purchase := directives[1].(*ast.Transaction)
	assert.Equal(t, "Merchant", purchase.Payee)
	assert.Equal(t, "Lunch", purchase.Narration)
	assert.Equal(t, 1, len(purchase.Postings))
	assert.Equal(t, "-91.00", purchase.Postings[0].Amount.Value)
	assert.Equal(t, "EUR", purchase.Postings[0].Amount.Currency)

	values := make(map[string]string, len(purchase.Metadata))
	for _, m := range purchase.Metadata {
		values[m.Key] = m.Value
	}
	assert.Equal(t, "TX3", values["txnid"])
	assert.Equal(t, "TX4", values["txnid2"])
	assert.Equal(t, "TX5", values["txnid3"])
	assert.Equal(t, "merchant@example.com", values["party"])

	balance := directives[2].(*ast.Balance)
	assert.Equal(t, "2023-05-03", balance.Date.String())
	assert.Equal(t, ast.Account("Assets:PayPal"), balance.Account)
	assert.Equal(t, "139.50", balance.Amount.Value)
	assert.Equal(t, "EUR", balance.Amount.Currency)
}

func TestExtract_GermanWithdrawal(t *testing.T) {
	imp := testImporter(t, func(cfg *Config) {
		cfg.Language = lang.DE()
	})

	content := buildCSV(t, deHeader, []map[string]string{
		{
			"Datum":            "01.05.2023",
			"Typ":              "Allgemeine Abbuchung",
			"Währung":          "EUR",
			"Brutto":           "-1.250,00",
			"Gebühr":           "0,00",
			"Netto":            "-1.250,00",
			"Transaktionscode": "TX1",
			"Guthaben":         "12,34",
		},
	})

	directives, err := imp.Extract(context.Background(), "paypal.csv", strings.NewReader(content))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(directives))

	txn := directives[0].(*ast.Transaction)
	assert.Equal(t, "2023-05-01", txn.Date.String())
	assert.Equal(t, 2, len(txn.Postings))
	assert.Equal(t, ast.Account("Assets:PayPal"), txn.Postings[0].Account)
	assert.Equal(t, "-1250.00", txn.Postings[0].Amount.Value)
	assert.Equal(t, ast.Account("Assets:Checking"), txn.Postings[1].Account)
	assert.Equal(t, "1250.00", txn.Postings[1].Amount.Value)

	balance := directives[1].(*ast.Balance)
	assert.Equal(t, "2023-05-02", balance.Date.String())
	assert.Equal(t, "12.34", balance.Amount.Value)
}

func TestExtract_MalformedRowAborts(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, enHeader, []map[string]string{
		{
			"Date":           "not-a-date",
			"Currency":       "USD",
			"Gross":          "1,00",
			"Fee":            "0,00",
			"Net":            "1,00",
			"Transaction ID": "TX1",
		},
	})

	directives, err := imp.Extract(context.Background(), "paypal.csv", strings.NewReader(content))
	assert.Zero(t, directives)

	var rowErr *MalformedRowError
	assert.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 0, rowErr.Index)
	assert.Equal(t, lang.KeyDate, rowErr.Field)
}

func TestExtract_MissingRequiredFieldAborts(t *testing.T) {
	imp := testImporter(t)

	content := buildCSV(t, enHeader, []map[string]string{
		{
			"Date":     "01/05/2023",
			"Currency": "USD",
			"Gross":    "1,00",
			"Fee":      "0,00",
			"Net":      "1,00",
			// No transaction id.
		},
	})

	_, err := imp.Extract(context.Background(), "paypal.csv", strings.NewReader(content))

	var rowErr *MalformedRowError
	assert.True(t, errors.As(err, &rowErr))
	assert.Equal(t, lang.KeyTxnID, rowErr.Field)
}

func TestExtract_UndecodableInputFails(t *testing.T) {
	imp := testImporter(t)

	_, err := imp.Extract(context.Background(), "paypal.csv", bytes.NewReader([]byte{0xff, 0xfe, 0x00}))

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "paypal.csv", decodeErr.Filename)
}

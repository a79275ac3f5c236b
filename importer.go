// Package paypal extracts Beancount directives from PayPal activity exports.
//
// A PayPal CSV describes one ledger event per row, but a single economic
// transaction routinely spans several rows: a payment plus its currency
// conversion legs, a movement plus its reversal, a transfer plus its fee.
// The importer reconciles those related rows into one balanced transaction
// each, and appends a trailing balance assertion derived from the last row
// carrying a running balance.
//
// Construct an Importer with New, then use Identify to gate files and
// Extract to produce directives:
//
//	imp, err := paypal.New(paypal.Config{
//	    Email:             []string{"owner@example.com"},
//	    Account:           "Assets:PayPal",
//	    CheckingAccount:   "Assets:Checking",
//	    CommissionAccount: "Expenses:Financial:Fees",
//	    Language:          lang.DE(),
//	})
package paypal

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hartenfels/beancount-paypal/ast"
	"github.com/hartenfels/beancount-paypal/lang"
	"github.com/hartenfels/beancount-paypal/telemetry"
)

// Config configures an Importer.
type Config struct {
	// Email lists the owner's PayPal email addresses. A PayPal account can
	// have several; any of them counts as "own" when classifying rows and
	// admitting files. At least one is required.
	Email []string

	// Account is the PayPal asset account, e.g. "Assets:PayPal".
	Account string

	// CheckingAccount is the linked bank account transfers move against.
	CheckingAccount string

	// CommissionAccount receives PayPal's fees.
	CommissionAccount string

	// Language selects the locale strategy. Defaults to lang.EN().
	Language lang.Language

	// PreProcess, when set, runs on the full ordered entry list before
	// conversion resolution. It may mutate the entries in place.
	PreProcess func([]*Entry)

	// PostBalance, when set, runs on the trailing balance assertion before
	// it is appended.
	PostBalance func(*ast.Balance)

	// PostProcess, when set, runs on the complete emitted directive list.
	PostProcess func(ast.Directives)

	// Categorize, when set, maps a row to an expense account. A non-empty
	// result appends a categorization counter-posting to the row's entry.
	Categorize func(Row) ast.Account
}

// Importer extracts Beancount directives from PayPal CSV exports. It is
// stateless across files; every Extract call runs in its own session.
type Importer struct {
	emails            map[string]bool
	account           ast.Account
	checkingAccount   ast.Account
	commissionAccount ast.Account
	language          lang.Language

	preProcess  func([]*Entry)
	postBalance func(*ast.Balance)
	postProcess func(ast.Directives)
	categorize  func(Row) ast.Account
}

// New validates the configuration and creates an Importer.
func New(cfg Config) (*Importer, error) {
	if len(cfg.Email) == 0 {
		return nil, fmt.Errorf("at least one email address is required")
	}

	account, err := ast.NewAccount(cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	checking, err := ast.NewAccount(cfg.CheckingAccount)
	if err != nil {
		return nil, fmt.Errorf("invalid checking account: %w", err)
	}

	commission, err := ast.NewAccount(cfg.CommissionAccount)
	if err != nil {
		return nil, fmt.Errorf("invalid commission account: %w", err)
	}

	language := cfg.Language
	if language == nil {
		language = lang.EN()
	}

	emails := make(map[string]bool, len(cfg.Email))
	for _, email := range cfg.Email {
		emails[email] = true
	}

	return &Importer{
		emails:            emails,
		account:           account,
		checkingAccount:   checking,
		commissionAccount: commission,
		language:          language,
		preProcess:        cfg.PreProcess,
		postBalance:       cfg.PostBalance,
		postProcess:       cfg.PostProcess,
		categorize:        cfg.Categorize,
	}, nil
}

// Account returns the PayPal asset account the importer files against.
func (imp *Importer) Account() ast.Account {
	return imp.account
}

// Identify reports whether the stream looks like a PayPal activity export
// for this importer: the header must match the active locale's field set,
// and at least one row must name one of the owner's addresses as sender or
// recipient. Undecodable input is simply not recognized.
func (imp *Importer) Identify(r io.Reader) (bool, error) {
	header, rows, err := readRows("", r)
	if err != nil {
		if _, ok := err.(*DecodeError); ok {
			return false, nil
		}
		return false, err
	}

	if !imp.language.Identify(header) {
		return false, nil
	}

	for _, raw := range rows {
		row := imp.language.NormalizeKeys(raw)
		if imp.emails[row[lang.KeyFrom]] || imp.emails[row[lang.KeyTo]] {
			return true, nil
		}
	}

	return false, nil
}

// Extract reconciles the export into an ordered list of transactions,
// followed by at most one balance assertion. Failures abort the whole
// extraction; no partially built list is ever returned.
func (imp *Importer) Extract(ctx context.Context, filename string, r io.Reader) (ast.Directives, error) {
	timer := telemetry.FromContext(ctx).Start("extract " + filepath.Base(filename))
	defer timer.End()

	readTimer := timer.Child("read")
	_, rows, err := readRows(filename, r)
	readTimer.End()
	if err != nil {
		return nil, err
	}

	reconcileTimer := timer.Child("reconcile")
	s := newSession(imp)
	for index, raw := range rows {
		normalized := imp.language.NormalizeKeys(raw)

		// Merely sending an invoice doesn't affect balances; only its
		// payment does, which shows up in a separate row.
		if imp.language.TxnInvoiceSent(normalized) {
			continue
		}

		row, err := normalizeRow(imp.language, normalized, index)
		if err != nil {
			reconcileTimer.End()
			return nil, err
		}

		s.add(row)
	}
	reconcileTimer.End()

	finalizeTimer := timer.Child("finalize")
	defer finalizeTimer.End()
	return s.finish()
}

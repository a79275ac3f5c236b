package paypal

import (
	"github.com/shopspring/decimal"

	"github.com/hartenfels/beancount-paypal/ast"
)

// session holds the state of one extraction run: the grouping index from
// transaction identifiers to their in-progress entries, the entries in
// creation order, and the last row seen with a balance. A session is created
// per file inside Extract and torn down when finish returns; no extraction
// state outlives a single invocation.
type session struct {
	imp     *Importer
	entries []*Entry
	index   map[string]*Entry

	// lastBalance is the last balance-bearing row by stream order, across
	// the whole file, not per entry. It seeds the trailing balance
	// assertion.
	lastBalance *Row
}

func newSession(imp *Importer) *session {
	return &session{
		imp:   imp,
		index: make(map[string]*Entry),
	}
}

// add routes one row: either it continues the entry its identifiers point
// at, or it starts a new one. Either way the entry ends up indexed under
// both the row's transaction id and its reference id, so later rows
// referencing either resolve to it.
func (s *session) add(row Row) {
	e := s.lookup(row)
	if e == nil {
		e = newEntry(row)
		s.entries = append(s.entries, e)
	} else {
		e.fold(row.TxnID)
	}

	e.merge(row, s.imp.emails)
	s.classify(e, row)

	s.index[row.TxnID] = e
	if row.ReferenceID != "" {
		s.index[row.ReferenceID] = e
	}

	if row.Balance != nil {
		r := row
		s.lastBalance = &r
	}
}

// lookup finds the entry a row continues, preferring the reference id over
// the transaction id. Refund rows always start a fresh entry: a refund
// references the payment it reverses, but it is its own economic event.
func (s *session) lookup(row Row) *Entry {
	if row.Refund {
		return nil
	}
	if row.ReferenceID != "" {
		if e, ok := s.index[row.ReferenceID]; ok {
			return e
		}
	}
	if e, ok := s.index[row.TxnID]; ok {
		return e
	}
	return nil
}

// classify applies the row's economic role to the entry. Memo rows never
// contribute movement, and conversion legs always buffer, regardless of
// existing postings. For everything else the first substantive
// classification wins: once an entry has postings its direction is locked
// and later rows only grow metadata, preventing duplicate postings from
// rows that describe the same movement twice.
func (s *session) classify(e *Entry, row Row) {
	switch {
	case row.Memo:
		return
	case row.Conversion:
		e.bufferConversion(row)
		return
	}

	if len(e.Postings) > 0 {
		return
	}

	switch {
	case row.FromChecking:
		e.post(RoleFromCheckingTransfer, s.imp.checkingAccount, row.Gross.Neg(), row.Currency)
		e.post(RoleFromCheckingTransfer, s.imp.account, row.Net, row.Currency)

	case row.ToChecking:
		e.post(RoleToCheckingTransfer, s.imp.account, row.Gross, row.Currency)
		e.post(RoleToCheckingTransfer, s.imp.checkingAccount, row.Net.Neg(), row.Currency)

	case s.imp.emails[row.To]:
		e.post(RoleReceive, s.imp.account, row.Net, row.Currency)
		s.categorize(e, row, row.Gross)

	default:
		e.post(RoleSend, s.imp.account, row.Net, row.Currency)
		s.categorize(e, row, row.Net)
	}

	if !row.Fee.IsZero() {
		e.post(RoleFee, s.imp.commissionAccount, row.Fee.Abs(), row.Currency)
	}
}

// categorize appends the counter-posting for the expense account returned by
// the user's categorizer, if any.
func (s *session) categorize(e *Entry, row Row, value decimal.Decimal) {
	if s.imp.categorize == nil {
		return
	}
	if account := s.imp.categorize(row); account != "" {
		e.post(RoleCategory, account, value.Neg(), row.Currency)
	}
}

// finish runs the finalization sequence, strictly ordered: pre-process hook,
// conversion resolution and emission per entry in creation order, the
// trailing balance assertion with its hook, then the post-process hook on
// the complete list.
func (s *session) finish() (ast.Directives, error) {
	if s.imp.preProcess != nil {
		s.imp.preProcess(s.entries)
	}

	directives := make(ast.Directives, 0, len(s.entries)+1)

	for _, e := range s.entries {
		convert, err := e.converter()
		if err != nil {
			return nil, err
		}

		txn := ast.NewTransaction(ast.NewDateFromTime(e.Date), e.Narration,
			ast.WithFlag(ast.FlagOkay),
			ast.WithPayee(e.Payee),
			ast.WithTransactionMetadata(e.metadata()...),
		)

		for _, p := range e.Postings {
			value, currency := convert(p.Amount, p.Currency)
			txn.Postings = append(txn.Postings,
				ast.NewPosting(p.Account, ast.WithDecimalAmount(value, currency)))
		}

		directives = append(directives, txn)
	}

	if s.lastBalance != nil {
		balance := ast.NewBalance(
			ast.NewDateFromTime(s.lastBalance.Date.AddDate(0, 0, 1)),
			s.imp.account,
			ast.NewAmountFromDecimal(*s.lastBalance.Balance, s.lastBalance.Currency),
		)
		if s.imp.postBalance != nil {
			s.imp.postBalance(balance)
		}
		directives = append(directives, balance)
	}

	if s.imp.postProcess != nil {
		s.imp.postProcess(directives)
	}

	return directives, nil
}

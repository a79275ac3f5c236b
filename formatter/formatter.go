// Package formatter renders Beancount directives with proper alignment.
//
// It only deals with programmatically built ASTs (see the ast package), so
// there is no source text to preserve: output is generated from scratch with
// numbers right-aligned so that all currencies start at the same column,
// matching bean-format behavior.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hartenfels/beancount-paypal/ast"
)

const (
	// DefaultCurrencyColumn is the default column position for currency
	// alignment (matches bean-format behavior).
	DefaultCurrencyColumn = 52

	// DefaultIndentation is the indentation for postings and metadata.
	DefaultIndentation = 2

	// MinimumSpacing is the minimum number of spaces between account/number
	// and currency.
	MinimumSpacing = 2

	// DateWidth is the width of a formatted date (YYYY-MM-DD).
	DateWidth = 10

	// BalanceKeywordWidth is the width of the "balance" keyword plus a space.
	BalanceKeywordWidth = 8
)

// escapeString escapes double quotes and backslashes for Beancount strings.
func escapeString(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 10)

	for _, c := range s {
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteRune(c)
		}
	}

	return buf.String()
}

// Formatter handles formatting of Beancount directives with aligned amounts.
type Formatter struct {
	// CurrencyColumn is the target column for currency alignment.
	// If 0, a good value is calculated from the contents.
	CurrencyColumn int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithCurrencyColumn sets a specific column for currency alignment.
func WithCurrencyColumn(col int) Option {
	return func(f *Formatter) {
		f.CurrencyColumn = col
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// calculateCurrencyColumn performs a single pass through the directives to
// find the widest prefix+number combination.
func calculateCurrencyColumn(directives ast.Directives) int {
	column := 0

	for _, directive := range directives {
		switch d := directive.(type) {
		case *ast.Transaction:
			for _, posting := range d.Postings {
				if posting.Amount == nil {
					continue
				}
				prefix := DefaultIndentation + runewidth.StringWidth(string(posting.Account)) + MinimumSpacing
				column = max(column, prefix+len(posting.Amount.Value))
			}

		case *ast.Balance:
			if d.Amount == nil {
				continue
			}
			prefix := DateWidth + 1 + BalanceKeywordWidth + runewidth.StringWidth(string(d.Account)) + MinimumSpacing
			column = max(column, prefix+len(d.Amount.Value))
		}
	}

	if column == 0 {
		return DefaultCurrencyColumn
	}
	return column + MinimumSpacing
}

// Format renders the directives to the writer, separated by blank lines.
func (f *Formatter) Format(directives ast.Directives, w io.Writer) error {
	column := f.CurrencyColumn
	if column == 0 {
		column = calculateCurrencyColumn(directives)
	}

	var buf strings.Builder
	buf.Grow(len(directives) * 100)

	for i, directive := range directives {
		if i > 0 {
			buf.WriteByte('\n')
		}

		switch d := directive.(type) {
		case *ast.Transaction:
			f.formatTransaction(d, column, &buf)
		case *ast.Balance:
			f.formatBalance(d, column, &buf)
		default:
			return fmt.Errorf("cannot format directive %q", directive.Directive())
		}
	}

	_, err := w.Write([]byte(buf.String()))
	return err
}

// writeAligned writes a prefix, then the amount padded so its currency
// starts at the target column. The prefix keeps at least MinimumSpacing
// before the number.
func writeAligned(buf *strings.Builder, prefix string, amount *ast.Amount, column int) {
	buf.WriteString(prefix)

	padding := column - 1 - runewidth.StringWidth(prefix) - len(amount.Value) - 1
	if padding < MinimumSpacing {
		padding = MinimumSpacing
	}
	buf.WriteString(strings.Repeat(" ", padding))

	buf.WriteString(amount.Value)
	buf.WriteByte(' ')
	buf.WriteString(amount.Currency)
	buf.WriteByte('\n')
}

func (f *Formatter) formatTransaction(t *ast.Transaction, column int, buf *strings.Builder) {
	buf.WriteString(t.Date.String())
	buf.WriteByte(' ')
	if t.Flag != "" {
		buf.WriteString(t.Flag)
	} else {
		buf.WriteString("txn")
	}
	if t.Payee != "" {
		buf.WriteString(` "`)
		buf.WriteString(escapeString(t.Payee))
		buf.WriteByte('"')
	}
	buf.WriteString(` "`)
	buf.WriteString(escapeString(t.Narration))
	buf.WriteString("\"\n")

	for _, m := range t.Metadata {
		buf.WriteString(strings.Repeat(" ", DefaultIndentation))
		buf.WriteString(m.Key)
		buf.WriteString(`: "`)
		buf.WriteString(escapeString(m.Value))
		buf.WriteString("\"\n")
	}

	for _, posting := range t.Postings {
		prefix := strings.Repeat(" ", DefaultIndentation) + string(posting.Account)
		if posting.Amount == nil {
			buf.WriteString(prefix)
			buf.WriteByte('\n')
			continue
		}
		writeAligned(buf, prefix, posting.Amount, column)
	}
}

func (f *Formatter) formatBalance(b *ast.Balance, column int, buf *strings.Builder) {
	prefix := b.Date.String() + " balance " + string(b.Account)
	writeAligned(buf, prefix, b.Amount, column)

	for _, m := range b.Metadata {
		buf.WriteString(strings.Repeat(" ", DefaultIndentation))
		buf.WriteString(m.Key)
		buf.WriteString(`: "`)
		buf.WriteString(escapeString(m.Value))
		buf.WriteString("\"\n")
	}
}

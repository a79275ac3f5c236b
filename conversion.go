package paypal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// convertFunc converts a posting amount into the entry's final currency.
type convertFunc func(amount decimal.Decimal, currency string) (decimal.Decimal, string)

// identityConvert leaves amounts untouched for entries without conversions.
func identityConvert(amount decimal.Decimal, currency string) (decimal.Decimal, string) {
	return amount, currency
}

// snapTolerance absorbs rounding noise when the rate-multiplied amount lands
// within a tenth of a cent of the exchanged total.
var snapTolerance = decimal.New(1, -3) // 0.001

var (
	oneHundred = decimal.NewFromInt(100)
	oneHalf    = decimal.New(5, -1) // 0.5
)

// converter resolves the entry's buffered conversion legs into the function
// applied to every posting at finalize time.
//
// A currency exchange appears in the export as exactly two rows: one in the
// currency the event's postings were recorded in (the foreign leg, validated
// against the signed non-fee posting total) and one in the currency the
// money became (the own leg). The rate is derived solely from that pair;
// there is no historical rate lookup.
func (e *Entry) converter() (convertFunc, error) {
	switch len(e.conversions) {
	case 0:
		return identityConvert, nil
	case 2:
	default:
		return nil, &InvalidConversionError{
			TxnID:  e.TxnID,
			Reason: fmt.Sprintf("expected 2 conversion legs, found %d", len(e.conversions)),
		}
	}

	posted, err := e.postingCurrency()
	if err != nil {
		return nil, err
	}

	a, b := e.conversions[0], e.conversions[1]

	var own, foreign conversionLeg
	switch {
	case a.currency == posted && b.currency == posted:
		return nil, &InvalidConversionError{
			TxnID:  e.TxnID,
			Reason: fmt.Sprintf("both conversion legs are in the posting currency %s", posted),
		}
	case a.currency == posted:
		foreign, own = a, b
	case b.currency == posted:
		foreign, own = b, a
	default:
		return nil, &InvalidConversionError{
			TxnID: e.TxnID,
			Reason: fmt.Sprintf("neither conversion leg (%s, %s) matches the posting currency %s",
				a.currency, b.currency, posted),
		}
	}

	if total := e.nonFeeTotal(); !total.Equal(foreign.gross) {
		return nil, &InvalidConversionError{
			TxnID: e.TxnID,
			Reason: fmt.Sprintf("conversion leg of %s %s does not match the posting total of %s %s",
				foreign.gross, foreign.currency, total, posted),
		}
	}

	rate := own.gross.Abs().Div(foreign.gross.Abs())
	ownAbs := own.gross.Abs()

	return func(amount decimal.Decimal, currency string) (decimal.Decimal, string) {
		product := amount.Mul(rate)

		// Snap to the exchanged total when the product is within tolerance,
		// preserving the product's sign.
		if product.Abs().Sub(ownAbs).Abs().LessThanOrEqual(snapTolerance) {
			if product.IsNegative() {
				return ownAbs.Neg(), own.currency
			}
			return ownAbs, own.currency
		}

		// Round to the cent via floor(v*100 + 0.5)/100.
		cents := product.Mul(oneHundred).Add(oneHalf).Floor()
		return cents.Div(oneHundred), own.currency
	}, nil
}

// postingCurrency returns the single currency the entry's postings are in.
func (e *Entry) postingCurrency() (string, error) {
	currency := ""
	for _, p := range e.Postings {
		switch {
		case currency == "":
			currency = p.Currency
		case currency != p.Currency:
			return "", &AmbiguousCurrencyError{
				TxnID:      e.TxnID,
				Currencies: []string{currency, p.Currency},
			}
		}
	}

	if currency == "" {
		return "", &InvalidConversionError{
			TxnID:  e.TxnID,
			Reason: "conversion legs buffered but the entry has no postings",
		}
	}
	return currency, nil
}

// nonFeeTotal sums the entry's movement postings. Fee and categorization
// postings do not describe the exchanged movement and are excluded.
func (e *Entry) nonFeeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Postings {
		if p.Role == RoleFee || p.Role == RoleCategory {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

package lang

// EN returns the locale strategy for English PayPal exports.
func EN() Language {
	return &language{
		name:       "en",
		dateLayout: "02/01/2006",

		fields: []field{
			{"Date", KeyDate},
			{"Time", "time"},
			{"TimeZone", "timezone"},
			{"Name", KeyName},
			{"Type", KeyType},
			{"Status", "status"},
			{"Currency", KeyCurrency},
			{"Gross", KeyGross},
			{"Fee", KeyFee},
			{"Net", KeyNet},
			{"From Email Address", KeyFrom},
			{"To Email Address", KeyTo},
			{"Transaction ID", KeyTxnID},
			{"Reference Txn ID", KeyReferenceID},
			{"Receipt ID", "receipt_id"},
			{"Balance Impact", KeyBalanceImpact},
			// Optional fields:
			{"Item Title", KeyItemTitle},
			{"Subject", KeySubject},
			{"Note", KeyNote},
			{"Balance", KeyBalance},
			{"Transaction Event Code", KeyTxnCode},
			{"Invoice Number", KeyInvoiceNumber},
		},
		optionalFields: 6,

		fromChecking: "Bank Deposit to PP Account ",
		toChecking:   "General Withdrawal - Bank Transfer",
		conversion:   "General Currency Conversion",
		refund:       "Payment Refund",
		invoiceSent:  "Invoice Sent",
		memo:         "Memo",
	}
}

package lang

// DE returns the locale strategy for German PayPal exports.
func DE() Language {
	return &language{
		name:       "de",
		dateLayout: "02.01.2006",

		fields: []field{
			{"Datum", KeyDate},
			{"Uhrzeit", "time"},
			{"Zeitzone", "timezone"},
			{"Name", KeyName},
			{"Typ", KeyType},
			{"Status", "status"},
			{"Währung", KeyCurrency},
			{"Brutto", KeyGross},
			{"Gebühr", KeyFee},
			{"Netto", KeyNet},
			{"Absender E-Mail-Adresse", KeyFrom},
			{"Empfänger E-Mail-Adresse", KeyTo},
			{"Transaktionscode", KeyTxnID},
			{"Zugehöriger Transaktionscode", KeyReferenceID},
			{"Empfangsnummer", "receipt_id"},
			{"Auswirkung auf Guthaben", KeyBalanceImpact},
			// Optional fields:
			{"Artikelbezeichnung", KeyItemTitle},
			{"Betreff", KeySubject},
			{"Hinweis", KeyNote},
			{"Guthaben", KeyBalance},
			{"Transaktionsereigniscode", KeyTxnCode},
			{"Rechnungsnummer", KeyInvoiceNumber},
		},
		optionalFields: 6,

		fromChecking: "Bankgutschrift auf PayPal-Konto",
		toChecking:   "Allgemeine Abbuchung",
		conversion:   "Allgemeine Währungsumrechnung",
		refund:       "Rückzahlung",
		invoiceSent:  "Rechnung gesendet",
		memo:         "Memo",
	}
}

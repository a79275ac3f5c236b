package cli

import (
	"fmt"

	paypal "github.com/hartenfels/beancount-paypal"
	"github.com/hartenfels/beancount-paypal/lang"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Identify IdentifyCmd `cmd:"" help:"Check whether a CSV file is a PayPal activity export."`
	Extract  ExtractCmd  `cmd:"" help:"Extract beancount directives from a PayPal activity export."`
}

// ImporterFlags holds the importer configuration shared by all commands.
type ImporterFlags struct {
	Email             []string `help:"Owner email address (repeatable, a PayPal account can have several)." required:""`
	Account           string   `help:"PayPal asset account." default:"Assets:PayPal"`
	CheckingAccount   string   `help:"Linked bank account for transfers." default:"Assets:Checking"`
	CommissionAccount string   `help:"Account for PayPal fees." default:"Expenses:Financial:Fees"`
	Language          string   `help:"Statement language." enum:"en,de" default:"en"`
}

// Importer builds the configured importer.
func (f *ImporterFlags) Importer() (*paypal.Importer, error) {
	var language lang.Language
	switch f.Language {
	case "en":
		language = lang.EN()
	case "de":
		language = lang.DE()
	default:
		return nil, fmt.Errorf("unsupported language %q", f.Language)
	}

	return paypal.New(paypal.Config{
		Email:             f.Email,
		Account:           f.Account,
		CheckingAccount:   f.CheckingAccount,
		CommissionAccount: f.CommissionAccount,
		Language:          language,
	})
}

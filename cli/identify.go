package cli

import (
	"os"

	"github.com/alecthomas/kong"
)

type IdentifyCmd struct {
	ImporterFlags

	File string `help:"CSV file to check." arg:"" type:"existingfile"`
}

func (cmd *IdentifyCmd) Run(ctx *kong.Context, globals *Globals) error {
	imp, err := cmd.Importer()
	if err != nil {
		return err
	}

	f, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()

	ok, err := imp.Identify(f)
	if err != nil {
		return err
	}

	if !ok {
		printError(ctx.Stderr, "not a PayPal activity export for the configured account")
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, "PayPal activity export ("+cmd.Language+")")
	return nil
}

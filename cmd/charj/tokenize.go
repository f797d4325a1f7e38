package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"charj/internal/diagfmt"
	"charj/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.charj|->",
		Short: "Tokenize a Charj source file",
		Long:  `Tokenize breaks a Charj source file (or stdin for "-") into tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(format, "pretty", "json", "msgpack"); err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	if args[0] == "-" {
		src, err := a.readStdin()
		if err != nil {
			return err
		}
		result = driver.TokenizeSource(cmd.Context(), stdinName, src, opts)
	} else {
		result, err = driver.Tokenize(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// Диагностики в stderr, токены в stdout
	if err := a.reportDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, result.Tokens, result.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if err := a.printTimings(cmd, result.Timer); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"charj/internal/diagfmt"
	"charj/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.charj|->",
		Short: "Parse a Charj source file and print its tree",
		Long: `Parse builds the parse tree of a Charj source file (or stdin for "-").
The tree is printed even when the file has syntax errors.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|msgpack|dump)")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(format, "pretty", "tree", "json", "msgpack", "dump"); err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var result *driver.ParseResult
	if args[0] == "-" {
		src, err := a.readStdin()
		if err != nil {
			return err
		}
		result, err = driver.ParseSource(cmd.Context(), stdinName, src, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		result, err = driver.Parse(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	if err := a.reportDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatASTTree(out, result.Tree, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Tree)
	case "msgpack":
		err = diagfmt.FormatASTMsgpack(out, result.Tree)
	case "dump":
		err = diagfmt.FormatASTDump(out, result.Tree, a.useColor(cmd, out))
	default:
		err = diagfmt.FormatASTPretty(out, result.Tree, result.FileSet)
	}
	if err != nil {
		return err
	}
	if err := a.printTimings(cmd, result.Timer); err != nil {
		return err
	}
	if !result.OK() {
		return errHasErrors
	}
	return nil
}

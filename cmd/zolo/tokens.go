package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/zolo-lang/go/pkg/zolo"
)

// runTokens implements the tokens subcommand, a debugging aid that
// dumps the semantic token stream of one file.
func runTokens(args []string) error {
	fs := pflag.NewFlagSet("tokens", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("tokens requires exactly one file")
	}
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res := zolo.Tokenize(string(source), path)
	for _, t := range res.Tokens {
		var mods []string
		if t.Modifiers&zolo.ModDeclaration != 0 {
			mods = append(mods, "declaration")
		}
		if t.Modifiers&zolo.ModReadonly != 0 {
			mods = append(mods, "readonly")
		}

		fmt.Printf("%d:%d\t%d\t%s", t.Line+1, t.Col+1, t.Length, t.Kind)
		if len(mods) > 0 {
			fmt.Printf("\t[%s]", strings.Join(mods, ","))
		}
		if t.Hint != "" {
			fmt.Printf("\t(%s)", t.Hint)
		}
		fmt.Println()
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s:%v\n", path, d)
	}
	return nil
}

// Package main provides the CLI tool for working with .zolo files.
//
// Usage:
//
//	zolo check [path...]      Parse .zolo files and report diagnostics
//	zolo fmt [path...]        Canonicalize .zolo files
//	zolo convert [path...]    Convert .zolo files to YAML
//	zolo tokens <file>        Dump the semantic token stream
//	zolo lsp                  Start the language server
//	zolo help                 Show help
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `zolo - tooling for the Zolo configuration format

Usage:
  zolo <command> [options] [path...]

Commands:
  check       Parse .zolo files and report diagnostics
  fmt         Rewrite .zolo files in canonical form
  convert     Convert .zolo files to YAML
  tokens      Dump the semantic token stream of a file
  lsp         Start the language server (for editor integration)
  version     Print version information
  help        Show this help message

Examples:
  zolo check ./...                 Recursively check all .zolo files
  zolo check config.zolo           Check a specific file
  zolo fmt ./...                   Canonicalize all .zolo files in place
  zolo fmt --check ./...           Fail if any file is not canonical
  zolo fmt --stdout config.zolo    Print canonical output to stdout
  zolo convert config.zolo         Print the data mapping as YAML
  zolo convert -f json config.zolo Print the data mapping as JSON
  zolo tokens config.zolo          Dump tokens for debugging highlighting
  zolo lsp                         Start LSP server on stdio
  zolo lsp --log /tmp/zolo-lsp.log Start with debug logging

For more information, see https://github.com/zolo-lang/go
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "fmt":
		if err := runFmt(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := runConvert(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "tokens":
		if err := runTokens(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "lsp":
		if err := runLSP(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("zolo version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

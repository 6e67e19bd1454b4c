package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/zolo-lang/go/pkg/zolo"
)

// runFmt implements the fmt subcommand. It rewrites files in canonical
// form: one parse, one serialize. Comments do not survive, so files
// with parse errors are left untouched rather than silently losing
// malformed lines.
func runFmt(args []string) error {
	fs := pflag.NewFlagSet("fmt", pflag.ContinueOnError)
	stdout := fs.Bool("stdout", false, "print to stdout instead of modifying files")
	check := fs.Bool("check", false, "exit nonzero if any file is not canonical")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectZoloFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .zolo files found")
	}

	if *stdout {
		return runFmtStdout(files)
	}
	if *check {
		return runFmtCheck(files)
	}
	return runFmtInPlace(files)
}

// formatFile canonicalizes one file's content. The returned changed
// flag reports whether the canonical form differs from the input.
func formatFile(path string) (content string, changed bool, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading file: %w", err)
	}

	res := zolo.Tokenize(string(source), path)
	for _, d := range res.Diagnostics {
		if d.Severity == zolo.SeverityError {
			return "", false, fmt.Errorf("not formatting file with errors: %v", d)
		}
	}

	out, err := zolo.Dumps(res.Data)
	if err != nil {
		return "", false, err
	}
	return out, out != string(source), nil
}

// runFmtInPlace formats files in place, modifying them on disk.
func runFmtInPlace(files []string) error {
	type result struct {
		path    string
		changed bool
		err     error
	}

	results := make([]result, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			content, changed, err := formatFile(path)
			if err != nil {
				results[i] = result{path: path, err: err}
				return nil
			}
			if changed {
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					results[i] = result{path: path, err: fmt.Errorf("writing file: %w", err)}
					return nil
				}
			}
			results[i] = result{path: path, changed: changed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errorCount int
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.path, res.err)
			errorCount++
		} else if res.changed {
			fmt.Printf("Formatted: %s\n", res.path)
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return nil
}

// runFmtStdout formats files and prints to stdout.
func runFmtStdout(files []string) error {
	var errorCount int

	for _, path := range files {
		content, _, err := formatFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			errorCount++
			continue
		}

		if len(files) > 1 {
			fmt.Printf("# %s\n", path)
		}
		fmt.Print(content)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return nil
}

// runFmtCheck checks whether files are canonical without modifying
// them. Returns an error if any file is not.
func runFmtCheck(files []string) error {
	type result struct {
		path    string
		changed bool
		err     error
	}

	results := make([]result, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			_, changed, err := formatFile(path)
			results[i] = result{path: path, changed: changed, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errorCount, notCanonical int
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.path, res.err)
			errorCount++
		} else if res.changed {
			fmt.Fprintf(os.Stderr, "ERROR: %s is not canonical\n", res.path)
			notCanonical++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if notCanonical > 0 {
		return fmt.Errorf("%d file(s) not canonical", notCanonical)
	}
	return nil
}

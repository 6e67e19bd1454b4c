package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/zolo-lang/go/pkg/zolo"
)

// runCheck implements the check subcommand. It parses every file,
// prints all diagnostics, and fails if any file has error-severity
// diagnostics. Warnings are reported but do not fail the run unless
// --strict is set.
func runCheck(args []string) error {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "verbose output")
	strict := fs.Bool("strict", false, "treat warnings as errors")
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

	if *verbose {
		fmt.Printf("Checking %d .zolo file(s)\n", len(files))
	}

	type report struct {
		path  string
		diags []zolo.Diagnostic
		err   error
	}

	reports := make([]report, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				reports[i] = report{path: path, err: err}
				return nil
			}
			res := zolo.Tokenize(string(source), path)
			reports[i] = report{path: path, diags: res.Diagnostics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	minSeverity := zolo.SeverityError
	if *strict {
		minSeverity = zolo.SeverityHint
	}

	var failedFiles int
	sort.Slice(reports, func(i, j int) bool { return reports[i].path < reports[j].path })
	for _, r := range reports {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.path, r.err)
			failedFiles++
			continue
		}

		failed := false
		for _, d := range r.diags {
			fmt.Fprintf(os.Stderr, "%s:%v\n", r.path, d)
			if d.Severity <= minSeverity {
				failed = true
			}
		}
		if failed {
			failedFiles++
		}
	}

	if failedFiles > 0 {
		return fmt.Errorf("%d file(s) had errors", failedFiles)
	}
	if *verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}
	return nil
}

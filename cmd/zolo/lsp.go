package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/zolo-lang/go/pkg/lsp"
)

func runLSP(args []string) error {
	fs := pflag.NewFlagSet("lsp", pflag.ContinueOnError)
	logPath := fs.String("log", "", "path to log file for debugging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server := lsp.NewServer(os.Stdin, os.Stdout)

	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		server.SetLogFile(logFile)
	}

	return server.Run(context.Background())
}

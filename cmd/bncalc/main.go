// Command bncalc evaluates arithmetic, bitwise and root operations on
// fixed-capacity unsigned integers from the command line, a batch file, an
// interactive prompt or an HTTP API.
package main

import (
	"context"
	"os"

	"github.com/agbru/bncalc/internal/app"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if len(args) > 1 && app.HasVersionFlag(args[1:]) {
		app.PrintVersion(stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), stdout)
}

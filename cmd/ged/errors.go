package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	exitOK         = 0
	exitIO         = 1
	exitValidation = 2
	exitUsage      = 3
)

// usageError marks errors caused by bad arguments, flags or configuration.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// validationError is returned when at least one file failed validation.
type validationError struct {
	failed int
}

func (e validationError) Error() string {
	if e.failed == 1 {
		return "1 file failed validation"
	}
	return fmt.Sprintf("%d files failed validation", e.failed)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usage usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	var invalid validationError
	if errors.As(err, &invalid) {
		return exitValidation
	}
	return exitIO
}

// checkArgs wraps a cobra argument validator so that its failures exit
// with the usage code.
func checkArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

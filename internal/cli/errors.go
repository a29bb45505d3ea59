package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/todo"
)

// usageError marks bad input: wrong arguments, unknown flags, bad indexes.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErr(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err: err}
}

// ExitCode maps an error to the process exit code: 0 ok, 1 runtime error,
// 2 usage error.
func ExitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue), errors.Is(err, todo.ErrInvalidPosition):
		return 2
	default:
		return 1
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	return usageErr(cobra.NoArgs(cmd, args))
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageErr(cobra.ExactArgs(n)(cmd, args))
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageErr(cobra.MinimumNArgs(n)(cmd, args))
	}
}

// parseIndex turns a 1-based CLI index into a 0-based position.
func parseIndex(op, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErr(fmt.Errorf("%s: not a number: %s", op, s))
	}
	return n - 1, nil
}

// indexErr restates a position error in the 1-based terms the user typed.
func indexErr(err error) error {
	var pe *todo.PositionError
	if !errors.As(err, &pe) {
		return err
	}
	return usageErr(fmt.Errorf("%s: index out of range: have %d, got %d: %w",
		pe.Op, pe.Len, pe.Position+1, todo.ErrInvalidPosition))
}

package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	CodeRejected = "SVGLIST_COMMAND_REJECTED"
	CodeCanceled = "SVGLIST_COMMAND_CANCELED"
	CodeTimeout  = "SVGLIST_COMMAND_TIMEOUT"
	CodeFailed   = "SVGLIST_COMMAND_FAILED"
)

// rejected tags a message that failed validation. Errors that already carry
// a go-errors envelope, such as configuration errors, keep theirs.
func rejected(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command rejected").
		WithTextCode(CodeRejected)
}

// interrupted tags an execution stopped by its context.
func interrupted(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(CodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
		WithTextCode(CodeCanceled)
}

// failed tags an execution error, routing context errors to interrupted.
func failed(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return interrupted(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeFailed)
}

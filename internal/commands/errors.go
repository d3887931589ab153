package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors. Hosts branch on these
// instead of matching error strings.
const (
	codeMessageRejected = "CATALOG_COMMAND_REJECTED"
	codeCanceled        = "CATALOG_COMMAND_CANCELED"
	codeTimedOut        = "CATALOG_COMMAND_TIMEOUT"
	codeContextFailed   = "CATALOG_COMMAND_CONTEXT"
	codeFailed          = "CATALOG_COMMAND_FAILED"
)

// Errors already wrapped upstream pass through untouched so the original
// category and text code survive.

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(codeMessageRejected)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(codeTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
			WithTextCode(codeContextFailed)
	}
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(codeFailed)
}

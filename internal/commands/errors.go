package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	validationFailedCode = "COMMAND_VALIDATION_FAILED"
	contextCanceledCode  = "COMMAND_CONTEXT_CANCELED"
	contextTimeoutCode   = "COMMAND_CONTEXT_TIMEOUT"
	contextErrorCode     = "COMMAND_CONTEXT_ERROR"
	executeFailedCode    = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(validationFailedCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(contextCanceledCode)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(contextTimeoutCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(contextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(executeFailedCode)
}

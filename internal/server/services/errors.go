package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/uptask/internal/common"
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", common.ErrorNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", common.ErrorNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", common.ErrorNotFound)

	ErrNameRequired     = fmt.Errorf("%w: name is required", common.ErrorValidation)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", common.ErrorValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", common.ErrorValidation)
	ErrProjectRequired  = fmt.Errorf("%w: project is required", common.ErrorValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password is longer than 72 bytes", common.ErrorValidation)
)

// internalError marks err as a storage or infrastructure failure of op. The
// cause stays reachable for logging.
func internalError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrorInternal, err)
}

// classified are the kinds callers are expected to tell apart.
var classified = []error{
	common.ErrorNotFound,
	common.ErrorAlreadyExists,
	common.ErrorForbidden,
	common.ErrorValidation,
	common.ErrorInvalidCredentials,
	common.ErrorUnauthenticated,
	common.ErrorInternal,
}

// classify returns err unchanged when it already carries a known kind and
// marks it internal otherwise.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range classified {
		if errors.Is(err, kind) {
			return err
		}
	}
	return internalError(op, err)
}

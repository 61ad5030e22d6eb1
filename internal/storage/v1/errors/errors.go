package errors

import (
	"fmt"
)

type (
	AlreadyExistsError struct {
		Err error
		ID  string
	}
	AccountAlreadyExistsError struct {
		UserID string
	}
	NotFoundError struct {
		Err error
	}
	ContextTimeoutExceededError struct {
		Err error
	}
)

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: already exists", e.ID)
}

func (e *AccountAlreadyExistsError) Error() string {
	return fmt.Sprintf("user %s already owns an account", e.UserID)
}

func (e *NotFoundError) Error() string {
	return "not found"
}

func (e *ContextTimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: context timeout exceeded", e.Err.Error())
}

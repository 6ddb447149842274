package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID != "" {
		return fmt.Sprintf("%s not found with id of %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "not authorized to access this route"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

// DataServiceError wraps failures from the relational data service.
type DataServiceError struct {
	Op  string
	Err error
}

func (e DataServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("data service error: %s", e.Op)
	}
	return fmt.Sprintf("data service error: %s: %v", e.Op, e.Err)
}

func (e DataServiceError) Unwrap() error { return e.Err }

// ProviderError wraps failures from the hosted identity provider.
type ProviderError struct {
	Op     string
	Status int
	Err    error
}

func (e ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("identity provider: %s: status %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("identity provider: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("identity provider: %s", e.Op)
}

func (e ProviderError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsDataService(err error) bool {
	var target DataServiceError
	return errors.As(err, &target)
}

func IsProvider(err error) bool {
	var target ProviderError
	return errors.As(err, &target)
}

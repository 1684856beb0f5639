// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Transaction data errors.
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrMissingDescription = errors.New("missing description")
	ErrMissingAmount      = errors.New("missing amount")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrMissingDate        = errors.New("missing date")
	ErrNotCredit          = errors.New("not a credit transaction")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DataError reports a malformed transaction record. It is recoverable: the
// record is skipped and the batch continues.
type DataError struct {
	Err         error
	Description string
	Index       int
}

func (e *DataError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("record %d (%q): %v", e.Index, e.Description, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *DataError) Unwrap() error {
	return errors.Join(ErrInvalidTransaction, e.Err)
}

// NewDataError creates a data error for the record at index.
func NewDataError(index int, description string, err error) *DataError {
	return &DataError{
		Index:       index,
		Description: description,
		Err:         err,
	}
}

// ConfigError reports configuration that the engines refuse to start with.
type ConfigError struct {
	Err error
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return errors.Join(ErrInvalidConfig, e.Err)
}

// NewConfigError creates a configuration error for key.
func NewConfigError(key string, format string, args ...any) error {
	return &ConfigError{
		Key: key,
		Err: fmt.Errorf(format, args...),
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

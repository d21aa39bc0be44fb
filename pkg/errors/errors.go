package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrSchemaValidation  = errors.New("schema validation failed")
	ErrUnhashedSecret    = errors.New("secret has a pending plaintext value that was never hashed")
)

// ValidationError describes one rejected field. The JSON shape mirrors what
// API clients already parse: value, msg, param, location.
type ValidationError struct {
	Field    string      `json:"param"`
	Value    interface{} `json:"value,omitempty"`
	Message  string      `json:"msg"`
	Location string      `json:"location,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns nil for an empty list so callers can write `return errs.OrNil()`.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " Not Found"
}

func NewNotFound(resource string) error {
	return NotFoundError{Resource: resource}
}

type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string) error {
	return ConflictError{Message: message}
}

// StoreError wraps a driver or connectivity failure.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %s", e.Op, e.Collection, e.Err.Error())
}

func (e StoreError) Unwrap() error {
	return e.Err
}

type HashingError struct {
	Err error
}

func (e HashingError) Error() string {
	return "hashing error: " + e.Err.Error()
}

func (e HashingError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

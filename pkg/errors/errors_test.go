package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorsOrNil(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.OrNil())

	errs = append(errs, ValidationError{Field: "email", Value: "nope", Message: "Please enter a valid email"})
	err := errs.OrNil()
	assert.Error(t, err)

	var got ValidationErrors
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, "email", got[0].Field)
}

func TestTypedErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get student: %w", NewNotFound("Student"))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "get student: Student Not Found", wrapped.Error())

	assert.True(t, IsConflict(fmt.Errorf("add: %w", NewConflict("User Already Exists"))))
	assert.False(t, IsConflict(wrapped))
}

func TestStoreAndHashingErrorsUnwrap(t *testing.T) {
	cause := errors.New("connection refused")

	storeErr := error(StoreError{Op: "find", Collection: "students", Err: cause})
	assert.ErrorIs(t, storeErr, cause)
	assert.Contains(t, storeErr.Error(), "find students")

	hashErr := error(HashingError{Err: cause})
	assert.ErrorIs(t, hashErr, cause)
}

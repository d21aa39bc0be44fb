package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "school-admin-api/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldMessages lets a request type supply the message reported for each
// rejected field.
type fieldMessages interface {
	FieldMessages() map[string]string
}

// sensitiveFields are never echoed back in validation errors.
var sensitiveFields = map[string]bool{"password": true}

// CheckRequest validates a decoded request body and returns
// ValidationErrors (location "body") or nil.
func CheckRequest(req interface{}) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var messages map[string]string
	if fm, ok := req.(fieldMessages); ok {
		messages = fm.FieldMessages()
	}

	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}

		ve := apperrors.ValidationError{Field: field, Message: msg, Location: "body"}
		if !sensitiveFields[field] {
			ve.Value = fe.Value()
		}
		out = append(out, ve)
	}
	return out
}

func requireString(errs *apperrors.ValidationErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, apperrors.ValidationError{Field: field, Message: message})
	}
}

func enumError(field string, value interface{}) apperrors.ValidationError {
	return apperrors.ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("`%v` is not a valid enum value for path `%s`", value, field),
	}
}

// Package validation checks client input and produces the Valid marker that
// the task store requires for writes.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"task-tracker/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Valid wraps a value that passed Validate. Only Validate can seal one; the
// zero value is unsealed and is refused by consumers.
type Valid[T any] struct {
	value  T
	sealed bool
}

func (v Valid[T]) Value() T {
	return v.value
}

func (v Valid[T]) Sealed() bool {
	return v.sealed
}

// Validate checks input against its `validate` struct tags. String length
// bounds are counted in runes.
func Validate[T any](input T) (Valid[T], error) {
	err := validate.Struct(input)
	if err == nil {
		return Valid[T]{value: input, sealed: true}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Valid[T]{}, fmt.Errorf("validate %T: %w", input, err)
	}

	violations := apperror.Violations{}
	for _, fe := range fieldErrs {
		violations.Add(fe.Field(), violationFor(fe))
	}
	return Valid[T]{}, apperror.Validation(violations)
}

// violationFor reports a bound only when the tag parameter is numeric; tags
// like required or oneof carry the constraint name alone.
func violationFor(fe validator.FieldError) apperror.Violation {
	bound, err := strconv.Atoi(fe.Param())
	if err != nil {
		return apperror.Violation{Constraint: fe.Tag()}
	}
	return apperror.BoundViolation(fe.Tag(), bound)
}

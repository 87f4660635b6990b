package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hearthkit/servicekit/capability"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrDuplicateService is returned when a service identifier is loaded twice.
	ErrDuplicateService = errors.New("duplicate service")

	// ErrMissingRequiredField is returned when a required field is absent
	// and has no default.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnknownField is returned when the caller supplies a field the
	// schema does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidOption is returned when a value is outside a select
	// selector's option set.
	ErrInvalidOption = errors.New("invalid option")

	// ErrOutOfRange is returned when a number violates min/max/step.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupportedField is returned when a filter-gated field is present
	// but the target lacks the required capability.
	ErrUnsupportedField = errors.New("field unsupported by target")

	// ErrInvalidValue is returned when a value cannot be interpreted as
	// the selector's kind at all.
	ErrInvalidValue = errors.New("invalid value")

	// ErrExclusiveFields is returned when two fields of one mutual
	// exclusion group are both present.
	ErrExclusiveFields = errors.New("mutually exclusive fields")

	// ErrTargetMismatch is returned when the target entity violates the
	// service's target rule.
	ErrTargetMismatch = errors.New("target mismatch")

	// ErrSchema is returned for load-time structural failures. These are
	// fatal: a partially loaded definition table is never published.
	ErrSchema = errors.New("invalid service schema")
)

// DuplicateServiceError reports a service identifier registered twice.
type DuplicateServiceError struct {
	Service string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("duplicate service %q", e.Service)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateServiceError) Is(target error) bool {
	return target == ErrDuplicateService
}

// MissingRequiredFieldError reports an absent required field with no default.
type MissingRequiredFieldError struct {
	Service string
	Field   string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("service %q: missing required field %q", e.Service, e.Field)
}

func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// UnknownFieldError reports a caller-supplied field the schema does not declare.
type UnknownFieldError struct {
	Service string
	Field   string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("service %q: unknown field %q", e.Service, e.Field)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// InvalidOptionError reports a value outside a select selector's option set.
type InvalidOptionError struct {
	Service string
	Field   string
	Value   any
	Options []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("service %q: field %q: %v is not one of [%s]",
		e.Service, e.Field, e.Value, strings.Join(e.Options, ", "))
}

func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// RangeError reports a number violating a number selector's bounds or step.
type RangeError struct {
	Service string
	Field   string
	Value   any
	Min     *float64
	Max     *float64
	Step    *float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("service %q: field %q: value %v out of range", e.Service, e.Field, e.Value)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// UnsupportedFieldError reports a filter-gated field supplied for a target
// that does not advertise the gating capability.
type UnsupportedFieldError struct {
	Service string
	Field   string
	Missing capability.Flag
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("service %q: field %q requires capability %s", e.Service, e.Field, e.Missing)
}

func (e *UnsupportedFieldError) Is(target error) bool {
	return target == ErrUnsupportedField
}

// InvalidValueError reports a value that cannot be interpreted as the
// selector's kind.
type InvalidValueError struct {
	Service string
	Field   string
	Value   any
	Want    string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("service %q: field %q: cannot interpret %v as %s", e.Service, e.Field, e.Value, e.Want)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// ExclusiveFieldsError reports two present members of one exclusion group.
type ExclusiveFieldsError struct {
	Service string
	Group   string
	Fields  []string
}

func (e *ExclusiveFieldsError) Error() string {
	return fmt.Sprintf("service %q: fields %s are mutually exclusive",
		e.Service, strings.Join(e.Fields, " and "))
}

func (e *ExclusiveFieldsError) Is(target error) bool {
	return target == ErrExclusiveFields
}

// TargetMismatchError reports an entity that violates the service's target rule.
type TargetMismatchError struct {
	Service string
	Entity  string
	Reason  string
}

func (e *TargetMismatchError) Error() string {
	return fmt.Sprintf("service %q: target %q: %s", e.Service, e.Entity, e.Reason)
}

func (e *TargetMismatchError) Is(target error) bool {
	return target == ErrTargetMismatch
}

// SchemaError reports a load-time structural failure in a definition document.
type SchemaError struct {
	Service string
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("service %q: %s", e.Service, e.Reason)
	}
	return fmt.Sprintf("service %q: field %q: %s", e.Service, e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

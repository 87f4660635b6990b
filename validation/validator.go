// Package validation implements the call-time argument validator. Given a
// service definition and a target entity it either rejects a call with the
// first error in field declaration order or returns the normalized argument
// map the dispatcher should see.
package validation

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hearthkit/servicekit/capability"
	"github.com/hearthkit/servicekit/schema"
)

// Validator is a stateless ArgumentValidator. Validation is pure: it never
// touches shared tables and a rejected call has no effect on later calls.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks args against def for the given target entity.
func (v *Validator) Validate(def *schema.ServiceDefinition, entity capability.Entity, args map[string]any) (map[string]any, error) {
	if err := checkTarget(def, entity); err != nil {
		return nil, err
	}

	normalized := make(map[string]any, len(args))
	exclusiveSeen := make(map[string]string)

	for i := range def.Fields {
		field := &def.Fields[i]
		value, present := args[field.Name]

		if field.Filter != nil {
			if missing, ok := missingFlag(entity.Features, field.Filter.SupportedFeatures); !ok {
				// The target cannot use this field at all. Supplying it is
				// an error; omitting it is fine, and neither requiredness
				// nor the default applies.
				if present {
					return nil, &schema.UnsupportedFieldError{Service: def.ID, Field: field.Name, Missing: missing}
				}
				continue
			}
		}

		if !present {
			if field.Default != nil {
				normalized[field.Name] = field.Default
			} else if field.Required {
				return nil, &schema.MissingRequiredFieldError{Service: def.ID, Field: field.Name}
			}
			continue
		}

		if field.Exclusive != "" {
			if other, clash := exclusiveSeen[field.Exclusive]; clash {
				return nil, &schema.ExclusiveFieldsError{
					Service: def.ID,
					Group:   field.Exclusive,
					Fields:  []string{other, field.Name},
				}
			}
			exclusiveSeen[field.Exclusive] = field.Name
		}

		coerced, err := checkValue(def.ID, field, value)
		if err != nil {
			return nil, err
		}
		normalized[field.Name] = coerced
	}

	if err := checkUnknown(def, args); err != nil {
		return nil, err
	}
	return normalized, nil
}

func checkTarget(def *schema.ServiceDefinition, entity capability.Entity) error {
	rule := def.Target
	if rule == nil {
		return nil
	}
	if rule.Domain != "" && entity.Domain != rule.Domain {
		return &schema.TargetMismatchError{
			Service: def.ID, Entity: entity.ID,
			Reason: "entity domain " + strconv.Quote(entity.Domain) + " is not " + strconv.Quote(rule.Domain),
		}
	}
	if rule.Integration != "" && entity.Integration != rule.Integration {
		return &schema.TargetMismatchError{
			Service: def.ID, Entity: entity.ID,
			Reason: "entity integration " + strconv.Quote(entity.Integration) + " is not " + strconv.Quote(rule.Integration),
		}
	}
	if missing, ok := missingFlag(entity.Features, rule.SupportedFeatures); !ok {
		return &schema.TargetMismatchError{
			Service: def.ID, Entity: entity.ID,
			Reason: "entity lacks capability " + missing.String(),
		}
	}
	return nil
}

// missingFlag returns the first flag of want the set does not advertise.
func missingFlag(have capability.Set, want []capability.Flag) (capability.Flag, bool) {
	for _, flag := range want {
		if !have.Has(flag) {
			return flag, false
		}
	}
	return capability.Flag{}, true
}

func checkUnknown(def *schema.ServiceDefinition, args map[string]any) error {
	var unknown []string
	for name := range args {
		if _, ok := def.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &schema.UnknownFieldError{Service: def.ID, Field: unknown[0]}
}

func checkValue(service string, field *schema.FieldSpec, value any) (any, error) {
	switch field.Selector.Kind {
	case schema.SelectorObject:
		// Opaque passthrough; the selector is advisory only.
		return value, nil
	case schema.SelectorText:
		return checkText(service, field, value)
	case schema.SelectorBoolean:
		return checkBoolean(service, field, value)
	case schema.SelectorSelect:
		return checkSelect(service, field, value)
	case schema.SelectorNumber:
		return checkNumber(service, field, value)
	default:
		return nil, &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: string(field.Selector.Kind)}
	}
}

func checkText(service string, field *schema.FieldSpec, value any) (any, error) {
	s, ok := stringify(value)
	if !ok {
		return nil, &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: "text"}
	}
	return s, nil
}

// stringify renders scalar values as strings. Composites are not text.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func checkBoolean(service string, field *schema.FieldSpec, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	}
	return nil, &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: "boolean"}
}

func checkSelect(service string, field *schema.FieldSpec, value any) (any, error) {
	if field.Selector.Multiple {
		items, ok := value.([]any)
		if !ok {
			if strs, isStrs := value.([]string); isStrs {
				items = make([]any, len(strs))
				for i, s := range strs {
					items[i] = s
				}
			} else {
				return nil, &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: "list of options"}
			}
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, err := checkOption(service, field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	return checkOption(service, field, value)
}

func checkOption(service string, field *schema.FieldSpec, value any) (string, error) {
	s, ok := stringify(value)
	if !ok {
		return "", &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: "option"}
	}
	for _, option := range field.Selector.Options {
		if s == option {
			return s, nil
		}
	}
	return "", &schema.InvalidOptionError{Service: service, Field: field.Name, Value: value, Options: field.Selector.Options}
}

func checkNumber(service string, field *schema.FieldSpec, value any) (any, error) {
	n, ok := numeric(value)
	if !ok {
		return nil, &schema.InvalidValueError{Service: service, Field: field.Name, Value: value, Want: "number"}
	}

	sel := &field.Selector
	rangeErr := &schema.RangeError{
		Service: service, Field: field.Name, Value: value,
		Min: sel.Min, Max: sel.Max, Step: sel.Step,
	}
	if sel.Min != nil && n < *sel.Min {
		return nil, rangeErr
	}
	if sel.Max != nil && n > *sel.Max {
		return nil, rangeErr
	}
	if sel.Step != nil {
		// Step arithmetic starts at min: with min=1, step=25 the reachable
		// values are 1, 26, 51, 76.
		base := 0.0
		if sel.Min != nil {
			base = *sel.Min
		}
		steps := (n - base) / *sel.Step
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return nil, rangeErr
		}
	}
	return n, nil
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

var _ ArgumentValidator = (*Validator)(nil)

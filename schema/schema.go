// Package schema holds the service definition model: what a remote-callable
// service is named, what target it applies to, and which fields a caller may
// supply. Definitions are decoded once from a declarative document and are
// immutable afterwards.
package schema

import (
	"github.com/hearthkit/servicekit/capability"
)

// SelectorKind identifies the accepted value shape of a field.
type SelectorKind string

const (
	// SelectorText accepts any string.
	SelectorText SelectorKind = "text"

	// SelectorObject accepts an opaque structured value. The selector is
	// advisory only; no shape checking happens at call time.
	SelectorObject SelectorKind = "object"

	// SelectorBoolean accepts true/false plus common string spellings.
	SelectorBoolean SelectorKind = "boolean"

	// SelectorSelect accepts one (or, with Multiple, several) of a fixed
	// option set.
	SelectorSelect SelectorKind = "select"

	// SelectorNumber accepts a number within optional [Min, Max] bounds,
	// stepped from Min when Step is set.
	SelectorNumber SelectorKind = "number"
)

// Selector is the tagged variant describing a field's accepted shape.
// Only the fields matching Kind are meaningful.
type Selector struct {
	Kind SelectorKind

	// Options is the allowed value set for select selectors.
	Options []string

	// Multiple allows selecting several options at once.
	Multiple bool

	// TranslationKey names the locale-table entry carrying option labels
	// (selector.<key>.options.<option>).
	TranslationKey string

	// Min, Max and Step bound number selectors. Nil means unset.
	Min  *float64
	Max  *float64
	Step *float64
}

// Filter gates a field's availability on capability flags the target entity
// must advertise. A present field on an entity lacking any of the flags is a
// validation error, not silently ignored.
type Filter struct {
	SupportedFeatures []capability.Flag
}

// FieldSpec describes one caller-suppliable argument of a service.
type FieldSpec struct {
	Name string

	// Required fields must be present unless a Default is set.
	Required bool

	// Default is applied to the normalized argument map when the caller
	// omits the field.
	Default any

	// Example is documentation only and never enforced.
	Example any

	// Advanced hides the field from the default UI view.
	Advanced bool

	Selector Selector

	// Filter, when set, makes the field conditional on target capabilities.
	Filter *Filter

	// Exclusive names a mutual-exclusion group: at most one field of a
	// group may be present in a call.
	Exclusive string
}

// TargetRule constrains which entities a service may be called on.
type TargetRule struct {
	Domain            string
	Integration       string
	SupportedFeatures []capability.Flag
}

// ServiceDefinition is the immutable description of one callable service.
type ServiceDefinition struct {
	// ID is the unique service identifier, e.g. "play_media".
	ID string

	Target *TargetRule

	// Fields in declaration order. Order drives deterministic error
	// reporting and round-trip serialization.
	Fields []FieldSpec
}

// Field returns the declared field named name, if any.
func (d *ServiceDefinition) Field(name string) (*FieldSpec, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

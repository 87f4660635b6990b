package locale

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hearthkit/servicekit/schema"
)

// ErrConformance is returned when a locale's selector option labels drift
// from the option set the schema declares.
var ErrConformance = errors.New("locale out of step with schema")

// ConformanceError pinpoints the drift between a schema option set and one
// locale's selector.<key>.options entries.
type ConformanceError struct {
	Locale         string
	Service        string
	Field          string
	TranslationKey string

	// Missing lists schema options the locale does not label; Extra lists
	// locale labels with no schema option behind them.
	Missing []string
	Extra   []string
}

func (e *ConformanceError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing labels for [%s]", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("stale labels [%s]", strings.Join(e.Extra, ", ")))
	}
	return fmt.Sprintf("locale %s: selector %q (service %q, field %q): %s",
		e.Locale, e.TranslationKey, e.Service, e.Field, strings.Join(parts, "; "))
}

func (e *ConformanceError) Is(target error) bool {
	return target == ErrConformance
}

// CheckConformance verifies the one cross-file invariant between schema and
// locale documents: wherever a table labels a selector's options, the label
// key set must match the schema's option set exactly. Tables that do not
// label a selector at all are fine — they fall back.
func CheckConformance(defs []*schema.ServiceDefinition, tables ...*Table) error {
	for _, table := range tables {
		for _, def := range defs {
			for i := range def.Fields {
				field := &def.Fields[i]
				sel := &field.Selector
				if sel.Kind != schema.SelectorSelect || sel.TranslationKey == "" {
					continue
				}
				if err := checkSelector(table, def.ID, field.Name, sel); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkSelector(table *Table, service, field string, sel *schema.Selector) error {
	prefix := "selector." + sel.TranslationKey + ".options."
	labeled := make(map[string]struct{})
	for _, key := range table.Keys() {
		if opt, ok := strings.CutPrefix(key, prefix); ok {
			labeled[opt] = struct{}{}
		}
	}
	if len(labeled) == 0 {
		return nil
	}

	var missing, extra []string
	for _, opt := range sel.Options {
		if _, ok := labeled[opt]; !ok {
			missing = append(missing, opt)
		} else {
			delete(labeled, opt)
		}
	}
	for opt := range labeled {
		extra = append(extra, opt)
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)
	return &ConformanceError{
		Locale:         table.Tag().String(),
		Service:        service,
		Field:          field,
		TranslationKey: sel.TranslationKey,
		Missing:        missing,
		Extra:          extra,
	}
}

// ConformanceCheck adapts CheckConformance into a registry load check.
func ConformanceCheck(tables ...*Table) func([]*schema.ServiceDefinition) error {
	return func(defs []*schema.ServiceDefinition) error {
		return CheckConformance(defs, tables...)
	}
}

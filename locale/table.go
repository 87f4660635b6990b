// Package locale resolves display strings for services and configuration
// flows. String tables are nested documents flattened to dotted paths at
// load time; resolution walks a locale fallback chain and never fails — the
// last resort is the requested key itself.
package locale

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// Table is one locale's flattened string table.
type Table struct {
	tag     language.Tag
	strings map[string]string
}

// NewTable flattens a nested string document into a table for tag. Leaf
// values must be strings; anything else is a malformed document.
func NewTable(tag language.Tag, doc map[string]any) (*Table, error) {
	flat := make(map[string]string)
	if err := flatten("", doc, flat); err != nil {
		return nil, fmt.Errorf("locale %s: %w", tag, err)
	}
	return &Table{tag: tag, strings: flat}, nil
}

// Tag returns the locale this table serves.
func (t *Table) Tag() language.Tag {
	return t.tag
}

// Lookup returns the string stored under a dotted path.
func (t *Table) Lookup(path string) (string, bool) {
	s, ok := t.strings[path]
	return s, ok
}

// Keys returns all dotted paths in the table, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.strings))
	for k := range t.strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.strings)
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[path] = v
		case map[string]any:
			if err := flatten(path, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("entry %q: leaf must be a string, got %T", path, value)
		}
	}
	return nil
}

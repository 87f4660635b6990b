package locale

import (
	"regexp"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Catalog holds the string tables of every active locale and resolves
// dotted paths with fallback. Reads are lock-free on an atomically swapped
// snapshot; Replace publishes a fully built state so readers never observe
// a half-updated table set.
type Catalog struct {
	fallback language.Tag
	state    atomic.Pointer[catalogState]
}

// catalogState is one immutable table-set generation plus its resolution
// cache. The cache dies with the generation.
type catalogState struct {
	tables map[language.Tag]*Table

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

type cacheKey struct {
	locale string
	path   string
}

type cacheEntry struct {
	value string
	found bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFallback sets the last-resort locale. Default is English.
func WithFallback(tag language.Tag) Option {
	return func(c *Catalog) {
		c.fallback = tag
	}
}

// NewCatalog builds a catalog over the given tables.
func NewCatalog(tables []*Table, opts ...Option) *Catalog {
	c := &Catalog{fallback: language.English}
	for _, opt := range opts {
		opt(c)
	}
	c.Replace(tables)
	return c
}

// Replace swaps in a new table set and drops the resolution cache. Safe to
// call while readers resolve concurrently.
func (c *Catalog) Replace(tables []*Table) {
	byTag := make(map[language.Tag]*Table, len(tables))
	for _, t := range tables {
		byTag[t.Tag()] = t
	}
	c.state.Store(&catalogState{
		tables: byTag,
		cache:  make(map[cacheKey]cacheEntry),
	})
}

// Lookup resolves a dotted path for a locale, walking the fallback chain:
// exact locale, its parent tags (zh-CN falls back to zh), then the catalog
// fallback locale. The second return reports whether any table had the key.
func (c *Catalog) Lookup(locale, path string) (string, bool) {
	state := c.state.Load()
	key := cacheKey{locale: locale, path: path}

	state.mu.RLock()
	entry, cached := state.cache[key]
	state.mu.RUnlock()
	if cached {
		return entry.value, entry.found
	}

	value, found := state.resolve(language.Make(locale), c.fallback, path)

	state.mu.Lock()
	state.cache[key] = cacheEntry{value: value, found: found}
	state.mu.Unlock()
	return value, found
}

// Resolve is Lookup with a last resort: an unresolvable path
// returns the path itself, so rendering never fails.
func (c *Catalog) Resolve(locale, path string) string {
	if s, ok := c.Lookup(locale, path); ok {
		return s
	}
	return path
}

func (s *catalogState) resolve(tag, fallback language.Tag, path string) (string, bool) {
	for t := tag; !t.IsRoot(); t = t.Parent() {
		if table, ok := s.tables[t]; ok {
			if v, ok := table.Lookup(path); ok {
				return v, true
			}
		}
	}
	for t := fallback; !t.IsRoot(); t = t.Parent() {
		if table, ok := s.tables[t]; ok {
			if v, ok := table.Lookup(path); ok {
				return v, true
			}
		}
	}
	return "", false
}

// placeholderPattern matches {name}-style substitution tokens.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// MissingPlaceholderWarning records a placeholder the caller supplied no
// value for. Non-fatal: the token stays verbatim in the output.
type MissingPlaceholderWarning struct {
	Locale      string
	Path        string
	Placeholder string
}

func (w MissingPlaceholderWarning) String() string {
	return "unresolved placeholder {" + w.Placeholder + "} in " + w.Path + " (" + w.Locale + ")"
}

// Format resolves a path and substitutes {name} placeholders from args.
// Unresolved placeholders are left verbatim and reported as warnings.
func (c *Catalog) Format(locale, path string, args map[string]string) (string, []MissingPlaceholderWarning) {
	resolved := c.Resolve(locale, path)

	var warnings []MissingPlaceholderWarning
	out := placeholderPattern.ReplaceAllStringFunc(resolved, func(token string) string {
		name := token[1 : len(token)-1]
		if v, ok := args[name]; ok {
			return v
		}
		warnings = append(warnings, MissingPlaceholderWarning{
			Locale:      locale,
			Path:        path,
			Placeholder: name,
		})
		return token
	})
	return out, warnings
}

// OptionLabel resolves the display label of a selector option via its
// translation key. Options without a translated label fall back to the raw
// option value.
func (c *Catalog) OptionLabel(locale, translationKey, option string) string {
	if translationKey != "" {
		if s, ok := c.Lookup(locale, "selector."+translationKey+".options."+option); ok {
			return s
		}
	}
	return option
}

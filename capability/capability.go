// Package capability models the feature flags a target entity advertises.
// Conditional schema fields are gated on these flags, so the schema loader
// needs to know which flag namespaces exist and the argument validator
// needs fast membership checks against an entity's advertised set.
package capability

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Flag is a parsed capability flag reference of the form
// "domain.Namespace.FLAG_NAME", e.g.
// "media_player.MediaPlayerEntityFeature.MEDIA_ENQUEUE".
type Flag struct {
	// Namespace is everything up to the final dot, e.g.
	// "media_player.MediaPlayerEntityFeature".
	Namespace string

	// Name is the flag constant itself, e.g. "MEDIA_ENQUEUE".
	Name string
}

// ParseFlag splits a raw flag string into namespace and name.
func ParseFlag(raw string) (Flag, error) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, ".")
	if idx <= 0 || idx == len(raw)-1 {
		return Flag{}, fmt.Errorf("malformed capability flag %q: want domain.Namespace.FLAG", raw)
	}
	return Flag{Namespace: raw[:idx], Name: raw[idx+1:]}, nil
}

// MustParseFlag is ParseFlag for statically known flag strings.
func MustParseFlag(raw string) Flag {
	f, err := ParseFlag(raw)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the canonical dotted form.
func (f Flag) String() string {
	return f.Namespace + "." + f.Name
}

// Set is an immutable collection of advertised capability flags.
type Set struct {
	flags map[Flag]struct{}
}

// NewSet builds a Set from raw flag strings. Malformed entries are rejected.
func NewSet(raw ...string) (Set, error) {
	flags := make(map[Flag]struct{}, len(raw))
	for _, r := range raw {
		f, err := ParseFlag(r)
		if err != nil {
			return Set{}, err
		}
		flags[f] = struct{}{}
	}
	return Set{flags: flags}, nil
}

// MustNewSet is NewSet for statically known flag strings.
func MustNewSet(raw ...string) Set {
	s, err := NewSet(raw...)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether the set advertises the given flag.
func (s Set) Has(f Flag) bool {
	_, ok := s.flags[f]
	return ok
}

// Flags returns the members in canonical string form, sorted.
func (s Set) Flags() []string {
	out := make([]string, 0, len(s.flags))
	for f := range s.flags {
		out = append(out, f.String())
	}
	sort.Strings(out)
	return out
}

// Len returns the number of flags in the set.
func (s Set) Len() int {
	return len(s.flags)
}

// Entity describes the validation target of a service call: the thing the
// host resolved from the caller's target selector. Only the identity and the
// advertised capability set matter here; everything else about the entity
// belongs to the host platform.
type Entity struct {
	// ID is the host's entity identifier, e.g. "media_player.kitchen".
	ID string

	// Domain is the entity domain, e.g. "media_player".
	Domain string

	// Integration is the integration that provides the entity.
	Integration string

	// Features is the advertised capability set.
	Features Set
}

// namespaces tracks the flag namespaces the schema loader accepts in
// filter clauses. Guarded because registration may happen from init funcs
// in several packages.
var (
	nsMu       sync.RWMutex
	namespaces = map[string]struct{}{
		"media_player.MediaPlayerEntityFeature": {},
	}
)

// RegisterNamespace makes a flag namespace known to the schema loader.
// Registering an already known namespace is a no-op.
func RegisterNamespace(ns string) {
	nsMu.Lock()
	defer nsMu.Unlock()
	namespaces[ns] = struct{}{}
}

// KnownNamespace reports whether filter clauses may reference flags in ns.
func KnownNamespace(ns string) bool {
	nsMu.RLock()
	defer nsMu.RUnlock()
	_, ok := namespaces[ns]
	return ok
}

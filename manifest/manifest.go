// Package manifest loads and validates integration manifests: the metadata
// document shipped next to an integration's service definitions and string
// tables.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidManifest is returned for manifests that fail validation.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes one integration.
type Manifest struct {
	// Domain is the integration's unique key, e.g. "mass".
	Domain string `json:"domain"`

	// Name is the integration's display name.
	Name string `json:"name"`

	// Version is the integration version, a semantic version string.
	Version string `json:"version"`

	// Documentation and IssueTracker are informational URLs.
	Documentation string `json:"documentation,omitempty"`
	IssueTracker  string `json:"issue_tracker,omitempty"`

	// Requirements lists backing-library requirements, informational here.
	Requirements []string `json:"requirements,omitempty"`

	// MinHostVersion is the lowest host platform version the integration
	// supports. Empty means any.
	MinHostVersion string `json:"min_host_version,omitempty"`
}

// Load parses and validates a manifest document.
func Load(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads and validates a manifest from disk.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}
	m, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks the manifest's required fields and version syntax.
func (m *Manifest) Validate() error {
	if m.Domain == "" {
		return fmt.Errorf("%w: missing domain", ErrInvalidManifest)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: %q missing name", ErrInvalidManifest, m.Domain)
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return fmt.Errorf("%w: %q version %q: %v", ErrInvalidManifest, m.Domain, m.Version, err)
	}
	if m.MinHostVersion != "" {
		if _, err := semver.NewVersion(m.MinHostVersion); err != nil {
			return fmt.Errorf("%w: %q min_host_version %q: %v", ErrInvalidManifest, m.Domain, m.MinHostVersion, err)
		}
	}
	return nil
}

// CompatibleWith reports whether the integration supports the given host
// platform version.
func (m *Manifest) CompatibleWith(hostVersion string) (bool, error) {
	if m.MinHostVersion == "" {
		return true, nil
	}
	host, err := semver.NewVersion(hostVersion)
	if err != nil {
		return false, fmt.Errorf("host version %q: %w", hostVersion, err)
	}
	constraint, err := semver.NewConstraint(">= " + m.MinHostVersion)
	if err != nil {
		return false, err
	}
	return constraint.Check(host), nil
}

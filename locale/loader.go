package locale

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	yaml "github.com/goccy/go-yaml"
	"golang.org/x/text/language"
)

// Load decodes a string table document for tag. JSON and YAML documents are
// both accepted; the format is chosen by ext (".json", ".yaml" or ".yml").
func Load(tag language.Tag, data []byte, ext string) (*Table, error) {
	var doc map[string]any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("locale %s: parsing JSON table: %w", tag, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("locale %s: parsing YAML table: %w", tag, err)
		}
	default:
		return nil, fmt.Errorf("locale %s: unsupported table format %q", tag, ext)
	}
	return NewTable(tag, doc)
}

// LoadFile reads a string table from disk, deriving the locale from the
// file name: "translations/zh-Hans.json" serves zh-Hans.
func LoadFile(path string) (*Table, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	tag, err := language.Parse(stem)
	if err != nil {
		return nil, fmt.Errorf("%s: file name is not a locale tag: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading string table %q: %w", path, err)
	}
	table, err := Load(tag, data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Discover loads every string table under dir's translations directory.
func Discover(dir string) ([]*Table, error) {
	pattern := filepath.Join(dir, "translations", "*.{json,yaml,yml}")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing string tables in %q: %w", dir, err)
	}

	tables := make([]*Table, 0, len(matches))
	for _, path := range matches {
		table, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

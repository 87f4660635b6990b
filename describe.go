package servicekit

import (
	"github.com/hearthkit/servicekit/locale"
	"github.com/hearthkit/servicekit/schema"
)

// OptionDescription is one localized choice of a select field.
type OptionDescription struct {
	Value string
	Label string
}

// FieldDescription merges a field's schema metadata with its resolved
// display strings.
type FieldDescription struct {
	Name        string
	Label       string
	Description string
	Example     any
	Required    bool
	Advanced    bool
	Selector    schema.Selector

	// Options carries localized labels for select fields.
	Options []OptionDescription
}

// ServiceDescription is the render-time view of a service: schema merged
// with the resolved strings of one locale.
type ServiceDescription struct {
	ID          string
	Name        string
	Description string
	Fields      []FieldDescription
}

// Describe merges a definition with the display strings of a locale. Keys
// without a translation in any table fall back per the catalog's chain; a
// field with no string entry at all is labeled by its own name.
func Describe(def *schema.ServiceDefinition, catalog *locale.Catalog, loc string) ServiceDescription {
	base := "services." + def.ID

	desc := ServiceDescription{
		ID:          def.ID,
		Name:        lookupOr(catalog, loc, base+".name", def.ID),
		Description: lookupOr(catalog, loc, base+".description", ""),
		Fields:      make([]FieldDescription, 0, len(def.Fields)),
	}

	for i := range def.Fields {
		field := &def.Fields[i]
		fieldBase := base + ".fields." + field.Name

		fd := FieldDescription{
			Name:        field.Name,
			Label:       lookupOr(catalog, loc, fieldBase+".name", field.Name),
			Description: lookupOr(catalog, loc, fieldBase+".description", ""),
			Example:     field.Example,
			Required:    field.Required,
			Advanced:    field.Advanced,
			Selector:    field.Selector,
		}
		if field.Selector.Kind == schema.SelectorSelect {
			for _, option := range field.Selector.Options {
				fd.Options = append(fd.Options, OptionDescription{
					Value: option,
					Label: catalog.OptionLabel(loc, field.Selector.TranslationKey, option),
				})
			}
		}
		desc.Fields = append(desc.Fields, fd)
	}
	return desc
}

func lookupOr(catalog *locale.Catalog, loc, path, fallback string) string {
	if s, ok := catalog.Lookup(loc, path); ok {
		return s
	}
	return fallback
}

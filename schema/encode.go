package schema

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"

	"github.com/hearthkit/servicekit/capability"
)

// Encode serializes definitions back to a YAML document. Service and field
// order is preserved, so Load(Encode(defs)) yields definitions equivalent to
// defs.
func Encode(defs []*ServiceDefinition) ([]byte, error) {
	doc := make(yaml.MapSlice, 0, len(defs))
	for _, def := range defs {
		doc = append(doc, yaml.MapItem{Key: def.ID, Value: encodeService(def)})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding definition document: %w", err)
	}
	return out, nil
}

func encodeService(def *ServiceDefinition) yaml.MapSlice {
	svc := yaml.MapSlice{}
	if def.Target != nil {
		entity := yaml.MapSlice{}
		if def.Target.Domain != "" {
			entity = append(entity, yaml.MapItem{Key: "domain", Value: def.Target.Domain})
		}
		if def.Target.Integration != "" {
			entity = append(entity, yaml.MapItem{Key: "integration", Value: def.Target.Integration})
		}
		if len(def.Target.SupportedFeatures) > 0 {
			entity = append(entity, yaml.MapItem{Key: "supported_features", Value: flagStrings(def.Target.SupportedFeatures)})
		}
		svc = append(svc, yaml.MapItem{
			Key:   "target",
			Value: yaml.MapSlice{{Key: "entity", Value: entity}},
		})
	}

	if len(def.Fields) > 0 {
		fields := make(yaml.MapSlice, 0, len(def.Fields))
		for i := range def.Fields {
			fields = append(fields, yaml.MapItem{Key: def.Fields[i].Name, Value: encodeField(&def.Fields[i])})
		}
		svc = append(svc, yaml.MapItem{Key: "fields", Value: fields})
	}
	return svc
}

func encodeField(f *FieldSpec) yaml.MapSlice {
	field := yaml.MapSlice{}
	if f.Required {
		field = append(field, yaml.MapItem{Key: "required", Value: true})
	}
	if f.Advanced {
		field = append(field, yaml.MapItem{Key: "advanced", Value: true})
	}
	if f.Default != nil {
		field = append(field, yaml.MapItem{Key: "default", Value: f.Default})
	}
	if f.Example != nil {
		field = append(field, yaml.MapItem{Key: "example", Value: f.Example})
	}
	if f.Exclusive != "" {
		field = append(field, yaml.MapItem{Key: "exclusive", Value: f.Exclusive})
	}
	if f.Filter != nil {
		field = append(field, yaml.MapItem{
			Key:   "filter",
			Value: yaml.MapSlice{{Key: "supported_features", Value: flagStrings(f.Filter.SupportedFeatures)}},
		})
	}
	field = append(field, yaml.MapItem{Key: "selector", Value: encodeSelector(&f.Selector)})
	return field
}

func encodeSelector(s *Selector) yaml.MapSlice {
	switch s.Kind {
	case SelectorSelect:
		cfg := yaml.MapSlice{{Key: "options", Value: s.Options}}
		if s.Multiple {
			cfg = append(cfg, yaml.MapItem{Key: "multiple", Value: true})
		}
		if s.TranslationKey != "" {
			cfg = append(cfg, yaml.MapItem{Key: "translation_key", Value: s.TranslationKey})
		}
		return yaml.MapSlice{{Key: "select", Value: cfg}}

	case SelectorNumber:
		cfg := yaml.MapSlice{}
		if s.Min != nil {
			cfg = append(cfg, yaml.MapItem{Key: "min", Value: *s.Min})
		}
		if s.Max != nil {
			cfg = append(cfg, yaml.MapItem{Key: "max", Value: *s.Max})
		}
		if s.Step != nil {
			cfg = append(cfg, yaml.MapItem{Key: "step", Value: *s.Step})
		}
		return yaml.MapSlice{{Key: "number", Value: cfg}}

	default:
		return yaml.MapSlice{{Key: string(s.Kind), Value: map[string]any{}}}
	}
}

func flagStrings(flags []capability.Flag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, f.String())
	}
	return out
}

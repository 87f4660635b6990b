package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hearthkit/servicekit/capability"
)

// Load parses a YAML service definition document into an ordered list of
// ServiceDefinitions. The document is first checked against the embedded
// meta-schema and then decoded with the yaml Node API so that field
// declaration order survives the decode. Any structural problem aborts the
// whole load; Load never returns a partial result.
func Load(data []byte) ([]*ServiceDefinition, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parsing definition document: %w", err)
	}
	if generic == nil {
		return nil, nil
	}
	doc, err := toJSONValue(generic)
	if err != nil {
		return nil, err
	}
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing definition document: %w", err)
	}
	top := root.Content[0]

	seen := make(map[string]struct{}, len(top.Content)/2)
	defs := make([]*ServiceDefinition, 0, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		id := top.Content[i].Value
		if _, dup := seen[id]; dup {
			return nil, &DuplicateServiceError{Service: id}
		}
		seen[id] = struct{}{}

		def, err := decodeService(id, top.Content[i+1])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile reads and parses a definition document from disk.
func LoadFile(path string) ([]*ServiceDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition document %q: %w", path, err)
	}
	defs, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// toJSONValue round-trips a YAML-decoded value through encoding/json so the
// meta-schema validator sees the value types it expects.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalizing definition document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("normalizing definition document: %w", err)
	}
	return out, nil
}

func decodeService(id string, node *yaml.Node) (*ServiceDefinition, error) {
	def := &ServiceDefinition{ID: id}
	if node.Tag == "!!null" {
		return def, nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "target":
			target, err := decodeTarget(id, value)
			if err != nil {
				return nil, err
			}
			def.Target = target
		case "fields":
			for j := 0; j+1 < len(value.Content); j += 2 {
				field, err := decodeField(id, value.Content[j].Value, value.Content[j+1])
				if err != nil {
					return nil, err
				}
				def.Fields = append(def.Fields, *field)
			}
		}
	}
	return def, nil
}

func decodeTarget(service string, node *yaml.Node) (*TargetRule, error) {
	var doc struct {
		Entity struct {
			Domain            string   `yaml:"domain"`
			Integration       string   `yaml:"integration"`
			SupportedFeatures []string `yaml:"supported_features"`
		} `yaml:"entity"`
	}
	if err := node.Decode(&doc); err != nil {
		return nil, &SchemaError{Service: service, Reason: fmt.Sprintf("malformed target: %v", err)}
	}

	rule := &TargetRule{
		Domain:      doc.Entity.Domain,
		Integration: doc.Entity.Integration,
	}
	for _, raw := range doc.Entity.SupportedFeatures {
		flag, err := parseKnownFlag(raw)
		if err != nil {
			return nil, &SchemaError{Service: service, Reason: err.Error()}
		}
		rule.SupportedFeatures = append(rule.SupportedFeatures, flag)
	}
	return rule, nil
}

func decodeField(service, name string, node *yaml.Node) (*FieldSpec, error) {
	field := &FieldSpec{Name: name}
	haveSelector := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "required":
			if err := value.Decode(&field.Required); err != nil {
				return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed required flag: %v", err)}
			}
		case "advanced":
			if err := value.Decode(&field.Advanced); err != nil {
				return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed advanced flag: %v", err)}
			}
		case "default":
			if err := value.Decode(&field.Default); err != nil {
				return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed default: %v", err)}
			}
		case "example":
			if err := value.Decode(&field.Example); err != nil {
				return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed example: %v", err)}
			}
		case "exclusive":
			if err := value.Decode(&field.Exclusive); err != nil {
				return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed exclusive group: %v", err)}
			}
		case "filter":
			filter, err := decodeFilter(service, name, value)
			if err != nil {
				return nil, err
			}
			field.Filter = filter
		case "selector":
			selector, err := decodeSelector(service, name, value)
			if err != nil {
				return nil, err
			}
			field.Selector = *selector
			haveSelector = true
		}
	}

	if !haveSelector {
		return nil, &SchemaError{Service: service, Field: name, Reason: "field must declare exactly one selector"}
	}
	return field, nil
}

func decodeFilter(service, name string, node *yaml.Node) (*Filter, error) {
	var doc struct {
		SupportedFeatures []string `yaml:"supported_features"`
	}
	if err := node.Decode(&doc); err != nil {
		return nil, &SchemaError{Service: service, Field: name, Reason: fmt.Sprintf("malformed filter: %v", err)}
	}
	if len(doc.SupportedFeatures) == 0 {
		return nil, &SchemaError{Service: service, Field: name, Reason: "filter must list at least one capability flag"}
	}

	filter := &Filter{}
	for _, raw := range doc.SupportedFeatures {
		flag, err := parseKnownFlag(raw)
		if err != nil {
			return nil, &SchemaError{Service: service, Field: name, Reason: err.Error()}
		}
		filter.SupportedFeatures = append(filter.SupportedFeatures, flag)
	}
	return filter, nil
}

// parseKnownFlag parses a capability flag and rejects namespaces the host
// has not registered. Typos in filter clauses surface at load, not at the
// first call that happens to hit the field.
func parseKnownFlag(raw string) (capability.Flag, error) {
	flag, err := capability.ParseFlag(raw)
	if err != nil {
		return capability.Flag{}, err
	}
	if !capability.KnownNamespace(flag.Namespace) {
		return capability.Flag{}, fmt.Errorf("unknown capability namespace %q", flag.Namespace)
	}
	return flag, nil
}

func decodeSelector(service, field string, node *yaml.Node) (*Selector, error) {
	if len(node.Content) != 2 {
		return nil, &SchemaError{Service: service, Field: field, Reason: "selector must declare exactly one kind"}
	}
	kind, cfg := node.Content[0].Value, node.Content[1]

	switch SelectorKind(kind) {
	case SelectorText, SelectorObject, SelectorBoolean:
		return &Selector{Kind: SelectorKind(kind)}, nil

	case SelectorSelect:
		var doc struct {
			Options        []string `yaml:"options"`
			Multiple       bool     `yaml:"multiple"`
			TranslationKey string   `yaml:"translation_key"`
		}
		if err := cfg.Decode(&doc); err != nil {
			return nil, &SchemaError{Service: service, Field: field, Reason: fmt.Sprintf("malformed select selector: %v", err)}
		}
		if len(doc.Options) == 0 {
			return nil, &SchemaError{Service: service, Field: field, Reason: "select selector needs at least one option"}
		}
		return &Selector{
			Kind:           SelectorSelect,
			Options:        doc.Options,
			Multiple:       doc.Multiple,
			TranslationKey: doc.TranslationKey,
		}, nil

	case SelectorNumber:
		var doc struct {
			Min  *float64 `yaml:"min"`
			Max  *float64 `yaml:"max"`
			Step *float64 `yaml:"step"`
		}
		if err := cfg.Decode(&doc); err != nil {
			return nil, &SchemaError{Service: service, Field: field, Reason: fmt.Sprintf("malformed number selector: %v", err)}
		}
		if doc.Min != nil && doc.Max != nil && *doc.Min > *doc.Max {
			return nil, &SchemaError{Service: service, Field: field, Reason: fmt.Sprintf("number selector min %v exceeds max %v", *doc.Min, *doc.Max)}
		}
		if doc.Step != nil && *doc.Step <= 0 {
			return nil, &SchemaError{Service: service, Field: field, Reason: fmt.Sprintf("number selector step %v must be positive", *doc.Step)}
		}
		return &Selector{Kind: SelectorNumber, Min: doc.Min, Max: doc.Max, Step: doc.Step}, nil

	default:
		return nil, &SchemaError{Service: service, Field: field, Reason: fmt.Sprintf("unknown selector kind %q", kind)}
	}
}

package main

import (
	"github.com/charmbracelet/huh"

	servicekit "github.com/hearthkit/servicekit"
	"github.com/hearthkit/servicekit/schema"
)

// promptForArgs renders an interactive form generated from a service
// description and returns the entered arguments. Fields left empty are
// omitted so optional fields stay absent and defaults apply during
// validation.
func promptForArgs(desc servicekit.ServiceDescription) (map[string]any, error) {
	type binding struct {
		field  *servicekit.FieldDescription
		text   *string
		flag   *bool
		multi  *[]string
		wasSet func() bool
	}

	var inputs []huh.Field
	bindings := make([]binding, 0, len(desc.Fields))

	for i := range desc.Fields {
		field := &desc.Fields[i]
		title := field.Label
		if field.Required {
			title += " (required)"
		}

		switch field.Selector.Kind {
		case schema.SelectorBoolean:
			value := new(bool)
			inputs = append(inputs, huh.NewConfirm().
				Title(title).
				Description(field.Description).
				Value(value))
			bindings = append(bindings, binding{field: field, flag: value})

		case schema.SelectorSelect:
			if field.Selector.Multiple {
				values := new([]string)
				inputs = append(inputs, huh.NewMultiSelect[string]().
					Title(title).
					Description(field.Description).
					Options(optionList(field)...).
					Value(values))
				bindings = append(bindings, binding{field: field, multi: values})
			} else {
				value := new(string)
				options := append([]huh.Option[string]{huh.NewOption("(skip)", "")}, optionList(field)...)
				inputs = append(inputs, huh.NewSelect[string]().
					Title(title).
					Description(field.Description).
					Options(options...).
					Value(value))
				bindings = append(bindings, binding{field: field, text: value})
			}

		default:
			// Text, number and object values are entered as text; the
			// validator coerces numeric strings.
			value := new(string)
			input := huh.NewInput().
				Title(title).
				Description(field.Description).
				Value(value)
			if example, ok := field.Example.(string); ok {
				input = input.Placeholder(example)
			}
			inputs = append(inputs, input)
			bindings = append(bindings, binding{field: field, text: value})
		}
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
		return nil, err
	}

	args := make(map[string]any)
	for _, b := range bindings {
		switch {
		case b.text != nil:
			if *b.text != "" {
				args[b.field.Name] = *b.text
			}
		case b.multi != nil:
			if len(*b.multi) > 0 {
				args[b.field.Name] = *b.multi
			}
		case b.flag != nil:
			// Booleans are only meaningful when the field is requested;
			// confirm widgets default to false, which matches omission
			// for the advanced flags these schemas carry.
			if *b.flag {
				args[b.field.Name] = true
			}
		}
	}
	return args, nil
}

func optionList(field *servicekit.FieldDescription) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(field.Options))
	for _, option := range field.Options {
		options = append(options, huh.NewOption(option.Label, option.Value))
	}
	return options
}

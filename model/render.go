package model

// Control identifies the interactive widget a field maps to.
type Control string

const (
	ControlInput      Control = "input"
	ControlTextarea   Control = "textarea"
	ControlCheckboxes Control = "checkboxes"
	ControlRadioGroup Control = "radio-group"
	ControlSelect     Control = "select"
)

// ControlSpec tells a UI layer what to draw for one field and what
// value shape to read back. Required is a visual marker only;
// enforcement happens at submit, never per keystroke.
type ControlSpec struct {
	Control   Control  `json:"control"`
	InputType string   `json:"inputType,omitempty"`
	Options   []string `json:"options,omitempty"`
	Multi     bool     `json:"multi"`
	Required  bool     `json:"required"`
	Value     Value    `json:"value"`
}

// ControlFor maps a field definition and its current value to the
// control contract. The switch is exhaustive over the type registry.
func ControlFor(fld Field, v Value) ControlSpec {
	spec := ControlSpec{Required: fld.Required, Value: v}

	switch fld.Type {
	case TypeText, TypeNumber, TypeEmail, TypeTel, TypeDate:
		spec.Control = ControlInput
		spec.InputType = string(fld.Type)
	case TypeTextarea:
		spec.Control = ControlTextarea
	case TypeCheckbox:
		spec.Control = ControlCheckboxes
		spec.Options = append([]string(nil), fld.Options...)
		spec.Multi = true
	case TypeRadio:
		spec.Control = ControlRadioGroup
		spec.Options = append([]string(nil), fld.Options...)
	case TypeSelect, TypeDropdown:
		spec.Control = ControlSelect
		spec.Options = append([]string(nil), fld.Options...)
	}

	return spec
}

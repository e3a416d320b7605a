package model

// FieldType is one of the supported input kinds. The set is closed:
// adding a kind is a code change here and in ControlFor, not data.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeDate     FieldType = "date"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
	TypeSelect   FieldType = "select"
	TypeDropdown FieldType = "dropdown"
)

// TypeInfo is one registry entry, as presented to a builder UI.
type TypeInfo struct {
	Value FieldType `json:"value"`
	Label string    `json:"label"`
}

var fieldTypes = []TypeInfo{
	{TypeText, "Text"},
	{TypeNumber, "Number"},
	{TypeEmail, "Email"},
	{TypeTel, "Phone"},
	{TypeDate, "Date"},
	{TypeTextarea, "Text Area"},
	{TypeCheckbox, "Checkbox"},
	{TypeRadio, "Radio"},
	{TypeSelect, "Select"},
	{TypeDropdown, "Dropdown"},
}

// Types returns the registry entries in display order.
func Types() []TypeInfo {
	out := make([]TypeInfo, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

func (t FieldType) Valid() bool {
	for _, ti := range fieldTypes {
		if ti.Value == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether values of this type are picked from a
// user-defined option list.
func (t FieldType) HasOptions() bool {
	switch t {
	case TypeCheckbox, TypeRadio, TypeSelect, TypeDropdown:
		return true
	}
	return false
}

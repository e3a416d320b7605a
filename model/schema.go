package model

import "strings"

// Direction selects which way MoveField shifts a field.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// FieldPatch carries the edits UpdateField applies. Nil members leave
// the corresponding attribute unchanged.
type FieldPatch struct {
	Label    *string
	Type     *FieldType
	Required *bool
	Options  *[]string
}

// AddField appends fld to the form. The label must be non-blank and
// unique among existing fields, comparing case-insensitively.
// pendingOption is option text the caller has typed but not confirmed
// with AddOption; refusing to proceed keeps it from being dropped
// silently.
func AddField(f Form, fld Field, pendingOption string) (Form, error) {
	if strings.TrimSpace(fld.Label) == "" {
		return f, ErrEmptyLabel
	}
	if !fld.Type.Valid() {
		return f, ErrUnknownType
	}
	if fld.Type.HasOptions() && strings.TrimSpace(pendingOption) != "" {
		return f, ErrPendingOption
	}
	if hasLabel(f.Fields, fld.Label) {
		return f, ErrDuplicateLabel
	}

	if !fld.Type.HasOptions() {
		fld.Options = nil
	} else {
		fld.Options = append([]string(nil), fld.Options...)
	}

	out := f
	out.Fields = append(cloneFields(f.Fields), fld)
	return out, nil
}

// RemoveField drops the field at index i. The index must be in range;
// callers pass indices obtained from the same form.
func RemoveField(f Form, i int) Form {
	fields := cloneFields(f.Fields)
	out := f
	out.Fields = append(fields[:i], fields[i+1:]...)
	return out
}

// MoveField swaps the field at index i with its neighbor. Moving the
// first field up, or the last field down, leaves the form unchanged.
func MoveField(f Form, i int, dir Direction) Form {
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(f.Fields) {
		return f
	}

	fields := cloneFields(f.Fields)
	fields[i], fields[j] = fields[j], fields[i]
	out := f
	out.Fields = fields
	return out
}

// UpdateField edits the field at index i in place. Label uniqueness is
// enforced here exactly as in AddField, so a form can never hold two
// case-insensitively equal labels no matter which path mutated it.
func UpdateField(f Form, i int, patch FieldPatch) (Form, error) {
	fields := cloneFields(f.Fields)
	fld := fields[i]

	if patch.Label != nil {
		label := *patch.Label
		if strings.TrimSpace(label) == "" {
			return f, ErrEmptyLabel
		}
		for j, other := range f.Fields {
			if j != i && strings.EqualFold(other.Label, label) {
				return f, ErrDuplicateLabel
			}
		}
		fld.Label = label
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return f, ErrUnknownType
		}
		fld.Type = *patch.Type
	}
	if patch.Required != nil {
		fld.Required = *patch.Required
	}
	if patch.Options != nil {
		fld.Options = append([]string(nil), *patch.Options...)
	}
	if !fld.Type.HasOptions() {
		fld.Options = nil
	}

	fields[i] = fld
	out := f
	out.Fields = fields
	return out, nil
}

// AddOption appends text to the option list of the field at index i.
// Duplicate option text is allowed and kept as entered.
func AddOption(f Form, i int, text string) (Form, error) {
	if strings.TrimSpace(text) == "" {
		return f, ErrEmptyOption
	}
	fields := cloneFields(f.Fields)
	fields[i].Options = append(fields[i].Options, text)
	out := f
	out.Fields = fields
	return out, nil
}

// RenameOption replaces the option at position j of field i.
func RenameOption(f Form, i, j int, text string) (Form, error) {
	if strings.TrimSpace(text) == "" {
		return f, ErrEmptyOption
	}
	fields := cloneFields(f.Fields)
	fields[i].Options[j] = text
	out := f
	out.Fields = fields
	return out, nil
}

// RemoveOption drops the option at position j of field i.
func RemoveOption(f Form, i, j int) Form {
	fields := cloneFields(f.Fields)
	opts := fields[i].Options
	fields[i].Options = append(opts[:j:j], opts[j+1:]...)
	out := f
	out.Fields = fields
	return out
}

func hasLabel(fields []Field, label string) bool {
	for _, fld := range fields {
		if strings.EqualFold(fld.Label, label) {
			return true
		}
	}
	return false
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, fld := range fields {
		fld.Options = append([]string(nil), fld.Options...)
		out[i] = fld
	}
	return out
}

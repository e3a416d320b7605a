package model

import "time"

// InitValues keys a fresh value set by the form's fields, in field
// order, prefilling from prior when the user edits an earlier
// response. Checkbox fields start as an explicit empty list so an
// untouched field still round-trips as [].
func InitValues(f Form, prior *Response) Values {
	values := NewValues()
	for _, fld := range f.Fields {
		v := emptyValue(fld.Type)
		if prior != nil {
			if pv, ok := prior.Values.Get(fld.Label); ok {
				v = pv
			}
		}
		values = values.Set(fld.Label, v)
	}
	return values
}

func emptyValue(t FieldType) Value {
	if t == TypeCheckbox {
		return ListValue()
	}
	return StringValue("")
}

// Submit validates values against the form and produces the response
// to persist. The stored values are keyed by the form's fields, in
// field order: submitted keys outside the schema are dropped, fields
// the submission left out get an empty value. Editing keeps the prior
// identity so the store updates in place; a new submission leaves ID
// empty for the store to assign.
func Submit(f Form, values Values, prior *Response, session Session) (Response, error) {
	submitted := NewValues()
	for _, fld := range f.Fields {
		v := emptyValue(fld.Type)
		if sv, ok := values.Get(fld.Label); ok {
			v = sv
		}
		submitted = submitted.Set(fld.Label, v)
	}

	if err := ValidateForSubmit(f, submitted); err != nil {
		return Response{}, err
	}

	resp := Response{
		FormID:     f.ID,
		FormName:   f.Name,
		OwnerID:    session.UserID,
		OwnerEmail: session.Email,
		Values:     submitted,
	}
	if prior != nil {
		resp.ID = prior.ID
		resp.Label = prior.Label
	}
	return resp, nil
}

const copyLabelPrefix = "Copy of "

// CopyResponse duplicates r with a fresh identity: same values, no ID,
// no timestamp, display label prefixed. The store assigns the new
// identity on save.
func CopyResponse(r Response) Response {
	out := r
	out.ID = ""
	out.ModifiedOn = time.Time{}
	out.Values = r.Values.clone()

	label := r.Label
	if label == "" {
		label = r.FormName
	}
	out.Label = copyLabelPrefix + label
	return out
}

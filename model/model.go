package model

import (
	"encoding/json"
	"time"
)

// Form is a named, ordered list of field definitions. A form that has
// never been saved has an empty ID; the store assigns identity and the
// modification timestamp.
type Form struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"ownerId"`
	Fields     []Field   `json:"fields"`
	ModifiedOn time.Time `json:"modifiedOn,omitempty"`
}

// Field is one input slot in a form. Options is only meaningful for
// option-bearing types; duplicates in it are kept as entered.
type Field struct {
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// UnmarshalJSON defaults required to true when the key is absent.
func (f *Field) UnmarshalJSON(data []byte) error {
	type alias Field
	aux := struct {
		Required *bool `json:"required"`
		*alias
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Required = aux.Required == nil || *aux.Required
	return nil
}

// Response is one filled-in instance of a form. FormName is a snapshot
// taken at submission time and is not re-synced when the form is
// renamed. Values keys match the form's field labels as they were when
// the response was created; later schema edits are not migrated.
type Response struct {
	ID         string    `json:"id,omitempty"`
	FormID     string    `json:"formId"`
	FormName   string    `json:"formName"`
	Label      string    `json:"label,omitempty"`
	OwnerID    string    `json:"ownerId"`
	OwnerEmail string    `json:"ownerEmail"`
	Values     Values    `json:"values"`
	ModifiedOn time.Time `json:"modifiedOn,omitempty"`
}

// Session identifies the authenticated caller. It is passed explicitly
// into every operation that needs identity; there is no ambient user.
type Session struct {
	UserID string
	Email  string
}

package model

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Draft holds builder input that has been typed but not yet confirmed
// with an explicit add. Saving while a draft is outstanding would
// silently discard it, so validation refuses instead.
type Draft struct {
	FieldLabel string `json:"fieldLabel,omitempty"`
	OptionText string `json:"optionText,omitempty"`
}

// ValidateForSave checks a form before it is handed to the store. The
// label rules match the builder operations, so a form arriving as a
// complete field array cannot bypass them. All violations are
// collected and reported together.
func ValidateForSave(f Form, draft Draft) error {
	var errs *multierror.Error

	if strings.TrimSpace(f.Name) == "" {
		errs = multierror.Append(errs, ErrEmptyName)
	}
	if strings.TrimSpace(draft.FieldLabel) != "" {
		errs = multierror.Append(errs, ErrPendingField)
	}
	if strings.TrimSpace(draft.OptionText) != "" {
		errs = multierror.Append(errs, ErrPendingOption)
	}
	seen := make(map[string]bool, len(f.Fields))
	for i, fld := range f.Fields {
		if !fld.Type.Valid() {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", fld.Label, ErrUnknownType))
		}
		if strings.TrimSpace(fld.Label) == "" {
			errs = multierror.Append(errs, fmt.Errorf("field %d: %w", i+1, ErrEmptyLabel))
			continue
		}
		key := strings.ToLower(fld.Label)
		if seen[key] {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", fld.Label, ErrDuplicateLabel))
		}
		seen[key] = true
	}

	return errs.ErrorOrNil()
}

// ValidateForSubmit checks every required field against the submitted
// values. Missing labels are reported all at once so the user fixes
// the whole submission in one pass.
func ValidateForSubmit(f Form, values Values) error {
	var missing []string
	for _, fld := range f.Fields {
		if !fld.Required {
			continue
		}
		v, ok := values.Get(fld.Label)
		if !ok || v.Empty() {
			missing = append(missing, fld.Label)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredError{Labels: missing}
	}
	return nil
}

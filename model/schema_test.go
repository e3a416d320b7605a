package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForm() Form {
	return Form{
		ID:      "f1",
		Name:    "RSVP",
		OwnerID: "u1",
		Fields: []Field{
			{Label: "Name", Type: TypeText, Required: true},
			{Label: "Email", Type: TypeEmail, Required: true},
			{Label: "Attending", Type: TypeRadio, Required: true, Options: []string{"Yes", "No"}},
		},
	}
}

func TestAddField(t *testing.T) {
	form, err := AddField(testForm(), Field{Label: "Notes", Type: TypeTextarea}, "")
	require.NoError(t, err)

	require.Len(t, form.Fields, 4)
	assert.Equal(t, "Notes", form.Fields[3].Label)
}

func TestAddFieldDoesNotTouchTheReceiver(t *testing.T) {
	orig := testForm()
	_, err := AddField(orig, Field{Label: "Notes", Type: TypeTextarea}, "")
	require.NoError(t, err)

	assert.Equal(t, testForm(), orig)
}

func TestAddFieldEmptyLabel(t *testing.T) {
	for _, label := range []string{"", "   ", "\t"} {
		_, err := AddField(testForm(), Field{Label: label, Type: TypeText}, "")
		assert.ErrorIs(t, err, ErrEmptyLabel)
	}
}

func TestAddFieldDuplicateLabelIsCaseInsensitive(t *testing.T) {
	orig := testForm()
	form, err := AddField(orig, Field{Label: "email", Type: TypeText}, "")

	assert.ErrorIs(t, err, ErrDuplicateLabel)
	assert.Equal(t, orig, form)
}

func TestAddFieldUnknownType(t *testing.T) {
	_, err := AddField(testForm(), Field{Label: "Upload", Type: "file"}, "")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestAddFieldPendingOption(t *testing.T) {
	_, err := AddField(testForm(), Field{Label: "Meal", Type: TypeRadio, Options: []string{"Veg"}}, "Meat")
	assert.ErrorIs(t, err, ErrPendingOption)

	// pending text only matters for option-bearing types
	_, err = AddField(testForm(), Field{Label: "Notes", Type: TypeText}, "Meat")
	assert.NoError(t, err)
}

func TestAddFieldDropsOptionsOnPlainTypes(t *testing.T) {
	form, err := AddField(testForm(), Field{Label: "Notes", Type: TypeText, Options: []string{"stray"}}, "")
	require.NoError(t, err)
	assert.Nil(t, form.Fields[3].Options)
}

func TestRemoveField(t *testing.T) {
	form := RemoveField(testForm(), 1)

	require.Len(t, form.Fields, 2)
	assert.Equal(t, "Name", form.Fields[0].Label)
	assert.Equal(t, "Attending", form.Fields[1].Label)
}

func TestMoveField(t *testing.T) {
	labels := func(f Form) (out []string) {
		for _, fld := range f.Fields {
			out = append(out, fld.Label)
		}
		return
	}

	tests := []struct {
		name  string
		index int
		dir   Direction
		want  []string
	}{
		{"up", 1, MoveUp, []string{"Email", "Name", "Attending"}},
		{"down", 1, MoveDown, []string{"Name", "Attending", "Email"}},
		{"first up is a no-op", 0, MoveUp, []string{"Name", "Email", "Attending"}},
		{"last down is a no-op", 2, MoveDown, []string{"Name", "Email", "Attending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := MoveField(testForm(), tt.index, tt.dir)
			assert.Equal(t, tt.want, labels(form))
		})
	}
}

func TestUpdateField(t *testing.T) {
	label := "Guest Name"
	required := false
	form, err := UpdateField(testForm(), 0, FieldPatch{Label: &label, Required: &required})
	require.NoError(t, err)

	assert.Equal(t, "Guest Name", form.Fields[0].Label)
	assert.False(t, form.Fields[0].Required)
}

func TestUpdateFieldEnforcesUniqueLabels(t *testing.T) {
	label := "EMAIL"
	orig := testForm()
	form, err := UpdateField(orig, 0, FieldPatch{Label: &label})

	assert.ErrorIs(t, err, ErrDuplicateLabel)
	assert.Equal(t, orig, form)
}

func TestUpdateFieldKeepsOwnLabel(t *testing.T) {
	// renaming a field to a different casing of itself is fine
	label := "EMAIL"
	form, err := UpdateField(testForm(), 1, FieldPatch{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "EMAIL", form.Fields[1].Label)
}

func TestUpdateFieldTypeChangeDropsOptions(t *testing.T) {
	typ := TypeText
	form, err := UpdateField(testForm(), 2, FieldPatch{Type: &typ})
	require.NoError(t, err)

	assert.Equal(t, TypeText, form.Fields[2].Type)
	assert.Nil(t, form.Fields[2].Options)
}

func TestOptionEdits(t *testing.T) {
	form, err := AddOption(testForm(), 2, "Maybe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No", "Maybe"}, form.Fields[2].Options)

	// duplicates are kept as entered
	form, err = AddOption(form, 2, "Maybe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No", "Maybe", "Maybe"}, form.Fields[2].Options)

	form, err = RenameOption(form, 2, 1, "Never")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "Never", "Maybe", "Maybe"}, form.Fields[2].Options)

	form = RemoveOption(form, 2, 0)
	assert.Equal(t, []string{"Never", "Maybe", "Maybe"}, form.Fields[2].Options)
}

func TestOptionEditsRejectEmptyText(t *testing.T) {
	_, err := AddOption(testForm(), 2, "  ")
	assert.ErrorIs(t, err, ErrEmptyOption)

	_, err = RenameOption(testForm(), 2, 0, "")
	assert.ErrorIs(t, err, ErrEmptyOption)
}

func TestOptionEditsDoNotTouchTheReceiver(t *testing.T) {
	orig := testForm()
	_, err := AddOption(orig, 2, "Maybe")
	require.NoError(t, err)
	assert.Equal(t, testForm(), orig)
}

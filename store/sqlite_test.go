package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formdesk/formdesk/model"
)

var formQueryColumns = []string{"id", "name", "owner_id", "fields", "modified_on"}
var responseQueryColumns = []string{"id", "form_id", "form_name", "label", "owner_id", "owner_email", "vals", "modified_on"}

var selectFormRegex = "SELECT (.+) FROM form*"
var selectResponseRegex = "SELECT (.+) FROM response*"
var insertFormRegex = "INSERT INTO form*"
var insertResponseRegex = "INSERT INTO response*"
var updateFormRegex = "UPDATE form SET*"
var deleteFormRegex = "DELETE FROM form*"
var deleteResponseRegex = "DELETE FROM response*"

func newMock(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLite(db), mock
}

func TestListForms(t *testing.T) {
	s, mock := newMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(selectFormRegex).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(formQueryColumns).
			AddRow("f2", "Later", "u1", `[]`, now).
			AddRow("f1", "Earlier", "u1", `[{"label":"Name","type":"text","required":true}]`, now.Add(-time.Hour)))

	forms, err := s.ListForms(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, forms, 2)
	assert.Equal(t, "Later", forms[0].Name)
	require.Len(t, forms[1].Fields, 1)
	assert.Equal(t, "Name", forms[1].Fields[0].Label)
	assert.Equal(t, model.TypeText, forms[1].Fields[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFormNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(selectFormRegex).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(formQueryColumns))

	_, err := s.GetForm(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveFormInsertAssignsIdentity(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(insertFormRegex).
		WithArgs(sqlmock.AnyArg(), "RSVP", "u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	form, err := s.SaveForm(context.Background(), model.Form{
		Name:    "RSVP",
		OwnerID: "u1",
		Fields:  []model.Field{{Label: "Name", Type: model.TypeText, Required: true}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, form.ID)
	assert.False(t, form.ModifiedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveFormUpdate(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(updateFormRegex).
		WithArgs("RSVP", sqlmock.AnyArg(), sqlmock.AnyArg(), "f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	form, err := s.SaveForm(context.Background(), model.Form{ID: "f1", Name: "RSVP", OwnerID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "f1", form.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveFormUpdateMissingRow(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(updateFormRegex).
		WithArgs("RSVP", sqlmock.AnyArg(), sqlmock.AnyArg(), "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.SaveForm(context.Background(), model.Form{ID: "gone", Name: "RSVP"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveFormStripsMarkup(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(insertFormRegex).
		WithArgs(sqlmock.AnyArg(), "RSVP", "u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	form, err := s.SaveForm(context.Background(), model.Form{
		Name:    `<script>alert(1)</script>RSVP`,
		OwnerID: "u1",
		Fields:  []model.Field{{Label: "<b>Name</b>", Type: model.TypeText, Required: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RSVP", form.Name)
	assert.Equal(t, "Name", form.Fields[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cascade: dependents first, then the form, one transaction.
func TestDeleteFormCascades(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteResponseRegex).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(deleteFormRegex).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteForm(context.Background(), "f1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Retrying after a partial cascade must succeed even though nothing is
// left to delete.
func TestDeleteFormIsIdempotent(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(deleteResponseRegex).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteFormRegex).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteForm(context.Background(), "f1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListResponses(t *testing.T) {
	s, mock := newMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(selectResponseRegex).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(responseQueryColumns).
			AddRow("r1", "f1", "RSVP", "", "u1", "ann@example.com", `{"Name":"Ann","Toppings":["Ham"]}`, now))

	responses, err := s.ListResponses(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.Equal(t, []string{"Name", "Toppings"}, responses[0].Values.Labels())
	name, _ := responses[0].Values.Get("Name")
	assert.Equal(t, "Ann", name.Text())
	toppings, _ := responses[0].Values.Get("Toppings")
	assert.Equal(t, []string{"Ham"}, toppings.List())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResponseNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(selectResponseRegex).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(responseQueryColumns))

	_, err := s.GetResponse(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveResponseInsert(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(insertResponseRegex).
		WithArgs(sqlmock.AnyArg(), "f1", "RSVP", "", "u1", "ann@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := s.SaveResponse(context.Background(), model.Response{
		FormID:     "f1",
		FormName:   "RSVP",
		OwnerID:    "u1",
		OwnerEmail: "ann@example.com",
		Values:     model.NewValues().Set("Name", model.StringValue("Ann")),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteResponse(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(deleteResponseRegex).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteResponse(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

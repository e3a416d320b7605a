package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/formdesk/formdesk/model"
)

// Markup never belongs in form names, field labels or answers; strip
// it on the way into the database rather than on every read.
var (
	stripTags = bluemonday.StrictPolicy()
	ugcPolicy = bluemonday.UGCPolicy()
)

// SQLite persists forms and responses in a SQLite database. Field
// lists and value maps are stored as JSON text columns; that encoding
// choice lives entirely in this adapter.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db}
}

func (s *SQLite) ListForms(ctx context.Context, ownerID string) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner_id, fields, modified_on
		FROM form
		WHERE owner_id = ?
		ORDER BY modified_on DESC`,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list forms")
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list forms: scan")
		}
		forms = append(forms, f)
	}
	return forms, errors.Wrap(rows.Err(), "list forms")
}

func (s *SQLite) GetForm(ctx context.Context, id string) (model.Form, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, fields, modified_on
		FROM form
		WHERE id = ?`,
		id,
	)
	f, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, ErrNotFound
	}
	return f, errors.Wrap(err, "get form")
}

// SaveForm inserts when f has no id yet, otherwise updates in place.
// The store assigns the id and the modified_on timestamp.
func (s *SQLite) SaveForm(ctx context.Context, f model.Form) (model.Form, error) {
	f.Name = stripTags.Sanitize(f.Name)
	fields := make([]model.Field, len(f.Fields))
	copy(fields, f.Fields)
	for i := range fields {
		fields[i].Label = stripTags.Sanitize(fields[i].Label)
	}
	f.Fields = fields

	encoded, err := json.Marshal(f.Fields)
	if err != nil {
		return f, errors.Wrap(err, "save form: encode fields")
	}
	f.ModifiedOn = time.Now().UTC()

	if f.ID == "" {
		f.ID = uuid.NewString()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO form (id, name, owner_id, fields, modified_on)
			VALUES (?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.OwnerID, string(encoded), f.ModifiedOn,
		)
		return f, errors.Wrap(err, "insert form")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE form
		SET name = ?, fields = ?, modified_on = ?
		WHERE id = ?`,
		f.Name, string(encoded), f.ModifiedOn, f.ID,
	)
	if err != nil {
		return f, errors.Wrap(err, "update form")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return f, errors.Wrap(err, "update form: verify")
	}
	if n < 1 {
		return f, ErrNotFound
	}
	return f, nil
}

// DeleteForm removes the form and every response referencing it, in
// one transaction. Dependents go first so an interrupted delete never
// leaves orphaned responses, and deleting an already-deleted form is
// not an error, so a partial cascade can simply be retried.
func (s *SQLite) DeleteForm(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "delete form: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM response WHERE form_id = ?`, id); err != nil {
		return errors.Wrap(err, "delete form: responses")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM form WHERE id = ?`, id); err != nil {
		return errors.Wrap(err, "delete form")
	}
	return errors.Wrap(tx.Commit(), "delete form: commit")
}

func (s *SQLite) ListResponses(ctx context.Context, ownerID string) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, form_name, label, owner_id, owner_email, vals, modified_on
		FROM response
		WHERE owner_id = ?
		ORDER BY modified_on DESC`,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list responses: scan")
		}
		responses = append(responses, r)
	}
	return responses, errors.Wrap(rows.Err(), "list responses")
}

func (s *SQLite) GetResponse(ctx context.Context, id string) (model.Response, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, form_id, form_name, label, owner_id, owner_email, vals, modified_on
		FROM response
		WHERE id = ?`,
		id,
	)
	r, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Response{}, ErrNotFound
	}
	return r, errors.Wrap(err, "get response")
}

func (s *SQLite) SaveResponse(ctx context.Context, r model.Response) (model.Response, error) {
	r.Label = stripTags.Sanitize(r.Label)
	r.Values = sanitizeValues(r.Values)

	encoded, err := json.Marshal(r.Values)
	if err != nil {
		return r, errors.Wrap(err, "save response: encode values")
	}
	r.ModifiedOn = time.Now().UTC()

	if r.ID == "" {
		r.ID = uuid.NewString()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO response (id, form_id, form_name, label, owner_id, owner_email, vals, modified_on)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.FormID, r.FormName, r.Label, r.OwnerID, r.OwnerEmail, string(encoded), r.ModifiedOn,
		)
		return r, errors.Wrap(err, "insert response")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE response
		SET form_name = ?, label = ?, vals = ?, modified_on = ?
		WHERE id = ?`,
		r.FormName, r.Label, string(encoded), r.ModifiedOn, r.ID,
	)
	if err != nil {
		return r, errors.Wrap(err, "update response")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r, errors.Wrap(err, "update response: verify")
	}
	if n < 1 {
		return r, ErrNotFound
	}
	return r, nil
}

func (s *SQLite) DeleteResponse(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM response WHERE id = ?`, id)
	return errors.Wrap(err, "delete response")
}

func sanitizeValues(vs model.Values) model.Values {
	for _, label := range vs.Labels() {
		v, _ := vs.Get(label)
		if v.IsList() {
			continue
		}
		if clean := ugcPolicy.Sanitize(v.Text()); clean != v.Text() {
			vs = vs.Set(label, model.StringValue(clean))
		}
	}
	return vs
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner) (model.Form, error) {
	var f model.Form
	var fields string
	err := row.Scan(&f.ID, &f.Name, &f.OwnerID, &fields, &f.ModifiedOn)
	if err != nil {
		return f, err
	}
	if fields != "" {
		if err := json.Unmarshal([]byte(fields), &f.Fields); err != nil {
			return f, errors.Wrap(err, "decode fields")
		}
	}
	return f, nil
}

func scanResponse(row scanner) (model.Response, error) {
	var r model.Response
	var vals string
	err := row.Scan(&r.ID, &r.FormID, &r.FormName, &r.Label, &r.OwnerID, &r.OwnerEmail, &vals, &r.ModifiedOn)
	if err != nil {
		return r, err
	}
	if vals != "" {
		if err := json.Unmarshal([]byte(vals), &r.Values); err != nil {
			return r, errors.Wrap(err, "decode values")
		}
	}
	return r, nil
}

package store

import (
	"context"
	"errors"

	"github.com/formdesk/formdesk/model"
)

// ErrNotFound is returned when a form or response id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary. Implementations own the encoding
// of field and value structures; the core model never sees it. List
// operations return newest-first by modification time.
type Store interface {
	ListForms(ctx context.Context, ownerID string) ([]model.Form, error)
	GetForm(ctx context.Context, id string) (model.Form, error)
	SaveForm(ctx context.Context, f model.Form) (model.Form, error)
	DeleteForm(ctx context.Context, id string) error

	ListResponses(ctx context.Context, ownerID string) ([]model.Response, error)
	GetResponse(ctx context.Context, id string) (model.Response, error)
	SaveResponse(ctx context.Context, r model.Response) (model.Response, error)
	DeleteResponse(ctx context.Context, id string) error
}

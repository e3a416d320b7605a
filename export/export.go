package export

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/formdesk/formdesk/model"
)

type formDocument struct {
	Name      string        `json:"name"`
	CreatedBy string        `json:"createdBy"`
	Schema    []model.Field `json:"schema"`
}

type responseDocument struct {
	FormName  string       `json:"formName"`
	UserEmail string       `json:"userEmail"`
	Fields    model.Values `json:"fields"`
}

// FormDocument renders the downloadable JSON for a form. Fields keep
// their schema order.
func FormDocument(f model.Form) ([]byte, error) {
	return json.MarshalIndent(formDocument{
		Name:      f.Name,
		CreatedBy: f.OwnerID,
		Schema:    f.Fields,
	}, "", "  ")
}

// ResponseDocument renders the downloadable JSON for a response.
// Values keep their submission order.
func ResponseDocument(r model.Response) ([]byte, error) {
	return json.MarshalIndent(responseDocument{
		FormName:  r.FormName,
		UserEmail: r.OwnerEmail,
		Fields:    r.Values,
	}, "", "  ")
}

var reNoIdent = regexp.MustCompile(`\W+`)

// Filename slugs a display name into an attachment file name.
func Filename(name string) string {
	slug := strings.ToLower(name)
	slug = reNoIdent.ReplaceAllLiteralString(slug, " ")
	slug = strings.Join(strings.Fields(slug), "_")
	if slug == "" {
		slug = "export"
	}
	return slug + ".json"
}

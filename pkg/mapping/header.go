// Package mapping converts between spreadsheet rows and task/holder records:
// header normalization, status vocabulary translation and row mapping.
package mapping

import "github.com/harrisonrobin/tasksheet/pkg/model"

// Headers maps display column headers to canonical field names.
type Headers map[string]string

// DefaultHeaders is the header table of the Tasks and Users sheets.
func DefaultHeaders() Headers {
	return Headers{
		"Row Index":        model.FieldRowIndex,
		"Date Start":       model.FieldDateStart,
		"Time Start":       model.FieldTimeStart,
		"Date Finish":      model.FieldDateFinish,
		"Time Finish":      model.FieldTimeFinish,
		"Task Name":        model.FieldTaskName,
		"Task Description": model.FieldTaskDescription,
		"Description":      model.FieldTaskDescription,
		"Person Assigned":  model.FieldPersonAssigned,
		"Status":           model.FieldStatus,
		"PIN":              model.FieldPIN,
		"Name":             model.FieldName,
	}
}

// Normalize returns the canonical name for a header. Unknown headers are
// returned unchanged.
func (h Headers) Normalize(header string) string {
	if field, ok := h[header]; ok {
		return field
	}
	return header
}

// With returns a copy of h extended with aliases; aliases override existing
// entries.
func (h Headers) With(aliases map[string]string) Headers {
	out := make(Headers, len(h)+len(aliases))
	for k, v := range h {
		out[k] = v
	}
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// ExpectedTaskHeader is the display header row a freshly laid out Tasks sheet
// carries, one entry per model.TaskColumns.
var ExpectedTaskHeader = []string{
	"Row Index",
	"Date Start",
	"Time Start",
	"Date Finish",
	"Time Finish",
	"Task Name",
	"Task Description",
	"Person Assigned",
	"Status",
}

// ExpectedUserHeader is the header row of the Users sheet.
var ExpectedUserHeader = []string{"PIN", "Name"}

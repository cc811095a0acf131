package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Display statuses exchanged with API clients.
const (
	StatusNew        = "New"
	StatusInprogress = "Inprogress"
	StatusPending    = "Pending"
	StatusDone       = "Done"
)

// Canonical field names produced by header normalization.
const (
	FieldRowIndex        = "rowIndex"
	FieldDateStart       = "dateStart"
	FieldTimeStart       = "timeStart"
	FieldDateFinish      = "dateFinish"
	FieldTimeFinish      = "timeFinish"
	FieldTaskName        = "taskName"
	FieldTaskDescription = "taskDescription"
	FieldPersonAssigned  = "personAssigned"
	FieldStatus          = "status"
	FieldPIN             = "pin"
	FieldName            = "name"
)

// TaskColumns is the physical column order of the Tasks sheet, index cell first.
var TaskColumns = []string{
	FieldRowIndex,
	FieldDateStart,
	FieldTimeStart,
	FieldDateFinish,
	FieldTimeFinish,
	FieldTaskName,
	FieldTaskDescription,
	FieldPersonAssigned,
	FieldStatus,
}

// RowID is the index cell of a task row. A cell that is not a base-10 integer
// produces an invalid id, which marshals as null and equals no other id.
type RowID struct {
	Value int
	Valid bool
}

// NewRowID returns a valid id.
func NewRowID(v int) RowID {
	return RowID{Value: v, Valid: true}
}

// ParseRowID parses an index cell: leading whitespace and an optional sign,
// then the longest run of decimal digits. Trailing text is ignored. A digit
// run that overflows int gives an invalid id rather than a clamped value, so
// such a row matches no task.
func ParseRowID(cell string) RowID {
	s := strings.TrimLeft(cell, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return RowID{}
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return RowID{}
	}
	return NewRowID(v)
}

// Is reports whether the id is valid and equal to v.
func (id RowID) Is(v int) bool {
	return id.Valid && id.Value == v
}

func (id RowID) String() string {
	if !id.Valid {
		return "NaN"
	}
	return strconv.Itoa(id.Value)
}

func (id RowID) MarshalJSON() ([]byte, error) {
	if !id.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(id.Value)), nil
}

func (id *RowID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = RowID{}
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*id = NewRowID(v)
	return nil
}

// Task is one row of the Tasks sheet. Status is always in the display locale.
// Columns whose headers are not known field names land in Extra.
type Task struct {
	ID              RowID  `json:"id"`
	DateStart       string `json:"dateStart"`
	TimeStart       string `json:"timeStart"`
	DateFinish      string `json:"dateFinish"`
	TimeFinish      string `json:"timeFinish"`
	TaskName        string `json:"taskName"`
	TaskDescription string `json:"taskDescription"`
	PersonAssigned  string `json:"personAssigned"`
	Status          string `json:"status"`

	Extra map[string]string `json:"-"`
}

// Set assigns a field by canonical name.
func (t *Task) Set(field, value string) {
	switch field {
	case FieldDateStart:
		t.DateStart = value
	case FieldTimeStart:
		t.TimeStart = value
	case FieldDateFinish:
		t.DateFinish = value
	case FieldTimeFinish:
		t.TimeFinish = value
	case FieldTaskName:
		t.TaskName = value
	case FieldTaskDescription:
		t.TaskDescription = value
	case FieldPersonAssigned:
		t.PersonAssigned = value
	case FieldStatus:
		t.Status = value
	default:
		if t.Extra == nil {
			t.Extra = make(map[string]string)
		}
		t.Extra[field] = value
	}
}

// Get reads a field by canonical name.
func (t *Task) Get(field string) string {
	switch field {
	case FieldRowIndex:
		return t.ID.String()
	case FieldDateStart:
		return t.DateStart
	case FieldTimeStart:
		return t.TimeStart
	case FieldDateFinish:
		return t.DateFinish
	case FieldTimeFinish:
		return t.TimeFinish
	case FieldTaskName:
		return t.TaskName
	case FieldTaskDescription:
		return t.TaskDescription
	case FieldPersonAssigned:
		return t.PersonAssigned
	case FieldStatus:
		return t.Status
	}
	return t.Extra[field]
}

// MarshalJSON flattens Extra next to the known fields. Known fields win on
// name clashes.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	if len(t.Extra) == 0 {
		return json.Marshal(plain(t))
	}
	out := make(map[string]interface{}, len(t.Extra)+9)
	for k, v := range t.Extra {
		out[k] = v
	}
	out["id"] = t.ID
	for _, field := range TaskColumns[1:] {
		out[field] = t.Get(field)
	}
	return json.Marshal(out)
}

// Holder is an entry of the PIN directory.
type Holder struct {
	PIN  string `json:"pin"`
	Name string `json:"name"`
}

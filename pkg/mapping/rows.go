package mapping

import (
	"strconv"

	"github.com/harrisonrobin/tasksheet/pkg/model"
)

// Mapper converts sheet rows into records and back.
type Mapper struct {
	Headers    Headers
	Vocabulary *Vocabulary
}

// NewMapper returns a mapper using the default header table and vocabulary.
func NewMapper() *Mapper {
	return &Mapper{Headers: DefaultHeaders(), Vocabulary: DefaultVocabulary()}
}

// RowsToTasks maps data rows of the Tasks sheet onto tasks, one per row and in
// order. Cell 0 is the row index; header[0] is skipped and header[i] names
// cell i. Missing cells read as "", cells past the header are ignored.
func (m *Mapper) RowsToTasks(rows [][]string, header []string) []model.Task {
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		task := model.Task{ID: model.ParseRowID(cell(row, 0))}
		for i := 1; i < len(header); i++ {
			field := m.Headers.Normalize(header[i])
			value := cell(row, i)
			if field == model.FieldStatus {
				value = m.Vocabulary.ToDisplay(value)
			}
			task.Set(field, value)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// RowsToHolders maps rows of the Users sheet. There is no index column: every
// header position, including 0, names a field.
func (m *Mapper) RowsToHolders(rows [][]string, header []string) []model.Holder {
	holders := make([]model.Holder, 0, len(rows))
	for _, row := range rows {
		var h model.Holder
		for i := range header {
			switch m.Headers.Normalize(header[i]) {
			case model.FieldPIN:
				h.PIN = cell(row, i)
			case model.FieldName:
				h.Name = cell(row, i)
			}
		}
		holders = append(holders, h)
	}
	return holders
}

// TaskToRow lays out a new task in model.TaskColumns order with id as the
// index cell. The stored status is always the storage form of New.
func (m *Mapper) TaskToRow(task model.Task, id int) []string {
	return []string{
		strconv.Itoa(id),
		task.DateStart,
		task.TimeStart,
		task.DateFinish,
		task.TimeFinish,
		task.TaskName,
		task.TaskDescription,
		task.PersonAssigned,
		m.Vocabulary.ToStorage(model.StatusNew),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

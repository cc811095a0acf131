package mapping

import (
	"testing"

	"github.com/harrisonrobin/tasksheet/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskSheet = [][]string{
	{"Row Index", "Date Start", "Time Start", "Date Finish", "Time Finish", "Task Name", "Task Description", "Person Assigned", "Status"},
	{"2", "2025-10-10", "07:00", "2025-10-10", "10:00", "Irrigate Field 3", "desc", "Alice Johnson", "Baru"},
	{"3", "2025-10-10", "10:00", "2025-10-10", "14:00", "Harvest Apples", "Pick 50 bushels from the West orchard", "Bob Smith", "Dikerjakan"},
	{"4", "2025-10-10", "14:00", "2025-10-10", "16:00", "Tractor Maintenance", "Oil change and tire pressure check", "Charlie Brown", "Ditunda"},
	{"5", "2025-10-09", "08:00", "2025-10-09", "11:00", "Inspect Fences", "Walk the perimeter of Field 1", "Alice Johnson", "Selesai"},
}

func TestNormalize(t *testing.T) {
	h := DefaultHeaders()
	assert.Equal(t, "dateStart", h.Normalize("Date Start"))
	assert.Equal(t, "taskName", h.Normalize("Task Name"))
	assert.Equal(t, "personAssigned", h.Normalize("Person Assigned"))
	assert.Equal(t, "pin", h.Normalize("PIN"))
	assert.Equal(t, "name", h.Normalize("Name"))
	assert.Equal(t, "taskDescription", h.Normalize("Description"))
	assert.Equal(t, "taskDescription", h.Normalize("Task Description"))
	assert.Equal(t, "Priority", h.Normalize("Priority"))
	assert.Equal(t, "date start", h.Normalize("date start"))
}

func TestHeadersWith(t *testing.T) {
	base := DefaultHeaders()
	h := base.With(map[string]string{"Tanggal Mulai": model.FieldDateStart, "Status": "state"})
	assert.Equal(t, "dateStart", h.Normalize("Tanggal Mulai"))
	assert.Equal(t, "state", h.Normalize("Status"))
	assert.Equal(t, "status", base.Normalize("Status"))
}

func TestVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, "New", v.ToDisplay("Baru"))
	assert.Equal(t, "Inprogress", v.ToDisplay("Dikerjakan"))
	assert.Equal(t, "Pending", v.ToDisplay("Tertunda"))
	assert.Equal(t, "Pending", v.ToDisplay("Ditunda"))
	assert.Equal(t, "Done", v.ToDisplay("Selesai"))
	assert.Equal(t, "Archived", v.ToDisplay("Archived"))

	assert.Equal(t, "Baru", v.ToStorage("New"))
	assert.Equal(t, "Tertunda", v.ToStorage("Pending"))
	assert.Equal(t, "Selesai", v.ToStorage("Done"))
	assert.Equal(t, "Archived", v.ToStorage("Archived"))
}

func TestVocabularyRoundTrips(t *testing.T) {
	v := DefaultVocabulary()
	for _, s := range DisplayStatuses {
		once := v.ToStorage(s)
		assert.Equal(t, once, v.ToStorage(v.ToDisplay(once)), s)
		assert.Equal(t, once, v.ToStorage(v.ToDisplay(s)), s)
		assert.Equal(t, s, v.ToDisplay(once), s)
	}
	// synonyms collapse: the reverse trip lands on the canonical term
	assert.Equal(t, "Tertunda", v.ToStorage(v.ToDisplay("Ditunda")))
	assert.NotEqual(t, "Ditunda", v.ToStorage(v.ToDisplay("Ditunda")))
}

func TestIsDisplayStatus(t *testing.T) {
	for _, s := range DisplayStatuses {
		assert.True(t, IsDisplayStatus(s))
	}
	assert.False(t, IsDisplayStatus("Baru"))
	assert.False(t, IsDisplayStatus("done"))
	assert.False(t, IsDisplayStatus(""))
}

func TestRowsToTasks(t *testing.T) {
	m := NewMapper()
	tasks := m.RowsToTasks(taskSheet[1:2], taskSheet[0])
	require.Len(t, tasks, 1)
	assert.Equal(t, model.Task{
		ID:              model.NewRowID(2),
		DateStart:       "2025-10-10",
		TimeStart:       "07:00",
		DateFinish:      "2025-10-10",
		TimeFinish:      "10:00",
		TaskName:        "Irrigate Field 3",
		TaskDescription: "desc",
		PersonAssigned:  "Alice Johnson",
		Status:          "New",
	}, tasks[0])
}

func TestRowsToTasksKeepsOrderAndIDs(t *testing.T) {
	tasks := NewMapper().RowsToTasks(taskSheet[1:], taskSheet[0])
	require.Len(t, tasks, 4)
	for i, task := range tasks {
		assert.True(t, task.ID.Is(i+2))
		assert.Nil(t, task.Extra, "the index header must not become a field")
	}
	assert.Equal(t, []string{"New", "Inprogress", "Pending", "Done"},
		[]string{tasks[0].Status, tasks[1].Status, tasks[2].Status, tasks[3].Status})
}

func TestRowsToTasksEmpty(t *testing.T) {
	m := NewMapper()
	assert.Empty(t, m.RowsToTasks(nil, taskSheet[0]))
	assert.NotNil(t, m.RowsToTasks(nil, taskSheet[0]))
	assert.Empty(t, m.RowsToTasks([][]string{}, []string{"Row Index", "Task Name"}))
}

func TestRowsToTasksEdgeCases(t *testing.T) {
	m := NewMapper()

	short := m.RowsToTasks([][]string{{"1", "2025-01-01"}}, taskSheet[0])
	assert.Equal(t, "2025-01-01", short[0].DateStart)
	assert.Equal(t, "", short[0].TaskName)
	assert.Equal(t, "", short[0].Status)

	extra := m.RowsToTasks([][]string{{"1", "A", "B", "C"}}, []string{"Row Index", "Task Name"})
	assert.Equal(t, "A", extra[0].TaskName)
	assert.Nil(t, extra[0].Extra)

	nan := m.RowsToTasks([][]string{{"abc", "Test"}}, []string{"Row Index", "Task Name"})
	assert.False(t, nan[0].ID.Valid)

	unknown := m.RowsToTasks([][]string{{"7", "High", "  spaced  "}}, []string{"Row Index", "Priority", "Task Name"})
	assert.Equal(t, map[string]string{"Priority": "High"}, unknown[0].Extra)
	assert.Equal(t, "  spaced  ", unknown[0].TaskName)

	// last applied wins on synonym collisions
	dup := m.RowsToTasks([][]string{{"1", "first", "second"}}, []string{"Row Index", "Description", "Task Description"})
	assert.Equal(t, "second", dup[0].TaskDescription)
}

func TestRowsToHolders(t *testing.T) {
	users := [][]string{{"PIN", "Name"}, {"123456", "Alice Johnson"}, {"987654"}}
	holders := NewMapper().RowsToHolders(users[1:], users[0])
	assert.Equal(t, []model.Holder{
		{PIN: "123456", Name: "Alice Johnson"},
		{PIN: "987654", Name: ""},
	}, holders)
	assert.Empty(t, NewMapper().RowsToHolders(nil, users[0]))
}

func TestTaskToRow(t *testing.T) {
	task := model.Task{
		DateStart:       "2025-11-10",
		TimeStart:       "08:00",
		DateFinish:      "2025-11-10",
		TimeFinish:      "17:00",
		TaskName:        "Harvest Apples",
		TaskDescription: "Pick 50 bushels",
		PersonAssigned:  "AHMAD",
		Status:          "Done",
	}
	row := NewMapper().TaskToRow(task, 4)
	assert.Equal(t, []string{"4", "2025-11-10", "08:00", "2025-11-10", "17:00", "Harvest Apples", "Pick 50 bushels", "AHMAD", "Baru"}, row)
	assert.Len(t, row, len(model.TaskColumns))
}

func TestTaskRowReadsBack(t *testing.T) {
	m := NewMapper()
	task := model.Task{TaskName: "Inspect Fences", PersonAssigned: "Alice Johnson"}
	back := m.RowsToTasks([][]string{m.TaskToRow(task, 9)}, ExpectedTaskHeader)
	require.Len(t, back, 1)
	assert.True(t, back[0].ID.Is(9))
	assert.Equal(t, "New", back[0].Status)
	assert.Equal(t, "Inspect Fences", back[0].TaskName)
}

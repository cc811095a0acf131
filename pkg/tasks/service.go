// Package tasks coordinates reads and PIN-authorized writes of the Tasks sheet.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/harrisonrobin/tasksheet/pkg/a1"
	"github.com/harrisonrobin/tasksheet/pkg/authz"
	"github.com/harrisonrobin/tasksheet/pkg/mapping"
	"github.com/harrisonrobin/tasksheet/pkg/model"
	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTasksSheet = "Tasks"
	DefaultUsersSheet = "Users"
)

// Service implements listing, status updates and task creation on top of a
// store. It keeps no state between calls.
type Service struct {
	store  store.Store
	mapper *mapping.Mapper
	gate   *authz.Gate

	tasksSheet string
	usersSheet string
}

// Option customizes a Service.
type Option func(*Service)

// WithSheets overrides the sheet names.
func WithSheets(tasksSheet, usersSheet string) Option {
	return func(s *Service) {
		if tasksSheet != "" {
			s.tasksSheet = tasksSheet
		}
		if usersSheet != "" {
			s.usersSheet = usersSheet
		}
	}
}

// WithMapper replaces the default mapper.
func WithMapper(m *mapping.Mapper) Option {
	return func(s *Service) {
		if m != nil {
			s.mapper = m
		}
	}
}

// NewService builds a Service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:      st,
		mapper:     mapping.NewMapper(),
		tasksSheet: DefaultTasksSheet,
		usersSheet: DefaultUsersSheet,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gate = authz.NewGate(st, s.HoldersRange())
	return s
}

// TasksRange is the full Tasks table including the header line.
func (s *Service) TasksRange() string {
	return a1.Range{Sheet: s.tasksSheet, StartCol: 1, StartRow: 1, EndCol: len(model.TaskColumns)}.String()
}

// UsersRange is the Users table including its header line.
func (s *Service) UsersRange() string {
	return a1.Range{Sheet: s.usersSheet, StartCol: 1, StartRow: 1, EndCol: 2}.String()
}

// HoldersRange is the Users table without its header line.
func (s *Service) HoldersRange() string {
	return a1.Range{Sheet: s.usersSheet, StartCol: 1, StartRow: 2, EndCol: 2}.String()
}

// statusCell addresses the status cell of task id.
func (s *Service) statusCell(id int) string {
	col := 0
	for i, field := range model.TaskColumns {
		if field == model.FieldStatus {
			col = i + 1
		}
	}
	return a1.Cell(s.tasksSheet, col, SheetRow(id)).String()
}

// Listing is the content of GET /api/tasks.
type Listing struct {
	Tasks []model.Task   `json:"tasks"`
	Pins  []model.Holder `json:"pins"`
}

// List reads every task and the holder directory.
func (s *Service) List(ctx context.Context) (*Listing, error) {
	rows, err := s.store.Get(ctx, s.TasksRange())
	if err != nil {
		return nil, upstream("read tasks", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoData
	}
	tasks := s.mapper.RowsToTasks(rows[1:], rows[0])
	for i, task := range tasks {
		if !task.ID.Is(i) {
			log.Warnf("task row %d carries index %s, expected %d", SheetRow(i), task.ID, i)
		}
	}

	users, err := s.store.Get(ctx, s.UsersRange())
	if err != nil {
		return nil, upstream("read users", err)
	}
	pins := []model.Holder{}
	if len(users) > 0 {
		pins = s.mapper.RowsToHolders(users[1:], users[0])
	}
	return &Listing{Tasks: tasks, Pins: pins}, nil
}

// UpdateStatusInput is the body of POST /api/update-status.
type UpdateStatusInput struct {
	TaskID    *int   `json:"taskId"`
	NewStatus string `json:"newStatus"`
	PIN       string `json:"pin"`
}

func (in UpdateStatusInput) validate() error {
	if in.TaskID == nil || in.NewStatus == "" || in.PIN == "" {
		return &ValidationError{Message: "Missing taskId, newStatus, or pin in request body."}
	}
	if *in.TaskID < 0 {
		return &ValidationError{Message: fmt.Sprintf("Invalid taskId %d.", *in.TaskID)}
	}
	if !mapping.IsDisplayStatus(in.NewStatus) {
		return &ValidationError{Message: fmt.Sprintf("Invalid status value %q, expected one of %s.",
			in.NewStatus, strings.Join(mapping.DisplayStatuses, ", "))}
	}
	return nil
}

// UpdateStatus authorizes the PIN, checks that the task's row exists and
// carries id in its index cell, then writes the storage form of the new
// status into the task's status cell. It returns the updater's name.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	name, err := s.authorize(ctx, in.PIN)
	if err != nil {
		return "", err
	}

	if err := s.lookup(ctx, *in.TaskID); err != nil {
		return "", err
	}

	cell := s.statusCell(*in.TaskID)
	value := s.mapper.Vocabulary.ToStorage(in.NewStatus)
	if err := s.store.Update(ctx, cell, [][]string{{value}}); err != nil {
		return "", upstream("update status", err)
	}
	log.Infof("task %d set to %s (%s) by %s", *in.TaskID, in.NewStatus, cell, name)
	return name, nil
}

// CreateTaskInput is the body of POST /api/create-task.
type CreateTaskInput struct {
	DateStart       string `json:"dateStart"`
	TimeStart       string `json:"timeStart"`
	DateFinish      string `json:"dateFinish"`
	TimeFinish      string `json:"timeFinish"`
	TaskName        string `json:"taskName"`
	TaskDescription string `json:"taskDescription"`
	PersonAssigned  string `json:"personAssigned"`
	PIN             string `json:"pin"`
}

func (in CreateTaskInput) validate() error {
	required := []struct{ name, value string }{
		{model.FieldDateStart, in.DateStart},
		{model.FieldTimeStart, in.TimeStart},
		{model.FieldDateFinish, in.DateFinish},
		{model.FieldTimeFinish, in.TimeFinish},
		{model.FieldTaskName, in.TaskName},
		{model.FieldPersonAssigned, in.PersonAssigned},
		{model.FieldPIN, in.PIN},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "Missing " + strings.Join(missing, ", ") + " in request body."}
	}
	return nil
}

func (in CreateTaskInput) task() model.Task {
	return model.Task{
		DateStart:       in.DateStart,
		TimeStart:       in.TimeStart,
		DateFinish:      in.DateFinish,
		TimeFinish:      in.TimeFinish,
		TaskName:        in.TaskName,
		TaskDescription: in.TaskDescription,
		PersonAssigned:  in.PersonAssigned,
	}
}

// CreateTask authorizes the PIN and appends a new task with status New. It
// returns the creator's name and the id given to the task.
//
// Two concurrent calls can compute the same id; nothing here detects it.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (string, int, error) {
	if err := in.validate(); err != nil {
		return "", 0, err
	}
	name, err := s.authorize(ctx, in.PIN)
	if err != nil {
		return "", 0, err
	}

	rows, err := s.store.Get(ctx, s.TasksRange())
	if err != nil {
		return "", 0, upstream("read tasks", err)
	}
	if len(rows) == 0 {
		return "", 0, errors.Wrap(ErrNoData, "Tasks sheet has no header row")
	}
	id := NextID(rows)
	row := s.mapper.TaskToRow(in.task(), id)
	if err := s.store.Append(ctx, s.TasksRange(), [][]string{row}); err != nil {
		return "", 0, upstream("append task", err)
	}
	log.Infof("task %d %q created on line %d by %s", id, in.TaskName, SheetRow(id), name)
	return name, id, nil
}

// lookup fails with a *NotFoundError unless the row at Position(id) exists and
// its index cell parses to id.
func (s *Service) lookup(ctx context.Context, id int) error {
	rows, err := s.store.Get(ctx, s.TasksRange())
	if err != nil {
		return upstream("read tasks", err)
	}
	pos := Position(id)
	if pos >= len(rows) || len(rows[pos]) == 0 || !model.ParseRowID(rows[pos][0]).Is(id) {
		return &NotFoundError{ID: id}
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, pin string) (string, error) {
	name, err := s.gate.Authorize(ctx, pin)
	if err == nil {
		return name, nil
	}
	if errors.Is(err, authz.ErrUnauthorized) {
		log.Warnf("rejected PIN attempt")
		return "", err
	}
	return "", upstream("read holder directory", err)
}

package tui

import (
	"strconv"
	"strings"

	"taskdeck/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal forms own field-level validation; the list screens only ever see the
// committed/cancelled outcome.

type formField struct {
	label string
	input textinput.Model
}

type enumField struct {
	label   string
	options []string
	idx     int
}

func (e *enumField) value() string { return e.options[e.idx] }

func (e *enumField) next() { e.idx = (e.idx + 1) % len(e.options) }

func (e *enumField) prev() {
	e.idx--
	if e.idx < 0 {
		e.idx = len(e.options) - 1
	}
}

func (e *enumField) set(v string) {
	for i, o := range e.options {
		if o == v {
			e.idx = i
			return
		}
	}
}

// formState is a modal create/edit form: an ordered run of text fields
// followed by enum fields. editID == 0 means create.
type formState struct {
	kind   modalKind
	title  string
	fields []formField
	enums  []enumField
	focus  int
	editID int64
	errMsg string
}

func (f *formState) fieldCount() int { return len(f.fields) + len(f.enums) }

func (f *formState) focusField(i int) {
	if i < 0 {
		i = 0
	}
	if i >= f.fieldCount() {
		i = f.fieldCount() - 1
	}
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *formState) next() { f.focusField((f.focus + 1) % f.fieldCount()) }

func (f *formState) prev() {
	i := f.focus - 1
	if i < 0 {
		i = f.fieldCount() - 1
	}
	f.focusField(i)
}

// update routes key and other messages into the focused widget. It returns
// true when the form wants to submit.
func (f *formState) update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.next()
			return false, nil
		case "shift+tab", "up":
			f.prev()
			return false, nil
		case "enter":
			if f.focus == f.fieldCount()-1 {
				return true, nil
			}
			f.next()
			return false, nil
		case "left", "right":
			if i := f.focus - len(f.fields); i >= 0 && i < len(f.enums) {
				if key.String() == "left" {
					f.enums[i].prev()
				} else {
					f.enums[i].next()
				}
				return false, nil
			}
		}
	}

	if f.focus < len(f.fields) {
		var c tea.Cmd
		f.fields[f.focus].input, c = f.fields[f.focus].input.Update(msg)
		return false, c
	}
	return false, nil
}

func (f *formState) value(label string) string {
	for i := range f.fields {
		if f.fields[i].label == label {
			return strings.TrimSpace(f.fields[i].input.Value())
		}
	}
	return ""
}

func (f *formState) enumValue(label string) string {
	for i := range f.enums {
		if f.enums[i].label == label {
			return f.enums[i].value()
		}
	}
	return ""
}

func (f *formState) render(width int) string {
	var b strings.Builder
	for i := range f.fields {
		label := f.fields[i].label
		if i == f.focus {
			b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("› " + label))
		} else {
			b.WriteString(styleMuted().Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(f.fields[i].input.View())
		b.WriteString("\n")
	}
	for i := range f.enums {
		idx := len(f.fields) + i
		label := f.enums[i].label
		marker := "  "
		style := styleMuted()
		if idx == f.focus {
			marker = "› "
			style = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		b.WriteString(style.Render(marker+label) + "  ")
		b.WriteString(lipgloss.NewStyle().Bold(idx == f.focus).Render("◀ " + f.enums[i].value() + " ▶"))
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styleError().Render(f.errMsg))
	}
	b.WriteString("\n" + styleMuted().Render("tab: next field   enter (last field): save   esc: cancel"))
	return renderModalBox(width, f.title, b.String())
}

func newTextField(label, placeholder, value string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.SetValue(value)
	return formField{label: label, input: in}
}

func enumOptions[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// newProjectForm builds a blank create form, or an edit form seeded from
// existing.
func newProjectForm(existing *model.Project) *formState {
	f := &formState{kind: modalProjectForm, title: "New project"}
	p := model.Project{Status: model.ProjectPlanning, Priority: model.ProjectPriorityMedium}
	if existing != nil {
		p = *existing
		f.title = "Edit project"
		f.editID = p.ID
	}

	f.fields = []formField{
		newTextField("Name", "Project name", p.Name, 120),
		newTextField("Description", "What is this project about?", p.Description, 500),
		newTextField("Start date", "YYYY-MM-DD", p.StartDate, 10),
		newTextField("End date", "YYYY-MM-DD (optional)", p.EndDate, 10),
		newTextField("Budget", "0 (optional)", trimFloat(p.Budget), 12),
	}
	f.enums = []enumField{
		{label: "Status", options: enumOptions(model.ProjectStatuses)},
		{label: "Priority", options: enumOptions(model.ProjectPriorities)},
	}
	f.enums[0].set(string(p.Status))
	f.enums[1].set(string(p.Priority))
	f.focusField(0)
	return f
}

// projectFromForm validates and builds the request payload. A non-nil error
// string keeps the dialog open with the message shown inline.
func (f *formState) projectFromForm() (model.Project, string) {
	p := model.Project{
		ID:          f.editID,
		Name:        f.value("Name"),
		Description: f.value("Description"),
		StartDate:   f.value("Start date"),
		EndDate:     f.value("End date"),
		Status:      model.ProjectStatus(f.enumValue("Status")),
		Priority:    model.ProjectPriority(f.enumValue("Priority")),
	}
	if p.Name == "" {
		return p, "Name is required"
	}
	if p.StartDate == "" {
		return p, "Start date is required"
	}
	if v := f.value("Budget"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, "Budget must be a number"
		}
		p.Budget = b
	}
	return p, ""
}

// newTaskForm builds a blank or seeded task form. projectID prefills the
// project when creating from a project detail screen.
func newTaskForm(existing *model.Task, projectID int64) *formState {
	f := &formState{kind: modalTaskForm, title: "New task"}
	t := model.Task{Status: model.TaskTodo, Priority: model.TaskPriorityMedium, ProjectID: projectID}
	if existing != nil {
		t = *existing
		f.title = "Edit task"
		f.editID = t.ID
		if t.ProjectID == 0 && t.Project != nil {
			t.ProjectID = t.Project.ID
		}
		if t.AssignedToID == 0 && t.AssignedTo != nil {
			t.AssignedToID = t.AssignedTo.ID
		}
	}

	f.fields = []formField{
		newTextField("Title", "Task title", t.Title, 200),
		newTextField("Description", "Details", t.Description, 1000),
		newTextField("Due date", "YYYY-MM-DD", t.DueDate, 10),
		newTextField("Project id", "Numeric project id", trimID(t.ProjectID), 12),
		newTextField("Assignee id", "Numeric user id (optional)", trimID(t.AssignedToID), 12),
	}
	f.enums = []enumField{
		{label: "Status", options: enumOptions(model.TaskStatuses)},
		{label: "Priority", options: enumOptions(model.TaskPriorities)},
	}
	f.enums[0].set(string(t.Status))
	f.enums[1].set(string(t.Priority))
	f.focusField(0)
	return f
}

func (f *formState) taskFromForm() (model.Task, string) {
	t := model.Task{
		ID:          f.editID,
		Title:       f.value("Title"),
		Description: f.value("Description"),
		DueDate:     f.value("Due date"),
		Status:      model.TaskStatus(f.enumValue("Status")),
		Priority:    model.TaskPriority(f.enumValue("Priority")),
	}
	if t.Title == "" {
		return t, "Title is required"
	}
	if v := f.value("Project id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return t, "Project id must be a positive number"
		}
		t.ProjectID = id
	} else {
		return t, "Project id is required"
	}
	if v := f.value("Assignee id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return t, "Assignee id must be a positive number"
		}
		t.AssignedToID = id
	}
	return t, ""
}

func trimID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func trimFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itoa64(v int64) string { return strconv.FormatInt(v, 10) }

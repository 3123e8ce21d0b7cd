package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

const (
	fieldTitle = iota
	fieldDescription
)

// taskForm edits the title and description of a new or existing task.
type taskForm struct {
	editID string // empty when creating
	inputs [2]textinput.Model
	focus  int
}

func newTaskForm(task *tasksclient.Task) *taskForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = "Title:       "
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.Prompt = "Description: "
	desc.CharLimit = 1000

	f := &taskForm{inputs: [2]textinput.Model{title, desc}}
	if task != nil {
		f.editID = task.ID
		f.inputs[fieldTitle].SetValue(task.Title)
		f.inputs[fieldDescription].SetValue(task.Description)
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *taskForm) editing() bool {
	return f.editID != ""
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *taskForm) toggleFocus() tea.Cmd {
	return f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *taskForm) title() string {
	return f.inputs[fieldTitle].Value()
}

func (f *taskForm) description() string {
	return f.inputs[fieldDescription].Value()
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) view() string {
	heading := "New task"
	if f.editing() {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(SelectedStyle.Render(heading))
	b.WriteString("\n")
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render("enter next/save • tab switch • esc cancel"))
	return FormStyle.Render(b.String())
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrazmi/tasktracker/clients/taskboard"
	"github.com/jrazmi/tasktracker/clients/tasksclient"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultToastDuration  = 3 * time.Second
)

// Option configures the model.
type Option func(*Model)

// WithRequestTimeout bounds each API request.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.timeout = d
	}
}

// WithToastDuration sets how long a notice stays on screen.
func WithToastDuration(d time.Duration) Option {
	return func(m *Model) {
		m.toastFor = d
	}
}

// Model is the root bubbletea model. All board mutation happens in Update.
type Model struct {
	api      taskboard.API
	board    *taskboard.Board
	spinner  spinner.Model
	timeout  time.Duration
	toastFor time.Duration

	cursor   int
	form     *taskForm
	toast    taskboard.Notice
	toastSeq int
	width    int
}

// New creates the model over api.
func New(api taskboard.API, opts ...Option) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	m := &Model{
		api:      api,
		board:    taskboard.NewBoard(),
		spinner:  s,
		timeout:  defaultRequestTimeout,
		toastFor: defaultToastDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the program on the current terminal and blocks until quit.
func Run(api taskboard.API, opts ...Option) error {
	p := tea.NewProgram(New(api, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the spinner and the initial fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchTasks(m.api, m.timeout))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.board.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		n := m.board.Loaded(msg.tasks, msg.err)
		m.clampCursor()
		return m, m.notify(n)

	case taskCreatedMsg:
		n := m.board.Created(msg.task, msg.err)
		if msg.err == nil {
			m.form = nil
			m.cursor = 0
		}
		return m, m.notify(n)

	case taskUpdatedMsg:
		n := m.board.Updated(msg.task, msg.err)
		if msg.err == nil && m.form != nil && m.form.editID == msg.task.ID {
			m.form = nil
		}
		return m, m.notify(n)

	case taskDeletedMsg:
		n := m.board.Deleted(msg.id, msg.err)
		m.clampCursor()
		return m, m.notify(n)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = taskboard.Notice{}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		return m, m.updateList(msg)
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeySpace {
		task, ok := m.selected()
		if !ok {
			return nil
		}
		in, ok := m.board.ToggleRequest(task.ID)
		if !ok {
			return nil
		}
		return updateTask(m.api, m.timeout, task.ID, in)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.board.Len()-1 {
			m.cursor++
		}
	case "n":
		m.form = newTaskForm(nil)
		return textinput.Blink
	case "e":
		if task, ok := m.selected(); ok {
			m.form = newTaskForm(&task)
			return textinput.Blink
		}
	case "d":
		if task, ok := m.selected(); ok {
			return deleteTask(m.api, m.timeout, task.ID)
		}
	case "r":
		m.board.SetLoading()
		return tea.Batch(m.spinner.Tick, fetchTasks(m.api, m.timeout))
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		return nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return m.form.toggleFocus()
	case tea.KeyEnter:
		if m.form.focus == fieldTitle {
			return m.form.toggleFocus()
		}
		return m.submitForm()
	}
	return m.form.update(msg)
}

// submitForm sends the form as typed. The server trims and validates.
func (m *Model) submitForm() tea.Cmd {
	title, desc := m.form.title(), m.form.description()
	if !m.form.editing() {
		return createTask(m.api, m.timeout, tasksclient.CreateTask{Title: title, Description: desc})
	}
	return updateTask(m.api, m.timeout, m.form.editID, tasksclient.UpdateTask{
		Title:       &title,
		Description: &desc,
	})
}

func (m *Model) notify(n taskboard.Notice) tea.Cmd {
	if n.Empty() {
		return nil
	}
	m.toast = n
	m.toastSeq++
	return expireToast(m.toastSeq, m.toastFor)
}

func (m *Model) selected() (tasksclient.Task, bool) {
	tasks := m.board.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return tasksclient.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= m.board.Len() {
		m.cursor = m.board.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Tasks"))
	b.WriteString("\n")

	switch {
	case m.board.Loading():
		b.WriteString(m.spinner.View() + " Loading tasks...\n")
	case m.board.Len() == 0:
		b.WriteString(MutedStyle.Render("No tasks yet. Press n to add one.") + "\n")
	default:
		for i, task := range m.board.Tasks() {
			b.WriteString(m.renderTask(i, task))
			b.WriteString("\n")
		}
	}

	if m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.form.view())
		b.WriteString("\n")
	}

	if !m.toast.Empty() {
		style := ToastSuccessStyle
		if m.toast.Kind == taskboard.NoticeError {
			style = ToastErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.toast.Message))
		b.WriteString("\n")
	}

	if m.form == nil {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("n new • e edit • space toggle • d delete • r reload • q quit"))
	}
	return b.String()
}

func (m *Model) renderTask(i int, task tasksclient.Task) string {
	pointer := "  "
	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = "[x]"
		title = DoneStyle.Render(title)
	}
	if i == m.cursor {
		pointer = SelectedStyle.Render("> ")
	}

	line := fmt.Sprintf("%s%s %s", pointer, check, title)
	if task.Description != "" {
		line += " " + MutedStyle.Render("- "+task.Description)
	}
	if !task.CreatedAt.IsZero() {
		line += " " + MutedStyle.Render(task.CreatedAt.Local().Format("Jan 2 15:04"))
	}
	return line
}

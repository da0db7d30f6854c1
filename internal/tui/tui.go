// Package tui is a terminal front end for the todo JSON API.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"todoapp/internal/domains/todo/model/dto"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errEmptyContent = errors.New("content cannot be empty")

// TodoClient is the subset of the API the terminal needs.
type TodoClient interface {
	List(ctx context.Context) (dto.TodosResponse, error)
	Create(ctx context.Context, content string) (dto.TodoResponse, error)
	Update(ctx context.Context, id, content string) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) (dto.TodoResponse, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

type (
	todosLoadedMsg struct{ todos dto.TodosResponse }
	todoChangedMsg struct{ status string }
	errMsg         struct{ err error }
)

type keyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type listItem struct {
	todo dto.TodoResponse
}

func (i listItem) Title() string       { return i.todo.Content }
func (i listItem) Description() string { return i.todo.CreatedAt }
func (i listItem) FilterValue() string { return i.todo.Content }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	line := it.todo.Content
	if it.todo.CreatedAt != "" {
		line += " " + mutedStyle.Render(it.todo.CreatedAt)
	}

	fmt.Fprintln(w, prefix+line)
}

type Model struct {
	client  TodoClient
	timeout time.Duration

	list  list.Model
	input textinput.Model

	mode   mode
	editID string
	status string
	err    error
}

func New(client TodoClient, timeout time.Duration) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Todos"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	bindings := func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Refresh}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 500

	return Model{
		client:  client,
		timeout: timeout,
		list:    l,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-3, 1))

		return m, nil
	case todosLoadedMsg:
		items := make([]list.Item, 0, len(msg.todos))
		for _, todo := range msg.todos {
			items = append(items, listItem{todo: todo})
		}

		m.err = nil

		return m, m.list.SetItems(items)
	case todoChangedMsg:
		m.status = msg.status
		m.err = nil

		return m, m.load()
	case errMsg:
		m.err = msg.err

		return m, nil
	}

	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, keys.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.Refresh):
			m.status = ""

			return m, m.load()
		case key.Matches(keyMsg, keys.Add):
			m.mode = modeAdd
			m.err = nil
			m.input.SetValue("")

			return m, m.input.Focus()
		case key.Matches(keyMsg, keys.Edit):
			selected, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.mode = modeEdit
			m.editID = selected.ID
			m.err = nil
			m.input.SetValue(selected.Content)
			m.input.CursorEnd()

			return m, m.input.Focus()
		case key.Matches(keyMsg, keys.Delete):
			selected, ok := m.selected()
			if !ok {
				return m, nil
			}

			return m, m.remove(selected.ID)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.reset()

			return m, nil
		case "enter":
			content := strings.TrimSpace(m.input.Value())
			if content == "" {
				m.err = errEmptyContent

				return m, nil
			}

			cmd := m.create(content)
			if m.mode == modeEdit {
				cmd = m.update(m.editID, content)
			}

			m.reset()

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.list.View())
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(accentStyle.Render("New todo") + " " + m.input.View() + "\n")
	case modeEdit:
		b.WriteString(accentStyle.Render("Edit todo") + " " + m.input.View() + "\n")
	case modeBrowse:
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("✖ " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(successStyle.Render("✔ " + m.status))
	}

	return b.String()
}

func (m *Model) reset() {
	m.mode = modeBrowse
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) selected() (dto.TodoResponse, bool) {
	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return dto.TodoResponse{}, false
	}

	return item.todo, true
}

func (m Model) context() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()

		todos, err := m.client.List(ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return todosLoadedMsg{todos: todos}
	}
}

func (m Model) create(content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()

		if _, err := m.client.Create(ctx, content); err != nil {
			return errMsg{err: err}
		}

		return todoChangedMsg{status: "added"}
	}
}

func (m Model) update(id, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()

		if _, err := m.client.Update(ctx, id, content); err != nil {
			return errMsg{err: err}
		}

		return todoChangedMsg{status: "updated"}
	}
}

func (m Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()

		todo, err := m.client.Delete(ctx, id)
		if err != nil {
			return errMsg{err: err}
		}

		return todoChangedMsg{status: "deleted " + todo.Content}
	}
}

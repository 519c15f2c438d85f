package entrylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/render"
)

const barWidth = 20

type AddEntryMsg struct{}

type EditEntryMsg struct {
	ID int64
}

type DeleteEntryMsg struct {
	ID int64
}

type MoveEntryMsg struct {
	ID    int64
	Delta int
}

type Item struct {
	Row ordering.Row
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %dh %dm", i.Row.Entry.Activity, i.Row.Hours, i.Row.Minutes)
}

func (i Item) Description() string {
	desc := render.Bar(i.Row.Percent, barWidth, i.Row.Color)
	if i.Row.ShowDescription {
		desc += "  " + i.Row.Entry.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Row.Entry.Activity }

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rows []ordering.Row, width, height int) Model {
	l := list.New(toItems(rows), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.MoveUp, keys.MoveDown}
	}

	return Model{list: l, keys: keys}
}

func toItems(rows []ordering.Row) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = Item{Row: r}
	}
	return items
}

// SetRows replaces the items. When keep is a listed id the cursor follows it.
func (m *Model) SetRows(rows []ordering.Row, keep int64) {
	m.list.SetItems(toItems(rows))
	for i, r := range rows {
		if r.Entry.ID == keep {
			m.list.Select(i)
			return
		}
	}
	if idx := m.list.Index(); idx >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}
}

// Selected returns the id under the cursor.
func (m Model) Selected() (int64, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Row.Entry.ID, true
	}
	return 0, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditEntryMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Delete):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.MoveUp):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MoveEntryMsg{ID: id, Delta: -1} }
			}
		case key.Matches(msg, m.keys.MoveDown):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return MoveEntryMsg{ID: id, Delta: 1} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing logged today.\n  Press 'a' to add an entry."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hourlog/internal/tui/components/entrylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	if m.inForm() {
		cmd := m.updateForm(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case entrylist.AddEntryMsg:
		cmd := m.startAdd()
		return m, cmd
	case entrylist.EditEntryMsg:
		cmd := m.startEdit(msg.ID)
		return m, cmd
	case entrylist.DeleteEntryMsg:
		cmd := m.startDelete(msg.ID)
		return m, cmd
	case entrylist.MoveEntryMsg:
		m.move(msg.ID, msg.Delta)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if err := m.refresh(0); err != nil {
				m.setError(err)
			} else {
				m.setStatus("Refreshed")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.entryList, cmd = m.entryList.Update(msg)
	case StateHistory:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

// updateForm drives the active huh form and applies it once completed.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case StateAdding:
			m.submitAdd()
		case StateEditing:
			m.submitEdit()
		case StateConfirmDelete:
			if m.confirmForm.Confirmed {
				m.confirmDelete()
			}
		}
		m.closeForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.editingID = 0
	m.deletingID = 0
	m.state = StateToday
}

package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

func (m *Model) startAdd() tea.Cmd {
	m.addForm = &AddFormModel{Activity: constants.ActivitySleep}
	m.form = NewAddForm(m.addForm)
	m.state = StateAdding
	return m.form.Init()
}

func (m *Model) startEdit(id int64) tea.Cmd {
	p, err := m.session.ProposeEdit(m.ctx, id)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.editingID = id
	m.editForm = &EditFormModel{
		Hours:       strconv.Itoa(p.Hours),
		Minutes:     strconv.Itoa(p.Minutes),
		Description: p.Description,
	}
	m.form = NewEditForm(m.editForm, p.Entry.Activity, p.DescriptionEditable)
	m.state = StateEditing
	return m.form.Init()
}

func (m *Model) startDelete(id int64) tea.Cmd {
	e, err := m.session.Store().Get(m.ctx, id)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.deletingID = id
	m.confirmForm = &ConfirmFormModel{}
	m.form = NewConfirmForm(m.confirmForm, fmt.Sprintf("Delete %s (%s)?", e.Activity, utils.FormatHours(e.Hours)))
	m.state = StateConfirmDelete
	return m.form.Init()
}

func (m *Model) submitAdd() {
	fm := m.addForm
	e, err := m.session.Add(m.ctx, fm.Label(), parseAmount(fm.Hours), parseAmount(fm.Minutes), fm.Description)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Added %s (%s)", e.Activity, utils.FormatHours(e.Hours)))
	if err := m.refresh(e.ID); err != nil {
		m.setError(err)
	}
}

func (m *Model) submitEdit() {
	fm := m.editForm
	hours := models.ToHours(parseAmount(fm.Hours), parseAmount(fm.Minutes))
	e, err := m.session.ApplyEdit(m.ctx, m.editingID, hours, fm.Description)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Updated %s (%s)", e.Activity, utils.FormatHours(e.Hours)))
	if err := m.refresh(e.ID); err != nil {
		m.setError(err)
	}
}

func (m *Model) confirmDelete() {
	if err := m.session.Delete(m.ctx, m.deletingID); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Entry deleted")
	if err := m.refresh(0); err != nil {
		m.setError(err)
	}
}

func (m *Model) move(id int64, delta int) {
	if err := m.session.Move(m.ctx, id, delta); err != nil {
		m.setError(err)
		return
	}
	m.status = ""
	if err := m.refresh(id); err != nil {
		m.setError(err)
	}
}

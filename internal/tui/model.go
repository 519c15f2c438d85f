package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/render"
	"github.com/julianstephens/hourlog/internal/tracker"
	"github.com/julianstephens/hourlog/internal/tui/components/entrylist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateChart
	StateAdding
	StateEditing
	StateConfirmDelete
)

const tabCount = 3

var tabTitles = []string{"Today", "History", "Chart"}

type Model struct {
	ctx         context.Context
	session     *tracker.Session
	state       SessionState
	keys        KeyMap
	help        help.Model
	entryList   entrylist.Model
	history     viewport.Model
	form        *huh.Form
	addForm     *AddFormModel
	editForm    *EditFormModel
	confirmForm *ConfirmFormModel
	editingID   int64
	deletingID  int64
	view        tracker.View
	status      string
	statusErr   bool
	width       int
	height      int
	quitting    bool
}

func NewModel(ctx context.Context, session *tracker.Session) Model {
	m := Model{
		ctx:       ctx,
		session:   session,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		entryList: entrylist.New(nil, 0, 0),
		history:   viewport.New(0, 0),
	}
	if err := m.refresh(0); err != nil {
		m.setError(err)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the snapshot and keeps the cursor on keep when it is still listed.
func (m *Model) refresh(keep int64) error {
	v, err := m.session.Snapshot(m.ctx)
	if err != nil {
		return err
	}
	m.view = v
	if keep == 0 {
		keep, _ = m.entryList.Selected()
	}
	m.entryList.SetRows(v.Rows, keep)
	m.history.SetContent(render.History(v.History, m.session.Location(), m.session.Palette()))
	return nil
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	logger.Debug("tui operation failed", "error", err)
	m.status = apperrors.UserMessage(err)
	m.statusErr = true
	if apperrors.Kind(err) == apperrors.ErrNotFound {
		if rerr := m.refresh(0); rerr != nil {
			logger.Warn("refresh after stale entry failed", "error", rerr)
		}
	}
}

func (m *Model) resize() {
	// tabs, status line and help
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	m.entryList.SetSize(m.width-4, h)
	m.history.Width = m.width - 4
	m.history.Height = h
	m.help.Width = m.width
}

func (m Model) inForm() bool {
	return m.state == StateAdding || m.state == StateEditing || m.state == StateConfirmDelete
}

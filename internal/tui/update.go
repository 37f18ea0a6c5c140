package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/storage"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FormLoadedMsg:
		if msg.Err != nil {
			m.storeFailed("load the saved form", msg.Err)
			return m, nil
		}
		m.setForm(msg.Form)
		return m, nil

	case FormSavedMsg:
		if msg.Err != nil {
			m.storeFailed("save the form", msg.Err)
		}
		return m, nil

	case WeeksLoadedMsg:
		if msg.Err != nil {
			m.storeFailed("load saved weeks", msg.Err)
			return m, nil
		}
		m.setWeeks(msg.Weeks)
		return m, nil

	case WeekSavedMsg:
		return m.handleWeekSaved(msg)

	case WeekDeletedMsg:
		if msg.Err != nil {
			m.storeFailed("delete the week", msg.Err)
			return m, nil
		}
		m.err = nil
		m.status = "Deleted week"
		return m, loadWeeksCmd(m.ctx, m.store)
	}

	return m, nil
}

func (m Model) handleWeekSaved(msg WeekSavedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, storage.ErrDuplicatePayday):
		m.confirmOverwrite = true
		m.err = nil
		m.status = fmt.Sprintf("A week paid on %s is already saved. Overwrite it? (y/n)",
			msg.Record.Payday.Format(domain.DateLayout))
		return m, nil
	case msg.Err != nil:
		var vErr *domain.ValidationError
		if !errors.As(msg.Err, &vErr) {
			m.calcEngine.Logger.Warnf("failed to save week: %v", msg.Err)
		}
		m.err = msg.Err
		m.status = ""
		return m, nil
	}

	m.err = nil
	m.status = savedStatus(msg.Record)
	return m, loadWeeksCmd(m.ctx, m.store)
}

// storeFailed records a storage error. The app keeps running with what it has.
func (m *Model) storeFailed(action string, err error) {
	m.calcEngine.Logger.Warnf("failed to %s: %v", action, err)
	m.err = fmt.Errorf("could not %s: %w", action, err)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.confirmOverwrite {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmOverwrite = false
			m.status = ""
			return m, m.saveWeekCmd(true)
		case key.Matches(msg, m.keys.Cancel):
			m.confirmOverwrite = false
			m.status = "Kept the existing week"
		}
		return m, nil
	}

	switch m.currentScene {
	case SceneWeeks:
		return m.handleWeeksKey(msg)
	default:
		return m.handleCalculatorKey(msg)
	}
}

func (m Model) handleCalculatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m, m.saveWeekCmd(false)

	case key.Matches(msg, m.keys.Weeks):
		m.currentScene = SceneWeeks
		m.status = ""
		return m, loadWeeksCmd(m.ctx, m.store)

	case key.Matches(msg, m.keys.ThisWeek):
		monday := domain.MondayOf(m.now())
		m.inputs[fieldWeekStart].SetValue(monday.Format(domain.DateLayout))
		return m, m.formChanged()

	case key.Matches(msg, m.keys.Next):
		return m, m.focusField(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.focusField(m.focus - 1)
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.formChanged())
}

// formChanged recalculates and persists the form
func (m *Model) formChanged() tea.Cmd {
	m.recalculate()
	m.err = nil
	return saveFormCmd(m.ctx, m.store, m.formState())
}

func (m Model) handleWeeksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentScene = SceneCalculator
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Load):
		week, ok := m.selectedWeek()
		if !ok {
			return m, nil
		}
		m.setForm(domain.FormStateFromRecord(week))
		m.currentScene = SceneCalculator
		m.err = nil
		m.status = fmt.Sprintf("Loaded week starting %s", week.WeekStart.Format(domain.DateLayout))
		return m, saveFormCmd(m.ctx, m.store, m.formState())

	case key.Matches(msg, m.keys.Delete):
		week, ok := m.selectedWeek()
		if !ok {
			return m, nil
		}
		return m, deleteWeekCmd(m.ctx, m.store, week.ID)
	}

	var cmd tea.Cmd
	m.weekTable, cmd = m.weekTable.Update(msg)
	return m, cmd
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/storage"
)

// Form field positions
const (
	fieldPayRate = iota
	fieldHours
	fieldTaxCode
	fieldPension
	fieldChildSupport
	fieldOther
	fieldWeekStart
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Pay rate (£/hr)",
	"Hours worked",
	"Tax code",
	"Pension (%)",
	"Child support (£)",
	"Other (£)",
	"Week start",
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene
	keys         KeyMap

	// Terminal dimensions
	width  int
	height int

	ctx           context.Context
	calcEngine    *calculation.DeductionEngine
	compareEngine *compare.CompareEngine
	store         *storage.WeekStore

	// Calculator form
	inputs  []textinput.Model
	focus   int
	payslip *domain.Payslip
	calcErr error

	// Saved weeks
	weeks      []domain.WeekRecord
	comparison *compare.ComparisonSet
	weekTable  table.Model

	// Pending overwrite of a week with the same payday
	confirmOverwrite bool

	status string
	err    error

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(ctx context.Context, engine *calculation.DeductionEngine, store *storage.WeekStore) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		inputs[i] = ti
	}
	inputs[fieldPayRate].Placeholder = "12.50"
	inputs[fieldHours].Placeholder = "40"
	inputs[fieldTaxCode].Placeholder = domain.DefaultTaxCode
	inputs[fieldTaxCode].CharLimit = 10
	inputs[fieldWeekStart].Placeholder = "YYYY-MM-DD"
	inputs[fieldWeekStart].CharLimit = 10
	inputs[fieldPayRate].Focus()

	m := Model{
		currentScene:  SceneCalculator,
		keys:          DefaultKeyMap(),
		width:         100,
		height:        30,
		ctx:           ctx,
		calcEngine:    engine,
		compareEngine: compare.NewCompareEngine(engine),
		store:         store,
		inputs:        inputs,
		weekTable:     newWeekTable(),
		now:           time.Now,
	}
	m.setForm(domain.DefaultFormState())
	return m
}

func newWeekTable() table.Model {
	columns := []table.Column{
		{Title: "Payday", Width: 11},
		{Title: "Hours", Width: 6},
		{Title: "Gross", Width: 10},
		{Title: "Tax", Width: 9},
		{Title: "NI", Width: 9},
		{Title: "Pension", Width: 9},
		{Title: "Other", Width: 9},
		{Title: "Net", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorPrimary)
	t.SetStyles(s)
	return t
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadFormCmd(m.ctx, m.store),
		loadWeeksCmd(m.ctx, m.store),
		textinput.Blink,
	)
}

// formState reads the current form values
func (m Model) formState() domain.FormState {
	return domain.FormState{
		PayRate:         m.inputs[fieldPayRate].Value(),
		HoursWorked:     m.inputs[fieldHours].Value(),
		TaxCode:         m.inputs[fieldTaxCode].Value(),
		PensionPercent:  m.inputs[fieldPension].Value(),
		ChildSupport:    m.inputs[fieldChildSupport].Value(),
		OtherDeductions: m.inputs[fieldOther].Value(),
		WeekStartDate:   m.inputs[fieldWeekStart].Value(),
	}
}

// setForm replaces the form values and recalculates
func (m *Model) setForm(f domain.FormState) {
	m.inputs[fieldPayRate].SetValue(f.PayRate)
	m.inputs[fieldHours].SetValue(f.HoursWorked)
	m.inputs[fieldTaxCode].SetValue(f.TaxCode)
	m.inputs[fieldPension].SetValue(f.PensionPercent)
	m.inputs[fieldChildSupport].SetValue(f.ChildSupport)
	m.inputs[fieldOther].SetValue(f.OtherDeductions)
	m.inputs[fieldWeekStart].SetValue(f.WeekStartDate)
	m.recalculate()
}

// recalculate refreshes the live breakdown from the form.
// An untouched form shows no breakdown and no error.
func (m *Model) recalculate() {
	m.payslip = nil
	m.calcErr = nil

	form := m.formState()
	if form.PayRate == "" && form.HoursWorked == "" {
		return
	}
	in, err := form.Input()
	if err != nil {
		m.calcErr = err
		return
	}
	m.payslip, m.calcErr = m.calcEngine.Payslip(in)
}

// setWeeks rebuilds the comparison and the table rows
func (m *Model) setWeeks(weeks []domain.WeekRecord) {
	m.weeks = weeks
	m.comparison = m.compareEngine.Build(weeks)

	rows := make([]table.Row, 0, len(m.comparison.Rows))
	for _, r := range m.comparison.Rows {
		rows = append(rows, table.Row{
			r.Payday.Format(domain.DateLayout),
			r.HoursWorked.String(),
			output.FormatCurrency(r.GrossPay),
			output.FormatCurrency(r.IncomeTax),
			output.FormatCurrency(r.NationalInsurance),
			output.FormatCurrency(r.Pension),
			output.FormatCurrency(r.Other),
			output.FormatCurrency(r.NetPay),
		})
	}
	m.weekTable.SetRows(rows)
	if c := m.weekTable.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.weekTable.SetCursor(len(rows) - 1)
	}
}

// selectedWeek returns the saved week under the table cursor
func (m Model) selectedWeek() (domain.WeekRecord, bool) {
	if m.comparison == nil {
		return domain.WeekRecord{}, false
	}
	c := m.weekTable.Cursor()
	if c < 0 || c >= len(m.comparison.Rows) {
		return domain.WeekRecord{}, false
	}
	id := m.comparison.Rows[c].WeekID
	for _, w := range m.weeks {
		if w.ID == id {
			return w, true
		}
	}
	return domain.WeekRecord{}, false
}

// focusField moves the cursor to field i
func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// Store commands

func loadFormCmd(ctx context.Context, store *storage.WeekStore) tea.Cmd {
	return func() tea.Msg {
		form, err := store.LoadFormState(ctx)
		return FormLoadedMsg{Form: form, Err: err}
	}
}

func saveFormCmd(ctx context.Context, store *storage.WeekStore, form domain.FormState) tea.Cmd {
	return func() tea.Msg {
		return FormSavedMsg{Err: store.SaveFormState(ctx, form)}
	}
}

func loadWeeksCmd(ctx context.Context, store *storage.WeekStore) tea.Cmd {
	return func() tea.Msg {
		weeks, err := store.ListByPayday(ctx)
		return WeeksLoadedMsg{Weeks: weeks, Err: err}
	}
}

func deleteWeekCmd(ctx context.Context, store *storage.WeekStore, id string) tea.Cmd {
	return func() tea.Msg {
		return WeekDeletedMsg{ID: id, Err: store.Delete(ctx, id)}
	}
}

// saveWeekCmd calculates the form as a week record and stores it
func (m Model) saveWeekCmd(overwrite bool) tea.Cmd {
	ctx, store, engine := m.ctx, m.store, m.calcEngine
	form := m.formState()
	now := m.now()

	return func() tea.Msg {
		in, err := form.Input()
		if err != nil {
			return WeekSavedMsg{Err: err}
		}
		var weekStart time.Time
		if form.WeekStartDate != "" {
			if weekStart, err = domain.ParseDate("week start", form.WeekStartDate); err != nil {
				return WeekSavedMsg{Err: err}
			}
		}
		res, err := engine.Compute(in)
		if err != nil {
			return WeekSavedMsg{Err: err}
		}
		rec, err := domain.NewWeekRecord(weekStart, in, res, now)
		if err != nil {
			return WeekSavedMsg{Err: err}
		}
		if err := store.Save(ctx, rec, overwrite); err != nil {
			return WeekSavedMsg{Record: rec, Err: err}
		}
		return WeekSavedMsg{Record: rec}
	}
}

func savedStatus(rec domain.WeekRecord) string {
	return fmt.Sprintf("Saved week starting %s (paid %s, net %s)",
		rec.WeekStart.Format(domain.DateLayout),
		rec.Payday.Format(domain.DateLayout),
		output.FormatCurrency(rec.NetPay))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
)

// View renders the current state (required by tea.Model interface)
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneWeeks:
		content = m.renderWeeks()
	default:
		content = m.renderCalculator()
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar, message line, and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderMessage(),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("PAYGO - Weekly Pay Calculator")
	breadcrumb := SubtitleStyle.Render(fmt.Sprintf("%s / rates %s",
		m.currentScene.String(), m.calcEngine.Rates.TaxYear))
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb, "")
}

// renderMessage shows the latest error or status line
func (m Model) renderMessage() string {
	switch {
	case m.confirmOverwrite:
		return WarningStyle.Render(m.status)
	case m.err != nil:
		return ErrorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		return InfoStyle.Render(m.status)
	}
	return ""
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var bindings []keyHelp
	switch {
	case m.confirmOverwrite:
		bindings = []keyHelp{m.help(m.keys.Confirm), m.help(m.keys.Cancel)}
	case m.currentScene == SceneWeeks:
		bindings = []keyHelp{
			{"↑/↓", "select"},
			m.help(m.keys.Load),
			m.help(m.keys.Delete),
			m.help(m.keys.Back),
			m.help(m.keys.Quit),
		}
	default:
		bindings = []keyHelp{
			m.help(m.keys.Next),
			m.help(m.keys.Save),
			m.help(m.keys.ThisWeek),
			m.help(m.keys.Weeks),
			m.help(m.keys.ForceQuit),
		}
	}

	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		shortcuts = append(shortcuts, formatShortcut(b.key, b.desc))
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

type keyHelp struct {
	key, desc string
}

func (m Model) help(b key.Binding) keyHelp {
	h := b.Help()
	return keyHelp{h.Key, h.Desc}
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderCalculator shows the form beside the live breakdown
func (m Model) renderCalculator() string {
	var form strings.Builder
	for i, in := range m.inputs {
		label := LabelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = FocusedLabelStyle.Render(fieldLabels[i])
		}
		form.WriteString(label + " " + in.View() + "\n")
	}
	if start := m.inputs[fieldWeekStart].Value(); start != "" {
		if t, err := domain.ParseDate("week start", start); err == nil {
			end, payday := domain.WeekDates(t)
			form.WriteString("\n" + SubtitleStyle.Render(fmt.Sprintf("Week ends %s, paid %s",
				end.Format(domain.DateLayout), payday.Format(domain.DateLayout))))
		}
	}

	left := ActivePanelStyle.Render(strings.TrimRight(form.String(), "\n"))
	right := PanelStyle.Render(m.renderBreakdown())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderBreakdown shows the deductions for the current form
func (m Model) renderBreakdown() string {
	if m.calcErr != nil {
		return ErrorStyle.Render(m.calcErr.Error())
	}
	if m.payslip == nil {
		return SubtitleStyle.Render("Enter a pay rate and hours to see your deductions")
	}

	r := m.payslip.Result
	b := m.payslip.Breakdown

	var sb strings.Builder
	sb.WriteString(amountLine("Gross pay", r.GrossPay, AmountStyle))
	sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("Taxable %s after %s allowance",
		output.FormatCurrency(calculation.RoundCurrency(b.TaxableIncome)),
		output.FormatCurrency(calculation.RoundCurrency(b.PersonalAllowance)))) + "\n\n")

	basis := "Non-cumulative"
	if r.IsCumulative {
		basis = "Cumulative"
	}
	sb.WriteString(amountLine("Income tax", r.IncomeTax, AmountStyle))
	sb.WriteString(SubtitleStyle.Render("  "+basis) + "\n")
	sb.WriteString(amountLine("National Insurance", r.NationalInsurance, AmountStyle))
	sb.WriteString(amountLine(fmt.Sprintf("Pension (%s%%)", r.PensionPercent.String()), r.Pension, AmountStyle))
	if !r.ChildSupport.IsZero() {
		sb.WriteString(amountLine("Child support", r.ChildSupport, AmountStyle))
	}
	if !r.OtherDeductions.IsZero() {
		sb.WriteString(amountLine("Other", r.OtherDeductions, AmountStyle))
	}
	sb.WriteString(strings.Repeat("─", 31) + "\n")
	sb.WriteString(amountLine("Total deductions", r.TotalDeductions, AmountStyle))
	sb.WriteString(amountLine("Net pay", r.NetPay, NetPayStyle))

	if len(r.Adjustments) > 0 {
		sb.WriteString("\n")
		for _, adj := range r.Adjustments {
			sb.WriteString(WarningStyle.Render("• "+output.AdjustmentNote(adj)) + "\n")
		}
		if !r.TheoreticalIncomeTax.Equal(r.IncomeTax) {
			sb.WriteString(SubtitleStyle.Render("Without the adjustment: " +
				output.FormatCurrency(r.TheoreticalIncomeTax)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func amountLine(label string, amount decimal.Decimal, style lipgloss.Style) string {
	return LabelStyle.Render(label) + " " + style.Render(output.FormatCurrency(amount)) + "\n"
}

// renderWeeks shows the saved weeks table with totals and notes
func (m Model) renderWeeks() string {
	if m.comparison == nil || len(m.comparison.Rows) == 0 {
		msg := "No saved weeks yet. Press esc, fill in the form and press ctrl+s to save one."
		if m.comparison != nil && m.comparison.Skipped > 0 {
			msg = fmt.Sprintf("%d saved week(s) could not be recalculated.", m.comparison.Skipped)
		}
		return PanelStyle.Render(SubtitleStyle.Render(msg))
	}

	t := m.comparison.Totals
	totals := fmt.Sprintf("%d week(s)  Gross %s  Tax %s  NI %s  Net %s  Average net %s",
		t.Weeks,
		output.FormatCurrency(t.GrossPay),
		output.FormatCurrency(t.IncomeTax),
		output.FormatCurrency(t.NationalInsurance),
		output.FormatCurrency(t.NetPay),
		output.FormatCurrency(t.AverageNetPay))

	var notes strings.Builder
	for _, n := range m.comparison.Notes {
		notes.WriteString("• " + n + "\n")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		ActivePanelStyle.Render(m.weekTable.View()),
		StatusKeyStyle.Render(totals),
		SubtitleStyle.Render(strings.TrimRight(notes.String(), "\n")),
	)
}

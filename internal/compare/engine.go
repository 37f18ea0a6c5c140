package compare

import (
	"sort"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
)

// CompareEngine builds comparison tables from saved weeks
type CompareEngine struct {
	CalcEngine *calculation.DeductionEngine
	Logger     calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.DeductionEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine: calcEngine,
		Logger:     calcEngine.Logger,
	}
}

// Build recalculates each saved week as a weekly pay period with the engine's
// rates and orders the rows by payday, latest first. Weeks that fail
// validation are skipped and counted.
func (ce *CompareEngine) Build(weeks []domain.WeekRecord) *ComparisonSet {
	logger := ce.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}

	sorted := append([]domain.WeekRecord(nil), weeks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Payday.After(sorted[j].Payday)
	})

	set := &ComparisonSet{
		TaxYear: ce.CalcEngine.Rates.TaxYear,
		Rows:    make([]ComparisonRow, 0, len(sorted)),
	}

	for _, week := range sorted {
		result, err := ce.CalcEngine.Compute(week.Input())
		if err != nil {
			logger.Warnf("skipping saved week %s (payday %s): %v", week.ID, week.Payday.Format(domain.DateLayout), err)
			set.Skipped++
			continue
		}

		row := ComparisonRow{
			WeekID:            week.ID,
			WeekStart:         week.WeekStart,
			Payday:            week.Payday,
			TaxCode:           result.TaxCode,
			HoursWorked:       week.HoursWorked,
			GrossPay:          result.GrossPay,
			IncomeTax:         result.IncomeTax,
			NationalInsurance: result.NationalInsurance,
			Pension:           result.Pension,
			Other:             result.ChildSupport.Add(result.OtherDeductions),
			TotalDeductions:   result.TotalDeductions,
			NetPay:            result.NetPay,
			SavedNetPay:       week.NetPay,
			NetDiffFromSaved:  result.NetPay.Sub(week.NetPay),
		}
		set.Rows = append(set.Rows, row)
		set.Totals.Add(row)
	}

	set.Notes = GenerateNotes(set)
	return set
}

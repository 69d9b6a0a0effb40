package scoring

import (
	"strings"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

// ResolveDrillDown turns a tapped heatmap cell into a breakdown using the
// already computed yearly series. The bool is false when there is nothing to
// show, which callers render as "no data" rather than as an error.
func ResolveDrillDown(sel domain.DrillDownSelector, yearly []domain.DayScore) (*domain.Breakdown, bool) {
	if err := sel.Validate(); err != nil {
		return nil, false
	}

	byDate := make(map[string]domain.DayScore, len(yearly))
	for _, d := range yearly {
		byDate[d.DateKey] = d
	}

	switch sel.Type {
	case domain.SelectorDay:
		d, ok := byDate[sel.DateKey]
		if !ok {
			return nil, false
		}
		b := breakdownFromDays(sel, []domain.DayScore{d})
		b.Day = &d
		return b, true

	case domain.SelectorWeek:
		found := make([]domain.DayScore, 0, 7)
		for i := 0; i < 7; i++ {
			key, err := domain.AddDays(sel.DateKey, i)
			if err != nil {
				return nil, false
			}
			if d, ok := byDate[key]; ok {
				found = append(found, d)
			}
		}
		return sparseAverage(sel, found)

	case domain.SelectorMonth:
		prefix := domain.MonthPrefix(sel.DateKey) + "-"
		found := make([]domain.DayScore, 0, 31)
		for _, d := range yearly {
			if strings.HasPrefix(d.DateKey, prefix) {
				found = append(found, d)
			}
		}
		return sparseAverage(sel, found)
	}

	return nil, false
}

// sparseAverage averages only the records that were found. Absent days are
// dropped from the set, unlike bucketAverage where an untracked day counts as
// a 0 score. An empty set yields no breakdown.
func sparseAverage(sel domain.DrillDownSelector, found []domain.DayScore) (*domain.Breakdown, bool) {
	if len(found) == 0 {
		return nil, false
	}
	return breakdownFromDays(sel, found), true
}

func breakdownFromDays(sel domain.DrillDownSelector, days []domain.DayScore) *domain.Breakdown {
	n := float64(len(days))
	b := &domain.Breakdown{
		Type:    sel.Type,
		DateKey: sel.DateKey,
		Days:    len(days),
	}

	scoreSum := 0
	for _, d := range days {
		scoreSum += d.Score
		b.HabitsPct += d.HabitsPct
		b.StepsPct += d.StepsPct
		b.InvPct += d.InvPct
		b.GratitudePct += d.GratitudePct
		b.FastingPct += d.FastingPct
		b.WorkoutsPct += d.WorkoutsPct
		b.SobrietyPct += d.SobrietyPct
		b.StoicPct += d.StoicPct
	}

	b.Score = round(float64(scoreSum) / n)
	b.HabitsPct /= n
	b.StepsPct /= n
	b.InvPct /= n
	b.GratitudePct /= n
	b.FastingPct /= n
	b.WorkoutsPct /= n
	b.SobrietyPct /= n
	b.StoicPct /= n
	return b
}

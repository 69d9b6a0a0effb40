package scoring

import (
	"fmt"
	"sort"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

const focusThreshold = 50

type suggestionArea struct {
	id    domain.Module
	label string
}

// suggestionAreas are ranked in this order when their averages tie.
var suggestionAreas = []suggestionArea{
	{domain.ModuleHabits, "Habits"},
	{domain.ModuleSteps, "Steps"},
	{domain.ModuleInventory, "Inventory"},
	{domain.ModuleGratitude, "Gratitude"},
	{domain.ModuleFasting, "Fasting"},
	{domain.ModuleWorkouts, "Workouts"},
	{domain.ModuleSobriety, "Sobriety"},
	{domain.ModuleStoic, "Stoic Reflection"},
	{domain.AreaDailyRenewal, "Daily Renewal"},
}

// RankSuggestions averages each area's percentage over the whole series and
// returns the visible areas below 100, lowest average first.
func RankSuggestions(days []domain.DayScore, visibility domain.Visibility) []domain.Suggestion {
	out := []domain.Suggestion{}
	if len(days) == 0 {
		return out
	}

	type ranked struct {
		area suggestionArea
		avg  float64
	}
	candidates := make([]ranked, 0, len(suggestionAreas))
	for _, area := range suggestionAreas {
		if !visibility.IsVisible(area.id) {
			continue
		}
		sum := 0.0
		for i := range days {
			sum += days[i].Pct(area.id)
		}
		avg := sum / float64(len(days))
		if avg >= 100 {
			continue
		}
		candidates = append(candidates, ranked{area: area, avg: avg})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].avg < candidates[j].avg
	})

	for _, c := range candidates {
		avgPct := round(c.avg)
		out = append(out, domain.Suggestion{
			ID:      c.area.id,
			Label:   c.area.label,
			AvgPct:  avgPct,
			Message: suggestionMessage(c.area.label, avgPct),
		})
	}
	return out
}

func suggestionMessage(label string, avgPct int) string {
	if avgPct < focusThreshold {
		return fmt.Sprintf("Focus here: %s is averaging %d%%. One small step today moves it.", label, avgPct)
	}
	return fmt.Sprintf("Room to improve: %s is averaging %d%%. Keep building on it.", label, avgPct)
}

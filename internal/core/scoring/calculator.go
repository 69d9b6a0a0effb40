package scoring

import (
	"math"
	"time"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

// moduleRule is one row of the composite dispatch table.
type moduleRule struct {
	module domain.Module
	pct    func(d *domain.DayScore) float64
	// include gates the part further once the module is eligible. Nil means
	// always include.
	include func(d *domain.DayScore) bool
}

var moduleRules = []moduleRule{
	{module: domain.ModuleHabits, pct: func(d *domain.DayScore) float64 { return d.HabitsPct }},
	{module: domain.ModuleSteps, pct: func(d *domain.DayScore) float64 { return d.StepsPct }},
	{module: domain.ModuleInventory, pct: func(d *domain.DayScore) float64 { return d.InvPct }},
	{module: domain.ModuleGratitude, pct: func(d *domain.DayScore) float64 { return d.GratitudePct }},
	{module: domain.ModuleFasting, pct: func(d *domain.DayScore) float64 { return d.FastingPct }},
	{module: domain.ModuleWorkouts, pct: func(d *domain.DayScore) float64 { return d.WorkoutsPct }},
	{module: domain.ModuleSobriety, pct: func(d *domain.DayScore) float64 { return d.SobrietyPct }},
	{
		module: domain.ModuleStoic,
		pct:    func(d *domain.DayScore) float64 { return d.StoicPct },
		// A day without a reflection is left out rather than averaged in as 0.
		include: func(d *domain.DayScore) bool { return d.StoicDone },
	},
}

type floorGoals struct {
	steps       int
	workouts    int
	gratitudes  int
	fasting     float64
	inventories int
}

func newFloorGoals(g domain.Goals) floorGoals {
	return floorGoals{
		steps:       max(1, g.StepsPerDay),
		workouts:    max(1, g.WorkoutsPerDay),
		gratitudes:  max(1, g.GratitudesPerDay),
		fasting:     math.Max(1, g.FastingHours),
		inventories: max(1, g.InventoriesPerDay),
	}
}

// ComputeDailyScores returns exactly one DayScore per key, in input order.
func ComputeDailyScores(sc ScoringContext, in DailyInputs, dateKeys []string) []domain.DayScore {
	goals := newFloorGoals(sc.Goals)
	earliest := sc.EarliestTrackingStart()

	habitsTotal := len(in.Habits)
	habitsGoal := sc.Goals.HabitsGoal
	if habitsGoal <= 0 {
		habitsGoal = habitsTotal
	}

	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	invByDate := countByLocalDate(in.Inventory, loc)
	gratitudeByDate := countByLocalDate(in.Gratitude, loc)

	out := make([]domain.DayScore, 0, len(dateKeys))
	for _, key := range dateKeys {
		d := domain.DayScore{
			DateKey:        key,
			HabitsTotal:    habitsTotal,
			HabitsGoal:     habitsGoal,
			StepsCount:     in.Steps[key],
			StepsGoal:      goals.steps,
			WorkoutsCount:  len(in.Workouts[key]),
			WorkoutsGoal:   goals.workouts,
			InvCount:       invByDate[key],
			InvGoal:        goals.inventories,
			GratitudeCount: gratitudeByDate[key],
			GratitudeGoal:  goals.gratitudes,
			FastingHours:   in.FastingHours[key],
			FastingGoal:    goals.fasting,
			SobrietyTotal:  len(in.SobrietyCounters),
			StoicDone:      in.StoicDone[key],
		}

		for _, h := range in.Habits {
			if h.CompletedOn(key) {
				d.HabitsCompleted++
			}
		}
		for _, c := range in.SobrietyCounters {
			if c.TrackedOn(key) {
				d.SobrietyTracked++
			}
		}

		if habitsTotal == 0 {
			d.HabitsPct = 100
		} else {
			d.HabitsPct = percent(float64(d.HabitsCompleted), float64(habitsGoal))
		}
		d.StepsPct = percent(float64(d.StepsCount), float64(goals.steps))
		d.WorkoutsPct = percent(float64(d.WorkoutsCount), float64(goals.workouts))
		d.InvPct = percent(float64(d.InvCount), float64(goals.inventories))
		d.GratitudePct = percent(float64(d.GratitudeCount), float64(goals.gratitudes))
		d.FastingPct = percent(d.FastingHours, goals.fasting)
		if d.SobrietyTotal == 0 {
			d.SobrietyPct = 100
		} else {
			d.SobrietyPct = percent(float64(d.SobrietyTracked), float64(d.SobrietyTotal))
		}
		if d.StoicDone {
			d.StoicPct = 100
		}

		d.BeforeTrackingStart = earliest != "" && key < earliest
		if !d.BeforeTrackingStart {
			d.Score = compositeScore(sc, &d)
		}

		out = append(out, d)
	}

	return out
}

func compositeScore(sc ScoringContext, d *domain.DayScore) int {
	parts := make([]float64, 0, len(moduleRules))
	for _, rule := range moduleRules {
		if !sc.counts(rule.module, d.DateKey) {
			continue
		}
		if rule.include != nil && !rule.include(d) {
			continue
		}
		parts = append(parts, rule.pct(d))
	}
	if len(parts) == 0 {
		return 0
	}
	return min(100, round(mean(parts)))
}

func percent(count, goal float64) float64 {
	if goal <= 0 {
		return 100
	}
	return math.Min(100, 100*count/goal)
}

func countByLocalDate(entries []domain.JournalEntry, loc *time.Location) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[domain.DateKey(e.CreatedAt.In(loc))]++
	}
	return counts
}

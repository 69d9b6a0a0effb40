package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSelector = errors.New("invalid drill-down selector (type must be day, week or month)")
	ErrInvalidRange    = errors.New("invalid range")
)

// DayScore is the derived score record for one calendar date. It is never
// persisted.
type DayScore struct {
	DateKey             string `json:"dateKey"`
	Score               int    `json:"score"`
	BeforeTrackingStart bool   `json:"beforeTrackingStart"`

	HabitsPct    float64 `json:"habitsPct"`
	StepsPct     float64 `json:"stepsPct"`
	InvPct       float64 `json:"invPct"`
	GratitudePct float64 `json:"gratitudePct"`
	FastingPct   float64 `json:"fastingPct"`
	WorkoutsPct  float64 `json:"workoutsPct"`
	SobrietyPct  float64 `json:"sobrietyPct"`
	StoicPct     float64 `json:"stoicPct"`

	HabitsCompleted int     `json:"habitsCompleted"`
	HabitsTotal     int     `json:"habitsTotal"`
	HabitsGoal      int     `json:"habitsGoal"`
	StepsCount      int     `json:"stepsCount"`
	StepsGoal       int     `json:"stepsGoal"`
	WorkoutsCount   int     `json:"workoutsCount"`
	WorkoutsGoal    int     `json:"workoutsGoal"`
	InvCount        int     `json:"invCount"`
	InvGoal         int     `json:"invGoal"`
	GratitudeCount  int     `json:"gratitudeCount"`
	GratitudeGoal   int     `json:"gratitudeGoal"`
	FastingHours    float64 `json:"fastingHours"`
	FastingGoal     float64 `json:"fastingGoal"`
	SobrietyTracked int     `json:"sobrietyTracked"`
	SobrietyTotal   int     `json:"sobrietyTotal"`
	StoicDone       bool    `json:"stoicDone"`
}

// Pct returns the percentage field that belongs to m. The daily renewal area
// shares the sobriety percentage.
func (d *DayScore) Pct(m Module) float64 {
	switch m {
	case ModuleHabits:
		return d.HabitsPct
	case ModuleSteps:
		return d.StepsPct
	case ModuleInventory:
		return d.InvPct
	case ModuleGratitude:
		return d.GratitudePct
	case ModuleFasting:
		return d.FastingPct
	case ModuleWorkouts:
		return d.WorkoutsPct
	case ModuleSobriety, AreaDailyRenewal:
		return d.SobrietyPct
	case ModuleStoic:
		return d.StoicPct
	}
	return 0
}

type WeekScore struct {
	DateKey string `json:"dateKey"`
	Score   int    `json:"score"`
	Label   string `json:"label"`
}

type MonthScore struct {
	DateKey string `json:"dateKey"`
	Score   int    `json:"score"`
	Label   string `json:"label"`
}

type Suggestion struct {
	ID      Module `json:"id"`
	Label   string `json:"label"`
	AvgPct  int    `json:"avgPct"`
	Message string `json:"message"`
}

type SelectorType string

const (
	SelectorDay   SelectorType = "day"
	SelectorWeek  SelectorType = "week"
	SelectorMonth SelectorType = "month"
)

// DrillDownSelector is what the UI sends when a heatmap cell is tapped. For
// weeks DateKey is the Sunday; for months any date inside the month.
type DrillDownSelector struct {
	Type    SelectorType `json:"type"`
	DateKey string       `json:"dateKey"`
}

func (s DrillDownSelector) Validate() error {
	switch s.Type {
	case SelectorDay, SelectorWeek, SelectorMonth:
	default:
		return ErrInvalidSelector
	}
	if !IsDateKey(s.DateKey) {
		return fmt.Errorf("%w: %q", ErrInvalidDateKey, s.DateKey)
	}
	return nil
}

// Breakdown is a resolved drill-down: either one day or the average over the
// days that were found for a week or month.
type Breakdown struct {
	Type    SelectorType `json:"type"`
	DateKey string       `json:"dateKey"`
	Days    int          `json:"days"`
	Score   int          `json:"score"`

	HabitsPct    float64 `json:"habitsPct"`
	StepsPct     float64 `json:"stepsPct"`
	InvPct       float64 `json:"invPct"`
	GratitudePct float64 `json:"gratitudePct"`
	FastingPct   float64 `json:"fastingPct"`
	WorkoutsPct  float64 `json:"workoutsPct"`
	SobrietyPct  float64 `json:"sobrietyPct"`
	StoicPct     float64 `json:"stoicPct"`

	Day *DayScore `json:"day,omitempty"`
}

// Dashboard is the home screen payload.
type Dashboard struct {
	Today       DayScore     `json:"today"`
	Weeks       []WeekScore  `json:"weeks"`
	TrendDelta  int          `json:"trendDelta"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Package scoring turns per-module tracking facts into daily scores and derives
// weekly and monthly rollups, suggestions and drill-down breakdowns from them.
//
// Every function here is pure: callers fetch data, snapshot settings into a
// ScoringContext and pass both in explicitly.
package scoring

import (
	"math"
	"time"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

// ScoringContext is the settings snapshot used for one computation. It is
// taken once per call so every date key sees the same version.
type ScoringContext struct {
	Visibility domain.Visibility
	Settings   domain.ModuleSettings
	Goals      domain.Goals
}

// NewScoringContext copies the maps so later writes by the caller cannot leak
// into a running computation.
func NewScoringContext(v domain.Visibility, s domain.ModuleSettings, g domain.Goals) ScoringContext {
	vis := make(domain.Visibility, len(v))
	for k, val := range v {
		vis[k] = val
	}
	settings := make(domain.ModuleSettings, len(s))
	for k, val := range s {
		settings[k] = val
	}
	return ScoringContext{Visibility: vis, Settings: settings, Goals: g}
}

// counts reports whether m is eligible for the composite on dateKey: visible,
// counting in score and in range.
func (sc ScoringContext) counts(m domain.Module, dateKey string) bool {
	if !sc.Visibility.IsVisible(m) {
		return false
	}
	setting := sc.Settings[m]
	return setting.CountsInScore() && setting.InRange(dateKey)
}

// EarliestTrackingStart is the minimum tracking start date across visible
// modules that have one, or "" when none is set.
func (sc ScoringContext) EarliestTrackingStart() string {
	earliest := ""
	for _, m := range domain.Modules {
		if !sc.Visibility.IsVisible(m) {
			continue
		}
		start := sc.Settings[m].TrackingStartDate
		if start == "" {
			continue
		}
		if earliest == "" || start < earliest {
			earliest = start
		}
	}
	return earliest
}

// DailyInputs holds every collaborator read needed for one window.
type DailyInputs struct {
	Habits           []domain.Habit
	Steps            map[string]int
	Workouts         map[string][]domain.Workout
	Inventory        []domain.JournalEntry
	Gratitude        []domain.JournalEntry
	FastingHours     map[string]float64
	SobrietyCounters []domain.SobrietyCounter
	StoicDone        map[string]bool

	// Location buckets journal entries by local calendar date. Nil means time.Local.
	Location *time.Location
}

// round is half-up rounding for the non-negative values used here.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

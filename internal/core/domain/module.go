package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidModule = errors.New("invalid module (must be one of habits, steps, inventory, gratitude, fasting, workouts, sobriety, stoic)")
)

// Module identifies one tracked life area. The string value is the id used in
// stored settings and on the wire.
type Module string

const (
	ModuleHabits    Module = "habits"
	ModuleSteps     Module = "steps"
	ModuleInventory Module = "inventory"
	ModuleGratitude Module = "gratitude"
	ModuleFasting   Module = "fasting"
	ModuleWorkouts  Module = "workouts"
	ModuleSobriety  Module = "sobriety"
	ModuleStoic     Module = "stoic"

	// AreaDailyRenewal is not a scoring module. It has its own visibility flag
	// and is ranked as a suggestion using the sobriety percentage.
	AreaDailyRenewal Module = "daily_renewal"
)

// Modules lists every scoring module in display order.
var Modules = []Module{
	ModuleHabits,
	ModuleSteps,
	ModuleInventory,
	ModuleGratitude,
	ModuleFasting,
	ModuleWorkouts,
	ModuleSobriety,
	ModuleStoic,
}

func (m Module) IsScoring() bool {
	for _, mod := range Modules {
		if mod == m {
			return true
		}
	}
	return false
}

func ParseModule(s string) (Module, error) {
	m := Module(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsScoring() {
		return "", ErrInvalidModule
	}
	return m, nil
}

// Visibility holds the app-wide enabled flags. A missing key means hidden.
type Visibility map[Module]bool

func (v Visibility) IsVisible(m Module) bool {
	return v[m]
}

// DefaultVisibility enables every module and the daily renewal area.
func DefaultVisibility() Visibility {
	v := make(Visibility, len(Modules)+1)
	for _, m := range Modules {
		v[m] = true
	}
	v[AreaDailyRenewal] = true
	return v
}

// Merge returns a copy of v with the flags of other applied on top.
func (v Visibility) Merge(other Visibility) Visibility {
	out := make(Visibility, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}

func (v Visibility) Validate() error {
	for k := range v {
		if !k.IsScoring() && k != AreaDailyRenewal {
			return ErrInvalidModule
		}
	}
	return nil
}

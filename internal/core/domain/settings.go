package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidGoals       = errors.New("invalid goals")
	ErrInvalidSetting     = errors.New("invalid module setting")
	ErrSettingsUnreadable = errors.New("stored settings are not valid json")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

const (
	DefaultStepsGoal       = 10000
	DefaultWorkoutsGoal    = 1
	DefaultGratitudesGoal  = 3
	DefaultFastingHours    = 16
	DefaultInventoriesGoal = 1
)

// ModuleSetting is the per-module scoring configuration.
type ModuleSetting struct {
	TrackingStartDate string `json:"trackingStartDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// CountInScore defaults to true when unset.
	CountInScore *bool `json:"countInScore,omitempty"`
}

func (s ModuleSetting) CountsInScore() bool {
	return s.CountInScore == nil || *s.CountInScore
}

// InRange reports whether dateKey is on or after the tracking start date.
// Date keys compare lexically in chronological order.
func (s ModuleSetting) InRange(dateKey string) bool {
	return s.TrackingStartDate == "" || dateKey >= s.TrackingStartDate
}

func (s ModuleSetting) Validate() error {
	if err := validatorInstance().Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return nil
}

type ModuleSettings map[Module]ModuleSetting

// Goals are the numeric daily targets. Zero values are floored to 1 at scoring
// time, except HabitsGoal where 0 means "all habits".
type Goals struct {
	StepsPerDay       int     `json:"stepsPerDay" validate:"min=0,max=200000"`
	WorkoutsPerDay    int     `json:"workoutsPerDay" validate:"min=0,max=50"`
	GratitudesPerDay  int     `json:"gratitudesPerDay" validate:"min=0,max=100"`
	FastingHours      float64 `json:"fastingHours" validate:"min=0,max=168"`
	InventoriesPerDay int     `json:"inventoriesPerDay" validate:"min=0,max=50"`
	HabitsGoal        int     `json:"habitsGoal" validate:"min=0,max=1000"`
}

func DefaultGoals() Goals {
	return Goals{
		StepsPerDay:       DefaultStepsGoal,
		WorkoutsPerDay:    DefaultWorkoutsGoal,
		GratitudesPerDay:  DefaultGratitudesGoal,
		FastingHours:      DefaultFastingHours,
		InventoriesPerDay: DefaultInventoriesGoal,
		HabitsGoal:        0,
	}
}

func (g Goals) Validate() error {
	if err := validatorInstance().Struct(g); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGoals, err)
	}
	return nil
}

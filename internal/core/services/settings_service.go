package services

import (
	"context"
	"fmt"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

type SettingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

type UpdateModuleSettingInput struct {
	Module            domain.Module
	TrackingStartDate *string
	CountInScore      *bool
}

func (s *SettingsService) Visibility(ctx context.Context) (domain.Visibility, error) {
	return s.repo.Visibility(ctx)
}

// UpdateVisibility applies a partial set of flags over the current ones.
func (s *SettingsService) UpdateVisibility(ctx context.Context, changes domain.Visibility) (domain.Visibility, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.Visibility(ctx)
	if err != nil {
		return nil, err
	}

	merged := current.Merge(changes)
	if err := s.repo.SaveVisibility(ctx, merged); err != nil {
		return nil, fmt.Errorf("settings service: failed to save visibility: %w", err)
	}
	return merged, nil
}

func (s *SettingsService) Goals(ctx context.Context) (domain.Goals, error) {
	return s.repo.Goals(ctx)
}

func (s *SettingsService) UpdateGoals(ctx context.Context, goals domain.Goals) (domain.Goals, error) {
	if err := goals.Validate(); err != nil {
		return domain.Goals{}, err
	}
	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return domain.Goals{}, fmt.Errorf("settings service: failed to save goals: %w", err)
	}
	return goals, nil
}

func (s *SettingsService) ModuleSettings(ctx context.Context) (domain.ModuleSettings, error) {
	return s.repo.ModuleSettings(ctx)
}

// UpdateModuleSetting changes one module's settings. Nil fields keep their
// current value; an empty TrackingStartDate clears it.
func (s *SettingsService) UpdateModuleSetting(ctx context.Context, input UpdateModuleSettingInput) (domain.ModuleSetting, error) {
	if !input.Module.IsScoring() {
		return domain.ModuleSetting{}, domain.ErrInvalidModule
	}

	all, err := s.repo.ModuleSettings(ctx)
	if err != nil {
		return domain.ModuleSetting{}, err
	}

	setting := all[input.Module]
	if input.TrackingStartDate != nil {
		setting.TrackingStartDate = *input.TrackingStartDate
	}
	if input.CountInScore != nil {
		counts := *input.CountInScore
		setting.CountInScore = &counts
	}

	if err := setting.Validate(); err != nil {
		return domain.ModuleSetting{}, err
	}

	updated := make(domain.ModuleSettings, len(all)+1)
	for k, v := range all {
		updated[k] = v
	}
	updated[input.Module] = setting

	if err := s.repo.SaveModuleSettings(ctx, updated); err != nil {
		return domain.ModuleSetting{}, fmt.Errorf("settings service: failed to save module settings: %w", err)
	}
	return setting, nil
}

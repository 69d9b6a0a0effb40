package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Goals(ctx context.Context) (domain.Goals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Goals), args.Error(1)
}

func (m *MockSettingsRepo) Visibility(ctx context.Context) (domain.Visibility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Visibility), args.Error(1)
}

func (m *MockSettingsRepo) ModuleSettings(ctx context.Context) (domain.ModuleSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ModuleSettings), args.Error(1)
}

func (m *MockSettingsRepo) SaveGoals(ctx context.Context, goals domain.Goals) error {
	return m.Called(ctx, goals).Error(0)
}

func (m *MockSettingsRepo) SaveVisibility(ctx context.Context, v domain.Visibility) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockSettingsRepo) SaveModuleSettings(ctx context.Context, s domain.ModuleSettings) error {
	return m.Called(ctx, s).Error(0)
}

type MockStepsReader struct {
	mock.Mock
}

func (m *MockStepsReader) StepsForDates(ctx context.Context, dateKeys []string) (map[string]int, error) {
	args := m.Called(ctx, dateKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

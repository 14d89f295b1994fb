package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amizade-app/companion-api/internal/models"
)

func TestValidateWeeklyRules(t *testing.T) {
	rules := []models.AvailabilityRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		{Weekday: 1, StartTime: "14:00", EndTime: "18:00", Active: true},
		{Weekday: 2, StartTime: "09:00", EndTime: "18:00", Active: true},
	}
	require.NoError(t, ValidateWeeklyRules(rules))
}

func TestValidateWeeklyRulesRejectsWholeBatch(t *testing.T) {
	rules := []models.AvailabilityRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		{Weekday: 1, StartTime: "11:00", EndTime: "14:00", Active: true},
	}
	err := ValidateWeeklyRules(rules)
	require.Error(t, err)
	require.True(t, IsValidation(err))
}

func TestValidateWeeklyRulesSameWindowDifferentWeekdays(t *testing.T) {
	rules := []models.AvailabilityRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
	}
	require.NoError(t, ValidateWeeklyRules(rules))
}

func TestValidateWeeklyRulesIgnoresInactive(t *testing.T) {
	rules := []models.AvailabilityRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		{Weekday: 1, StartTime: "11:00", EndTime: "14:00", Active: false},
	}
	require.NoError(t, ValidateWeeklyRules(rules))
}

func TestValidateWeeklyRulesBadWeekday(t *testing.T) {
	err := ValidateWeeklyRules([]models.AvailabilityRule{
		{Weekday: 7, StartTime: "09:00", EndTime: "12:00", Active: true},
	})
	require.Error(t, err)
}

func TestValidateWeeklyRulesBadWindow(t *testing.T) {
	err := ValidateWeeklyRules([]models.AvailabilityRule{
		{Weekday: 1, StartTime: "12:00", EndTime: "09:00", Active: true},
	})
	require.Error(t, err)
}

func TestValidateOverrides(t *testing.T) {
	require.NoError(t, ValidateOverrides([]models.AvailabilityOverride{
		{Date: "2026-03-10", StartTime: "10:00", EndTime: "14:00", Active: true},
		{Date: "2026-03-10", StartTime: "16:00", EndTime: "20:00", Active: true},
	}))

	err := ValidateOverrides([]models.AvailabilityOverride{
		{Date: "2026-03-10", StartTime: "10:00", EndTime: "14:00", Active: true},
		{Date: "2026-03-10", StartTime: "13:00", EndTime: "15:00", Active: true},
	})
	require.Error(t, err)
}

func TestValidateOverridesInactiveNeedsNoWindow(t *testing.T) {
	// a lone inactive row blocks the whole day
	require.NoError(t, ValidateOverrides([]models.AvailabilityOverride{
		{Date: "2026-03-10", Active: false},
	}))
}

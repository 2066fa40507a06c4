package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarreto/equifinance/internal/config"
	"github.com/lbarreto/equifinance/internal/participant"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "EquiFinance", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 3, cfg.Dashboard.HistoryMonths)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HISTORY_MONTHS", "6")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.App.Port)
	assert.Equal(t, 6, cfg.Dashboard.HistoryMonths)
}

func TestLoad_BadHistoryMonths(t *testing.T) {
	t.Setenv("HISTORY_MONTHS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_Roster(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		set, err := cfg.Roster()
		require.NoError(t, err)
		assert.True(t, set.Contains(participant.Leo))
		assert.True(t, set.Contains(participant.Cris))
	})

	t.Run("Configured", func(t *testing.T) {
		t.Setenv("PARTICIPANTS", "ana:Ana:#ff0000,rui:Rui:#00ff00")

		cfg, err := config.Load()
		require.NoError(t, err)

		set, err := cfg.Roster()
		require.NoError(t, err)
		assert.True(t, set.Contains("ana"))
		assert.False(t, set.Contains(participant.Leo))
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Setenv("PARTICIPANTS", "solo:Sozinho")

		cfg, err := config.Load()
		require.NoError(t, err)

		_, err = cfg.Roster()
		assert.Error(t, err)
	})
}

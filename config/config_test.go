package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "")
	t.Setenv("SQUARE_LOCATION_ID", "")
	t.Setenv("SQUARE_ITEM_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_LOCATION_ID", "LOC1")
	t.Setenv("SQUARE_ITEM_ID", "ITEM1")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "token", cfg.SquareAccessToken)
	assert.Equal(t, "LOC1", cfg.SquareLocationID)
	assert.Equal(t, "ITEM1", cfg.SquareItemID)
}

func TestLoadConfig_PortOverride(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "token")
	t.Setenv("SQUARE_LOCATION_ID", "LOC1")
	t.Setenv("SQUARE_ITEM_ID", "ITEM1")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

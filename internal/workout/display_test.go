package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ironiq/gymtap/internal/config"
	"github.com/ironiq/gymtap/internal/models"
)

func TestFormatWeight_PreferredUnits(t *testing.T) {
	set := models.Set{WeightLbs: 135, Reps: 10}

	assert.Equal(t, "135lbs", FormatWeight(&config.Config{WeightUnit: config.UnitLbs}, set))
	assert.Equal(t, "61.2kg", FormatWeight(&config.Config{WeightUnit: config.UnitKg}, set))
}

func TestFormatWeight_SentinelRendersAsDashInEveryUnit(t *testing.T) {
	// The unknown-weight sentinel never surfaces as a number, not even as
	// the display-level 0.
	set := models.Set{WeightLbs: models.WeightUnknown, Reps: 12}

	assert.Equal(t, "—", FormatWeight(&config.Config{WeightUnit: config.UnitLbs}, set))
	assert.Equal(t, "—", FormatWeight(&config.Config{WeightUnit: config.UnitKg}, set))
}

func TestFormatSets(t *testing.T) {
	cfg := &config.Config{WeightUnit: config.UnitLbs}

	assert.Equal(t, "no sets", FormatSets(cfg, nil))
	assert.Equal(t, "135lbs×10, 135lbs×8", FormatSets(cfg, []models.Set{
		{WeightLbs: 135, Reps: 10},
		{WeightLbs: 135, Reps: 8},
	}))
	assert.Equal(t, "—×12", FormatSets(cfg, []models.Set{
		{WeightLbs: models.WeightUnknown, Reps: 12},
	}))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "2m", FormatDuration(95*time.Second))
	assert.Equal(t, "1.5h", FormatDuration(90*time.Minute))
}

package workout

import (
	"fmt"
	"strings"
	"time"

	"github.com/ironiq/gymtap/internal/config"
	"github.com/ironiq/gymtap/internal/models"
)

// DisplayWeightLbs maps the unknown-weight sentinel to 0 for surfaces that
// need a concrete number. The sentinel itself is preserved everywhere else:
// codec, matcher and stored sets all keep -1 as written.
func DisplayWeightLbs(set models.Set) int {
	if set.WeightLbs == models.WeightUnknown {
		return 0
	}
	return set.WeightLbs
}

// LbsToKg converts a display weight for users who prefer metric.
func LbsToKg(lbs int) float64 {
	return float64(lbs) * 0.45359237
}

// FormatWeight renders one set's weight in the user's preferred unit.
// The unknown-weight sentinel renders as an em dash, never as a number.
func FormatWeight(cfg *config.Config, set models.Set) string {
	if set.WeightLbs == models.WeightUnknown {
		return "—"
	}
	if cfg.WeightUnit == config.UnitKg {
		return fmt.Sprintf("%.1fkg", LbsToKg(DisplayWeightLbs(set)))
	}
	return fmt.Sprintf("%dlbs", DisplayWeightLbs(set))
}

// FormatSets renders a set list like "135lbs×10, 135lbs×8".
func FormatSets(cfg *config.Config, sets []models.Set) string {
	if len(sets) == 0 {
		return "no sets"
	}
	parts := make([]string, len(sets))
	for i, set := range sets {
		parts[i] = fmt.Sprintf("%s×%d", FormatWeight(cfg, set), set.Reps)
	}
	return strings.Join(parts, ", ")
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

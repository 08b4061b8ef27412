package pipeline

import "github.com/chrisdamba/foodvenues/internal/models"

// IsAllDay reports whether hours is exactly the canonical "open every day,
// around the clock" literal. Any other phrasing, including a missing value,
// is not treated as 24/7.
func IsAllDay(hours *string) bool {
	return hours != nil && *hours == models.AllDayHours
}

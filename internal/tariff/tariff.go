// Package tariff resolves the current time-of-use electricity bracket from
// a season and weekday/weekend rule table.
package tariff

import (
	"slices"
	"strconv"
	"time"

	"github.com/i474232898/status-dashboard/internal/config"
)

const (
	LineConfigError = "Cost: Config Error"
	LineUnknown     = "Cost: Unknown"
)

// Schedule names a rule sequence in the table.
type Schedule string

const (
	SummerWeekday Schedule = "summer.weekday"
	SummerWeekend Schedule = "summer.weekend"
	Winter        Schedule = "winter"
)

// WeekdayIndex numbers days Monday=0 through Sunday=6, the convention used
// by weekend_days.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Structured reports whether the table has the keys evaluation needs.
func Structured(cfg config.Tariff) bool {
	return len(cfg.SummerMonths) > 0 && cfg.Summer != nil && cfg.Winter != nil
}

// SelectSchedule picks the rule sequence in force at now.
func SelectSchedule(cfg config.Tariff, now time.Time) (Schedule, []config.TariffRule) {
	if !slices.Contains(cfg.SummerMonths, int(now.Month())) {
		return Winter, cfg.Winter
	}
	if slices.Contains(cfg.WeekendDays, WeekdayIndex(now)) {
		return SummerWeekend, cfg.Summer.Weekend
	}
	return SummerWeekday, cfg.Summer.Weekday
}

// Match returns the first rule whose [Start, End) range holds hour.
func Match(rules []config.TariffRule, hour int) (config.TariffRule, bool) {
	for _, r := range rules {
		if r.Start <= hour && hour < r.End {
			return r, true
		}
	}
	return config.TariffRule{}, false
}

// Evaluate renders the cost line for now. It reads nothing but its
// arguments.
func Evaluate(cfg config.Tariff, now time.Time) string {
	if !Structured(cfg) {
		return LineConfigError
	}

	_, rules := SelectSchedule(cfg, now)
	rule, ok := Match(rules, now.Hour())
	if !ok {
		return LineUnknown
	}
	return Format(rule)
}

// Format renders a matched rule.
func Format(r config.TariffRule) string {
	return "Cost: " + FormatRate(r.Rate) + "¢ " + r.Label + " - " + r.Recommendation
}

// FormatRate prints the rate in its shortest form: 38, 38.5.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

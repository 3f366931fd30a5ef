package tariff

import (
	"fmt"

	"github.com/i474232898/status-dashboard/internal/config"
)

const hoursPerDay = 24

// IssueKind classifies a problem found in a rule table.
type IssueKind string

const (
	IssueStructure IssueKind = "structure"
	IssueBounds    IssueKind = "bounds"
	IssueOverlap   IssueKind = "overlap"
	IssueGap       IssueKind = "gap"
)

// Issue describes one validation finding. Rule is the index of the offending
// rule within its schedule, or -1 when the finding is about the schedule as
// a whole.
type Issue struct {
	Schedule Schedule  `json:"schedule,omitempty"`
	Kind     IssueKind `json:"kind"`
	Rule     int       `json:"rule"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
	Message  string    `json:"message"`
}

// Validate reports bound, overlap and coverage problems. Evaluation is not
// affected: the first matching rule still wins, and months or weekdays out of
// range simply never match.
func Validate(cfg config.Tariff) []Issue {
	var issues []Issue

	if len(cfg.SummerMonths) == 0 {
		issues = append(issues, structureIssue("summer_months is missing or empty"))
	}
	issues = append(issues, calendarIssues("summer_months", cfg.SummerMonths, 1, 12)...)
	issues = append(issues, calendarIssues("weekend_days", cfg.WeekendDays, 0, 6)...)
	if cfg.Summer == nil {
		issues = append(issues, structureIssue("summer schedule is missing"))
	} else {
		issues = append(issues, validateRules(SummerWeekday, cfg.Summer.Weekday)...)
		issues = append(issues, validateRules(SummerWeekend, cfg.Summer.Weekend)...)
	}
	if cfg.Winter == nil {
		issues = append(issues, structureIssue("winter schedule is missing"))
	} else {
		issues = append(issues, validateRules(Winter, cfg.Winter)...)
	}

	return issues
}

func structureIssue(msg string) Issue {
	return Issue{Kind: IssueStructure, Rule: -1, Message: msg}
}

func calendarIssues(field string, values []int, lo, hi int) []Issue {
	var issues []Issue
	for i, v := range values {
		if v < lo || v > hi {
			issues = append(issues, Issue{
				Kind:    IssueBounds,
				Rule:    i,
				Start:   v,
				End:     v,
				Message: fmt.Sprintf("%s[%d] = %d is outside %d-%d and never matches", field, i, v, lo, hi),
			})
		}
	}
	return issues
}

func validateRules(schedule Schedule, rules []config.TariffRule) []Issue {
	var issues []Issue

	var owner [hoursPerDay]int
	for h := range owner {
		owner[h] = -1
	}

	for i, r := range rules {
		if r.Start < 0 || r.Start > hoursPerDay-1 || r.End < 1 || r.End > hoursPerDay || r.Start >= r.End {
			issues = append(issues, Issue{
				Schedule: schedule,
				Kind:     IssueBounds,
				Rule:     i,
				Start:    r.Start,
				End:      r.End,
				Message:  fmt.Sprintf("rule %d (%s) has range [%d, %d) outside 0-24 or empty", i, r.Label, r.Start, r.End),
			})
		}

		var shadowed []int
		for h := max(r.Start, 0); h < min(r.End, hoursPerDay); h++ {
			if owner[h] == -1 {
				owner[h] = i
				continue
			}
			shadowed = append(shadowed, h)
		}
		for _, span := range spans(shadowed) {
			issues = append(issues, Issue{
				Schedule: schedule,
				Kind:     IssueOverlap,
				Rule:     i,
				Start:    span[0],
				End:      span[1],
				Message:  fmt.Sprintf("rule %d (%s) is shadowed by an earlier rule for hours [%d, %d)", i, r.Label, span[0], span[1]),
			})
		}
	}

	var uncovered []int
	for h, o := range owner {
		if o == -1 {
			uncovered = append(uncovered, h)
		}
	}
	for _, span := range spans(uncovered) {
		issues = append(issues, Issue{
			Schedule: schedule,
			Kind:     IssueGap,
			Rule:     -1,
			Start:    span[0],
			End:      span[1],
			Message:  fmt.Sprintf("no rule covers hours [%d, %d)", span[0], span[1]),
		})
	}

	return issues
}

// spans groups sorted hours into half-open runs.
func spans(hours []int) [][2]int {
	var out [][2]int
	for _, h := range hours {
		if n := len(out); n > 0 && out[n-1][1] == h {
			out[n-1][1] = h + 1
			continue
		}
		out = append(out, [2]int{h, h + 1})
	}
	return out
}

package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day without a date or zone.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses an "HH:mm" string.
func ParseClockTime(s string) (ClockTime, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return ClockTime{}, fmt.Errorf("hora inválida %q: %w", s, err)
	}
	return ClockTime{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// String formats the time as "HH:mm".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight, used for ordering.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Schedule is an opening range for one day of the week. Overlapping ranges
// for the same day are allowed; grouping happens at display time.
type Schedule struct {
	Day   time.Weekday
	Open  ClockTime
	Close ClockTime
}

var weekdayNames = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// ParseWeekday decodes an uppercase day name such as "MONDAY".
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return time.Monday, fmt.Errorf("día inválido %q", s)
	}
	return day, nil
}

// WeekdayName returns the uppercase wire name for a weekday.
func WeekdayName(day time.Weekday) string {
	return strings.ToUpper(day.String())
}

// GroupSchedules orders schedules for display: Monday first, then by opening
// time within the same day.
func GroupSchedules(schedules []Schedule) []Schedule {
	grouped := append([]Schedule(nil), schedules...)
	sort.SliceStable(grouped, func(i, j int) bool {
		di, dj := mondayFirst(grouped[i].Day), mondayFirst(grouped[j].Day)
		if di != dj {
			return di < dj
		}
		return grouped[i].Open.Minutes() < grouped[j].Open.Minutes()
	})
	return grouped
}

func mondayFirst(day time.Weekday) int {
	if day == time.Sunday {
		return 7
	}
	return int(day)
}

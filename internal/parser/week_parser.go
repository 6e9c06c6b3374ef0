package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseWeek resolves the week selector given to report commands to the
// Monday of the requested week.
// Supported formats:
// - "" or "this" (current week)
// - "last" (previous week)
// - dd/mm/yyyy (week containing that date)
// - yyyy-mm-dd (week containing that date)
func ParseWeek(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "", "this":
		return mondayOf(now), nil
	case "last":
		return mondayOf(now).AddDate(0, 0, -7), nil
	}

	if day, err := parseDayFormat(input); err == nil {
		return mondayOf(day), nil
	}

	return time.Time{}, fmt.Errorf("invalid week format. Use: this, last, dd/mm/yyyy or yyyy-mm-dd")
}

var slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

func parseDayFormat(input string) (time.Time, error) {
	if matches := slashDateRegex.FindStringSubmatch(input); len(matches) == 4 {
		day, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		year, _ := strconv.Atoi(matches[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if t.Day() != day || int(t.Month()) != month {
			return time.Time{}, fmt.Errorf("invalid calendar date")
		}
		return t, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, time.Local); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date")
}

func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

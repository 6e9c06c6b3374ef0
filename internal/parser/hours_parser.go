package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseHours parses an hour amount as typed into adjustment and project
// forms.
// Supported formats:
// - plain number, dot or comma decimal (e.g. "2.5", "1,75", "40")
// - clock style (e.g. "2h", "2h30m", "45m")
func ParseHours(input string) (float64, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return 0, fmt.Errorf("empty hours value")
	}

	if hours, err := parseNumericHours(input); err == nil {
		return hours, nil
	}

	if hours, err := parseClockHours(input); err == nil {
		return hours, nil
	}

	return 0, fmt.Errorf("invalid hours format. Use: 2.5, 2h30m or 45m")
}

// parseNumericHours parses a bare decimal number of hours.
func parseNumericHours(input string) (float64, error) {
	input = strings.ReplaceAll(input, ",", ".")
	hours, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if hours < 0 {
		return 0, fmt.Errorf("hours cannot be negative")
	}
	return hours, nil
}

var clockRegex = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)

// parseClockHours parses "XhYm" style input.
func parseClockHours(input string) (float64, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, fmt.Errorf("invalid clock format")
	}

	var hours float64
	if matches[1] != "" {
		h, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid hour part")
		}
		hours += float64(h)
	}
	if matches[2] != "" {
		m, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, fmt.Errorf("invalid minute part")
		}
		hours += float64(m) / 60
	}
	return hours, nil
}

// Package academicyear derives and validates "YYYY-YYYY" academic year
// labels. Leave balances are scoped per academic year; the year rolls over on
// June 1st.
package academicyear

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// RolloverMonth is the month a new academic year begins.
const RolloverMonth = time.June

var labelPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ForDate returns the academic year label the given date falls in.
func ForDate(t time.Time) string {
	year := t.Year()
	if t.Month() < RolloverMonth {
		year--
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

// Current returns the academic year label for the current date.
func Current() string {
	return ForDate(time.Now().UTC())
}

// Valid reports whether the label is a well-formed consecutive-year pair.
func Valid(label string) bool {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return false
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	return second == first+1
}

package dateutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// lifeDatePattern matches catalog dates stored as MM/DD/YY or MM/DD/YYYY.
var lifeDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{2,4})`)

// lifeDayMonth renders the day and month of a life date; the year is
// appended as written.
var lifeDayMonth = mustLayout("D MMMM")

// calendarYear is a leap year, so 02/29 is a valid life date.
const calendarYear = 2000

// FormatLifeDate rewrites every MM/DD/YYYY date in value as "D Month YYYY".
// The year is kept as written. Impossible dates and values without a date
// are returned unchanged.
//
// Examples:
//   - "04/12/1920" -> "12 April 1920"
//   - "c. 01/05/1890" -> "c. 5 January 1890"
//   - "13/01/1920" -> "13/01/1920"
//   - "1920" -> "1920"
func FormatLifeDate(value string) string {
	return lifeDatePattern.ReplaceAllStringFunc(value, func(m string) string {
		parts := lifeDatePattern.FindStringSubmatch(m)
		month, _ := strconv.Atoi(parts[1])
		day, _ := strconv.Atoi(parts[2])
		if month < 1 || month > 12 {
			return m
		}
		d := time.Date(calendarYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Month() != time.Month(month) || d.Day() != day {
			return m
		}
		return d.Format(lifeDayMonth) + " " + parts[3]
	})
}

// ReduceYear keeps the ending year of a range such as "1920-1935".
// Values without a hyphen are only trimmed.
func ReduceYear(year string) string {
	if i := strings.LastIndex(year, "-"); i >= 0 {
		year = year[i+1:]
	}
	return strings.TrimSpace(year)
}

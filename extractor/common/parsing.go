package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	amountNoise      = regexp.MustCompile(`[\s$.]`)
	fullDateRegex    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	shortDateRegex   = regexp.MustCompile(`^(\d{1,2})/([A-Za-z]{3})$`)
	dateTimeLayout   = "02/01/2006 15:04"
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

var spanishMonths = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"set": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,
}

// ParseAmount parses a Chilean formatted amount such as "$1.234.567,89".
// Empty or unparseable input yields zero.
func ParseAmount(text string) decimal.Decimal {
	clean := strings.ReplaceAll(amountNoise.ReplaceAllString(text, ""), ",", ".")
	if clean == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseStatementDate accepts dd/mm/yyyy or dd/MMM with a Spanish month
// abbreviation. The abbreviated form takes referenceYear.
func ParseStatementDate(text string, referenceYear int, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	if loc == nil {
		loc = time.Local
	}

	if m := fullDateRegex.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, time.Month(month), day, loc, text)
	}

	if m := shortDateRegex.FindStringSubmatch(text); m != nil {
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month in date %q", text)
		}
		day, _ := strconv.Atoi(m[1])
		return buildDate(referenceYear, month, day, loc, text)
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

func buildDate(year int, month time.Month, day int, loc *time.Location, text string) (time.Time, error) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range %q", text)
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day {
		return time.Time{}, fmt.Errorf("date out of range %q", text)
	}
	return date, nil
}

// ParseDateTime parses the "dd/mm/yyyy hh:mm" query timestamp.
func ParseDateTime(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dateTimeLayout, CollapseSpaces(text), loc)
}

// CollapseSpaces replaces every whitespace run with one space and trims.
func CollapseSpaces(text string) string {
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(text, " "))
}

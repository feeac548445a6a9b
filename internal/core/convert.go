package core

// convert.go handles the messy reality of spreadsheet cell text:
//   - currency symbols and thousands separators in amounts
//   - accounting negatives "(123.45)"
//   - decimal commas alongside decimal points
//   - ISO and day-first date formats, with and without a time part
//   - Excel formula prefixes (="value") and stray quotes

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// amountRegex validates a numeric string after cleanup: integers,
// decimals, and scientific notation.
var amountRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// CleanCell removes common spreadsheet artifacts from a cell value: outer
// whitespace, an Excel formula prefix (="..."), and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// ParseAmount parses a cell as a float amount. It strips currency symbols
// and thousands separators, accepts a decimal comma, and reads the
// accounting form "(123.45)" as negative. ok is false for empty or
// unparsable input.
func ParseAmount(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, sym := range []string{"$", "€", "£", "DA", "DZD", "kg", "Kg", "KG", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}

	// "1.234,56" and "1,234.56" both occur; a comma is decimal only when
	// no point follows it.
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	if neg {
		s = "-" + s
	}

	if !amountRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseDate parses a cell as a calendar date. Day-first layouts take
// precedence over month-first: the sources are French-language exports.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package dateutil

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout is the calendar-date format used in inputs and reports.
const Layout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateOnly drops the clock part of t, keeping the calendar day in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsStrictlyBefore reports whether a falls on an earlier calendar day than b.
// Times on the same day are never before each other.
func IsStrictlyBefore(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}

// FinancialYearOf returns the starting calendar year of the April-March
// financial year containing t.
func FinancialYearOf(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// AssessmentYearFor returns the assessment year label in which income earned
// on t is assessed, e.g. 2025-06-01 -> "AY2026-27".
func AssessmentYearFor(t time.Time) string {
	return formatAssessmentYear(FinancialYearOf(t) + 1)
}

func formatAssessmentYear(start int) string {
	return fmt.Sprintf("AY%d-%02d", start, (start+1)%100)
}

var assessmentYearPattern = regexp.MustCompile(`^(?i:AY)?\s*(\d{4})(?:\s*-\s*(\d{2}|\d{4}))?$`)

// NormalizeAssessmentYear canonicalizes labels such as "2026-27", "ay 2026-27",
// "AY2026-2027" or "2026" to "AY2026-27".
func NormalizeAssessmentYear(s string) (string, error) {
	m := assessmentYearPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("invalid assessment year %q", s)
	}
	start, _ := strconv.Atoi(m[1])
	if m[2] != "" {
		end, _ := strconv.Atoi(m[2])
		want := start + 1
		if len(m[2]) == 2 {
			want %= 100
		}
		if end != want {
			return "", fmt.Errorf("invalid assessment year %q: years must be consecutive", s)
		}
	}
	return formatAssessmentYear(start), nil
}

// Date is a calendar date that encodes as YYYY-MM-DD in YAML and JSON.
type Date struct {
	time.Time
}

// NewDate returns the UTC calendar date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MustParseDate parses s or panics. Intended for built-in tables and tests.
func MustParseDate(s string) Date {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return Date{t}
}

// String renders the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(Layout)
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" || value.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	t, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date %s: expected a YYYY-MM-DD string", data)
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

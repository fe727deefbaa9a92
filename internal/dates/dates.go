// Package dates turns the date strings served by registries and feeds into
// timezone-aware instants.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parse reads s in any of the common layouts. Values without zone
// information are taken as UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("dates: empty date")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates: parse %q: %w", s, err)
	}
	return t, nil
}

// Day formats t as YYYY-MM-DD in its own zone.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

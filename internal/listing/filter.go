// Package listing narrows, summarizes and exports response and event listings.
// Every function here is pure: it works on slices already loaded from the store.
package listing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"weddingrsvp/internal/domain"
)

// AttendanceFilter selects responses by their attendance answer.
type AttendanceFilter string

const (
	AttendanceAll AttendanceFilter = "all"
	AttendanceYes AttendanceFilter = "yes"
	AttendanceNo  AttendanceFilter = "no"
)

// ParseAttendanceFilter parses "all", "yes" or "no" case-insensitively. An empty string means all.
func ParseAttendanceFilter(s string) (AttendanceFilter, error) {
	switch f := AttendanceFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", AttendanceAll:
		return AttendanceAll, nil
	case AttendanceYes, AttendanceNo:
		return f, nil
	default:
		return "", fmt.Errorf("invalid attendance filter %q: want all, yes or no", s)
	}
}

func (f AttendanceFilter) match(attending bool) bool {
	switch f {
	case AttendanceYes:
		return attending
	case AttendanceNo:
		return !attending
	default:
		return true
	}
}

// matcher is a case-folded substring test. A cases.Caser is stateful, so each matcher owns one.
type matcher struct {
	fold cases.Caser
	term string
}

// newMatcher returns nil for a blank term, which matches everything. Surrounding
// whitespace is deliberately not part of the term, so " jane" finds "Jane Doe".
func newMatcher(term string) *matcher {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	m := &matcher{fold: cases.Fold()}
	m.term = m.fold.String(term)
	return m
}

// matchAny reports whether one of the fields contains the term. A nil matcher matches everything.
func (m *matcher) matchAny(fields ...string) bool {
	if m == nil {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.term) {
			return true
		}
	}
	return false
}

// FilterResponses keeps the items whose full name or phone contains search (ignoring case)
// and whose attendance matches f. A blank search matches every item. Order is preserved.
func FilterResponses(items []*domain.EnrichedResponse, search string, f AttendanceFilter) []*domain.EnrichedResponse {
	m := newMatcher(search)
	out := make([]*domain.EnrichedResponse, 0, len(items))
	for _, it := range items {
		if !f.match(it.Attendance) {
			continue
		}
		if !m.matchAny(it.FullName, it.Phone) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SearchEvents keeps the events whose title, location or description contains term.
func SearchEvents(events []*domain.Event, term string) []*domain.Event {
	m := newMatcher(term)
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if m.matchAny(e.Title, e.Location, e.Description) {
			out = append(out, e)
		}
	}
	return out
}

package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"weddingrsvp/internal/domain"
	"weddingrsvp/internal/listing"
)

// ParseResponseFilter reads event_id and confirmed from the query string.
// Blank values do not filter; confirmed must be a boolean.
func ParseResponseFilter(r *http.Request) (domain.ResponseFilter, error) {
	q := r.URL.Query()
	var f domain.ResponseFilter
	if id := strings.TrimSpace(q.Get("event_id")); id != "" {
		f.EventID = &id
	}
	if s := strings.TrimSpace(q.Get("confirmed")); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return domain.ResponseFilter{}, fmt.Errorf("confirmed must be true or false")
		}
		f.Attendance = &b
	}
	return f, nil
}

// OverviewQuery holds the client-side narrowing parameters of the overview and export routes.
type OverviewQuery struct {
	Filter     domain.ResponseFilter
	Search     string
	Attendance listing.AttendanceFilter
}

// ParseOverviewQuery reads event_id, search and filter (all, yes or no).
func ParseOverviewQuery(r *http.Request) (OverviewQuery, error) {
	q := r.URL.Query()
	var out OverviewQuery
	if id := strings.TrimSpace(q.Get("event_id")); id != "" {
		out.Filter.EventID = &id
	}
	att, err := listing.ParseAttendanceFilter(q.Get("filter"))
	if err != nil {
		return OverviewQuery{}, err
	}
	out.Attendance = att
	out.Search = q.Get("search")
	return out, nil
}

package listing

import (
	"strings"

	"weddingrsvp/internal/domain"
)

// Stats are the counters shown above the response table.
type Stats struct {
	Total        int `json:"total"`
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	WithMessage  int `json:"with_message"`
}

// ComputeStats counts over items as given. Callers pass the unfiltered listing.
func ComputeStats(items []*domain.EnrichedResponse) Stats {
	var s Stats
	for _, it := range items {
		s.Total++
		if it.Attendance {
			s.Attending++
		} else {
			s.NotAttending++
		}
		if strings.TrimSpace(it.Message) != "" {
			s.WithMessage++
		}
	}
	return s
}

// Overview is a filtered listing together with counters over the whole listing.
type Overview struct {
	Items []*domain.EnrichedResponse `json:"items"`
	Stats Stats                      `json:"stats"`
	Shown int                        `json:"shown"`
	Total int                        `json:"total"`
}

// BuildOverview filters all and computes stats over the unfiltered set.
func BuildOverview(all []*domain.EnrichedResponse, search string, f AttendanceFilter) Overview {
	items := FilterResponses(all, search, f)
	return Overview{
		Items: items,
		Stats: ComputeStats(all),
		Shown: len(items),
		Total: len(all),
	}
}

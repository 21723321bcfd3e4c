package mappers

import (
	"time"

	"journal-transporter/transporter/internal/constants"
	"journal-transporter/transporter/internal/transport"
)

// articleTimeline is the canonical order of article lifecycle dates.
var articleTimeline = []string{
	"date_started",
	"date_submitted",
	"date_accepted",
	"date_declined",
	"date_published",
	"date_updated",
}

// derivedTimeline are the dates filled in when missing.
var derivedTimeline = []string{"date_started", "date_submitted"}

// deriveTimeline fills each missing derived date from the next populated
// date in timeline order, clamped so it is never later than any populated
// date that follows it.
func deriveTimeline(data transport.Payload) {
	for _, field := range derivedTimeline {
		if data.Time(field) != nil {
			continue
		}

		var candidate, earliest *time.Time
		for _, later := range after(field) {
			t := data.Time(later)
			if t == nil {
				continue
			}
			if candidate == nil {
				candidate = t
			}
			if earliest == nil || t.Before(*earliest) {
				earliest = t
			}
		}
		if candidate == nil {
			continue
		}
		if earliest.Before(*candidate) {
			candidate = earliest
		}
		data[field] = *candidate
	}
}

func after(field string) []string {
	for i, f := range articleTimeline {
		if f == field {
			return articleTimeline[i+1:]
		}
	}
	return nil
}

// stageFromDates infers a workflow stage from which lifecycle dates exist.
func stageFromDates(data transport.Payload) string {
	switch {
	case data.Time("date_published") != nil:
		return constants.StagePublished
	case data.Time("date_declined") != nil:
		return constants.StageRejected
	case data.Time("date_accepted") != nil:
		return constants.StageAccepted
	case data.Time("date_submitted") != nil:
		return constants.StageUnassigned
	default:
		return constants.StageUnsubmitted
	}
}

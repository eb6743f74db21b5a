package ingestion

import (
	"time"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

const (
	// quoteDetailRecordType marks a tradable-instrument daily price line.
	// Header, trailer and summary lines carry other tags and are dropped.
	quoteDetailRecordType = "01"

	feedDateLayout = "20060102"
)

// PreviousBusinessDay returns the most recent completed business day (D-1)
// relative to today: yesterday, except Monday resolves to the preceding
// Friday (-3) and Sunday to the preceding Friday (-2).
//
// The rule has no holiday awareness. On a holiday the requested day is
// absent from the feed and SelectBusinessDay's recency fallback covers it.
func PreviousBusinessDay(today time.Time) time.Time {
	days := -1
	switch today.Weekday() {
	case time.Monday:
		days = -3
	case time.Sunday:
		days = -2
	}
	d := today.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// SelectBusinessDay keeps only quote-detail rows with a valid 8-digit date
// and selects the rows for the target date. When the target date is absent
// it falls back to the most recent date present in the row set, logging
// both the requested and the substituted date.
//
// Returns the selected rows and the date they actually belong to. The
// result is empty only when the row set is empty after the record-type
// filter or after date validation.
func SelectBusinessDay(records []Record, target time.Time) ([]Record, time.Time) {
	type dated struct {
		rec  Record
		date time.Time
	}

	valid := make([]dated, 0, len(records))
	for _, rec := range records {
		if rec.RecordType != quoteDetailRecordType {
			continue
		}
		if !isDigits(rec.Date) || len(rec.Date) != 8 {
			continue
		}
		d, err := time.ParseInLocation(feedDateLayout, rec.Date, time.UTC)
		if err != nil {
			continue
		}
		valid = append(valid, dated{rec: rec, date: d})
	}

	logger.L().Info().Int("rows", len(valid)).Msg("quote-detail rows with valid dates")
	if len(valid) == 0 {
		return nil, target
	}

	selected := make([]Record, 0, len(valid))
	for _, v := range valid {
		if v.date.Equal(target) {
			selected = append(selected, v.rec)
		}
	}
	if len(selected) > 0 {
		logger.L().Info().Str("date", target.Format("2006-01-02")).Int("rows", len(selected)).Msg("selected target business day")
		return selected, target
	}

	// Recency fallback: the single most recent date present in the feed.
	latest := valid[0].date
	for _, v := range valid[1:] {
		if v.date.After(latest) {
			latest = v.date
		}
	}
	for _, v := range valid {
		if v.date.Equal(latest) {
			selected = append(selected, v.rec)
		}
	}

	logger.L().Warn().
		Str("requested", target.Format("2006-01-02")).
		Str("substituted", latest.Format("2006-01-02")).
		Int("rows", len(selected)).
		Msg("target date absent from feed, using most recent available date")

	return selected, latest
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

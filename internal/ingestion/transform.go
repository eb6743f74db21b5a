package ingestion

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

// QuoteRow is one normalized feed row: semantic field names, decimal prices
// and a parsed date. The Average price is carried for completeness but is
// not persisted.
type QuoteRow struct {
	Code    string
	Name    string
	Date    time.Time
	Open    decimal.NullDecimal
	Close   decimal.NullDecimal
	High    decimal.NullDecimal
	Low     decimal.NullDecimal
	Average decimal.NullDecimal
	Trades  sql.NullInt64
	Volume  decimal.NullDecimal
}

// Normalize converts filtered records into typed quote rows.
//
// Currency fields arrive as unscaled integer text with two implied decimal
// digits; they are parsed and shifted by -2 (e.g. "12550" becomes 125.50).
// Non-numeric cells become SQL NULL rather than aborting the row.
//
// The single content-based rejection after the date filter: a row where
// both open and close are null-or-non-positive is dropped.
func Normalize(records []Record) []QuoteRow {
	rows := make([]QuoteRow, 0, len(records))
	rejected := 0

	for _, rec := range records {
		date, err := time.ParseInLocation(feedDateLayout, rec.Date, time.UTC)
		if err != nil {
			continue
		}

		row := QuoteRow{
			Code:    rec.Code,
			Name:    rec.Name,
			Date:    date,
			Open:    parseCurrency(rec.Open),
			Close:   parseCurrency(rec.Close),
			High:    parseCurrency(rec.High),
			Low:     parseCurrency(rec.Low),
			Average: parseCurrency(rec.Average),
			Trades:  parseCount(rec.Quantity),
			Volume:  parseCurrency(rec.Volume),
		}

		if !positive(row.Open) && !positive(row.Close) {
			rejected++
			continue
		}
		rows = append(rows, row)
	}

	logger.L().Info().Int("rows", len(rows)).Int("rejected", rejected).Msg("rows normalized")
	return rows
}

// parseCurrency parses unscaled integer text and applies the two implied
// decimal digits. Empty or non-numeric input yields NULL.
func parseCurrency(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d.Shift(-2), Valid: true}
}

func parseCount(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

func positive(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteHistoryEntry is one row of the quote-history report: a persisted
// quote joined with its instrument name.
type QuoteHistoryEntry struct {
	Date   time.Time
	Name   string
	Open   decimal.NullDecimal
	Close  decimal.NullDecimal
	High   decimal.NullDecimal
	Low    decimal.NullDecimal
	Volume decimal.NullDecimal
}

// DividendEntry is one row of the dividend report: a cash event joined with
// its instrument code and name.
type DividendEntry struct {
	Code  string
	Name  string
	Date  time.Time
	Value decimal.Decimal
	Type  DividendType
}

// QuoteHistoryStats summarizes a quote-history window.
type QuoteHistoryStats struct {
	FirstClose decimal.NullDecimal
	LastClose  decimal.NullDecimal
	Variation  sql.NullFloat64 // percent change between first and last close
	High       decimal.NullDecimal
	Low        decimal.NullDecimal
}

// PortfolioPosition is one carteira holding joined with instrument
// identity and the most recent stored close, when one exists.
type PortfolioPosition struct {
	Code      string
	Name      string
	Type      AssetType
	Sector    string
	Quantity  decimal.Decimal
	AvgPrice  decimal.Decimal
	LastClose decimal.NullDecimal
}

// AllocationPosition is a portfolio holding with its derived money
// figures. Instruments with no stored quotes carry null current figures.
type AllocationPosition struct {
	PortfolioPosition
	Invested     decimal.Decimal
	CurrentValue decimal.NullDecimal
	GainLoss     decimal.NullDecimal
	ReturnPct    sql.NullFloat64 // percent change between average and last close
}

// AllocationSlice is the share of one sector or instrument type in the
// portfolio's current value.
type AllocationSlice struct {
	Label   string
	Value   decimal.Decimal
	Percent float64
}

// AllocationSummary aggregates the allocation report: portfolio totals
// plus the sector and type breakdowns, largest slice first.
type AllocationSummary struct {
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	GainLoss     decimal.Decimal
	ReturnPct    sql.NullFloat64
	BySector     []AllocationSlice
	ByType       []AllocationSlice
}

// SystemSummary reports per-table row counts and the most recent
// ingested quote date.
type SystemSummary struct {
	Assets      int64
	Quotes      int64
	Dividends   int64
	LatestQuote sql.NullTime
}

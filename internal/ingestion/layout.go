package ingestion

import "strings"

// Record is one line of the COTAHIST feed sliced into its 25 named fields.
// All values are kept as trimmed text; numeric coercion happens only in the
// transform step so that a malformed slice never aborts parsing.
type Record struct {
	RecordType         string // TIPREG: "01" marks a quote-detail row
	Date               string // DATA: trading date, YYYYMMDD
	BDICode            string // CODBDI: market-segment code
	Code               string // CODNEG: exchange ticker
	MarketType         string // TPMERC
	Name               string // NOMRES: issuer short name
	Specification      string // ESPECI: paper specification (ON, PN, ...)
	Term               string // PRAZOT: term in days for forward market
	Currency           string // MODREF: reference currency
	Open               string // PREABE: opening price, two implied decimals
	High               string // PREMAX
	Low                string // PREMIN
	Average            string // PREMED
	Close              string // PREULT
	Bid                string // PREOFC: best buy offer
	Ask                string // PREOFV: best sell offer
	TotalTrades        string // TOTNEG
	Quantity           string // QUATOT: total traded quantity
	Volume             string // VOLTOT: financial volume, two implied decimals
	StrikePrice        string // PREEXE
	OptionIndicator    string // INDOPC
	ExpirationDate     string // DATVEN
	QuotationFactor    string // FATCOT
	StrikePoints       string // PTOEXE
	ISIN               string // CODISI
	DistributionNumber string // DISMES
}

// fixedLineWidth is the published COTAHIST line length. Shorter lines are
// not fixed-width records (they are what the delimited fallback is for).
const fixedLineWidth = 245

// colspec is one fixed-width column: rune offsets into the decoded line and
// a setter into Record. The offsets are the published COTAHIST layout
// (positions 0-245).
type colspec struct {
	start, end int
	set        func(*Record, string)
}

var cotahistLayout = []colspec{
	{0, 2, func(r *Record, s string) { r.RecordType = s }},
	{2, 10, func(r *Record, s string) { r.Date = s }},
	{10, 12, func(r *Record, s string) { r.BDICode = s }},
	{12, 24, func(r *Record, s string) { r.Code = s }},
	{24, 27, func(r *Record, s string) { r.MarketType = s }},
	{27, 39, func(r *Record, s string) { r.Name = s }},
	{39, 49, func(r *Record, s string) { r.Specification = s }},
	{49, 52, func(r *Record, s string) { r.Term = s }},
	{52, 56, func(r *Record, s string) { r.Currency = s }},
	{56, 69, func(r *Record, s string) { r.Open = s }},
	{69, 82, func(r *Record, s string) { r.High = s }},
	{82, 95, func(r *Record, s string) { r.Low = s }},
	{95, 108, func(r *Record, s string) { r.Average = s }},
	{108, 121, func(r *Record, s string) { r.Close = s }},
	{121, 134, func(r *Record, s string) { r.Bid = s }},
	{134, 147, func(r *Record, s string) { r.Ask = s }},
	{147, 152, func(r *Record, s string) { r.TotalTrades = s }},
	{152, 170, func(r *Record, s string) { r.Quantity = s }},
	{170, 188, func(r *Record, s string) { r.Volume = s }},
	{188, 201, func(r *Record, s string) { r.StrikePrice = s }},
	{201, 202, func(r *Record, s string) { r.OptionIndicator = s }},
	{202, 210, func(r *Record, s string) { r.ExpirationDate = s }},
	{210, 217, func(r *Record, s string) { r.QuotationFactor = s }},
	{217, 230, func(r *Record, s string) { r.StrikePoints = s }},
	{230, 242, func(r *Record, s string) { r.ISIN = s }},
	{242, 245, func(r *Record, s string) { r.DistributionNumber = s }},
}

// parseFixedLine slices one decoded line at the layout offsets. Slightly
// short lines yield empty trailing fields instead of failing; the filter
// stage rejects structurally useless rows by record type and date.
func parseFixedLine(line string) Record {
	runes := []rune(line)
	var rec Record
	for _, c := range cotahistLayout {
		start, end := c.start, c.end
		if start > len(runes) {
			start = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		c.set(&rec, strings.TrimSpace(string(runes[start:end])))
	}
	return rec
}

// parseDelimitedFields fills a Record from a semicolon-delimited row using
// the same column order as the fixed-width layout. Missing trailing columns
// become empty fields.
func parseDelimitedFields(fields []string) Record {
	var rec Record
	for i, c := range cotahistLayout {
		if i >= len(fields) {
			break
		}
		c.set(&rec, strings.TrimSpace(fields[i]))
	}
	return rec
}

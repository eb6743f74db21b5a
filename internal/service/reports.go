package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/storage"
)

// ReportsService defines the read-side business logic over the ingested
// data: instrument registry, quote history with summary statistics,
// dividend lookups, the portfolio allocation dashboard and the system
// summary.
type ReportsService interface {
	ListAssets(ctx context.Context, assetType, sector string) ([]models.Asset, error)
	QuoteHistory(ctx context.Context, code string, days int) ([]models.QuoteHistoryEntry, models.QuoteHistoryStats, error)
	Dividends(ctx context.Context, code string, year int) ([]models.DividendEntry, error)
	Allocation(ctx context.Context) ([]models.AllocationPosition, models.AllocationSummary, error)
	Summary(ctx context.Context) (models.SystemSummary, error)
}

type reportsService struct {
	repo storage.Repository
}

func NewReportsService(repo storage.Repository) ReportsService {
	return &reportsService{repo: repo}
}

func (s *reportsService) ListAssets(_ context.Context, assetType, sector string) ([]models.Asset, error) {
	return s.repo.ListAssets(assetType, sector)
}

// QuoteHistory returns the window rows (oldest first) together with the
// summary: first/last close, percent variation between them, and the
// period high/low.
func (s *reportsService) QuoteHistory(_ context.Context, code string, days int) ([]models.QuoteHistoryEntry, models.QuoteHistoryStats, error) {
	entries, err := s.repo.QuoteHistory(code, days)
	if err != nil {
		return nil, models.QuoteHistoryStats{}, err
	}
	return entries, summarize(entries), nil
}

func (s *reportsService) Dividends(_ context.Context, code string, year int) ([]models.DividendEntry, error) {
	return s.repo.Dividends(code, year)
}

// Allocation values each portfolio holding at its most recent close and
// aggregates the totals plus the sector and type breakdowns. A holding
// whose instrument has no stored quotes keeps its invested amount but
// contributes nothing to the current-value side.
func (s *reportsService) Allocation(_ context.Context) ([]models.AllocationPosition, models.AllocationSummary, error) {
	holdings, err := s.repo.PortfolioPositions()
	if err != nil {
		return nil, models.AllocationSummary{}, err
	}

	positions := make([]models.AllocationPosition, 0, len(holdings))
	for _, h := range holdings {
		p := models.AllocationPosition{
			PortfolioPosition: h,
			Invested:          h.Quantity.Mul(h.AvgPrice),
		}
		if h.LastClose.Valid {
			current := h.Quantity.Mul(h.LastClose.Decimal)
			p.CurrentValue = decimal.NullDecimal{Decimal: current, Valid: true}
			p.GainLoss = decimal.NullDecimal{Decimal: current.Sub(p.Invested), Valid: true}
			if !h.AvgPrice.IsZero() {
				pct, _ := h.LastClose.Decimal.
					Sub(h.AvgPrice).
					Div(h.AvgPrice).
					Mul(decimal.NewFromInt(100)).
					Round(2).Float64()
				p.ReturnPct = sql.NullFloat64{Float64: pct, Valid: true}
			}
		}
		positions = append(positions, p)
	}

	return positions, aggregateAllocation(positions), nil
}

func (s *reportsService) Summary(_ context.Context) (models.SystemSummary, error) {
	return s.repo.SystemSummary()
}

func aggregateAllocation(positions []models.AllocationPosition) models.AllocationSummary {
	var sum models.AllocationSummary
	bySector := map[string]decimal.Decimal{}
	byType := map[string]decimal.Decimal{}

	for _, p := range positions {
		sum.Invested = sum.Invested.Add(p.Invested)
		if !p.CurrentValue.Valid {
			continue
		}
		v := p.CurrentValue.Decimal
		sum.CurrentValue = sum.CurrentValue.Add(v)
		if p.Sector != "" {
			bySector[p.Sector] = bySector[p.Sector].Add(v)
		}
		if p.Type != "" {
			byType[string(p.Type)] = byType[string(p.Type)].Add(v)
		}
	}

	sum.GainLoss = sum.CurrentValue.Sub(sum.Invested)
	if !sum.Invested.IsZero() {
		pct, _ := sum.GainLoss.
			Div(sum.Invested).
			Mul(decimal.NewFromInt(100)).
			Round(2).Float64()
		sum.ReturnPct = sql.NullFloat64{Float64: pct, Valid: true}
	}
	sum.BySector = allocationSlices(bySector, sum.CurrentValue)
	sum.ByType = allocationSlices(byType, sum.CurrentValue)
	return sum
}

// allocationSlices orders the groups by current value, largest first,
// breaking ties by label to keep the output stable.
func allocationSlices(groups map[string]decimal.Decimal, total decimal.Decimal) []models.AllocationSlice {
	out := make([]models.AllocationSlice, 0, len(groups))
	for label, v := range groups {
		slice := models.AllocationSlice{Label: label, Value: v}
		if !total.IsZero() {
			slice.Percent, _ = v.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		out = append(out, slice)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value.Equal(out[j].Value) {
			return out[i].Label < out[j].Label
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// summarize walks the window once. NULL cells do not participate: the
// first and last close are the first and last non-null closes, and the
// high/low scan skips null maxima/minima.
func summarize(entries []models.QuoteHistoryEntry) models.QuoteHistoryStats {
	var stats models.QuoteHistoryStats

	for _, e := range entries {
		if e.Close.Valid {
			if !stats.FirstClose.Valid {
				stats.FirstClose = e.Close
			}
			stats.LastClose = e.Close
		}
		if e.High.Valid && (!stats.High.Valid || e.High.Decimal.GreaterThan(stats.High.Decimal)) {
			stats.High = e.High
		}
		if e.Low.Valid && (!stats.Low.Valid || e.Low.Decimal.LessThan(stats.Low.Decimal)) {
			stats.Low = e.Low
		}
	}

	if stats.FirstClose.Valid && stats.LastClose.Valid && !stats.FirstClose.Decimal.IsZero() {
		variation := stats.LastClose.Decimal.
			Sub(stats.FirstClose.Decimal).
			Div(stats.FirstClose.Decimal).
			Mul(decimal.NewFromInt(100))
		f, _ := variation.Round(2).Float64()
		stats.Variation = sql.NullFloat64{Float64: f, Valid: true}
	}

	return stats
}

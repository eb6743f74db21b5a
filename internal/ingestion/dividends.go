package ingestion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
)

// DividendSource supplies corporate-action cash events for a run. The quote
// feed does not carry them, so the source is a separate collaborator.
type DividendSource interface {
	Collect(ctx context.Context) ([]models.Dividend, error)
}

// StaticDividendSource serves the fixed seed set. It stands in for a real
// dividend feed, which would slot in behind the same interface.
type StaticDividendSource struct{}

// Collect implements DividendSource.
func (StaticDividendSource) Collect(context.Context) ([]models.Dividend, error) {
	return SeedDividends(), nil
}

// SeedDividends returns the static corporate-action seed set.
//
// There is no public dividend file alongside COTAHIST; until a dedicated
// feed is wired in, ingestion upserts this fixed sample so the dividend
// reports have data to aggregate. Events for codes missing from the
// instrument registry are dropped at persistence time.
func SeedDividends() []models.Dividend {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	val := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []models.Dividend{
		{Code: "HGLG11", Date: day(2024, time.January, 15), Value: val("0.85"), Type: models.DividendTypeYield},
		{Code: "XPML11", Date: day(2024, time.January, 20), Value: val("0.92"), Type: models.DividendTypeYield},
		{Code: "BTLG11", Date: day(2024, time.January, 25), Value: val("0.78"), Type: models.DividendTypeYield},
		{Code: "VISC11", Date: day(2024, time.February, 15), Value: val("0.88"), Type: models.DividendTypeYield},
		{Code: "HGLG11", Date: day(2024, time.February, 15), Value: val("0.87"), Type: models.DividendTypeYield},
		{Code: "PETR4", Date: day(2024, time.March, 15), Value: val("1.25"), Type: models.DividendTypeDividend},
		{Code: "VALE3", Date: day(2024, time.March, 20), Value: val("2.15"), Type: models.DividendTypeDividend},
		{Code: "ITUB4", Date: day(2024, time.March, 25), Value: val("0.45"), Type: models.DividendTypeJCP},
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DividendType is the corporate-action cash event kind.
// Values match the `tipo` column of the `dividendos` table.
type DividendType string

const (
	DividendTypeYield    DividendType = "Rendimento" // FII monthly yield
	DividendTypeDividend DividendType = "Dividendo"  // stock dividend
	DividendTypeJCP      DividendType = "JCP"        // interest on equity
)

// Dividend is one cash event for an instrument, keyed on the exchange code
// until persistence resolves it to an asset id.
// Maps to one row of the `dividendos` table, UNIQUE(id_ativo, data).
type Dividend struct {
	Code  string          // exchange ticker, joined against ativos.codigo
	Date  time.Time       // dividendos.data
	Value decimal.Decimal // dividendos.valor (positive)
	Type  DividendType    // dividendos.tipo
}

package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one instrument's daily price summary for one calendar date.
// Maps to one row of the `cotacoes` table, UNIQUE(id_ativo, data).
//
// Price and volume fields are nullable: the feed encodes currency as
// unscaled integers with two implied decimals and malformed cells become
// SQL NULL rather than zero (zero is a meaningful price rejection signal).
type Quote struct {
	AssetID int64               // cotacoes.id_ativo (FK to ativos.id)
	Date    time.Time           // cotacoes.data (date-only)
	Open    decimal.NullDecimal // cotacoes.preco_abertura
	Close   decimal.NullDecimal // cotacoes.preco_fechamento
	High    decimal.NullDecimal // cotacoes.maximo
	Low     decimal.NullDecimal // cotacoes.minimo
	Trades  sql.NullInt64       // cotacoes.negocios
	Volume  decimal.NullDecimal // cotacoes.volume_financeiro
}

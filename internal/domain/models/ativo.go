package models

// AssetType is the instrument classification derived from the exchange code
// and issuer name. Values match the `tipo` column of the `ativos` table.
type AssetType string

const (
	AssetTypeStock AssetType = "ACAO" // common/preferred share
	AssetTypeFII   AssetType = "FII"  // real-estate investment fund
	AssetTypeETF   AssetType = "ETF"  // exchange-traded index fund
	AssetTypeBDR   AssetType = "BDR"  // foreign depositary receipt
)

// Asset is one tradable instrument from the COTAHIST feed, keyed by its
// exchange code. Maps to one row of the `ativos` table.
//
// Lifecycle: created on first sighting during a sync; Name/Type/Sector are
// overwritten on every subsequent sync; removed only when absent from the
// latest sync AND without any quote history.
type Asset struct {
	ID     int64     // surrogate key (ativos.id); zero until persisted
	Code   string    // exchange ticker (ativos.codigo, unique)
	Name   string    // issuer short name (ativos.nome)
	Type   AssetType // classification (ativos.tipo)
	Sector string    // heuristic sector label (ativos.setor)
}

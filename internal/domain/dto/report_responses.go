package dto

// AssetResponse represents one instrument in the JSON structure returned
// by the GET /api/v1/ativos endpoint.
//
// Fields match the API contract and may differ from internal domain models.
type AssetResponse struct {
	Codigo string `json:"codigo" example:"HGLG11"`   // Exchange ticker
	Nome   string `json:"nome" example:"CSHG LOG"`   // Issuer short name
	Tipo   string `json:"tipo" example:"FII"`        // Classification (ACAO, FII, ETF, BDR)
	Setor  string `json:"setor" example:"Logística"` // Heuristic sector label
}

// QuoteResponse is one daily price row of the quote-history report.
// Nullable price cells render as JSON null.
type QuoteResponse struct {
	Data             string   `json:"data" example:"2024-01-02"`
	PrecoAbertura    *float64 `json:"preco_abertura" example:"37.50"`
	PrecoFechamento  *float64 `json:"preco_fechamento" example:"38.00"`
	Maximo           *float64 `json:"maximo" example:"38.20"`
	Minimo           *float64 `json:"minimo" example:"37.00"`
	VolumeFinanceiro *float64 `json:"volume_financeiro" example:"9500000.00"`
}

// QuoteHistoryResponse is the JSON structure returned by the
// GET /api/v1/cotacoes/:codigo endpoint: the period rows plus summary
// statistics over the window.
type QuoteHistoryResponse struct {
	Codigo   string          `json:"codigo" example:"PETR4"`
	Nome     string          `json:"nome" example:"PETROBRAS"`
	Dias     int             `json:"dias" example:"30"` // Requested window in days
	Cotacoes []QuoteResponse `json:"cotacoes"`
	Resumo   QuoteStats      `json:"resumo"`
}

// QuoteStats summarizes a quote-history window.
type QuoteStats struct {
	PrimeiroFechamento *float64 `json:"primeiro_fechamento" example:"37.80"`
	UltimoFechamento   *float64 `json:"ultimo_fechamento" example:"38.00"`
	VariacaoPercentual *float64 `json:"variacao_percentual" example:"0.53"`
	Maxima             *float64 `json:"maxima" example:"38.50"`
	Minima             *float64 `json:"minima" example:"37.00"`
}

// DividendResponse is one cash event of the dividend report returned by
// the GET /api/v1/dividendos endpoint.
type DividendResponse struct {
	Codigo string  `json:"codigo" example:"HGLG11"`
	Nome   string  `json:"nome" example:"CSHG LOG"`
	Data   string  `json:"data" example:"2024-01-15"`
	Valor  float64 `json:"valor" example:"0.85"`
	Tipo   string  `json:"tipo" example:"Rendimento"`
}

// AllocationPositionResponse is one holding of the allocation report.
// Current-value cells are null for instruments with no stored quotes.
type AllocationPositionResponse struct {
	Codigo           string   `json:"codigo" example:"HGLG11"`
	Nome             string   `json:"nome" example:"CSHG LOG"`
	Tipo             string   `json:"tipo" example:"FII"`
	Setor            string   `json:"setor" example:"Logística"`
	Quantidade       float64  `json:"quantidade" example:"100"`
	PrecoMedio       float64  `json:"preco_medio" example:"155.00"`
	ValorInvestido   float64  `json:"valor_investido" example:"15500.00"`
	PrecoAtual       *float64 `json:"preco_atual" example:"162.00"`
	ValorAtual       *float64 `json:"valor_atual" example:"16200.00"`
	GanhoPerda       *float64 `json:"ganho_perda" example:"700.00"`
	RentabilidadePct *float64 `json:"rentabilidade_pct" example:"4.52"`
}

// AllocationSliceResponse is one sector or type share of the portfolio's
// current value.
type AllocationSliceResponse struct {
	Nome       string  `json:"nome" example:"Logística"`
	ValorAtual float64 `json:"valor_atual" example:"16200.00"`
	Percentual float64 `json:"percentual" example:"61.4"`
}

// AllocationSummaryResponse aggregates the allocation report.
type AllocationSummaryResponse struct {
	ValorInvestido   float64                   `json:"valor_investido" example:"25500.00"`
	ValorAtual       float64                   `json:"valor_atual" example:"26400.00"`
	GanhoPerda       float64                   `json:"ganho_perda" example:"900.00"`
	RentabilidadePct *float64                  `json:"rentabilidade_pct" example:"3.53"`
	PorSetor         []AllocationSliceResponse `json:"por_setor"`
	PorTipo          []AllocationSliceResponse `json:"por_tipo"`
}

// AllocationResponse is the JSON structure returned by the
// GET /api/v1/carteira endpoint: each position valued at the most recent
// close plus the portfolio rollup.
type AllocationResponse struct {
	Posicoes []AllocationPositionResponse `json:"posicoes"`
	Resumo   AllocationSummaryResponse    `json:"resumo"`
}

// SystemSummaryResponse is the JSON structure returned by the
// GET /api/v1/resumo endpoint: table row counts plus the most recent
// ingested quote date (null before the first ingestion).
type SystemSummaryResponse struct {
	Ativos        int64   `json:"ativos" example:"420"`
	Cotacoes      int64   `json:"cotacoes" example:"12600"`
	Dividendos    int64   `json:"dividendos" example:"35"`
	UltimaCotacao *string `json:"ultima_cotacao" example:"2024-01-02"`
}

package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/dto"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/middleware"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/service"
)

// defaultHistoryDays is the quote-history window when dias is omitted.
const defaultHistoryDays = 30

// Handler provides the HTTP handlers of the reporting API.
//
// Responsibilities:
//   - Validate incoming query and path parameters
//   - Call the reports service
//   - Translate service results into response DTOs
type Handler struct {
	svc service.ReportsService
}

// NewHandler constructs a Handler around the reports service.
func NewHandler(svc service.ReportsService) *Handler {
	return &Handler{svc: svc}
}

// ListAssets handles GET /api/v1/ativos requests.
//
// ListAssets godoc
// @Summary      List classified instruments
// @Description  Returns the instrument registry, optionally filtered by type and sector
// @Tags         ativos
// @Produce      json
// @Param        tipo   query     string  false  "Instrument type"  example(FII)
// @Param        setor  query     string  false  "Sector label"     example(Logística)
// @Success      200    {array}   dto.AssetResponse       "Success"
// @Failure      500    {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/ativos [get]
func (h *Handler) ListAssets(c *gin.Context) {
	assetType := strings.ToUpper(strings.TrimSpace(c.Query("tipo")))
	sector := strings.TrimSpace(c.Query("setor"))

	assets, err := h.svc.ListAssets(c.Request.Context(), assetType, sector)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list instruments", err)
		return
	}

	resp := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, dto.AssetResponse{
			Codigo: a.Code,
			Nome:   a.Name,
			Tipo:   string(a.Type),
			Setor:  a.Sector,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// QuoteHistory handles GET /api/v1/cotacoes/:codigo requests.
//
// QuoteHistory godoc
// @Summary      Quote history for an instrument
// @Description  Returns the last N days of quotes plus summary statistics
// @Tags         cotacoes
// @Produce      json
// @Param        codigo  path      string  true   "Exchange ticker"         example(PETR4)
// @Param        dias    query     int     false  "Window in days (1-365)"  example(30)
// @Success      200     {object}  dto.QuoteHistoryResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse         "Not Found"
// @Failure      500     {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/cotacoes/{codigo} [get]
func (h *Handler) QuoteHistory(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("codigo")))
	if code == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "codigo is required", nil)
		return
	}

	days := defaultHistoryDays
	if s := c.Query("dias"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 365 {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid dias parameter, expected 1-365", err)
			return
		}
		days = parsed
	}

	entries, stats, err := h.svc.QuoteHistory(c.Request.Context(), code, days)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch quote history", err)
		return
	}
	if len(entries) == 0 {
		middleware.AbortWithError(c, http.StatusNotFound, "no quotes found", nil)
		return
	}

	quotes := make([]dto.QuoteResponse, 0, len(entries))
	for _, e := range entries {
		quotes = append(quotes, dto.QuoteResponse{
			Data:             e.Date.Format("2006-01-02"),
			PrecoAbertura:    decimalPtr(e.Open),
			PrecoFechamento:  decimalPtr(e.Close),
			Maximo:           decimalPtr(e.High),
			Minimo:           decimalPtr(e.Low),
			VolumeFinanceiro: decimalPtr(e.Volume),
		})
	}

	c.JSON(http.StatusOK, dto.QuoteHistoryResponse{
		Codigo:   code,
		Nome:     entries[0].Name,
		Dias:     days,
		Cotacoes: quotes,
		Resumo: dto.QuoteStats{
			PrimeiroFechamento: decimalPtr(stats.FirstClose),
			UltimoFechamento:   decimalPtr(stats.LastClose),
			VariacaoPercentual: floatPtr(stats.Variation),
			Maxima:             decimalPtr(stats.High),
			Minima:             decimalPtr(stats.Low),
		},
	})
}

// Dividends handles GET /api/v1/dividendos requests.
//
// Dividends godoc
// @Summary      List dividend events
// @Description  Returns cash events, optionally filtered by instrument and calendar year
// @Tags         dividendos
// @Produce      json
// @Param        codigo  query     string  false  "Exchange ticker"  example(HGLG11)
// @Param        ano     query     int     false  "Calendar year"    example(2024)
// @Success      200     {array}   dto.DividendResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/dividendos [get]
func (h *Handler) Dividends(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("codigo")))

	year := 0
	if s := c.Query("ano"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1900 || parsed > 2200 {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid ano parameter, expected a calendar year", err)
			return
		}
		year = parsed
	}

	entries, err := h.svc.Dividends(c.Request.Context(), code, year)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list dividends", err)
		return
	}

	resp := make([]dto.DividendResponse, 0, len(entries))
	for _, e := range entries {
		value, _ := e.Value.Float64()
		resp = append(resp, dto.DividendResponse{
			Codigo: e.Code,
			Nome:   e.Name,
			Data:   e.Date.Format("2006-01-02"),
			Valor:  value,
			Tipo:   string(e.Type),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Allocation handles GET /api/v1/carteira requests.
//
// Allocation godoc
// @Summary      Portfolio allocation dashboard
// @Description  Returns each portfolio position valued at the most recent close, with totals and sector/type breakdowns
// @Tags         carteira
// @Produce      json
// @Success      200  {object}  dto.AllocationResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse       "Not Found"
// @Failure      500  {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/carteira [get]
func (h *Handler) Allocation(c *gin.Context) {
	positions, summary, err := h.svc.Allocation(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build allocation report", err)
		return
	}
	if len(positions) == 0 {
		middleware.AbortWithError(c, http.StatusNotFound, "portfolio is empty", nil)
		return
	}

	posicoes := make([]dto.AllocationPositionResponse, 0, len(positions))
	for _, p := range positions {
		qty, _ := p.Quantity.Float64()
		avg, _ := p.AvgPrice.Float64()
		invested, _ := p.Invested.Float64()
		posicoes = append(posicoes, dto.AllocationPositionResponse{
			Codigo:           p.Code,
			Nome:             p.Name,
			Tipo:             string(p.Type),
			Setor:            p.Sector,
			Quantidade:       qty,
			PrecoMedio:       avg,
			ValorInvestido:   invested,
			PrecoAtual:       decimalPtr(p.LastClose),
			ValorAtual:       decimalPtr(p.CurrentValue),
			GanhoPerda:       decimalPtr(p.GainLoss),
			RentabilidadePct: floatPtr(p.ReturnPct),
		})
	}

	invested, _ := summary.Invested.Float64()
	current, _ := summary.CurrentValue.Float64()
	gain, _ := summary.GainLoss.Float64()
	c.JSON(http.StatusOK, dto.AllocationResponse{
		Posicoes: posicoes,
		Resumo: dto.AllocationSummaryResponse{
			ValorInvestido:   invested,
			ValorAtual:       current,
			GanhoPerda:       gain,
			RentabilidadePct: floatPtr(summary.ReturnPct),
			PorSetor:         sliceResponses(summary.BySector),
			PorTipo:          sliceResponses(summary.ByType),
		},
	})
}

// Summary handles GET /api/v1/resumo requests.
//
// Summary godoc
// @Summary      System summary
// @Description  Returns row counts per table and the most recent ingested quote date
// @Tags         resumo
// @Produce      json
// @Success      200  {object}  dto.SystemSummaryResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse          "Internal Error"
// @Router       /api/v1/resumo [get]
func (h *Handler) Summary(c *gin.Context) {
	s, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build system summary", err)
		return
	}

	resp := dto.SystemSummaryResponse{
		Ativos:     s.Assets,
		Cotacoes:   s.Quotes,
		Dividendos: s.Dividends,
	}
	if s.LatestQuote.Valid {
		d := s.LatestQuote.Time.Format("2006-01-02")
		resp.UltimaCotacao = &d
	}
	c.JSON(http.StatusOK, resp)
}

func sliceResponses(slices []models.AllocationSlice) []dto.AllocationSliceResponse {
	out := make([]dto.AllocationSliceResponse, 0, len(slices))
	for _, s := range slices {
		v, _ := s.Value.Float64()
		out = append(out, dto.AllocationSliceResponse{Nome: s.Label, ValorAtual: v, Percentual: s.Percent})
	}
	return out
}

func decimalPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

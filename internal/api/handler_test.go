package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/dto"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/service"
)

type mockReportsService struct {
	assets     []models.Asset
	history    []models.QuoteHistoryEntry
	stats      models.QuoteHistoryStats
	divs       []models.DividendEntry
	positions  []models.AllocationPosition
	allocation models.AllocationSummary
	summary    models.SystemSummary
	err        error

	gotCode string
	gotDays int
}

func (m *mockReportsService) ListAssets(_ context.Context, assetType, sector string) ([]models.Asset, error) {
	return m.assets, m.err
}

func (m *mockReportsService) QuoteHistory(_ context.Context, code string, days int) ([]models.QuoteHistoryEntry, models.QuoteHistoryStats, error) {
	m.gotCode, m.gotDays = code, days
	return m.history, m.stats, m.err
}

func (m *mockReportsService) Dividends(_ context.Context, code string, year int) ([]models.DividendEntry, error) {
	return m.divs, m.err
}

func (m *mockReportsService) Allocation(_ context.Context) ([]models.AllocationPosition, models.AllocationSummary, error) {
	return m.positions, m.allocation, m.err
}

func (m *mockReportsService) Summary(_ context.Context) (models.SystemSummary, error) {
	return m.summary, m.err
}

var _ service.ReportsService = (*mockReportsService)(nil)

func setupRouterWithMock(s service.ReportsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/ativos", h.ListAssets)
	v1.GET("/cotacoes/:codigo", h.QuoteHistory)
	v1.GET("/dividendos", h.Dividends)
	v1.GET("/carteira", h.Allocation)
	v1.GET("/resumo", h.Summary)
	return r
}

func dec(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nf(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}

func TestListAssets(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockReportsService
		query  string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name: "success",
			svc: &mockReportsService{assets: []models.Asset{
				{Code: "HGLG11", Name: "CSHG LOG", Type: models.AssetTypeFII, Sector: "Logística"},
			}},
			query:  "/api/v1/ativos?tipo=fii",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out []dto.AssetResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 1 || out[0].Codigo != "HGLG11" || out[0].Tipo != "FII" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "empty registry",
			svc:    &mockReportsService{},
			query:  "/api/v1/ativos",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out []dto.AssetResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 0 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "internal error",
			svc:    &mockReportsService{err: errors.New("db down")},
			query:  "/api/v1/ativos",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestQuoteHistory(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2024-01-02")
	history := []models.QuoteHistoryEntry{{
		Date:  d,
		Name:  "PETROBRAS",
		Open:  dec("37.50"),
		Close: dec("38.00"),
		High:  dec("38.20"),
		Low:   dec("37.00"),
	}}

	cases := []struct {
		name   string
		svc    *mockReportsService
		query  string
		status int
		assert func(t *testing.T, svc *mockReportsService, body []byte)
	}{
		{
			name:   "success with default window",
			svc:    &mockReportsService{history: history, stats: models.QuoteHistoryStats{FirstClose: dec("38.00"), LastClose: dec("38.00")}},
			query:  "/api/v1/cotacoes/petr4",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockReportsService, body []byte) {
				if svc.gotCode != "PETR4" || svc.gotDays != defaultHistoryDays {
					t.Fatalf("service got %s/%d, want PETR4/%d", svc.gotCode, svc.gotDays, defaultHistoryDays)
				}
				var out dto.QuoteHistoryResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Codigo != "PETR4" || out.Nome != "PETROBRAS" || len(out.Cotacoes) != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
				if out.Cotacoes[0].PrecoFechamento == nil || *out.Cotacoes[0].PrecoFechamento != 38.0 {
					t.Fatalf("unexpected close: %+v", out.Cotacoes[0])
				}
			},
		},
		{
			name:   "explicit window",
			svc:    &mockReportsService{history: history},
			query:  "/api/v1/cotacoes/PETR4?dias=90",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockReportsService, _ []byte) {
				if svc.gotDays != 90 {
					t.Fatalf("service got dias=%d, want 90", svc.gotDays)
				}
			},
		},
		{
			name:   "invalid dias",
			svc:    &mockReportsService{},
			query:  "/api/v1/cotacoes/PETR4?dias=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "dias out of range",
			svc:    &mockReportsService{},
			query:  "/api/v1/cotacoes/PETR4?dias=9999",
			status: http.StatusBadRequest,
		},
		{
			name:   "not found",
			svc:    &mockReportsService{},
			query:  "/api/v1/cotacoes/XXXX3",
			status: http.StatusNotFound,
		},
		{
			name:   "internal error",
			svc:    &mockReportsService{err: errors.New("db down")},
			query:  "/api/v1/cotacoes/PETR4",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body: %s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestAllocation(t *testing.T) {
	positions := []models.AllocationPosition{
		{
			PortfolioPosition: models.PortfolioPosition{
				Code:      "HGLG11",
				Name:      "CSHG LOG",
				Type:      models.AssetTypeFII,
				Sector:    "Logística",
				Quantity:  decimal.RequireFromString("100"),
				AvgPrice:  decimal.RequireFromString("155"),
				LastClose: dec("162"),
			},
			Invested:     decimal.RequireFromString("15500"),
			CurrentValue: dec("16200"),
			GainLoss:     dec("700"),
			ReturnPct:    nf(4.52),
		},
		{
			// No quote history: the current-value cells render as null.
			PortfolioPosition: models.PortfolioPosition{
				Code:     "NOVO11",
				Name:     "NOVO FII",
				Type:     models.AssetTypeFII,
				Sector:   "Fundo de Fundos",
				Quantity: decimal.RequireFromString("10"),
				AvgPrice: decimal.RequireFromString("10"),
			},
			Invested: decimal.RequireFromString("100"),
		},
	}
	allocation := models.AllocationSummary{
		Invested:     decimal.RequireFromString("15600"),
		CurrentValue: decimal.RequireFromString("16200"),
		GainLoss:     decimal.RequireFromString("600"),
		ReturnPct:    nf(3.85),
		BySector: []models.AllocationSlice{
			{Label: "Logística", Value: decimal.RequireFromString("16200"), Percent: 100},
		},
		ByType: []models.AllocationSlice{
			{Label: "FII", Value: decimal.RequireFromString("16200"), Percent: 100},
		},
	}

	cases := []struct {
		name   string
		svc    *mockReportsService
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "success",
			svc:    &mockReportsService{positions: positions, allocation: allocation},
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.AllocationResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out.Posicoes) != 2 {
					t.Fatalf("posicoes = %d, want 2", len(out.Posicoes))
				}
				first := out.Posicoes[0]
				if first.Codigo != "HGLG11" || first.ValorInvestido != 15500 {
					t.Fatalf("unexpected position: %+v", first)
				}
				if first.ValorAtual == nil || *first.ValorAtual != 16200 {
					t.Fatalf("unexpected current value: %+v", first)
				}
				if out.Posicoes[1].ValorAtual != nil || out.Posicoes[1].RentabilidadePct != nil {
					t.Fatalf("position without quotes should carry nulls: %+v", out.Posicoes[1])
				}
				if out.Resumo.ValorInvestido != 15600 || out.Resumo.GanhoPerda != 600 {
					t.Fatalf("unexpected rollup: %+v", out.Resumo)
				}
				if len(out.Resumo.PorSetor) != 1 || out.Resumo.PorSetor[0].Nome != "Logística" {
					t.Fatalf("unexpected sector breakdown: %+v", out.Resumo.PorSetor)
				}
			},
		},
		{
			name:   "empty portfolio",
			svc:    &mockReportsService{},
			status: http.StatusNotFound,
		},
		{
			name:   "internal error",
			svc:    &mockReportsService{err: errors.New("db down")},
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/carteira", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body: %s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestSummary(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2024-01-02")

	cases := []struct {
		name   string
		svc    *mockReportsService
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name: "success",
			svc: &mockReportsService{summary: models.SystemSummary{
				Assets:      420,
				Quotes:      12600,
				Dividends:   35,
				LatestQuote: sql.NullTime{Time: d, Valid: true},
			}},
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.SystemSummaryResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Ativos != 420 || out.Cotacoes != 12600 || out.Dividendos != 35 {
					t.Fatalf("unexpected counts: %+v", out)
				}
				if out.UltimaCotacao == nil || *out.UltimaCotacao != "2024-01-02" {
					t.Fatalf("unexpected latest date: %+v", out)
				}
			},
		},
		{
			name:   "no quotes yet",
			svc:    &mockReportsService{},
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.SystemSummaryResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.UltimaCotacao != nil {
					t.Fatalf("expected null latest date, got %+v", out)
				}
			},
		},
		{
			name:   "internal error",
			svc:    &mockReportsService{err: errors.New("db down")},
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resumo", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestDividends(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2024-01-15")
	divs := []models.DividendEntry{{
		Code:  "HGLG11",
		Name:  "CSHG LOG",
		Date:  d,
		Value: decimal.RequireFromString("0.85"),
		Type:  models.DividendTypeYield,
	}}

	cases := []struct {
		name   string
		svc    *mockReportsService
		query  string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "success",
			svc:    &mockReportsService{divs: divs},
			query:  "/api/v1/dividendos?codigo=hglg11&ano=2024",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out []dto.DividendResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 1 || out[0].Codigo != "HGLG11" || out[0].Valor != 0.85 || out[0].Tipo != "Rendimento" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "invalid year",
			svc:    &mockReportsService{},
			query:  "/api/v1/dividendos?ano=banana",
			status: http.StatusBadRequest,
		},
		{
			name:   "internal error",
			svc:    &mockReportsService{err: errors.New("db down")},
			query:  "/api/v1/dividendos",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

package classifier

import (
	"testing"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
)

func TestClassify_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		code       string
		issuer     string
		wantType   models.AssetType
		wantSector string
	}{
		{"fii logistics", "HGLG11", "RENDA LOGISTICA FII", models.AssetTypeFII, "Logística"},
		{"fii shopping", "XPML11", "XP MALLS", models.AssetTypeFII, "Shoppings"},
		{"fii corporate", "PVBI11", "VBI PRIME LAJES", models.AssetTypeFII, "Corporativo"},
		{"fii credit", "KNCR11", "KINEA CRI RENDIMENTOS", models.AssetTypeFII, "Papel e Renda"},
		{"fii unknown sector", "ZZZZ11", "FUNDO GENERICO", models.AssetTypeFII, "Outros"},
		{"bdr 39", "AAPL39", "APPLE INC", models.AssetTypeBDR, "Internacional"},
		{"bdr 35", "MSFT35", "MICROSOFT", models.AssetTypeBDR, "Internacional"},
		{"etf prefix beats fii suffix", "BOVA11", "ISHARES BOVA", models.AssetTypeETF, "Índices"},
		{"etf by name", "XYZW11", "TRend ETF ouro", models.AssetTypeETF, "Índices"},
		{"stock oil and gas", "PETR4", "PETROBRAS", models.AssetTypeStock, "Petróleo e Gás"},
		{"stock mining", "VALE3", "VALE", models.AssetTypeStock, "Mineração e Siderurgia"},
		{"stock banking lowercase", "ITUB4", "itau unibanco", models.AssetTypeStock, "Bancos"},
		{"stock telecom", "VIVT3", "TELEFONICA BRASIL", models.AssetTypeStock, "Telecomunicações"},
		{"stock pulp and paper", "SUZB3", "SUZANO S.A.", models.AssetTypeStock, "Papel e Celulose"},
		{"stock unknown", "XXXX3", "ACME CORP", models.AssetTypeStock, "Outros"},
		{"empty inputs", "", "", models.AssetTypeStock, "Outros"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotSector := Classify(tc.code, tc.issuer)
			if gotType != tc.wantType || gotSector != tc.wantSector {
				t.Fatalf("Classify(%q, %q) = (%s, %s), want (%s, %s)",
					tc.code, tc.issuer, gotType, gotSector, tc.wantType, tc.wantSector)
			}
		})
	}
}

// The rule order is part of the contract: suffix "11" alone must not win
// over an explicit ETF marker, and BDR suffixes must not shadow FII codes.
func TestClassify_RuleOrder(t *testing.T) {
	if tp, _ := Classify("SMAL11", "SMALL CAP FUNDO DE INDICE"); tp != models.AssetTypeETF {
		t.Fatalf("SMAL11 classified as %s, want ETF", tp)
	}
	if tp, _ := Classify("HGLG11", "CSHG LOGISTICA"); tp != models.AssetTypeFII {
		t.Fatalf("HGLG11 classified as %s, want FII", tp)
	}
}

// Package classifier assigns instrument type and sector labels from code
// suffix and issuer-name keyword heuristics.
//
// Classification is a pure, deterministic function: an ordered rule list is
// evaluated top-down and the first match wins. It never fails; anything the
// rules cannot place is a plain stock in the "Outros" sector.
package classifier

import (
	"strings"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/domain/models"
)

const defaultSector = "Outros"

// sectorRule maps a keyword list to a sector label. Keywords are matched as
// case-insensitive substrings of the issuer name; accented and unaccented
// variants are listed separately because the feed is inconsistent about
// diacritics.
type sectorRule struct {
	sector   string
	keywords []string
}

// fiiSectors labels real-estate funds by the property class in their name.
var fiiSectors = []sectorRule{
	{"Shoppings", []string{"SHOPPING", "MALL", "VAREJO"}},
	{"Logística", []string{"LOGISTIC", "LOGÍSTIC", "GALPAO", "GALPÃO"}},
	{"Corporativo", []string{"CORPORATIVO", "LAJES", "ESCRITORIO", "ESCRITÓRIO"}},
	{"Residencial", []string{"RESIDENCIAL", "HABITACIONAL"}},
	{"Saúde", []string{"HOSPITAL", "SAUDE", "SAÚDE", "CLINICA", "CLÍNICA"}},
	{"Hotelaria", []string{"HOTEL", "HOTELARIA"}},
	{"Agronegócio", []string{"AGRO", "AGRICOLA", "AGRÍCOLA"}},
	{"Papel e Renda", []string{"PAPEL", "CRI", "CREDITO", "CRÉDITO"}},
}

// stockSectors labels common shares by issuer-name keywords, including a few
// well-known issuer names the generic keywords would miss.
var stockSectors = []sectorRule{
	{"Petróleo e Gás", []string{"PETRO", "OLEO", "GAS", "COMBUSTIVEL"}},
	{"Bancos", []string{"BANCO", "BRADESCO", "ITAU", "SANTANDER", "FINANC"}},
	{"Mineração e Siderurgia", []string{"VALE", "MINERA", "SIDERUR", "METAL", "ACO", "AÇO"}},
	{"Energia Elétrica", []string{"ELETRIC", "ENERGIA", "ENERG", "CEMIG", "COPEL"}},
	{"Telecomunicações", []string{"TELEFON", "TELECOM", "TIM", "VIVO", "OI"}},
	{"Construção Civil", []string{"CONSTRUC", "CIVIL", "MRV", "CYRELA", "GAFISA"}},
	{"Varejo", []string{"VAREJO", "MAGALU", "VIA", "AMERICANAS", "LOJAS"}},
	{"Alimentos e Bebidas", []string{"ALIMENT", "BEBIDA", "BRF", "AMBEV", "JBS"}},
	{"Saúde", []string{"SAUDE", "HOSPITAL", "MEDIC", "QUALICORP"}},
	{"Papel e Celulose", []string{"PAPEL", "CELULOSE", "SUZANO", "KLABIN"}},
	{"Seguros", []string{"SEGUR", "PORTO", "SUL AMERICA"}},
	{"Transporte", []string{"TRANSPORT", "LOGISTIC", "RUMO", "AZUL"}},
}

// etfPrefixes are index-fund families whose codes end in "11" like FIIs do,
// so the ETF rule must run before the FII suffix rule.
var etfPrefixes = []string{"BOVA", "SMAL", "IVVB"}

// rule is one (predicate, type, sector) entry of the classification table.
// sector receives the upper-cased issuer name.
type rule struct {
	matches func(code, nameUpper string) bool
	class   models.AssetType
	sector  func(nameUpper string) string
}

func fixedSector(s string) func(string) string {
	return func(string) string { return s }
}

func keywordSector(rules []sectorRule) func(string) string {
	return func(nameUpper string) string {
		for _, r := range rules {
			for _, kw := range r.keywords {
				if strings.Contains(nameUpper, kw) {
					return r.sector
				}
			}
		}
		return defaultSector
	}
}

// rules is evaluated in priority order; the final entry always matches.
var rules = []rule{
	{
		matches: func(code, nameUpper string) bool {
			if strings.Contains(nameUpper, "ETF") {
				return true
			}
			for _, p := range etfPrefixes {
				if strings.HasPrefix(code, p) {
					return true
				}
			}
			return false
		},
		class:  models.AssetTypeETF,
		sector: fixedSector("Índices"),
	},
	{
		matches: func(code, _ string) bool { return strings.HasSuffix(code, "11") },
		class:   models.AssetTypeFII,
		sector:  keywordSector(fiiSectors),
	},
	{
		matches: func(code, _ string) bool {
			return strings.HasSuffix(code, "39") || strings.HasSuffix(code, "35")
		},
		class:  models.AssetTypeBDR,
		sector: fixedSector("Internacional"),
	},
	{
		matches: func(_, _ string) bool { return true },
		class:   models.AssetTypeStock,
		sector:  keywordSector(stockSectors),
	},
}

// Classify returns the instrument type and sector for an exchange code and
// issuer name. It is case-insensitive on the name and never fails.
func Classify(code, name string) (models.AssetType, string) {
	nameUpper := strings.ToUpper(name)
	for _, r := range rules {
		if r.matches(code, nameUpper) {
			return r.class, r.sector(nameUpper)
		}
	}
	// unreachable: the last rule is a catch-all
	return models.AssetTypeStock, defaultSector
}

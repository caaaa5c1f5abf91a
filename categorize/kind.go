// Package categorize assigns movement kinds, coarse labels, persisted
// categories and account types from free-text descriptions.
package categorize

import (
	"strings"

	"github.com/finantrack/cartola/extractor/common"
)

type kindRule struct {
	kind     common.MovementKind
	keywords []string
}

type labelRule struct {
	label    string
	keywords []string
}

// Order matters, the first rule with a matching keyword wins.
var kindRules = []kindRule{
	{common.KindTransferReceived, []string{"TEF DE", "TRANSFERENCIA DE"}},
	{common.KindTransferSent, []string{"TEF A", "TRANSFERENCIA A"}},
	{common.KindWebPurchase, []string{"COMPRA WEB"}},
	{common.KindStorePurchase, []string{"COMPRA NACIONAL"}},
	{common.KindAutomaticPayment, []string{"PAGO AUTOMATICO", "PAGO DEUDA"}},
}

var labelRules = []labelRule{
	{"COMIDA_RAPIDA", []string{"MCDONALDS"}},
	{"DELIVERY", []string{"PEDIDOSYA"}},
	{"SUSCRIPCIONES", []string{"GOOGLE PLAY", "YOUTUBE"}},
	{"TRANSPORTE", []string{"PASAJE", "TRANSPORTE"}},
	{"JUEGOS", []string{"RIOT GAMES", "GAMECLUB"}},
	{"CUIDADO_PERSONAL", []string{"BEAUTY", "BODY SHO"}},
	{"INGRESO", []string{"TEF DE", "TRANSFERENCIA DE"}},
	{"TRANSFERENCIA", []string{"TEF A", "TRANSFERENCIA A"}},
	{"COMPRA_ONLINE", []string{"COMPRA WEB"}},
	{"COMPRA_PRESENCIAL", []string{"COMPRA NACIONAL"}},
}

// ClassifyKind returns the movement kind for description, KindOther when no
// keyword matches.
func ClassifyKind(description string) common.MovementKind {
	upper := FoldAccents(strings.ToUpper(description))
	for _, rule := range kindRules {
		if containsAny(upper, rule.keywords) {
			return rule.kind
		}
	}
	return common.KindOther
}

// ClassifyLabel returns the coarse category label for description, or ""
// when none applies.
func ClassifyLabel(description string) string {
	upper := FoldAccents(strings.ToUpper(description))
	for _, rule := range labelRules {
		if containsAny(upper, rule.keywords) {
			return rule.label
		}
	}
	return ""
}

// IsIncomeKind reports whether kind normally adds money to the account.
func IsIncomeKind(kind common.MovementKind) bool {
	return kind == common.KindTransferReceived
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

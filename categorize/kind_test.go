package categorize

import (
	"testing"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/stretchr/testify/assert"
)

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		description string
		expected    common.MovementKind
	}{
		{"TEF DE MARIA LOPEZ", common.KindTransferReceived},
		{"TRANSFERENCIA DE JUAN PEREZ", common.KindTransferReceived},
		{"TEF A PEDRO SOTO", common.KindTransferSent},
		{"TRANSFERENCIA A CUENTA AHORRO", common.KindTransferSent},
		{"COMPRA WEB NETFLIX.COM", common.KindWebPurchase},
		{"compra nacional lider", common.KindStorePurchase},
		{"PAGO AUTOMÁTICO ENEL", common.KindAutomaticPayment},
		{"PAGO DEUDA TARJETA", common.KindAutomaticPayment},
		{"GIRO CAJERO AUTOMATICO", common.KindOther},
		{"", common.KindOther},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ClassifyKind(test.description), test.description)
	}
}

func TestClassifyKind_FirstRuleWins(t *testing.T) {
	// received transfer keywords are checked before web purchase
	assert.Equal(t, common.KindTransferReceived, ClassifyKind("TEF DE COMPRA WEB"))
}

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"COMPRA WEB MCDONALDS PROVIDENCIA", "COMIDA_RAPIDA"},
		{"COMPRA WEB PEDIDOSYA", "DELIVERY"},
		{"COMPRA WEB GOOGLE PLAY", "SUSCRIPCIONES"},
		{"PASAJE QR METRO", "TRANSPORTE"},
		{"COMPRA WEB RIOT GAMES", "JUEGOS"},
		{"COMPRA NACIONAL THE BODY SHOP", "CUIDADO_PERSONAL"},
		{"TEF DE MARIA LOPEZ", "INGRESO"},
		{"TEF A PEDRO SOTO", "TRANSFERENCIA"},
		{"COMPRA WEB NETFLIX.COM", "COMPRA_ONLINE"},
		{"COMPRA NACIONAL LIDER", "COMPRA_PRESENCIAL"},
		{"GIRO CAJERO", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ClassifyLabel(test.description), test.description)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, desc := range []string{"COMPRA WEB NETFLIX.COM", "TEF DE MARIA", "OTRA COSA"} {
		assert.Equal(t, ClassifyKind(desc), ClassifyKind(desc))
		assert.Equal(t, ClassifyLabel(desc), ClassifyLabel(desc))
	}
}

package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAccountTypes = []AccountType{
	{ID: 1, Name: "CuentaRUT"},
	{ID: 2, Name: "Cuenta Vista"},
	{ID: 3, Name: "Cuenta Corriente"},
	{ID: 4, Name: "Cuenta de Ahorro"},
	{ID: 5, Name: "Tarjeta de Crédito"},
	{ID: 6, Name: "Otros"},
}

func TestInferAccountType(t *testing.T) {
	tests := []struct {
		title    string
		expected int64
	}{
		{"CARTOLA CUENTARUT N° 21737273", 1},
		{"CARTOLA CUENTA VISTA N° 5550001", 2},
		{"Cartola Cuenta Corriente Número 001-22", 3},
		{"CARTOLA CUENTA AHORRO N° 44", 4},
		{"CARTOLA CRÉDITO N° 9", 5},
		{"CARTOLA CHEQUERA ELECTRONICA N° 998877", 6},
		{"CARTOLA N° 12", 6},
	}

	for _, test := range tests {
		got, ok := InferAccountType(test.title, testAccountTypes, "Otros")
		assert.True(t, ok, test.title)
		assert.Equal(t, test.expected, got.ID, test.title)
	}
}

func TestInferAccountType_NoFallback(t *testing.T) {
	_, ok := InferAccountType("CARTOLA DESCONOCIDA N° 1", testAccountTypes[:2], "Otros")
	assert.False(t, ok)
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Credito Debito Ahorro Nunoa", FoldAccents("Crédito Débito Ahorro Ñuñoa"))
}

package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"12.345.678-5", true},
		{"12345678-5", true},
		{"123456785", true},
		{"12.345.678-4", false},
		{"11.111.111-1", true},
		{"10.000.013-k", true},
		{"", false},
		{"abc", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Valid(test.value), test.value)
	}
}

func TestCheckDigit(t *testing.T) {
	assert.Equal(t, "5", CheckDigit("12345678"))
	assert.Equal(t, "K", CheckDigit("10000013"))
	assert.Equal(t, "0", CheckDigit("14"))
}

func TestFormat(t *testing.T) {
	formatted, err := Format("123456785")
	require.NoError(t, err)
	assert.Equal(t, "12.345.678-5", formatted)

	formatted, err = Format("9.876.543-3")
	require.NoError(t, err)
	assert.Equal(t, "9.876.543-3", formatted)

	_, err = Format("x")
	assert.ErrorIs(t, err, ErrMalformed)
}

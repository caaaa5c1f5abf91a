// Package rut handles the Chilean national identification number.
package rut

import (
	"errors"
	"strconv"
	"strings"
)

var ErrMalformed = errors.New("malformed RUT")

// Normalize strips dots, dashes and spaces and uppercases the check digit,
// returning body and check digit.
func Normalize(value string) (string, string, error) {
	clean := strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.ToUpper(strings.TrimSpace(value)))
	if len(clean) < 2 {
		return "", "", ErrMalformed
	}
	body, dv := clean[:len(clean)-1], clean[len(clean)-1:]
	if _, err := strconv.Atoi(body); err != nil {
		return "", "", ErrMalformed
	}
	if dv != "K" && (dv < "0" || dv > "9") {
		return "", "", ErrMalformed
	}
	return body, dv, nil
}

// CheckDigit computes the modulo 11 verifier for body.
func CheckDigit(body string) string {
	sum, factor := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(dv)
	}
}

// Valid reports whether value carries a correct check digit.
func Valid(value string) bool {
	body, dv, err := Normalize(value)
	if err != nil {
		return false
	}
	return CheckDigit(body) == dv
}

// Format renders value as 12.345.678-5.
func Format(value string) (string, error) {
	body, dv, err := Normalize(value)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, r := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "-" + dv, nil
}

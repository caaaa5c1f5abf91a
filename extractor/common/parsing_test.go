package common

import (
	"testing"
	"time"
)

func TestParseAmount_Thousands(t *testing.T) {
	result := ParseAmount("$1.234.567,89")
	if result.String() != "1234567.89" {
		t.Errorf("Expected '1234567.89', got '%s'", result.String())
	}
}

func TestParseAmount_WithSpaces(t *testing.T) {
	result := ParseAmount("$ 20.000")
	if result.String() != "20000" {
		t.Errorf("Expected '20000', got '%s'", result.String())
	}
}

func TestParseAmount_Negative(t *testing.T) {
	result := ParseAmount("-6.500")
	if result.String() != "-6500" {
		t.Errorf("Expected '-6500', got '%s'", result.String())
	}
}

func TestParseAmount_EmptyString(t *testing.T) {
	result := ParseAmount("")
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestParseAmount_NoNumbers(t *testing.T) {
	result := ParseAmount("ABC")
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestParseStatementDate_Full(t *testing.T) {
	result, err := ParseStatementDate("15/11/2024", 1999, time.UTC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Year() != 2024 || result.Month() != time.November || result.Day() != 15 {
		t.Errorf("Expected 2024-11-15, got %s", result.Format("2006-01-02"))
	}
}

func TestParseStatementDate_AbbreviatedUsesReferenceYear(t *testing.T) {
	result, err := ParseStatementDate("02/Feb", 2024, time.UTC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Year() != 2024 || result.Month() != time.February || result.Day() != 2 {
		t.Errorf("Expected 2024-02-02, got %s", result.Format("2006-01-02"))
	}
}

func TestParseStatementDate_SpanishMonths(t *testing.T) {
	cases := map[string]time.Month{
		"01/Ene": time.January,
		"01/abr": time.April,
		"01/AGO": time.August,
		"01/Dic": time.December,
	}
	for text, month := range cases {
		result, err := ParseStatementDate(text, 2024, time.UTC)
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", text, err)
		}
		if result.Month() != month {
			t.Errorf("%s: expected %s, got %s", text, month, result.Month())
		}
	}
}

func TestParseStatementDate_Invalid(t *testing.T) {
	for _, text := range []string{"invalid", "31/Feb", "12/Xyz", "32/01/2024"} {
		if _, err := ParseStatementDate(text, 2024, time.UTC); err == nil {
			t.Errorf("Expected error for %q, got nil", text)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	result, err := ParseDateTime("15/03/2024   10:30", time.UTC)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Hour() != 10 || result.Minute() != 30 || result.Day() != 15 {
		t.Errorf("Unexpected timestamp %s", result)
	}
}

func TestCollapseSpaces(t *testing.T) {
	result := CollapseSpaces("  TEF DE\n\tMARIA   LOPEZ ")
	if result != "TEF DE MARIA LOPEZ" {
		t.Errorf("Expected 'TEF DE MARIA LOPEZ', got '%s'", result)
	}
}

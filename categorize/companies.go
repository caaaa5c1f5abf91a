package categorize

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"
)

//go:embed companies.json
var companiesJSON []byte

// Company is a curated merchant with the category its movements belong to.
type Company struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

var (
	companiesOnce sync.Once
	companies     []Company
)

// Companies returns the curated table in match order. The slice must not be
// modified.
func Companies() []Company {
	companiesOnce.Do(func() {
		if err := json.Unmarshal(companiesJSON, &companies); err != nil {
			panic("categorize: invalid companies.json: " + err.Error())
		}
	})
	return companies
}

// MatchCompanies returns, in table order, every company with a keyword
// contained in the cleaned description. Keywords are also tried with spaces
// removed on both sides to tolerate concatenated merchant names.
func MatchCompanies(cleaned string) []Company {
	upper := strings.ToUpper(cleaned)
	compact := strings.ReplaceAll(upper, " ", "")

	var matches []Company
	for _, company := range Companies() {
		for _, kw := range company.Keywords {
			if strings.Contains(upper, kw) || strings.Contains(compact, strings.ReplaceAll(kw, " ", "")) {
				matches = append(matches, company)
				break
			}
		}
	}
	return matches
}

package cartola

import (
	"regexp"

	"github.com/finantrack/cartola/config"
	"github.com/spf13/viper"
)

const configPrefix = "statement.CARTOLA."

type patterns struct {
	SegmentHeaders []string
	SkipTokens     []string
	Title          []*regexp.Regexp
	Client         []*regexp.Regexp
	ClientName     []*regexp.Regexp
	ClientRUT      []*regexp.Regexp
	ClientDateTime []*regexp.Regexp
	Number         []*regexp.Regexp
	IssueDate      []*regexp.Regexp
	Period         []*regexp.Regexp
	Balances       []*regexp.Regexp
	Totals         []*regexp.Regexp
	LineItem       *regexp.Regexp
}

// source is the global viper when it carries the cartola patterns, otherwise
// the embedded defaults.
func source() *viper.Viper {
	if viper.IsSet(configPrefix + "patterns.line_item") {
		return viper.GetViper()
	}
	return config.Defaults()
}

func loadPatterns() patterns {
	src := source()
	return patterns{
		SegmentHeaders: src.GetStringSlice(configPrefix + "segment_headers"),
		SkipTokens:     src.GetStringSlice(configPrefix + "skip_tokens"),
		Title:          compileList(src, "title"),
		Client:         compileList(src, "client"),
		ClientName:     compileList(src, "client_name"),
		ClientRUT:      compileList(src, "client_rut"),
		ClientDateTime: compileList(src, "client_datetime"),
		Number:         compileList(src, "number"),
		IssueDate:      compileList(src, "issue_date"),
		Period:         compileList(src, "period"),
		Balances:       compileList(src, "balances"),
		Totals:         compileList(src, "totals"),
		LineItem:       regexp.MustCompile(src.GetString(configPrefix + "patterns.line_item")),
	}
}

func compileList(src *viper.Viper, key string) []*regexp.Regexp {
	sources := src.GetStringSlice(configPrefix + "patterns." + key)
	compiled := make([]*regexp.Regexp, 0, len(sources))
	for _, s := range sources {
		compiled = append(compiled, regexp.MustCompile(s))
	}
	return compiled
}

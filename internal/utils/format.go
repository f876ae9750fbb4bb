package utils

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatInt formats n with Brazilian thousands separators, e.g. 12345 -> "12.345"
func FormatInt(n int) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%d", n)
}

// SortStringsPTBR sorts values in place using Brazilian Portuguese collation,
// so accented names sort next to their unaccented neighbours
func SortStringsPTBR(values []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(values)
}

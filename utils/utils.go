package utils

import (
	"math"
	"strings"
	"unicode/utf8"
)

// RoundCents rounds an amount to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// TruncateRunes cuts s to at most n characters.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// ParseKeyValueList parses "a=x,b=y" into a map. Malformed pairs are skipped.
func ParseKeyValueList(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

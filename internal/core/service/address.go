package service

import (
	"regexp"
	"strings"
)

// stateAbbreviations is the fixed set of 50 U.S. state codes recognised by
// extractState.
var stateAbbreviations = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
}

var zipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// extractState scans the comma/space-separated tokens of a free-text address
// in reverse order and returns the first two-letter token that is a U.S.
// state code, upper-cased. Absence of a match is a normal outcome and yields
// the empty string.
//
// Known limitation: a two-letter word that happens to be a state code (e.g.
// the "OR" in "Trail OR Bust Rd") is picked up if it sits after the real
// state. The heuristic is kept as-is deliberately.
func extractState(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}

	tokens := strings.FieldsFunc(address, func(r rune) bool {
		return r == ',' || r == ' '
	})
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := strings.ToUpper(strings.TrimSpace(tokens[i]))
		if len(tok) == 2 && stateAbbreviations[tok] {
			return tok
		}
	}
	return ""
}

// extractCity returns the conventional "city" position of an address: the
// second-to-last comma-separated segment. Without commas it falls back to
// space tokens, joining everything but the last two (assumed state + ZIP).
func extractCity(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}

	parts := strings.Split(address, ",")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[len(parts)-2])
	}

	spaceParts := strings.Split(address, " ")
	if len(spaceParts) > 2 {
		return strings.Join(spaceParts[:len(spaceParts)-2], " ")
	}
	return ""
}

// extractZip returns the first 5-digit ZIP (optionally ZIP+4) found in the
// address, or the empty string.
func extractZip(address string) string {
	if strings.TrimSpace(address) == "" {
		return ""
	}
	return zipPattern.FindString(address)
}

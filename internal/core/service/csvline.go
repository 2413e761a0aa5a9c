package service

import "strings"

// parseCSVFields splits one delimited line into fields in a single
// left-to-right scan. A quote character toggles the in-quotes flag; a comma
// only separates fields while outside quotes. The trailing field is always
// emitted, even when empty.
//
// Note this is not standard CSV escaping: a literal "" inside a quoted field
// is two toggles and disappears from the output. The import format relies on
// this exact behavior.
func parseCSVFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}

	fields = append(fields, current.String())
	return fields
}

// escapeCSVField wraps a field in double quotes (doubling internal quotes)
// iff it contains a comma, quote, or newline.
func escapeCSVField(field string) string {
	if field == "" {
		return ""
	}
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

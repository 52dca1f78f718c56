package record

import (
	"strings"
	"unicode"
)

// ColumnName resolves the external key of a field.
// A non-empty override is returned verbatim; otherwise the field name is converted with SnakeCase.
func ColumnName(name, override string) string {
	if override != "" {
		return override
	}
	return SnakeCase(name)
}

// SnakeCase converts a camelCase identifier by replacing every uppercase rune with '_' followed by its lowercase form.
// Leading and consecutive capitals are not special-cased: "ID" becomes "_i_d".
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

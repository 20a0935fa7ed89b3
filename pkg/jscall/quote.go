package jscall

import (
	"fmt"
	"strings"
)

// Quote returns s as a single-quoted JavaScript string literal.
// Strings without quotes, backslashes or control characters come out verbatim between the quotes.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for i, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		case '<':
			// Keep "</script>" from closing an enclosing script element.
			if strings.HasPrefix(s[i:], "</") {
				sb.WriteString(`\x3C`)
			} else {
				sb.WriteRune(r)
			}
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

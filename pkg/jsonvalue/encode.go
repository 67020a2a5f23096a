package jsonvalue

import (
	"strings"
	"unicode/utf8"
)

const indentUnit = "  "

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	writeCompact(&sb, v)
	return []byte(sb.String()), nil
}

// String returns v as compact JSON text.
func (v Value) String() string {
	var sb strings.Builder
	writeCompact(&sb, v)
	return sb.String()
}

// Indent returns v as JSON text indented by two spaces per level. Empty
// arrays and objects print as [] and {}.
func (v Value) Indent() string {
	var sb strings.Builder
	writeIndent(&sb, v, 0)
	return sb.String()
}

func writeCompact(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCompact(sb, e)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeString(sb, m.Key)
			sb.WriteByte(':')
			writeCompact(sb, m.Value)
		}
		sb.WriteByte('}')
	default:
		writeScalar(sb, v)
	}
}

func writeIndent(sb *strings.Builder, v Value, depth int) {
	switch v.kind {
	case KindArray:
		if len(v.elems) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(strings.Repeat(indentUnit, depth+1))
			writeIndent(sb, e, depth+1)
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i, m := range v.members {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(strings.Repeat(indentUnit, depth+1))
			writeString(sb, m.Key)
			sb.WriteString(": ")
			writeIndent(sb, m.Value, depth+1)
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteByte('}')
	default:
		writeScalar(sb, v)
	}
}

func writeScalar(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindBool:
		if v.boolean {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.text)
	case KindString:
		writeString(sb, v.text)
	default:
		sb.WriteString("null")
	}
}

const hexDigits = "0123456789abcdef"

// writeString quotes s the way JSON.stringify does: only the quote, the
// backslash and control characters are escaped.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				sb.WriteString(`\"`)
			case '\\':
				sb.WriteString(`\\`)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				if c < 0x20 {
					sb.WriteString(`\u00`)
					sb.WriteByte(hexDigits[c>>4])
					sb.WriteByte(hexDigits[c&0xF])
				} else {
					sb.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(`�`)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}

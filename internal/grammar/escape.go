// Package grammar implements the percent-encoding primitives shared by the
// URL model and the query parameter collection.
package grammar

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/wilsonrivera/anxiousant/internal/constraints"
)

// maxChunkLen bounds the length of a single encoding pass. Longer inputs are
// split at rune boundaries and encoded chunk by chunk.
const maxChunkLen = 65519

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every character of s outside the unreserved set
// (letters, digits, "-_.~"). The percent sign itself is always encoded.
// When spaceAsPlus is set, encoded spaces are emitted as "+".
func Escape[T constraints.Byteseq](s T, spaceAsPlus bool) T {
	if len(s) == 0 {
		return s
	}
	if len(s) <= maxChunkLen {
		return T(escapeChunk(string(s), spaceAsPlus))
	}

	var sb strings.Builder
	sb.Grow(len(s) * 2)
	rest := string(s)
	for len(rest) > 0 {
		n := chunkLen(rest)
		sb.WriteString(escapeChunk(rest[:n], spaceAsPlus))
		rest = rest[n:]
	}
	return T(sb.String())
}

// chunkLen returns the largest prefix length <= maxChunkLen that does not
// split a multi-byte rune. A run of continuation bytes with no rune start in
// reach is invalid UTF-8, so cutting at the maximum cannot split a real rune;
// the fallback keeps the chunk loop advancing.
func chunkLen(s string) int {
	if len(s) <= maxChunkLen {
		return len(s)
	}
	n := maxChunkLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		return maxChunkLen
	}
	return n
}

func escapeChunk(s string, spaceAsPlus bool) string {
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case IsUnreservedChar(c):
			b.WriteByte(c)
		case c == ' ' && spaceAsPlus:
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

// Unescape reverses percent-encoding in s, leaving malformed triplets intact.
// When plusAsSpace is set, literal "+" is rewritten to a space first.
func Unescape[T constraints.Byteseq](s T, plusAsSpace bool) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		case s[i] == '+' && plusAsSpace:
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// EscapeIllegal escapes characters that are illegal outside percent-encoding
// while keeping already-encoded "%XX" triplets untouched, so re-serializing a
// valid component never double-encodes it.
func EscapeIllegal[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	// Without a percent sign there is nothing to preserve.
	if !strings.Contains(string(s), "%") {
		return T(escapeIllegalPlain(string(s)))
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case c == '%' || IsIllegalChar(c):
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		default:
			b.WriteByte(c)
		}
	}
	return T(b.Bytes())
}

func escapeIllegalPlain(s string) string {
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if IsIllegalChar(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks the ALPHA / DIGIT rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

var unreservedChars = map[byte]bool{
	'-': true,
	'_': true,
	'.': true,
	'~': true,
}

// IsUnreservedChar checks the RFC 3986 unreserved rule.
func IsUnreservedChar(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

var reservedChars = map[byte]bool{
	// gen-delims
	':': true, '/': true, '?': true, '#': true, '[': true, ']': true, '@': true,
	// sub-delims
	'!': true, '$': true, '&': true, '\'': true, '(': true, ')': true,
	'*': true, '+': true, ',': true, ';': true, '=': true,
}

// IsReservedChar checks the RFC 3986 reserved rule.
func IsReservedChar(c byte) bool { return reservedChars[c] }

// IsIllegalChar reports whether c may only appear percent-encoded inside a
// path or query component.
func IsIllegalChar(c byte) bool {
	return !IsUnreservedChar(c) && !IsReservedChar(c) && c != '%'
}

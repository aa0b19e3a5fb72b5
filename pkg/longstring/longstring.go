package longstring

import (
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
)

const marker = '='

// Literal is an encoded long-bracket literal.
type Literal struct {
	// Level is the number of '=' in the delimiters.
	Level int
	// Text is the literal including its delimiters.
	Text string
}

// Open returns the opening delimiter of the given level.
func Open(level int) string {
	return "[" + strings.Repeat(string(marker), level) + "["
}

// Close returns the closing delimiter of the given level.
func Close(level int) string {
	return "]" + strings.Repeat(string(marker), level) + "]"
}

// Scan returns the length of the longest marker run enclosed by a pair of
// matching brackets ("[==[" or "]==]") in content, or -1 when there is
// none. Occurrences may overlap: in "]]=]" both "]]" and "]=]" count.
func Scan(content string) int {
	longest := -1
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '[' && c != ']' {
			continue
		}
		j := i + 1
		for j < len(content) && content[j] == marker {
			j++
		}
		if j < len(content) && content[j] == c && j-i-1 > longest {
			longest = j - i - 1
		}
	}
	return longest
}

// NormalizeNewlines applies the line-ending rule of a Lua long string:
// "\r\n", "\n\r" and a lone "\r" each read as a single "\n". Content
// that has been normalized reads back from a literal byte for byte.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\n' && c != '\r' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('\n')
		if i+1 < len(s) && (s[i+1] == '\n' || s[i+1] == '\r') && s[i+1] != c {
			i++
		}
	}
	return b.String()
}

// Encode wraps content in the lowest-level long bracket that no substring of
// content can terminate. Encode is total: every finite input has a level.
// Line endings other than "\n" come back as "\n" once decoded.
func Encode(content string) Literal {
	content = NormalizeNewlines(content)
	level := Scan(content) + 1

	var b strings.Builder
	b.Grow(len(content) + 2*level + 6)
	b.WriteString(Open(level))
	b.WriteByte('\n')
	b.WriteString(content)
	b.WriteByte('\n')
	b.WriteString(Close(level))

	return Literal{Level: level, Text: b.String()}
}

// Decode reads a long-bracket literal of the given level the way a Lua
// scanner would, except that the newline following the opening bracket is
// kept. Line endings in the payload are normalized as Lua does. The literal must span all of text: a closing bracket of the same
// level before the end means the payload escaped its delimiters.
func Decode(text string, level int) (string, error) {
	if level < 0 {
		return "", errors.Newf(errors.ErrLiteralDecode, "negative level %d", level)
	}
	open, close := Open(level), Close(level)

	if !strings.HasPrefix(text, open) {
		return "", errors.Newf(errors.ErrLiteralDecode, "literal does not start with %s", open)
	}
	body := text[len(open):]

	end := strings.Index(body, close)
	if end < 0 {
		return "", errors.Newf(errors.ErrLiteralDecode, "unterminated literal, missing %s", close)
	}
	if end+len(close) != len(body) {
		return "", errors.Newf(errors.ErrLiteralDecode,
			"literal closed early at offset %d by %s", len(open)+end, close).
			WithDetail("trailing", len(body)-end-len(close))
	}
	return NormalizeNewlines(body[:end]), nil
}

// Unwrap decodes l and strips the framing newlines added by Encode.
func (l Literal) Unwrap() (string, error) {
	inner, err := Decode(l.Text, l.Level)
	if err != nil {
		return "", err
	}
	if len(inner) < 2 || inner[0] != '\n' || inner[len(inner)-1] != '\n' {
		return "", errors.New(errors.ErrLiteralDecode, "literal is missing its framing newlines")
	}
	return inner[1 : len(inner)-1], nil
}

// String returns the literal text.
func (l Literal) String() string {
	return l.Text
}

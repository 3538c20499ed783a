package config

import (
	"fmt"
	"strings"

	"github.com/arloliu/sigframe/errs"
)

// Delimiter is one of the supported message delimiter characters.
type Delimiter uint8

const (
	// DelimiterNewline splits messages on '\n'.
	DelimiterNewline Delimiter = iota
	// DelimiterNull splits messages on '\x00'.
	DelimiterNull
	// DelimiterSpace splits messages on ' '.
	DelimiterSpace
	// DelimiterSemicolon splits messages on ';'.
	DelimiterSemicolon
	// DelimiterTab splits messages on '\t'.
	DelimiterTab

	numDelimiters
)

var delimiterInfo = [numDelimiters]struct {
	name string
	char rune
}{
	DelimiterNewline:   {"newline", '\n'},
	DelimiterNull:      {"null", 0},
	DelimiterSpace:     {"space", ' '},
	DelimiterSemicolon: {"semicolon", ';'},
	DelimiterTab:       {"tab", '\t'},
}

// Rune returns the delimiter character.
func (d Delimiter) Rune() rune {
	if d < numDelimiters {
		return delimiterInfo[d].char
	}

	return '\n'
}

// String returns the delimiter name, e.g. "newline".
func (d Delimiter) String() string {
	if d < numDelimiters {
		return delimiterInfo[d].name
	}

	return "unknown"
}

// valid reports whether d is one of the defined delimiters.
func (d Delimiter) valid() bool {
	return d < numDelimiters
}

// ParseDelimiter accepts a delimiter name ("newline", "null", "space",
// "semicolon", "tab"), its escaped form ("\n", "\0", "\t"), or the literal
// character itself.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "newline", "new line", "lf", `\n`, "\n":
		return DelimiterNewline, nil
	case "null", "nul", `\0`, "\x00":
		return DelimiterNull, nil
	case "space", " ":
		return DelimiterSpace, nil
	case "semicolon", ";":
		return DelimiterSemicolon, nil
	case "tab", `\t`, "\t":
		return DelimiterTab, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidDelimiter, s)
	}
}

// DelimiterFromRune returns the Delimiter whose character is r.
func DelimiterFromRune(r rune) (Delimiter, error) {
	for d := range numDelimiters {
		if delimiterInfo[d].char == r {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrInvalidDelimiter, r)
}

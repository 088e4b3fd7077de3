package fndatetime

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gomodifier/pkg/cache"
	"github.com/sandrolain/gomodifier/pkg/types"
)

// token is one element of a compiled pattern: either a literal run of text
// (letter == 0) or a field letter repeated count times.
type token struct {
	letter rune
	count  int
	text   string
}

func (t token) isLiteral() bool {
	return t.letter == 0
}

// Pattern is a compiled date/time pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source string
	tokens []token
}

// maxCount is the longest run accepted for each supported letter.
var maxCount = map[rune]int{
	'y': 9, 'u': 9,
	'M': 5, 'L': 5,
	'd': 2, 'D': 3,
	'E': 5, 'a': 1,
	'H': 2, 'k': 2, 'K': 2, 'h': 2,
	'm': 2, 's': 2,
	'S': 9, 'n': 9, 'A': 9,
	'V': 2, 'z': 4,
	'Z': 5, 'X': 3, 'x': 3,
}

// compiledPatterns holds patterns by source text.
var compiledPatterns = cache.New[*Pattern](cache.DefaultCapacity)

// CompilePattern compiles a date/time pattern such as "yyyy-MM-dd'T'HH:mm:ss".
// Results are cached.
func CompilePattern(pattern string) (*Pattern, error) {
	return compiledPatterns.GetOrCreate(pattern, func() (*Pattern, error) {
		return compile(pattern)
	})
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(pattern string) *Pattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic("fndatetime: " + err.Error())
	}
	return p
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

func compile(pattern string) (*Pattern, error) {
	p := &Pattern{source: pattern}
	runes := []rune(pattern)
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			p.tokens = append(p.tokens, token{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			// '' outside quotes is a literal quote
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i += 2
				continue
			}
			j := i + 1
			closed := false
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						literal.WriteRune('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				literal.WriteRune(runes[j])
				j++
			}
			if !closed {
				return nil, patternError(pattern, i, errUnterminatedQuote)
			}
			i = j + 1

		case isASCIILetter(r):
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			count := j - i
			limit, ok := maxCount[r]
			if !ok {
				return nil, patternError(pattern, i, fmt.Errorf("%w %q", errUnknownLetter, r))
			}
			if count > limit {
				return nil, patternError(pattern, i, fmt.Errorf("%w: %q repeated %d times", errTooManyLetters, r, count))
			}
			if r == 'V' && count != 2 {
				return nil, patternError(pattern, i, fmt.Errorf("%w: zone id must be written VV", errTooManyLetters))
			}
			flush()
			p.tokens = append(p.tokens, token{letter: r, count: count})
			i = j

		case strings.ContainsRune("[]{}#", r):
			return nil, patternError(pattern, i, fmt.Errorf("%w %q", errReservedChar, r))

		default:
			literal.WriteRune(r)
			i++
		}
	}
	flush()
	return p, nil
}

func patternError(pattern string, pos int, cause error) *types.Error {
	return types.NewError(types.ErrInvalidDatePattern, fmt.Sprintf("invalid date pattern %q", pattern), pos).WithCause(cause)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isNumeric reports whether the token is parsed as a run of digits.
func (t token) isNumeric() bool {
	switch t.letter {
	case 'y', 'u', 'd', 'D', 'H', 'k', 'K', 'h', 'm', 's', 'S', 'n', 'A':
		return true
	case 'M', 'L':
		return t.count <= 2
	}
	return false
}

// width returns the minimum and maximum digit count accepted when parsing a
// numeric token.
func (t token) width() (lo, hi int) {
	switch t.letter {
	case 'y', 'u':
		if t.count == 2 {
			return 2, 2
		}
		return t.count, 10
	case 'D':
		return t.count, 3
	case 'S':
		return t.count, t.count
	case 'n', 'A':
		return t.count, 9
	}
	if t.count >= 2 {
		return t.count, t.count
	}
	return 1, 2
}

// fixedWidth reports whether the token always consumes the same number of
// digits.
func (t token) fixedWidth() bool {
	lo, hi := t.width()
	return t.isNumeric() && lo == hi
}

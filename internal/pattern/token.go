// Package pattern turns template strings such as
//
//	{prefix} + @materialRef/weapon {base}
//
// into generated text. Component placeholders pick from weighted lists,
// references go through the resolver, and everything else is literal.
package pattern

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/KirkDiggler/realm-content/internal/reference"
)

// DefaultFallback is returned for patterns that produce no text
const DefaultFallback = "Unknown"

// Kind classifies a token
type Kind int

const (
	KindLiteral Kind = iota
	KindComponent
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindReference:
		return "reference"
	default:
		return "literal"
	}
}

// Token is one piece of a pattern, in source order
type Token struct {
	Kind Kind
	Raw  string
	// Key is set for component tokens
	Key string
	// Reference is set for reference tokens
	Reference *reference.Expression
}

// Tokenizer splits patterns into tokens
type Tokenizer struct {
	fallback string
	logger   *slog.Logger
}

// NewTokenizer creates a tokenizer. An empty fallback uses DefaultFallback
// and a nil logger uses slog.Default().
func NewTokenizer(fallback string, logger *slog.Logger) *Tokenizer {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tokenizer{fallback: fallback, logger: logger}
}

// Tokenize splits pattern on whitespace and '+', which only separates and
// yields no token. A blank pattern yields a single fallback literal. A
// segment starting with '@' is never a literal: when it does not parse as a
// reference, a lone "@" included, Tokenize returns the parse_error and the
// whole pattern is rejected.
func (t *Tokenizer) Tokenize(pattern string) ([]Token, error) {
	segments := strings.FieldsFunc(pattern, func(r rune) bool {
		return r == '+' || unicode.IsSpace(r)
	})
	if len(segments) == 0 {
		t.logger.Warn("empty pattern", "fallback", t.fallback)
		return []Token{{Kind: KindLiteral, Raw: t.fallback}}, nil
	}

	tokens := make([]Token, 0, len(segments))
	for _, seg := range segments {
		switch {
		case isComponent(seg):
			tokens = append(tokens, Token{Kind: KindComponent, Raw: seg, Key: seg[1 : len(seg)-1]})
		case strings.HasPrefix(seg, "@"):
			expr, err := reference.ParseAny(seg)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: KindReference, Raw: seg, Reference: expr})
		default:
			tokens = append(tokens, Token{Kind: KindLiteral, Raw: seg})
		}
	}
	return tokens, nil
}

// isComponent reports whether seg is {identifier}
func isComponent(seg string) bool {
	if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return false
	}
	for _, r := range seg[1 : len(seg)-1] {
		if r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

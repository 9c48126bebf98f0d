package reference

import (
	"strings"
	"unicode"
	"unicode/utf8"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

// parser scans one reference. Positions are byte offsets into the untrimmed
// input so errors point at what the author wrote.
type parser struct {
	input  string
	pos    int
	end    int
	offset int
}

func newParser(text string) *parser {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	offset := len(text) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	return &parser{
		input:  text,
		pos:    offset,
		end:    offset + len(trimmed),
		offset: offset,
	}
}

// Parse parses a full reference. It never returns a partial expression: any
// problem is a parse_error carrying the offending text and its position.
func Parse(text string) (*Expression, error) {
	p := newParser(text)
	expr := &Expression{Raw: p.input[p.offset:p.end]}

	if err := p.checkWhitespace(); err != nil {
		return nil, err
	}
	if err := p.expect('@', "reference must start with '@'"); err != nil {
		return nil, err
	}
	if !strings.Contains(p.rest(), ":") {
		return nil, p.errorAt(p.end, "missing ':' before the item name")
	}

	domain, err := p.identifier("domain")
	if err != nil {
		return nil, err
	}
	expr.Domain = domain
	if err := p.expect('/', "expected '/' after the domain"); err != nil {
		return nil, err
	}

	var segments []string
	for {
		seg, err := p.identifier("path segment")
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		if p.match('/') {
			p.advance()
			continue
		}
		if err := p.expect(':', "expected '/' or ':' after a path segment"); err != nil {
			return nil, err
		}
		break
	}
	expr.Category = segments[len(segments)-1]
	if len(segments) > 1 {
		expr.Path = segments[:len(segments)-1]
	}

	if p.match('*') {
		p.advance()
		expr.Wildcard = true
	} else {
		item, err := p.identifier("item name")
		if err != nil {
			return nil, err
		}
		expr.Item = item
	}

	if p.match('[') {
		filters, err := p.filters()
		if err != nil {
			return nil, err
		}
		expr.Filters = filters
	}

	if p.match('?') {
		p.advance()
		expr.Optional = true
	}

	propStart := p.pos
	for p.match('.') {
		p.advance()
		prop, err := p.identifier("property")
		if err != nil {
			return nil, err
		}
		expr.Properties = append(expr.Properties, prop)
	}

	if !p.isEOF() {
		return nil, p.errorAt(p.pos, "unexpected character")
	}
	if expr.Wildcard && len(expr.Properties) > 0 {
		return nil, p.errorAt(propStart, "a wildcard selects many entries and cannot take a property chain")
	}

	return expr, nil
}

// ParseShorthand parses the pattern shorthand @domain[/context][?]
func ParseShorthand(text string) (*Expression, error) {
	p := newParser(text)
	expr := &Expression{Raw: p.input[p.offset:p.end], Shorthand: true}

	if err := p.checkWhitespace(); err != nil {
		return nil, err
	}
	if err := p.expect('@', "reference must start with '@'"); err != nil {
		return nil, err
	}

	domain, err := p.identifier("domain")
	if err != nil {
		return nil, err
	}
	expr.Domain = domain

	if p.match('/') {
		p.advance()
		ctx, err := p.identifier("context")
		if err != nil {
			return nil, err
		}
		expr.Context = ctx
	}
	if p.match('?') {
		p.advance()
		expr.Optional = true
	}
	if !p.isEOF() {
		return nil, p.errorAt(p.pos, "unexpected character")
	}

	return expr, nil
}

// ParseAny parses text as a full reference when it contains ':' and as the
// shorthand form otherwise
func ParseAny(text string) (*Expression, error) {
	if strings.Contains(text, ":") {
		return Parse(text)
	}
	return ParseShorthand(text)
}

func (p *parser) filters() ([]Filter, error) {
	open := p.pos
	p.advance()

	closeAt := strings.IndexByte(p.input[p.pos:p.end], ']')
	if closeAt < 0 {
		return nil, p.errorAt(open, "unterminated filter block")
	}
	body := p.input[p.pos : p.pos+closeAt]
	bodyStart := p.pos
	p.pos += closeAt + 1

	if body == "" {
		return nil, p.errorAt(open, "empty filter block")
	}

	var filters []Filter
	start := 0
	for i := 0; i <= len(body); i++ {
		if i < len(body) && body[i] != '&' && body[i] != ',' {
			continue
		}
		f, err := p.filter(body[start:i], bodyStart+start)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
		start = i + 1
	}
	return filters, nil
}

// filter parses one "path op value" or bare "path" term starting at pos
func (p *parser) filter(term string, pos int) (Filter, error) {
	if term == "" {
		return Filter{}, p.errorAt(pos, "empty filter")
	}

	var f Filter
	prop := term
	// two-character operators first so ">=" is not read as ">"
	for _, op := range []Op{OpGe, OpLe, OpNe, OpEq, OpGt, OpLt} {
		if i := strings.Index(term, string(op)); i >= 0 {
			f.Op = op
			prop = term[:i]
			f.Value = term[i+len(op):]
			if f.Value == "" {
				return Filter{}, p.errorAt(pos+i, "filter value is empty")
			}
			break
		}
	}

	for _, seg := range strings.Split(prop, ".") {
		if !isIdentifier(seg) {
			return Filter{}, p.errorAt(pos, "invalid filter property")
		}
		f.Property = append(f.Property, seg)
	}
	return f, nil
}

func (p *parser) identifier(what string) (string, error) {
	start := p.pos
	for !p.isEOF() && isIdentRune(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return "", p.errorAt(start, "empty "+what)
	}
	return p.input[start:p.pos], nil
}

func (p *parser) checkWhitespace() error {
	for i, r := range p.input[p.offset:p.end] {
		if unicode.IsSpace(r) {
			return p.errorAt(p.offset+i, "whitespace is not allowed inside a reference")
		}
	}
	if p.offset == p.end {
		return p.errorAt(p.offset, "reference is empty")
	}
	return nil
}

func (p *parser) expect(r rune, message string) error {
	if !p.match(r) {
		return p.errorAt(p.pos, message)
	}
	p.advance()
	return nil
}

func (p *parser) rest() string {
	return p.input[p.pos:p.end]
}

func (p *parser) peek() rune {
	if p.isEOF() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:p.end])
	return r
}

func (p *parser) advance() {
	if !p.isEOF() {
		_, size := utf8.DecodeRuneInString(p.input[p.pos:p.end])
		p.pos += size
	}
}

func (p *parser) match(r rune) bool {
	return !p.isEOF() && p.peek() == r
}

func (p *parser) isEOF() bool {
	return p.pos >= p.end
}

// errorAt builds a parse error for the text from pos to the next delimiter
func (p *parser) errorAt(pos int, reason string) error {
	end := pos
	for end < p.end {
		r, size := utf8.DecodeRuneInString(p.input[end:p.end])
		if end > pos && !isIdentRune(r) {
			break
		}
		end += size
	}
	return rcerr.ParseError(p.input, pos, p.input[pos:end], reason)
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentifier(s string) bool {
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}

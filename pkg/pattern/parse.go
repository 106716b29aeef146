package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// Selector is the parsed form of a pattern string.
type Selector interface{ selector() }

// TypeSelector matches nodes whose alias-resolved type is in the
// target set.
type TypeSelector struct {
	Name string
}

// AttributeSelector matches against a derived string property of the
// node. Without a value it is an existence check.
type AttributeSelector struct {
	Name     string
	Op       string
	Value    string
	HasValue bool
}

// PseudoSelector is a :name or :name(argument) block. The argument of
// has/not is itself a full selector, parsed at compile time.
type PseudoSelector struct {
	Name     string
	Argument string
}

// ChildSelector matches nodes satisfying Right whose parent satisfies
// Left.
type ChildSelector struct {
	Left  Selector
	Right Selector
}

// DescendantSelector matches nodes satisfying Right with some strict
// ancestor satisfying Left.
type DescendantSelector struct {
	Left  Selector
	Right Selector
}

// CombinationSelector is a conjunction of simple selector parts.
type CombinationSelector struct {
	Parts []Selector
}

func (TypeSelector) selector()        {}
func (AttributeSelector) selector()   {}
func (PseudoSelector) selector()      {}
func (ChildSelector) selector()       {}
func (DescendantSelector) selector()  {}
func (CombinationSelector) selector() {}

var (
	// ErrEmptyPattern indicates a pattern with no content.
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrBadPattern indicates selector syntax the parser cannot accept.
	ErrBadPattern = errors.New("malformed pattern")
)

// ParseSelector parses a pattern string into a Selector. Callers that
// must never fail on input syntax should use CompilePattern instead,
// which converts any parse failure into a match-nothing predicate.
func ParseSelector(pattern string) (Selector, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return nil, ErrEmptyPattern
	}

	parser := &selectorParser{input: trimmed}

	sel, err := parser.parseSequence()
	if err != nil {
		return nil, err
	}

	if !parser.atEnd() {
		return nil, parser.errorf("unexpected trailing input %q", parser.input[parser.pos:])
	}

	return sel, nil
}

// selectorParser is a left-to-right cursor over the raw pattern string.
type selectorParser struct {
	input string
	pos   int
}

func (p *selectorParser) atEnd() bool { return p.pos >= len(p.input) }

func (p *selectorParser) peek() byte { return p.input[p.pos] }

func (p *selectorParser) advance() byte {
	c := p.input[p.pos]
	p.pos++

	return c
}

func (p *selectorParser) skipSpaces() {
	for !p.atEnd() && (p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\n') {
		p.pos++
	}
}

func (p *selectorParser) errorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: %s (position %d)", ErrBadPattern, detail, p.pos)
}

// parseSequence parses simple selectors joined by whitespace
// (descendant) or '>' (child), left-associative.
func (p *selectorParser) parseSequence() (Selector, error) {
	left, err := p.parseSimple()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpaces()

		if p.atEnd() {
			return left, nil
		}

		if p.peek() == '>' {
			p.advance()
			p.skipSpaces()

			right, rightErr := p.parseSimple()
			if rightErr != nil {
				return nil, rightErr
			}

			left = ChildSelector{Left: left, Right: right}

			continue
		}

		right, rightErr := p.parseSimple()
		if rightErr != nil {
			return nil, rightErr
		}

		left = DescendantSelector{Left: left, Right: right}
	}
}

// parseSimple parses an optional type identifier followed by attribute
// and pseudo blocks, conjoined.
func (p *selectorParser) parseSimple() (Selector, error) {
	var parts []Selector

	if name := p.readIdentifier(); name != "" {
		parts = append(parts, TypeSelector{Name: name})
	}

blocks:
	for !p.atEnd() {
		switch p.peek() {
		case '[':
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}

			parts = append(parts, attr)
		case ':':
			pseudo, err := p.parsePseudo()
			if err != nil {
				return nil, err
			}

			parts = append(parts, pseudo)
		default:
			break blocks
		}
	}

	if len(parts) == 0 {
		return nil, p.errorf("expected a selector")
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return CombinationSelector{Parts: parts}, nil
}

// readIdentifier consumes a run of letters, digits, underscores, and
// hyphens. Returns "" when the cursor is not on an identifier.
func (p *selectorParser) readIdentifier() string {
	start := p.pos

	for !p.atEnd() && isIdentByte(p.peek()) {
		p.pos++
	}

	return p.input[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

// parseAttribute parses "[name]", "[name op value]", or
// "[name op \"value\"]" with the cursor on '['.
func (p *selectorParser) parseAttribute() (Selector, error) {
	p.advance()
	p.skipSpaces()

	name := p.readIdentifier()
	if name == "" {
		return nil, p.errorf("expected attribute name")
	}

	p.skipSpaces()

	if p.atEnd() {
		return nil, p.errorf("unterminated attribute block")
	}

	if p.peek() == ']' {
		p.advance()

		return AttributeSelector{Name: name}, nil
	}

	op, err := p.readAttrOperator()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()

	value, err := p.readAttrValue()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()

	if p.atEnd() || p.peek() != ']' {
		return nil, p.errorf("expected closing bracket")
	}

	p.advance()

	return AttributeSelector{Name: name, Op: op, Value: value, HasValue: true}, nil
}

func (p *selectorParser) readAttrOperator() (string, error) {
	if p.atEnd() {
		return "", p.errorf("expected attribute operator")
	}

	switch c := p.peek(); c {
	case '=':
		p.advance()

		return "=", nil
	case '~', '^', '$', '*':
		p.advance()

		if p.atEnd() || p.peek() != '=' {
			return "", p.errorf("expected '=' after %q", string(c))
		}

		p.advance()

		return string(c) + "=", nil
	default:
		return "", p.errorf("expected attribute operator, found %q", string(c))
	}
}

func (p *selectorParser) readAttrValue() (string, error) {
	if p.atEnd() {
		return "", p.errorf("expected attribute value")
	}

	if c := p.peek(); c == '"' || c == '\'' {
		return p.readQuoted()
	}

	start := p.pos

	for !p.atEnd() {
		c := p.peek()
		if c == ']' || c == ' ' || c == '\t' || c == '\n' {
			break
		}

		p.pos++
	}

	if p.pos == start {
		return "", p.errorf("expected attribute value")
	}

	return p.input[start:p.pos], nil
}

// readQuoted consumes a quoted value with the cursor on the opening
// quote. Backslash escapes the quote character and the backslash
// itself; any other escape is kept verbatim.
func (p *selectorParser) readQuoted() (string, error) {
	quote := p.advance()

	var out strings.Builder

	for !p.atEnd() {
		c := p.advance()

		switch {
		case c == '\\' && !p.atEnd():
			next := p.advance()
			if next != quote && next != '\\' {
				out.WriteByte('\\')
			}

			out.WriteByte(next)
		case c == quote:
			return out.String(), nil
		default:
			out.WriteByte(c)
		}
	}

	return "", p.errorf("unterminated quoted value")
}

// parsePseudo parses ":name" or ":name(argument)" with the cursor on
// ':'. The argument is the balanced-paren substring, not yet parsed.
func (p *selectorParser) parsePseudo() (Selector, error) {
	p.advance()

	name := p.readIdentifier()
	if name == "" {
		return nil, p.errorf("expected pseudo-class name")
	}

	if p.atEnd() || p.peek() != '(' {
		return PseudoSelector{Name: name}, nil
	}

	arg, err := p.readBalancedParens()
	if err != nil {
		return nil, err
	}

	return PseudoSelector{Name: name, Argument: arg}, nil
}

func (p *selectorParser) readBalancedParens() (string, error) {
	p.advance()

	start := p.pos
	depth := 1

	for !p.atEnd() {
		switch p.advance() {
		case '(':
			depth++
		case ')':
			depth--

			if depth == 0 {
				return p.input[start : p.pos-1], nil
			}
		}
	}

	return "", p.errorf("unbalanced parentheses in pseudo-class argument")
}

package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a syntax problem in a model file or expression.
type ParseError struct {
	Line   int // 1-based line number, 0 when parsing a bare expression
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// ParseExpr parses a single Boolean expression.
//
// Grammar (loosest binding first): "<=>", "=>", "|", "&", "!", atoms.
// Atoms are identifiers, parenthesized expressions and the constants
// true/false/1/0. "^" is accepted for exclusive-or at the "|" level.
func ParseExpr(input string) (Expr, error) {
	p := &exprParser{input: input}
	e, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, &ParseError{Reason: fmt.Sprintf("unexpected %q at offset %d", rest(p), p.pos)}
	}
	return e, nil
}

// ParseBNet reads a network in the ".bnet" line format: one
// "target, expression" pair per line, "#" comments, and an optional
// "targets, factors" header. Variables are declared by their target lines,
// in file order; identifiers without a target line become parameters.
func ParseBNet(r io.Reader) (*Network, error) {
	type line struct {
		no     int
		target string
		update string
	}
	var lines []line
	var targets []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	no := 0
	for scanner.Scan() {
		no++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		target, update, found := strings.Cut(text, ",")
		if !found {
			return nil, &ParseError{Line: no, Reason: "expected \"target, expression\""}
		}
		target = strings.TrimSpace(target)
		update = strings.TrimSpace(update)
		if strings.EqualFold(target, "targets") && strings.EqualFold(update, "factors") {
			continue // header line
		}
		lines = append(lines, line{no: no, target: target, update: update})
		targets = append(targets, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	if len(targets) == 0 {
		return nil, &ParseError{Line: no, Reason: "model declares no variables"}
	}

	net, err := NewNetwork(targets)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		expr, err := ParseExpr(l.update)
		if err != nil {
			return nil, &ParseError{Line: l.no, Reason: err.Error()}
		}
		if err := net.SetUpdate(l.target, expr); err != nil {
			return nil, &ParseError{Line: l.no, Reason: err.Error()}
		}
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

type exprParser struct {
	input string
	pos   int
}

func rest(p *exprParser) string {
	r := p.input[p.pos:]
	if len(r) > 10 {
		r = r[:10]
	}
	return r
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) eat(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *exprParser) parseIff() (Expr, error) {
	left, err := p.parseImp()
	if err != nil {
		return nil, err
	}
	for p.eat("<=>") {
		right, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: OpIff, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseImp() (Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.eat("=>") {
		// right associative
		right, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		return Bin{Op: OpImp, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *exprParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.eat("|"):
			right, err := p.parseAnd()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpOr, Left: left, Right: right}
		case p.eat("^"):
			right, err := p.parseAnd()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpXor, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.eat("&") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Bin{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (Expr, error) {
	if p.eat("!") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (Expr, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, &ParseError{Reason: "unexpected end of expression"}
	}
	if p.eat("(") {
		inner, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, &ParseError{Reason: "missing closing parenthesis"}
		}
		return inner, nil
	}
	switch p.input[p.pos] {
	case '0':
		p.pos++
		return Const{Value: false}, nil
	case '1':
		p.pos++
		return Const{Value: true}, nil
	}
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, &ParseError{Reason: fmt.Sprintf("unexpected %q at offset %d", rest(p), p.pos)}
	}
	name := p.input[start:p.pos]
	switch name {
	case "true":
		return Const{Value: true}, nil
	case "false":
		return Const{Value: false}, nil
	}
	if !validName(name) {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid identifier %q", name)}
	}
	return Ident{Name: name}, nil
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

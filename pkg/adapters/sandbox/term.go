package sandbox

import (
	"fmt"
	"strings"
)

// term is a parsed type or expression. Terms are immutable after parsing,
// so snapshots may share them freely.
type term struct {
	op   termOp
	name string // opAtom, opMvar
	l, r *term  // opArrow, opApp
}

type termOp int

const (
	opAtom termOp = iota
	opMvar
	opArrow
	opApp
)

func (t *term) String() string {
	switch t.op {
	case opAtom:
		return t.name
	case opMvar:
		return "?" + t.name
	case opArrow:
		lhs := t.l.String()
		if t.l.op == opArrow {
			lhs = "(" + lhs + ")"
		}
		return lhs + " -> " + t.r.String()
	case opApp:
		rhs := t.r.String()
		if t.r.op == opApp || t.r.op == opArrow {
			rhs = "(" + rhs + ")"
		}
		lhs := t.l.String()
		if t.l.op == opArrow {
			lhs = "(" + lhs + ")"
		}
		return lhs + " " + rhs
	}
	return "?"
}

func (t *term) equal(o *term) bool {
	if t.op != o.op {
		return false
	}
	switch t.op {
	case opAtom, opMvar:
		return t.name == o.name
	default:
		return t.l.equal(o.l) && t.r.equal(o.r)
	}
}

// tokenizer

type token struct {
	kind string // "ident", "?", "->", "(", ")"
	text string
}

func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{kind: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: ")"})
			i++
		case c == '?':
			toks = append(toks, token{kind: "?"})
			i++
		case c == '-' && i+1 < len(input) && input[i+1] == '>':
			toks = append(toks, token{kind: "->"})
			i += 2
		case isIdentChar(c):
			j := i
			for j < len(input) && isIdentChar(input[j]) {
				j++
			}
			toks = append(toks, token{kind: "ident", text: input[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return toks, nil
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parser: arrow is right-associative and binds looser than application.
//
//	term   := app ("->" term)?
//	app    := atom+
//	atom   := ident | "?" ident | "(" term ")"
type parser struct {
	toks []token
	pos  int
}

func parseTerm(input string) (*term, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty expression")
	}
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	t, err := p.arrow()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected %q", p.toks[p.pos].kind)
	}
	return t, nil
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos].kind
}

func (p *parser) arrow() (*term, error) {
	lhs, err := p.app()
	if err != nil {
		return nil, err
	}
	if p.peek() == "->" {
		p.pos++
		rhs, err := p.arrow()
		if err != nil {
			return nil, err
		}
		return &term{op: opArrow, l: lhs, r: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) app() (*term, error) {
	head, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case "ident", "?", "(":
			arg, err := p.atom()
			if err != nil {
				return nil, err
			}
			head = &term{op: opApp, l: head, r: arg}
		default:
			return head, nil
		}
	}
}

func (p *parser) atom() (*term, error) {
	switch p.peek() {
	case "ident":
		t := &term{op: opAtom, name: p.toks[p.pos].text}
		p.pos++
		return t, nil
	case "?":
		p.pos++
		if p.peek() != "ident" {
			return nil, fmt.Errorf("expected metavariable name after '?'")
		}
		t := &term{op: opMvar, name: p.toks[p.pos].text}
		p.pos++
		return t, nil
	case "(":
		p.pos++
		t, err := p.arrow()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing ')'")
		}
		p.pos++
		return t, nil
	case "":
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected %q", p.toks[p.pos].kind)
	}
}

// mustTerm parses a type known at compile time. It is only used for
// seeding the global environment.
func mustTerm(input string) *term {
	t, err := parseTerm(input)
	if err != nil {
		panic(fmt.Sprintf("sandbox: bad seed type %q: %v", input, err))
	}
	return t
}

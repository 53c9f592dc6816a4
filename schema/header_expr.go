// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"
)

// maxMacroDepth bounds nested macro expansion.
const maxMacroDepth = 32

// constExpr evaluates an integer constant expression: literals, enumerators,
// object-like macros, sizeof(type), casts and the C arithmetic, shift and
// bitwise operators with their usual precedence.
func (p *declParser) constExpr() (int64, error) {
	return p.parseTernary()
}

func (p *declParser) parseTernary() (int64, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return 0, err
	}
	if !p.accept("?") {
		return cond, nil
	}
	a, err := p.parseTernary()
	if err != nil {
		return 0, err
	}
	if err := p.expect(":"); err != nil {
		return 0, err
	}
	b, err := p.parseTernary()
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return a, nil
	}
	return b, nil
}

// binaryLevels lists operators from loosest to tightest binding. Shifts are
// two tokens since the scanner splits them.
var binaryLevels = [][]string{
	{"|"},
	{"^"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *declParser) parseBinary(level int) (int64, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	val, err := p.parseBinary(level + 1)
	if err != nil {
		return 0, err
	}
	for {
		op := p.binaryOp(binaryLevels[level])
		if op == "" {
			return val, nil
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return 0, err
		}
		if val, err = applyBinary(op, val, right); err != nil {
			return 0, p.errorf("%v", err)
		}
	}
}

// binaryOp consumes and returns the next operator if it is one of ops.
func (p *declParser) binaryOp(ops []string) string {
	t := p.peek()
	if t.tok == scanner.EOF {
		return ""
	}
	for _, op := range ops {
		if len(op) == 2 {
			if t.text == op[:1] && p.peekAt(1).text == op[1:] {
				p.pos += 2
				return op
			}
			continue
		}
		// && and || are not constant operators here
		if t.text == op && !((op == "&" || op == "|") && p.peekAt(1).text == op) {
			p.pos++
			return op
		}
	}
	return ""
}

func applyBinary(op string, a, b int64) (int64, error) {
	switch op {
	case "|":
		return a | b, nil
	case "^":
		return a ^ b, nil
	case "&":
		return a & b, nil
	case "<<":
		if b < 0 || b > 62 {
			return 0, fmt.Errorf("shift count %d out of range", b)
		}
		return a << uint(b), nil
	case ">>":
		if b < 0 || b > 63 {
			return 0, fmt.Errorf("shift count %d out of range", b)
		}
		return a >> uint(b), nil
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/", "%":
		if b == 0 {
			return 0, errors.New("division by zero in constant expression")
		}
		if op == "/" {
			return a / b, nil
		}
		return a % b, nil
	}
	return 0, fmt.Errorf("unknown operator %s", op)
}

func (p *declParser) parseUnary() (int64, error) {
	switch p.peek().text {
	case "-", "+", "~", "!":
		op := p.next().text
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "-":
			return -v, nil
		case "~":
			return ^v, nil
		case "!":
			if v == 0 {
				return 1, nil
			}
			return 0, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *declParser) parsePrimary() (int64, error) {
	t := p.peek()
	switch {
	case t.text == "(":
		p.next()
		if p.isTypeStart() {
			// Cast: the value is kept as is
			if _, err := p.typeName(); err != nil {
				return 0, err
			}
			if err := p.expect(")"); err != nil {
				return 0, err
			}
			return p.parseUnary()
		}
		v, err := p.parseTernary()
		if err != nil {
			return 0, err
		}
		return v, p.expect(")")

	case t.tok == scanner.Int:
		p.next()
		v, err := strconv.ParseUint(t.text, 0, 64)
		if err != nil || v > math.MaxInt64 {
			return 0, fmt.Errorf("%s: invalid integer constant %s", t.pos, t.text)
		}
		// Integer suffixes scan as a separate identifier
		if s := p.peek(); s.tok == scanner.Ident && strings.Trim(s.text, "uUlL") == "" {
			p.next()
		}
		return int64(v), nil

	case t.tok == scanner.Char:
		p.next()
		if len(t.text) < 3 {
			return 0, fmt.Errorf("%s: invalid character constant %s", t.pos, t.text)
		}
		r, _, _, err := strconv.UnquoteChar(t.text[1:len(t.text)-1], '\'')
		if err != nil {
			return 0, fmt.Errorf("%s: invalid character constant %s", t.pos, t.text)
		}
		return int64(r), nil

	case t.tok == scanner.Ident && t.text == "sizeof":
		p.next()
		if err := p.expect("("); err != nil {
			return 0, err
		}
		ct, err := p.typeName()
		if err != nil {
			return 0, err
		}
		if !ct.complete {
			return 0, p.errorf("sizeof incomplete type %s", ct.name)
		}
		if err := p.expect(")"); err != nil {
			return 0, err
		}
		return int64(ct.size), nil

	case t.tok == scanner.Ident:
		p.next()
		return p.h.constant(t)
	}
	return 0, p.errorf("expected constant expression, got %s", describe(t))
}

// typeName reads a type as written in a cast or sizeof, pointers included.
func (p *declParser) typeName() (*cType, error) {
	ct, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	if p.accept("*") {
		for p.accept("*") || p.qualifier() {
		}
		return pointerType(), nil
	}
	return ct, nil
}

// constant resolves an enumerator or evaluates a macro body.
func (h *header) constant(t token) (int64, error) {
	if v, ok := h.consts[t.text]; ok {
		return v, nil
	}
	body, ok := h.defines[t.text]
	if !ok {
		return 0, fmt.Errorf("%s: undefined constant %s", t.pos, t.text)
	}
	if body == "" {
		return 0, fmt.Errorf("%s: macro %s has no value", t.pos, t.text)
	}
	if h.expanding >= maxMacroDepth {
		return 0, fmt.Errorf("%s: macro %s expands too deeply", t.pos, t.text)
	}

	toks, err := tokenize(body, t.pos.Filename)
	if err != nil {
		return 0, fmt.Errorf("macro %s: %w", t.text, err)
	}
	h.expanding++
	defer func() { h.expanding-- }()

	sub := &declParser{h: h, toks: toks}
	v, err := sub.constExpr()
	if err != nil {
		return 0, fmt.Errorf("macro %s: %w", t.text, err)
	}
	if sub.peek().tok != scanner.EOF {
		return 0, fmt.Errorf("macro %s: unexpected %s", t.text, describe(sub.peek()))
	}
	return v, nil
}

// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/scanner"

	"go.uber.org/zap"
)

// packDirective stands in for a #pragma pack line in declaration text.
const packDirective = "__layout_pack"

// ParseHeader converts the struct or union named root, as declared in a C
// header, into a layout. root may be a struct or union tag or a typedef name.
//
// Members are placed by the natural alignment rules of LP64 targets. packed
// lays every record out without padding; records marked
// __attribute__((packed)) or declared under #pragma pack are packed either
// way. Consecutive bitfields share a container of their declared type until
// one no longer fits. Quoted #include directives are resolved against the
// working directory.
func ParseHeader(r io.Reader, root string, packed bool) (*Struct, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(packed)
	if err := h.load(src, "", "."); err != nil {
		return nil, err
	}
	return h.lookup(root)
}

// ParseHeaderFile is ParseHeader for the header at path. Quoted includes are
// resolved against the directory of the including file.
func ParseHeaderFile(path, root string, packed bool) (*Struct, error) {
	h := newHeader(packed)
	if err := h.loadFile(path); err != nil {
		return nil, err
	}
	return h.lookup(root)
}

// parseHeaderStructs returns every named struct and union defined in the
// header at path, in declaration order. Types that only come from included
// files are left out.
func parseHeaderStructs(src []byte, path string) ([]*Struct, error) {
	h := newHeader(false)
	h.seen[absPath(path)] = true
	if err := h.load(src, path, filepath.Dir(path)); err != nil {
		return nil, err
	}

	structs := make([]*Struct, 0, len(h.top))
	for _, t := range h.top {
		if t.complete {
			structs = append(structs, t.toStruct(t.name))
		}
	}
	if len(structs) == 0 {
		return nil, errors.New("no struct or union definitions found")
	}
	return structs, nil
}

// cType is a C type resolved far enough to lay it out.
type cType struct {
	name  string
	kind  Kind
	size  uint64
	align uint64
	// elems is the element count of an array typedef, 1 otherwise.
	elems    uint64
	fields   []Field
	packed   bool
	complete bool
	// top marks records defined in the file being loaded rather than in an
	// include; listed is set once such a record joins header.top.
	top    bool
	listed bool
}

func (t *cType) toStruct(name string) *Struct {
	return &Struct{
		Name:   name,
		Size:   t.size,
		Packed: t.packed,
		Fields: cloneFields(t.fields),
	}
}

func numericType(k Kind) *cType {
	return &cType{name: k.String(), kind: k, size: k.Width(), align: k.Width(), elems: 1, complete: true}
}

func pointerType() *cType {
	return &cType{name: "pointer", kind: KindUInt64, size: 8, align: 8, elems: 1, complete: true}
}

// headerTypes are the fixed-width and platform names a header may use
// without declaring them.
var headerTypes = map[string]Kind{
	"int8_t":    KindInt8,
	"uint8_t":   KindUInt8,
	"int16_t":   KindInt16,
	"uint16_t":  KindUInt16,
	"int32_t":   KindInt32,
	"uint32_t":  KindUInt32,
	"int64_t":   KindInt64,
	"uint64_t":  KindUInt64,
	"bool":      KindUInt8,
	"size_t":    KindUInt64,
	"ssize_t":   KindInt64,
	"uintptr_t": KindUInt64,
	"intptr_t":  KindInt64,
	"ptrdiff_t": KindInt64,
}

// header accumulates the declarations of one header and its includes.
type header struct {
	packed  bool
	defines map[string]string
	consts  map[string]int64
	tags    map[string]*cType
	types   map[string]*cType
	seen    map[string]bool
	top     []*cType
	// depth is the include nesting of the file being loaded.
	depth int
	// pack is the #pragma pack value in effect, 0 for none.
	pack      uint64
	packStack []uint64
	// expanding counts nested macro evaluations.
	expanding int
}

func newHeader(packed bool) *header {
	return &header{
		packed:  packed,
		defines: make(map[string]string),
		consts:  make(map[string]int64),
		tags:    make(map[string]*cType),
		types:   make(map[string]*cType),
		seen:    make(map[string]bool),
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (h *header) loadFile(path string) error {
	abs := absPath(path)
	if h.seen[abs] {
		return nil
	}
	h.seen[abs] = true

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	return h.load(src, path, filepath.Dir(path))
}

func (h *header) load(src []byte, filename, dir string) error {
	pack := h.pack
	body, err := h.preprocess(string(src), dir)
	if err != nil {
		return err
	}
	toks, err := tokenize(body, filename)
	if err != nil {
		return err
	}
	p := &declParser{h: h, toks: toks, pack: pack}
	return p.file()
}

// preprocess runs the directives of src and returns the remaining
// declaration text. Conditional directives are ignored, so every branch is
// read.
func (h *header) preprocess(src, dir string) (string, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = stripComments(src)
	src = strings.ReplaceAll(src, "\\\n", " ")

	var body strings.Builder
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			body.WriteString(line)
			body.WriteByte('\n')
			continue
		}

		name, rest := splitDirective(trimmed[1:])
		switch name {
		case "include":
			if inc, ok := quotedInclude(rest); ok {
				if err := h.include(inc, dir); err != nil {
					return "", err
				}
			}
		case "define":
			h.define(rest)
		case "undef":
			delete(h.defines, strings.TrimSpace(rest))
		case "pragma":
			text, err := h.pragma(rest)
			if err != nil {
				return "", err
			}
			body.WriteString(text)
		}
		body.WriteByte('\n')
	}
	return body.String(), nil
}

func (h *header) include(name, dir string) error {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		Logger().Debug("skipping include", zap.String("include", name), zap.Error(err))
		return nil
	}
	h.depth++
	defer func() { h.depth-- }()
	return h.loadFile(path)
}

// define records an object-like macro. Function-like macros are skipped.
func (h *header) define(rest string) {
	rest = strings.TrimSpace(rest)
	end := 0
	for end < len(rest) && isIdentByte(rest[end]) {
		end++
	}
	if end == 0 || (end < len(rest) && rest[end] == '(') {
		return
	}
	h.defines[rest[:end]] = strings.TrimSpace(rest[end:])
}

// pragma handles #pragma pack in its push, pop, set and reset forms and
// returns the text that marks the new value for the declaration parser.
func (h *header) pragma(rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "pack") {
		return "", nil
	}
	args := strings.TrimSpace(strings.TrimPrefix(rest, "pack"))
	args = strings.TrimSuffix(strings.TrimPrefix(args, "("), ")")

	var parts []string
	for _, a := range strings.Split(args, ",") {
		parts = append(parts, strings.TrimSpace(a))
	}

	value := parts[len(parts)-1]
	switch parts[0] {
	case "push":
		h.packStack = append(h.packStack, h.pack)
		if len(parts) == 1 {
			value = ""
		}
	case "pop":
		if n := len(h.packStack); n > 0 {
			h.pack = h.packStack[n-1]
			h.packStack = h.packStack[:n-1]
		} else {
			h.pack = 0
		}
		value = ""
	case "":
		h.pack = 0
	}

	if value != "" && value != "push" {
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil || n == 0 || n > 16 || n&(n-1) != 0 {
			return "", fmt.Errorf("invalid #pragma pack value %q", value)
		}
		h.pack = n
	}
	return packDirective + "(" + strconv.FormatUint(h.pack, 10) + ");", nil
}

// tag returns the record declared as kw name, creating an incomplete entry
// for forward references.
func (h *header) tag(kw, name string, kind Kind) *cType {
	key := kw + " " + name
	if t, ok := h.tags[key]; ok {
		return t
	}
	t := &cType{name: name, kind: kind, elems: 1}
	h.tags[key] = t
	return t
}

// list adds a named top-level record to the declaration order.
func (h *header) list(t *cType) {
	if t.top && !t.listed && t.name != "" {
		t.listed = true
		h.top = append(h.top, t)
	}
}

func (h *header) lookup(root string) (*Struct, error) {
	t, ok := h.types[root]
	if !ok {
		t, ok = h.tags["struct "+root]
	}
	if !ok {
		t, ok = h.tags["union "+root]
	}
	if !ok || !t.kind.IsRecord() {
		return nil, fmt.Errorf("struct '%s' not found in header", root)
	}
	if !t.complete {
		return nil, fmt.Errorf("struct '%s' is declared but never defined", root)
	}
	return t.toStruct(root), nil
}

func splitDirective(s string) (name, rest string) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && isIdentByte(s[end]) {
		end++
	}
	return s[:end], s[end:]
}

func quotedInclude(rest string) (string, bool) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	end := strings.IndexByte(rest[1:], '"')
	if end <= 0 {
		return "", false
	}
	return rest[1 : end+1], true
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// stripComments blanks C comments. Newlines inside block comments are kept
// so positions in the remaining text stay put.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' && j+1 < len(src) {
					j++
				}
				j++
			}
			if j < len(src) && src[j] == c {
				j++
			}
			b.WriteString(src[i:j])
			i = j - 1
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := len(src)
			if j := strings.Index(src[i+2:], "*/"); j >= 0 {
				end = i + 2 + j + 2
			}
			b.WriteByte(' ')
			b.WriteString(strings.Repeat("\n", strings.Count(src[i:end], "\n")))
			i = end - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

type token struct {
	tok  rune
	text string
	pos  scanner.Position
}

func tokenize(src, filename string) ([]token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Filename = filename
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanChars | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments

	var scanErr error
	s.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%s: %s", s.Pos(), msg)
		}
	}

	var toks []token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		toks = append(toks, token{tok: tok, text: s.TokenText(), pos: s.Position})
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return toks, nil
}

// member is one declaration inside a record body.
type member struct {
	typ  *cType
	decl declarator
	// anon marks an unnamed struct or union whose members belong to the
	// enclosing record.
	anon bool
}

type declarator struct {
	name     string
	pointers int
	dims     []uint64
	bits     uint64
	bitfield bool
	pos      scanner.Position
}

// declParser reads declarations from a token stream.
type declParser struct {
	h    *header
	toks []token
	pos  int
	pack uint64
}

func (p *declParser) peekAt(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	t := token{tok: scanner.EOF}
	if len(p.toks) > 0 {
		t.pos = p.toks[len(p.toks)-1].pos
	}
	return t
}

func (p *declParser) peek() token {
	return p.peekAt(0)
}

func (p *declParser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *declParser) accept(text string) bool {
	if t := p.peek(); t.tok != scanner.EOF && t.text == text {
		p.pos++
		return true
	}
	return false
}

func (p *declParser) expect(text string) error {
	if !p.accept(text) {
		return p.errorf("expected %q, got %s", text, describe(p.peek()))
	}
	return nil
}

func (p *declParser) errorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	if pos := p.peek().pos; pos.IsValid() {
		return fmt.Errorf("%s: %s", pos, msg)
	}
	return errors.New(msg)
}

func describe(t token) string {
	if t.tok == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

func (p *declParser) file() error {
	for p.peek().tok != scanner.EOF {
		if err := p.topLevel(); err != nil {
			return err
		}
	}
	return nil
}

func (p *declParser) topLevel() error {
	switch t := p.peek(); t.text {
	case ";", "}":
		p.next()
		return nil
	case packDirective:
		return p.packMarker()
	case "extern":
		if p.peekAt(1).tok == scanner.String && p.peekAt(2).text == "{" {
			p.pos += 3
			return nil
		}
		return p.skipDecl()
	case "typedef":
		p.next()
		return p.typedef()
	case "struct", "union", "enum":
		if _, err := p.typeSpec(); err != nil {
			return err
		}
		if p.accept(";") {
			return nil
		}
		return p.skipDecl()
	default:
		return p.skipDecl()
	}
}

func (p *declParser) packMarker() error {
	p.next()
	if err := p.expect("("); err != nil {
		return err
	}
	n, err := strconv.ParseUint(p.next().text, 10, 64)
	if err != nil {
		return p.errorf("malformed pack marker")
	}
	p.pack = n
	if err := p.expect(")"); err != nil {
		return err
	}
	p.accept(";")
	return nil
}

// skipDecl passes over a declaration this parser has no use for: a
// variable, a prototype or a function definition.
func (p *declParser) skipDecl() error {
	depth := 0
	fnBody := false
	var prev token
	for {
		t := p.next()
		if t.tok == scanner.EOF {
			return nil
		}
		switch t.text {
		case "{":
			depth++
			if depth == 1 {
				fnBody = prev.text == ")"
			}
		case "}":
			depth--
			if depth < 0 {
				return nil
			}
			if depth == 0 && fnBody {
				return nil
			}
		case ";":
			if depth == 0 {
				return nil
			}
		}
		prev = t
	}
}

func (p *declParser) typedef() error {
	base, err := p.typeSpec()
	if err != nil {
		return err
	}
	for {
		if p.peek().text == "(" && p.peekAt(1).text != "*" {
			return p.skipDecl()
		}
		d, err := p.declarator()
		if err != nil {
			return err
		}
		if d.name == "" {
			return p.errorf("typedef without a name")
		}
		if d.bitfield {
			return p.errorf("typedef %s has a bit width", d.name)
		}

		t, err := derive(base, d)
		if err != nil {
			return p.errorf("typedef %s: %v", d.name, err)
		}
		if t == base && t.kind.IsRecord() && t.name == "" {
			t.name = d.name
			p.h.list(t)
		}
		p.h.types[d.name] = t

		if !p.accept(",") {
			break
		}
	}
	return p.expect(";")
}

// derive applies a typedef declarator to base. A plain alias returns base
// itself, so a forward-declared record completes through the alias.
func derive(base *cType, d declarator) (*cType, error) {
	if d.pointers > 0 {
		return pointerType(), nil
	}
	if len(d.dims) == 0 {
		return base, nil
	}
	if !base.complete {
		return nil, fmt.Errorf("array of incomplete type %s", base.name)
	}
	n, ok := product(d.dims)
	size, ok2 := mulSize(base.size, n)
	elems, ok3 := mulSize(base.elems, n)
	if !ok || !ok2 || !ok3 {
		return nil, errors.New("array is too large")
	}
	return &cType{
		name:     base.name,
		kind:     base.kind,
		size:     size,
		align:    base.align,
		elems:    elems,
		fields:   base.fields,
		packed:   base.packed,
		complete: true,
	}, nil
}

var qualifiers = map[string]bool{
	"const":         true,
	"volatile":      true,
	"restrict":      true,
	"__restrict":    true,
	"static":        true,
	"extern":        true,
	"register":      true,
	"inline":        true,
	"__inline":      true,
	"__extension__": true,
}

func (p *declParser) qualifier() bool {
	if qualifiers[p.peek().text] && p.peek().tok == scanner.Ident {
		p.next()
		return true
	}
	return false
}

// attributes consumes any __attribute__((...)) lists and reports whether
// one of them asks for packing. A bare __packed also counts.
func (p *declParser) attributes() (bool, error) {
	packed := false
	for {
		switch p.peek().text {
		case "__packed":
			p.next()
			packed = true
		case "__attribute__", "__attribute":
			p.next()
			if p.peek().text != "(" {
				return false, p.errorf("expected attribute list")
			}
			depth := 0
			for {
				t := p.next()
				if t.tok == scanner.EOF {
					return false, p.errorf("unterminated attribute list")
				}
				switch t.text {
				case "(":
					depth++
				case ")":
					depth--
				case "packed", "__packed__":
					packed = true
				}
				if depth == 0 {
					break
				}
			}
		default:
			return packed, nil
		}
	}
}

var baseWords = map[string]bool{
	"signed":   true,
	"unsigned": true,
	"short":    true,
	"long":     true,
	"int":      true,
	"char":     true,
	"float":    true,
	"double":   true,
	"void":     true,
	"_Bool":    true,
}

// isTypeStart reports whether the next token begins a type name.
func (p *declParser) isTypeStart() bool {
	t := p.peek()
	if t.tok != scanner.Ident {
		return false
	}
	switch {
	case t.text == "struct" || t.text == "union" || t.text == "enum":
		return true
	case baseWords[t.text] || qualifiers[t.text]:
		return true
	}
	name := p.h.resolveAlias(t.text)
	if _, ok := p.h.types[name]; ok {
		return true
	}
	_, ok := headerTypes[name]
	return ok
}

func (p *declParser) typeSpec() (*cType, error) {
	for p.qualifier() {
	}

	t := p.peek()
	switch t.text {
	case "struct", "union":
		return p.recordSpec()
	case "enum":
		return p.enumSpec()
	}
	if t.tok != scanner.Ident {
		return nil, p.errorf("expected a type, got %s", describe(t))
	}
	if baseWords[t.text] {
		return p.baseType()
	}

	p.next()
	name := p.h.resolveAlias(t.text)
	if ct, ok := p.h.types[name]; ok {
		return ct, nil
	}
	if k, ok := headerTypes[name]; ok {
		return numericType(k), nil
	}
	if k := ParseKind(name); k.IsNumeric() {
		return numericType(k), nil
	}
	return nil, fmt.Errorf("%s: unknown type %s", t.pos, t.text)
}

// baseType reads a C type spelled with keywords, such as unsigned long long.
func (p *declParser) baseType() (*cType, error) {
	start := p.peek()
	words := make(map[string]int)
	for {
		t := p.peek()
		if t.tok != scanner.Ident || !(baseWords[t.text] || qualifiers[t.text]) {
			break
		}
		p.next()
		words[t.text]++
	}

	unsigned := words["unsigned"] > 0
	switch {
	case words["void"] > 0:
		return &cType{name: "void", elems: 1}, nil
	case words["_Bool"] > 0:
		return numericType(KindUInt8), nil
	case words["float"] > 0:
		return numericType(KindFloat32), nil
	case words["double"] > 0:
		if words["long"] > 0 {
			return nil, fmt.Errorf("%s: long double is not supported", start.pos)
		}
		return numericType(KindFloat64), nil
	case words["char"] > 0:
		if words["signed"] > 0 {
			return numericType(KindInt8), nil
		}
		return numericType(KindUInt8), nil
	case words["short"] > 0:
		if unsigned {
			return numericType(KindUInt16), nil
		}
		return numericType(KindInt16), nil
	case words["long"] > 0:
		if unsigned {
			return numericType(KindUInt64), nil
		}
		return numericType(KindInt64), nil
	default:
		if unsigned {
			return numericType(KindUInt32), nil
		}
		return numericType(KindInt32), nil
	}
}

func (p *declParser) recordSpec() (*cType, error) {
	kw := p.next().text
	kind := KindStruct
	if kw == "union" {
		kind = KindUnion
	}

	packed, err := p.attributes()
	if err != nil {
		return nil, err
	}
	tag := ""
	if p.peek().tok == scanner.Ident && p.peek().text != "__attribute__" {
		tag = p.next().text
	}
	more, err := p.attributes()
	if err != nil {
		return nil, err
	}
	packed = packed || more

	if !p.accept("{") {
		if tag == "" {
			return nil, p.errorf("anonymous %s without a body", kw)
		}
		return p.h.tag(kw, tag, kind), nil
	}

	members, err := p.members()
	if err != nil {
		return nil, err
	}
	more, err = p.attributes()
	if err != nil {
		return nil, err
	}
	packed = packed || more

	t := &cType{elems: 1}
	if tag != "" {
		t = p.h.tag(kw, tag, kind)
	}
	if err := layout(t, kind, members, packed || p.h.packed, p.pack); err != nil {
		if tag != "" {
			return nil, fmt.Errorf("%s %s: %w", kw, tag, err)
		}
		return nil, fmt.Errorf("anonymous %s: %w", kw, err)
	}
	t.top = p.h.depth == 0
	if tag != "" {
		t.name = tag
		p.h.list(t)
	}
	return t, nil
}

func (p *declParser) members() ([]member, error) {
	var out []member
	for !p.accept("}") {
		if p.peek().tok == scanner.EOF {
			return nil, p.errorf("unterminated record body")
		}
		if p.accept(";") {
			continue
		}
		if p.peek().text == packDirective {
			if err := p.packMarker(); err != nil {
				return nil, err
			}
			continue
		}

		base, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		if p.accept(";") {
			if base.kind.IsRecord() && base.name == "" {
				out = append(out, member{typ: base, anon: true})
			}
			continue
		}
		for {
			d, err := p.declarator()
			if err != nil {
				return nil, err
			}
			out = append(out, member{typ: base, decl: d})
			if !p.accept(",") {
				break
			}
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *declParser) declarator() (declarator, error) {
	d := declarator{pos: p.peek().pos}
	for {
		if p.accept("*") {
			d.pointers++
			continue
		}
		if p.qualifier() {
			continue
		}
		break
	}

	if p.accept("(") {
		// Function pointer: (*name)(params)
		if err := p.expect("*"); err != nil {
			return d, err
		}
		if p.peek().tok == scanner.Ident {
			d.name = p.next().text
		}
		if err := p.expect(")"); err != nil {
			return d, err
		}
		if err := p.skipParens(); err != nil {
			return d, err
		}
		d.pointers = 1
	} else if p.peek().tok == scanner.Ident && !qualifiers[p.peek().text] && p.peek().text != "__attribute__" {
		d.name = p.next().text
	}

	for p.accept("[") {
		if p.peek().text == "]" {
			return d, p.errorf("flexible array member %s is not supported", d.name)
		}
		n, err := p.constExpr()
		if err != nil {
			return d, err
		}
		if n <= 0 {
			return d, p.errorf("array %s has non-positive size %d", d.name, n)
		}
		d.dims = append(d.dims, uint64(n))
		if err := p.expect("]"); err != nil {
			return d, err
		}
	}

	if p.accept(":") {
		n, err := p.constExpr()
		if err != nil {
			return d, err
		}
		if n < 0 {
			return d, p.errorf("bitfield %s has negative width", d.name)
		}
		d.bits = uint64(n)
		d.bitfield = true
	}

	if _, err := p.attributes(); err != nil {
		return d, err
	}
	return d, nil
}

func (p *declParser) skipParens() error {
	if err := p.expect("("); err != nil {
		return err
	}
	for depth := 1; depth > 0; {
		t := p.next()
		switch {
		case t.tok == scanner.EOF:
			return p.errorf("unterminated parameter list")
		case t.text == "(":
			depth++
		case t.text == ")":
			depth--
		}
	}
	return nil
}

// enumSpec reads an enum type. Enumerators become constants usable in
// array sizes; the type itself is a 4-byte int.
func (p *declParser) enumSpec() (*cType, error) {
	p.next()
	if _, err := p.attributes(); err != nil {
		return nil, err
	}
	if p.peek().tok == scanner.Ident {
		p.next()
	}

	if p.accept("{") {
		next := int64(0)
		for !p.accept("}") {
			t := p.next()
			if t.tok != scanner.Ident {
				return nil, fmt.Errorf("%s: expected enumerator, got %s", t.pos, describe(t))
			}
			if p.accept("=") {
				v, err := p.constExpr()
				if err != nil {
					return nil, err
				}
				next = v
			}
			p.h.consts[t.text] = next
			next++
			if !p.accept(",") {
				if err := p.expect("}"); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	return numericType(KindInt32), nil
}

// resolveAlias follows macros whose body is a single identifier, as in
// #define BYTE uint8_t.
func (h *header) resolveAlias(name string) string {
	for i := 0; i < maxMacroDepth; i++ {
		body, ok := h.defines[name]
		if !ok || body == "" || !isIdent(body) {
			return name
		}
		name = body
	}
	return name
}

func isIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

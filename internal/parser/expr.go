package parser

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
)

func (p *Parser) parseIntLit() ast.Expression {
	pos := p.cur.Pos
	lit := p.cur.Literal
	suffix := ""
	for _, s := range []string{"_i8", "_i16", "_i32", "_i64"} {
		if len(lit) > len(s) && lit[len(lit)-len(s):] == s {
			suffix = s[1:]
			lit = lit[:len(lit)-len(s)]
		}
	}
	p.next()
	return ast.NewIntLit(pos, lit, suffix)
}

func (p *Parser) parseFloatLit() ast.Expression {
	pos := p.cur.Pos
	lit := p.cur.Literal
	suffix := ""
	for _, s := range []string{"_f32", "_f64"} {
		if len(lit) > len(s) && lit[len(lit)-len(s):] == s {
			suffix = s[1:]
			lit = lit[:len(lit)-len(s)]
		}
	}
	p.next()
	return ast.NewFloatLit(pos, lit, suffix)
}

// parseStringLit splits the lexer's raw literal text on "#{...}"
// interpolation markers into alternating text/expression parts, each
// expression parsed with its own sub-parser over the captured span.
func (p *Parser) parseStringLit() ast.Expression {
	pos := p.cur.Pos
	raw := p.cur.Literal
	p.next()

	var parts []ast.StringPart
	i := 0
	text := ""
	for i < len(raw) {
		if i+1 < len(raw) && raw[i] == '#' && raw[i+1] == '{' {
			if text != "" {
				parts = append(parts, ast.StringPart{Text: unescape(text)})
				text = ""
			}
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			inner := raw[i+2 : j]
			sub := New(lexer.New(inner))
			expr := sub.parseExpression(LOWEST)
			parts = append(parts, ast.StringPart{Expr: expr})
			i = j + 1
			continue
		}
		text += string(raw[i])
		i++
	}
	if text != "" {
		parts = append(parts, ast.StringPart{Text: unescape(text)})
	}
	return ast.NewStringLit(pos, parts)
}

func unescape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, s[i])
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func (p *Parser) parseCharLit() ast.Expression {
	pos := p.cur.Pos
	lit := p.cur.Literal
	p.next()
	r := []rune(lit)
	if len(r) == 0 {
		return ast.NewCharLit(pos, 0)
	}
	return ast.NewCharLit(pos, r[0])
}

func (p *Parser) parseSymbolLit() ast.Expression {
	pos := p.cur.Pos
	name := p.cur.Literal
	if len(name) > 0 && name[0] == ':' {
		name = name[1:]
	}
	p.next()
	return ast.NewSymbolLit(pos, name)
}

func (p *Parser) parseRegexLit() ast.Expression {
	pos := p.cur.Pos
	lit := p.cur.Literal
	p.next()
	return ast.NewRegexLit(pos, lit)
}

func (p *Parser) parseBoolLit() ast.Expression {
	pos := p.cur.Pos
	v := p.curIs(lexer.TRUE)
	p.next()
	return ast.NewBoolLit(pos, v)
}

func (p *Parser) parseNilLit() ast.Expression {
	pos := p.cur.Pos
	p.next()
	return ast.NewNilLit(pos)
}

func (p *Parser) parseSelf() ast.Expression {
	pos := p.cur.Pos
	p.next()
	return ast.NewSelf(pos)
}

func (p *Parser) parseIdentifier() ast.Expression {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()
	return ast.NewIdentifier(pos, name)
}

// parseConstOrTypeExpr parses a CONST-led primary: either a bare
// identifier reference (most common — a class/module name used as a
// value, e.g. in `Foo.new`) or, when followed directly by '(' with no
// intervening call semantics desired, still just an Identifier — the
// call machinery in parseCallArgs/parseDotCall handles any following
// argument list uniformly for both IDENT and CONST receivers.
func (p *Parser) parseConstOrTypeExpr() ast.Expression {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()
	return ast.NewIdentifier(pos, name)
}

func (p *Parser) parseInstanceVar() ast.Expression {
	pos := p.cur.Pos
	name := p.cur.Literal[1:]
	p.next()
	return ast.NewInstanceVar(pos, name)
}

func (p *Parser) parseClassVar() ast.Expression {
	pos := p.cur.Pos
	name := p.cur.Literal[2:]
	p.next()
	return ast.NewClassVar(pos, name)
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.next() // consume '('
	expr := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return expr
}

func (p *Parser) parseArrayLit() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '['
	var elems []ast.Expression
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET)

	var of *ast.TypeRef
	if p.curIs(lexer.OF) {
		p.next()
		of = p.parseTypeRef()
	}
	return ast.NewArrayLit(pos, elems, of)
}

func (p *Parser) parseHashLit() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '{'
	var entries []ast.HashEntry
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.parseExpression(LOWEST)
		var value ast.Expression
		if p.curIs(lexer.FATARROW) {
			p.next()
			value = p.parseExpression(LOWEST)
		} else if p.curIs(lexer.COLON) {
			p.next()
			value = p.parseExpression(LOWEST)
		}
		entries = append(entries, ast.HashEntry{Key: key, Value: value})
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)

	var keyOf, valOf *ast.TypeRef
	if p.curIs(lexer.OF) {
		p.next()
		keyOf = p.parseTypeRef()
		p.expect(lexer.FATARROW)
		valOf = p.parseTypeRef()
	}
	return ast.NewHashLit(pos, entries, keyOf, valOf)
}

func (p *Parser) parseNot() ast.Expression {
	pos := p.cur.Pos
	p.next()
	operand := p.parseExpression(PREFIX)
	return ast.NewNot(pos, operand)
}

func (p *Parser) parseUnaryMinus() ast.Expression {
	pos := p.cur.Pos
	p.next()
	operand := p.parseExpression(PREFIX)
	zero := ast.NewIntLit(pos, "0", "")
	return ast.NewBinOp(pos, "-", zero, operand)
}

func (p *Parser) parsePointerOf() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'pointerof'
	p.expect(lexer.LPAREN)
	inner := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return ast.NewPointerOf(pos, inner)
}

func (p *Parser) parseBinOp(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	op := p.cur.Literal
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return ast.NewBinOp(pos, op, left, right)
}

func (p *Parser) parseAnd(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return ast.NewAnd(pos, left, right)
}

func (p *Parser) parseOr(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return ast.NewOr(pos, left, right)
}

func (p *Parser) parseAssign(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '='
	value := p.parseExpression(ASSIGN - 1)
	return ast.NewAssign(pos, left, value)
}

func (p *Parser) parseRange(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	exclusive := p.curIs(lexer.DOTDOTDOT)
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return ast.NewRangeLit(pos, left, right, exclusive)
}

func (p *Parser) parseIsA(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'is_a?'
	p.expect(lexer.LPAREN)
	t := p.parseTypeRef()
	p.expect(lexer.RPAREN)
	return ast.NewIsA(pos, left, t)
}

// parseDotCall parses `receiver.name[(args)][block]`, special-casing
// `.is_a?(Type)` into a dedicated IsA node since its argument is a
// type reference, not an ordinary expression.
func (p *Parser) parseDotCall(left ast.Expression) ast.Expression {
	p.next() // consume '.'
	pos := p.cur.Pos
	name := p.cur.Literal

	if p.curIs(lexer.IS_A) {
		p.next()
		p.expect(lexer.LPAREN)
		t := p.parseTypeRef()
		p.expect(lexer.RPAREN)
		return ast.NewIsA(pos, left, t)
	}

	p.next()

	var args []ast.Arg
	if p.curIs(lexer.LPAREN) {
		args = p.parseArgList()
	}
	var block *ast.Block
	if p.curIs(lexer.DO) || p.curIs(lexer.LBRACE) {
		block = p.parseBlock()
	}
	return ast.NewCall(pos, left, name, args, block)
}

// parseCallArgs handles a bare identifier immediately followed by '('
// — an implicit-self call with arguments, e.g. `puts(x)`.
func (p *Parser) parseCallArgs(left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf("unexpected '(' after expression")
		return left
	}
	args := p.parseArgList()
	var block *ast.Block
	if p.curIs(lexer.DO) || p.curIs(lexer.LBRACE) {
		block = p.parseBlock()
	}
	return ast.NewCall(ident.Pos(), nil, ident.Name, args, block)
}

func (p *Parser) parseArgList() []ast.Arg {
	var args []ast.Arg
	p.next() // consume '('
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		name := ""
		if (p.curIs(lexer.IDENT)) && p.peekIs(lexer.COLON) {
			name = p.cur.Literal
			p.next()
			p.next()
		}
		val := p.parseExpression(LOWEST)
		args = append(args, ast.Arg{Name: name, Value: val})
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur.Pos
	brace := p.curIs(lexer.LBRACE)
	p.next() // consume 'do' or '{'

	var params []*ast.Param
	if p.curIs(lexer.PIPE) {
		p.next()
		for !p.curIs(lexer.PIPE) && !p.curIs(lexer.EOF) {
			params = append(params, p.parseParam())
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.PIPE)
	}

	var body []ast.Statement
	if brace {
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			if s := p.parseStatement(); s != nil {
				body = append(body, s)
			} else {
				break
			}
		}
		p.expect(lexer.RBRACE)
	} else {
		body = p.parseStatementsUntilTerminator()
		p.expect(lexer.END)
	}
	return ast.NewBlock(pos, params, body)
}

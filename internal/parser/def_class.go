package parser

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
)

// parseDef parses `def [self.]name(params) [: Type] \n body \n end`.
func (p *Parser) parseDef(selfMethod bool) *ast.Def {
	pos := p.cur.Pos
	p.next() // consume 'def'

	if p.curIs(lexer.SELF) && p.peekIs(lexer.DOT) {
		selfMethod = true
		p.next() // self
		p.next() // .
	}

	name := p.cur.Literal
	if !p.curIs(lexer.IDENT) && !p.curIs(lexer.CONST) {
		p.errorf("expected method name, got %q", p.cur.Literal)
	}
	p.next()

	var params []*ast.Param
	if p.curIs(lexer.LPAREN) {
		params = p.parseParamList()
	}

	var restrict *ast.TypeRef
	if p.curIs(lexer.COLON) {
		p.next()
		restrict = p.parseTypeRef()
	}

	body := p.parseStatementsUntilTerminator()
	p.expect(lexer.END)

	return ast.NewDef(pos, name, params, restrict, body, selfMethod)
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	p.next() // consume '('
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		params = append(params, p.parseParam())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseParam() *ast.Param {
	pos := p.cur.Pos
	out := false
	if p.curIs(lexer.OUT) {
		out = true
		p.next()
	}
	name := p.cur.Literal
	p.next()

	var restriction *ast.TypeRef
	var blockSig *ast.TypeRef
	if p.curIs(lexer.COLON) {
		p.next()
		if p.curIs(lexer.LPAREN) {
			blockSig = p.parseBlockSigType()
		} else {
			restriction = p.parseTypeRef()
		}
	}

	var def ast.Expression
	if p.curIs(lexer.ASSIGN) {
		p.next()
		def = p.parseExpression(ASSIGN)
	}

	return ast.NewParam(pos, name, restriction, def, out, blockSig)
}

// parseBlockSigType parses a function-type block-parameter signature
// `(Type1, Type2) -> Ret`, modeled as a TypeRef whose Args hold the
// parameter types and whose Name holds the return type's name.
func (p *Parser) parseBlockSigType() *ast.TypeRef {
	pos := p.cur.Pos
	p.next() // consume '('
	var args []*ast.TypeRef
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseTypeRef())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	retName := "Nil"
	if p.curIs(lexer.ARROW) {
		p.next()
		ret := p.parseTypeRef()
		retName = ret.Name
	}
	return ast.NewTypeRef(pos, retName, args, nil)
}

// parseTypeRef parses a type reference: a bare name, a generic
// application `Name(Arg1, Arg2)`, or a `T | U` union restriction.
func (p *Parser) parseTypeRef() *ast.TypeRef {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()

	var args []*ast.TypeRef
	if p.curIs(lexer.LPAREN) {
		p.next()
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			args = append(args, p.parseTypeRef())
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RPAREN)
	}

	ref := ast.NewTypeRef(pos, name, args, nil)
	if p.curIs(lexer.PIPE) {
		union := []*ast.TypeRef{ref}
		for p.curIs(lexer.PIPE) {
			p.next()
			union = append(union, p.parseTypeRef())
		}
		return ast.NewTypeRef(pos, "", nil, union)
	}
	return ref
}

// parseClassDef parses `class Name [(T, U)] [< Super] \n body \n end`
// or, when module is true, `module Name \n body \n end`.
func (p *Parser) parseClassDef(module bool) *ast.ClassDef {
	p.next() // consume 'class'/'module'
	return p.parseClassDefBody(false, module)
}

func (p *Parser) parseClassDefBody(abstract, module bool) *ast.ClassDef {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.expect(lexer.CONST)

	var generics []string
	if p.curIs(lexer.LPAREN) {
		p.next()
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			generics = append(generics, p.cur.Literal)
			p.next()
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RPAREN)
	}

	var super *ast.TypeRef
	if p.curIs(lexer.LT) {
		p.next()
		super = p.parseTypeRef()
	}

	body := p.parseStatementsUntilTerminator()
	p.expect(lexer.END)

	return ast.NewClassDef(pos, name, super, abstract, module, generics, body)
}

func (p *Parser) parseLibDef() *ast.LibDef {
	pos := p.cur.Pos
	p.next() // consume 'lib'
	name := p.cur.Literal
	p.expect(lexer.CONST)

	var body []ast.Statement
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		switch p.cur.Type {
		case lexer.FUN:
			body = append(body, p.parseFunDecl())
		case lexer.STRUCT:
			body = append(body, p.parseStructDecl())
		case lexer.UNION:
			body = append(body, p.parseUnionDecl())
		case lexer.ENUM:
			body = append(body, p.parseEnumDecl())
		default:
			p.errorf("unexpected token %q inside lib block", p.cur.Literal)
			p.next()
		}
	}
	p.expect(lexer.END)
	return ast.NewLibDef(pos, name, body)
}

func (p *Parser) parseFunDecl() *ast.FunDecl {
	pos := p.cur.Pos
	p.next() // consume 'fun'
	name := p.cur.Literal
	p.next()
	var params []*ast.Param
	if p.curIs(lexer.LPAREN) {
		params = p.parseParamList()
	}
	var restrict *ast.TypeRef
	if p.curIs(lexer.COLON) {
		p.next()
		restrict = p.parseTypeRef()
	}
	return ast.NewFunDecl(pos, name, params, restrict)
}

func (p *Parser) parseFieldList() []ast.FieldDecl {
	var fields []ast.FieldDecl
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		name := p.cur.Literal
		p.next()
		p.expect(lexer.COLON)
		t := p.parseTypeRef()
		fields = append(fields, ast.FieldDecl{Name: name, Type: t})
	}
	return fields
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.cur.Pos
	p.next() // consume 'struct'
	name := p.cur.Literal
	p.expect(lexer.CONST)
	fields := p.parseFieldList()
	p.expect(lexer.END)
	return ast.NewStructDecl(pos, name, fields)
}

func (p *Parser) parseUnionDecl() *ast.UnionDecl {
	pos := p.cur.Pos
	p.next() // consume 'union'
	name := p.cur.Literal
	p.expect(lexer.CONST)
	fields := p.parseFieldList()
	p.expect(lexer.END)
	return ast.NewUnionDecl(pos, name, fields)
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	pos := p.cur.Pos
	p.next() // consume 'enum'
	name := p.cur.Literal
	p.expect(lexer.CONST)

	var backing *ast.TypeRef
	if p.curIs(lexer.COLON) {
		p.next()
		backing = p.parseTypeRef()
	}

	var members []string
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		members = append(members, p.cur.Literal)
		p.next()
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.END)
	return ast.NewEnumDecl(pos, name, backing, members)
}

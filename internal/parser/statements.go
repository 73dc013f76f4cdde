package parser

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.DEF:
		return p.parseDef(false)
	case lexer.CLASS:
		return p.parseClassDef(false)
	case lexer.ABSTRACT:
		p.next()
		if !p.expect(lexer.CLASS) {
			return nil
		}
		return p.parseClassDefBody(true, false)
	case lexer.MODULE:
		return p.parseClassDef(true)
	case lexer.LIB:
		return p.parseLibDef()
	case lexer.INCLUDE:
		return p.parseInclude()
	default:
		return p.parseExpressionStatement()
	}
}

// blockTerminators names the statement-sequence terminators a block body parses
// up to without consuming; the caller consumes the actual terminator.
var blockTerminators = map[lexer.TokenType]bool{
	lexer.END: true, lexer.ELSE: true, lexer.ELSIF: true,
	lexer.WHEN: true, lexer.RESCUE: true, lexer.ENSURE: true, lexer.EOF: true,
}

func (p *Parser) parseStatementsUntilTerminator() []ast.Statement {
	var stmts []ast.Statement
	for !blockTerminators[p.cur.Type] {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			break
		}
	}
	return stmts
}

func (p *Parser) parseInclude() *ast.Include {
	pos := p.cur.Pos
	p.next() // consume 'include'
	name := p.cur.Literal
	namePos := p.cur.Pos
	p.expect(lexer.CONST)
	ref := ast.NewTypeRef(namePos, name, nil, nil)
	return ast.NewInclude(pos, ref)
}

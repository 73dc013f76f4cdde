package parser

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
)

func (p *Parser) parseIf() ast.Expression { return p.parseIfOrUnless(false) }
func (p *Parser) parseUnless() ast.Expression { return p.parseIfOrUnless(true) }

func (p *Parser) parseIfOrUnless(negated bool) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'if'/'unless'
	cond := p.parseExpression(LOWEST)
	if p.curIs(lexer.THEN) {
		p.next()
	}
	then := p.parseStatementsUntilTerminator()

	var els []ast.Statement
	switch {
	case p.curIs(lexer.ELSIF):
		els = []ast.Statement{ast.NewExprStatement(p.parseIf())}
		return ast.NewIf(pos, cond, negated, then, els)
	case p.curIs(lexer.ELSE):
		p.next()
		els = p.parseStatementsUntilTerminator()
	}
	p.expect(lexer.END)
	return ast.NewIf(pos, cond, negated, then, els)
}

func (p *Parser) parseCase() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'case'

	var subject ast.Expression
	if !p.curIs(lexer.WHEN) {
		subject = p.parseExpression(LOWEST)
	}

	var whens []ast.WhenClause
	for p.curIs(lexer.WHEN) {
		p.next()
		var conds []ast.Expression
		conds = append(conds, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.next()
			conds = append(conds, p.parseExpression(LOWEST))
		}
		if p.curIs(lexer.THEN) {
			p.next()
		}
		body := p.parseStatementsUntilTerminator()
		whens = append(whens, ast.WhenClause{Conditions: conds, Body: body})
	}

	var els []ast.Statement
	if p.curIs(lexer.ELSE) {
		p.next()
		els = p.parseStatementsUntilTerminator()
	}
	p.expect(lexer.END)
	return ast.NewCase(pos, subject, whens, els)
}

func (p *Parser) parseWhile() ast.Expression { return p.parseWhileOrUntil(false) }
func (p *Parser) parseUntil() ast.Expression { return p.parseWhileOrUntil(true) }

func (p *Parser) parseWhileOrUntil(negated bool) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'while'/'until'
	cond := p.parseExpression(LOWEST)
	if p.curIs(lexer.DO) {
		p.next()
	}
	body := p.parseStatementsUntilTerminator()
	p.expect(lexer.END)
	return ast.NewWhile(pos, cond, negated, body)
}

func (p *Parser) parseBegin() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'begin'
	body := p.parseStatementsUntilTerminator()

	var rescues []ast.RescueClause
	for p.curIs(lexer.RESCUE) {
		rescues = append(rescues, p.parseRescueClause())
	}

	var els []ast.Statement
	if p.curIs(lexer.ELSE) {
		p.next()
		els = p.parseStatementsUntilTerminator()
	}

	var ensure []ast.Statement
	if p.curIs(lexer.ENSURE) {
		p.next()
		ensure = p.parseStatementsUntilTerminator()
	}

	p.expect(lexer.END)
	return ast.NewBegin(pos, body, rescues, els, ensure)
}

func (p *Parser) parseRescueClause() ast.RescueClause {
	p.next() // consume 'rescue'

	var exVar string
	var types []*ast.TypeRef

	if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
		exVar = p.cur.Literal
		p.next()
		p.next()
	}

	if p.curIs(lexer.CONST) {
		types = append(types, p.parseTypeRef())
		for p.curIs(lexer.COMMA) {
			p.next()
			types = append(types, p.parseTypeRef())
		}
	}

	body := p.parseStatementsUntilTerminator()
	return ast.RescueClause{ExVar: exVar, Types: types, Body: body}
}

func (p *Parser) parseRaise() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'raise'
	if isStatementEnd(p.cur.Type) {
		return ast.NewRaise(pos, nil)
	}
	value := p.parseExpression(LOWEST)
	return ast.NewRaise(pos, value)
}

func (p *Parser) parseReturn() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'return'
	if isStatementEnd(p.cur.Type) {
		return ast.NewReturn(pos, nil)
	}
	return ast.NewReturn(pos, p.parseExpression(LOWEST))
}

func (p *Parser) parseBreak() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'break'
	if isStatementEnd(p.cur.Type) {
		return ast.NewBreak(pos, nil)
	}
	return ast.NewBreak(pos, p.parseExpression(LOWEST))
}

func (p *Parser) parseNext() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'next'
	if isStatementEnd(p.cur.Type) {
		return ast.NewNext(pos, nil)
	}
	return ast.NewNext(pos, p.parseExpression(LOWEST))
}

func (p *Parser) parseYield() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'yield'
	var args []ast.Expression
	if p.curIs(lexer.LPAREN) {
		p.next()
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			args = append(args, p.parseExpression(LOWEST))
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RPAREN)
	}
	return ast.NewYield(pos, args)
}

func isStatementEnd(t lexer.TokenType) bool {
	return blockTerminators[t]
}

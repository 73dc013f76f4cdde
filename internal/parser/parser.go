// Package parser implements a hand-written recursive-descent parser for
// Vesper source, using Pratt (precedence-climbing) parsing for
// expressions.
package parser

import (
	"fmt"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN
	OR
	AND
	EQUALS
	LESSGREATER
	RANGE
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: ASSIGN,
	lexer.OR:     OR,
	lexer.OROR:   OR,
	lexer.AND:    AND,
	lexer.ANDAND: AND,
	lexer.EQ:     EQUALS,
	lexer.NOTEQ:  EQUALS,
	lexer.LT:     LESSGREATER,
	lexer.GT:     LESSGREATER,
	lexer.LTEQ:   LESSGREATER,
	lexer.GTEQ:   LESSGREATER,
	lexer.DOTDOT: RANGE,
	lexer.DOTDOTDOT: RANGE,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.STAR:   PRODUCT,
	lexer.SLASH:  PRODUCT,
	lexer.PERCENT: PRODUCT,
	lexer.LPAREN: CALL,
	lexer.LBRACKET: INDEX,
	lexer.DOT:    MEMBER,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Error is one parse-time diagnostic.
type Error struct {
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string { return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message) }

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errors []*Error

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixFns = make(map[lexer.TokenType]infixParseFn)

	p.registerPrefix(lexer.INT, p.parseIntLit)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLit)
	p.registerPrefix(lexer.STRING, p.parseStringLit)
	p.registerPrefix(lexer.CHARLIT, p.parseCharLit)
	p.registerPrefix(lexer.SYMBOL, p.parseSymbolLit)
	p.registerPrefix(lexer.REGEXLIT, p.parseRegexLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.NIL, p.parseNilLit)
	p.registerPrefix(lexer.SELF, p.parseSelf)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.CONST, p.parseConstOrTypeExpr)
	p.registerPrefix(lexer.IVAR, p.parseInstanceVar)
	p.registerPrefix(lexer.CVAR, p.parseClassVar)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLit)
	p.registerPrefix(lexer.LBRACE, p.parseHashLit)
	p.registerPrefix(lexer.BANG, p.parseNot)
	p.registerPrefix(lexer.NOT, p.parseNot)
	p.registerPrefix(lexer.MINUS, p.parseUnaryMinus)
	p.registerPrefix(lexer.POINTEROF, p.parsePointerOf)
	p.registerPrefix(lexer.IF, p.parseIf)
	p.registerPrefix(lexer.UNLESS, p.parseUnless)
	p.registerPrefix(lexer.CASE, p.parseCase)
	p.registerPrefix(lexer.WHILE, p.parseWhile)
	p.registerPrefix(lexer.UNTIL, p.parseUntil)
	p.registerPrefix(lexer.BEGIN, p.parseBegin)
	p.registerPrefix(lexer.RAISE, p.parseRaise)
	p.registerPrefix(lexer.RETURN, p.parseReturn)
	p.registerPrefix(lexer.BREAK, p.parseBreak)
	p.registerPrefix(lexer.NEXT, p.parseNext)
	p.registerPrefix(lexer.YIELD, p.parseYield)

	p.registerInfix(lexer.PLUS, p.parseBinOp)
	p.registerInfix(lexer.MINUS, p.parseBinOp)
	p.registerInfix(lexer.STAR, p.parseBinOp)
	p.registerInfix(lexer.SLASH, p.parseBinOp)
	p.registerInfix(lexer.PERCENT, p.parseBinOp)
	p.registerInfix(lexer.EQ, p.parseBinOp)
	p.registerInfix(lexer.NOTEQ, p.parseBinOp)
	p.registerInfix(lexer.LT, p.parseBinOp)
	p.registerInfix(lexer.GT, p.parseBinOp)
	p.registerInfix(lexer.LTEQ, p.parseBinOp)
	p.registerInfix(lexer.GTEQ, p.parseBinOp)
	p.registerInfix(lexer.ANDAND, p.parseAnd)
	p.registerInfix(lexer.AND, p.parseAnd)
	p.registerInfix(lexer.OROR, p.parseOr)
	p.registerInfix(lexer.OR, p.parseOr)
	p.registerInfix(lexer.ASSIGN, p.parseAssign)
	p.registerInfix(lexer.DOTDOT, p.parseRange)
	p.registerInfix(lexer.DOTDOTDOT, p.parseRange)
	p.registerInfix(lexer.LPAREN, p.parseCallArgs)
	p.registerInfix(lexer.DOT, p.parseDotCall)
	p.registerInfix(lexer.IS_A, p.parseIsA)

	p.next()
	p.next()
	return p
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixFns[t] = fn }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos})
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.errorf("expected %v, got %q", t, p.cur.Literal)
	return false
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// parseExpression runs the Pratt loop at the given minimum precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errorf("no prefix parse function for %q", p.cur.Literal)
		p.next()
		return nil
	}
	left := prefix()

	// Every prefix/infix parse function leaves p.cur on the token past
	// whatever it just consumed, so by the time we're back here p.cur
	// (not p.peek) is the would-be operator: the loop reads curPrecedence
	// and hands p.cur straight to infix without an extra advance — infix
	// functions consume their own trigger token themselves (see
	// parseDotCall's "consume '.'", parseArgList's "consume '('').
	for !p.curIs(lexer.END) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if s, ok := expr.(ast.Statement); ok {
		return s
	}
	return ast.NewExprStatement(expr)
}

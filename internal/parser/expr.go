package parser

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
)

// parseExpression is the entry point into the eight-tier operator grammar,
// used for RHS values, call arguments, subscripts, conditions and return
// values alike.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

// levelOps maps the token types that belong to one precedence tier.
type levelOps map[lexer.TokenType]bool

var (
	orOps  = levelOps{lexer.OR: true}
	andOps = levelOps{lexer.AND: true}
	eqOps  = levelOps{lexer.EQ: true, lexer.NE: true}
	relOps = levelOps{lexer.LT: true, lexer.LE: true, lexer.GT: true, lexer.GE: true}
	addOps = levelOps{lexer.PLUS: true, lexer.MINUS: true}
	mulOps = levelOps{lexer.STAR: true, lexer.SLASH: true, lexer.PERCENT: true}
)

// parseLevel implements one left-associative precedence tier: it starts
// from seed and, while the current token belongs to ops, consumes it and
// folds in a right-hand operand obtained from next.
func (p *Parser) parseLevel(seed ast.Expression, ops levelOps, next func() ast.Expression) ast.Expression {
	left := seed
	for ops[p.cur.Type] {
		opTok := p.cur
		p.next()
		right := next()
		left = ast.NewBinary(opTok.Type, left, right, opTok.Pos)
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	return p.parseLevel(p.parseAnd(), orOps, p.parseAnd)
}

func (p *Parser) parseOrFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(p.parseAndFrom(seed), orOps, p.parseAnd)
}

func (p *Parser) parseAnd() ast.Expression {
	return p.parseLevel(p.parseEquality(), andOps, p.parseEquality)
}

func (p *Parser) parseAndFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(p.parseEqualityFrom(seed), andOps, p.parseEquality)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseLevel(p.parseRelational(), eqOps, p.parseRelational)
}

func (p *Parser) parseEqualityFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(p.parseRelationalFrom(seed), eqOps, p.parseRelational)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseLevel(p.parseAdditive(), relOps, p.parseAdditive)
}

func (p *Parser) parseRelationalFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(p.parseAdditiveFrom(seed), relOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseLevel(p.parseMultiplicative(), addOps, p.parseMultiplicative)
}

func (p *Parser) parseAdditiveFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(p.parseMultiplicativeFrom(seed), addOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseLevel(p.parseUnary(), mulOps, p.parseUnary)
}

func (p *Parser) parseMultiplicativeFrom(seed ast.Expression) ast.Expression {
	return p.parseLevel(seed, mulOps, p.parseUnary)
}

// continueExpressionFrom resumes the precedence chain from an
// already-parsed primary (used after a statement-level identifier turns
// out to begin an array-subscript rvalue rather than an assignment target,
// see parseIdentStatement in stmt.go).
func (p *Parser) continueExpressionFrom(seed ast.Expression) ast.Expression {
	return p.parseOrFrom(seed)
}

// parseUnary is right-recursive: `- unary | ! unary | primary`.
func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Type == lexer.MINUS || p.cur.Type == lexer.NOT {
		opTok := p.cur
		p.next()
		operand := p.parseUnary()
		return ast.NewUnary(opTok.Type, operand, opTok.Pos)
	}
	return p.parsePrimary()
}

// parsePrimary is the innermost tier: parenthesized expressions, calls,
// array subscripts, scalar variables and literals (spec §4.3).
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.INT:
		tok := p.cur
		p.next()
		return ast.NewIntLit(tok.IntValue, tok.Pos)
	case lexer.FLOAT:
		tok := p.cur
		p.next()
		return ast.NewFloatLit(tok.FloatValue, tok.Pos)
	case lexer.BOOLLIT:
		tok := p.cur
		p.next()
		return ast.NewBoolLit(tok.IntValue != 0, tok.Pos)
	case lexer.IDENT:
		return p.parseIdentPrimary()
	default:
		p.abort("expression")
		return nil
	}
}

// parseIdentPrimary handles an identifier appearing anywhere an rvalue is
// expected: a call, an array subscript chain, or a bare variable reference.
// Assignment is never legal here — it is only recognized at statement
// position (see stmt.go) — so an ASSIGN token following the identifier is
// simply left for the caller to trip over as a syntax error.
func (p *Parser) parseIdentPrimary() ast.Expression {
	tok := p.cur
	p.next()
	switch p.cur.Type {
	case lexer.LPAREN:
		return p.parseCallArgs(tok)
	case lexer.LBRACK:
		indices := p.parseSubscriptChain()
		return ast.NewArrayRef(tok.Lexeme, indices, tok.Pos)
	default:
		return ast.NewVar(tok.Lexeme, tok.Pos)
	}
}

// parseCallArgs parses `'(' [ expr { ',' expr } ] ')'`; callee has already
// been consumed.
func (p *Parser) parseCallArgs(callee lexer.Token) ast.Expression {
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	if p.cur.Type != lexer.RPAREN {
		args = append(args, p.parseExpression())
		for p.cur.Type == lexer.COMMA {
			p.next()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)
	return ast.NewCall(callee.Lexeme, args, callee.Pos)
}

// parseSubscriptChain parses one or more `'[' expr ']'` pairs, the
// expression form used by both rvalue array references and lvalue targets.
func (p *Parser) parseSubscriptChain() []ast.Expression {
	var indices []ast.Expression
	for p.cur.Type == lexer.LBRACK {
		p.next()
		indices = append(indices, p.parseExpression())
		p.expect(lexer.RBRACK)
	}
	return indices
}

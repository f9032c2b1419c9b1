package parser

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// parseItem parses one top-level item: an extern declaration, a global
// scalar or array declaration, or a function definition (spec §3.3).
func (p *Parser) parseItem() ast.Item {
	if p.cur.Type == lexer.EXTERN {
		return p.parseExternDecl()
	}

	tok := p.cur
	if !isTypeKeyword(tok.Type) {
		p.abort("a type keyword or 'extern'")
	}
	declType := declaredType(tok.Type)
	p.next()

	nameTok := p.expect(lexer.IDENT)

	switch p.cur.Type {
	case lexer.LPAREN:
		return p.parseFunction(declType, nameTok)
	case lexer.LBRACK:
		dims := p.parseArrayDims()
		p.expectSemi()
		return ast.NewArrayDecl(declType, nameTok.Lexeme, dims, tok.Pos)
	default:
		p.expectSemi()
		return ast.NewVarDecl(declType, nameTok.Lexeme, tok.Pos)
	}
}

// parseLocalDecl parses one block-local scalar or array declaration — the
// same grammar as a global VarDecl/ArrayDecl, minus the function/extern
// branches, which are only legal at top level (spec §3.3).
func (p *Parser) parseLocalDecl() ast.Decl {
	tok := p.cur
	declType := declaredType(tok.Type)
	p.next()

	nameTok := p.expect(lexer.IDENT)

	if p.cur.Type == lexer.LBRACK {
		dims := p.parseArrayDims()
		p.expectSemi()
		return ast.NewArrayDecl(declType, nameTok.Lexeme, dims, tok.Pos)
	}
	p.expectSemi()
	return ast.NewVarDecl(declType, nameTok.Lexeme, tok.Pos)
}

// parseArrayDims parses one or more `'[' int_lit ']'` dimension
// declarators. Unlike subscript expressions, declaration dimensions must
// be integer literals (spec §3.3, §4.3).
func (p *Parser) parseArrayDims() []int {
	var dims []int
	for p.cur.Type == lexer.LBRACK {
		p.next()
		dimTok := p.expect(lexer.INT)
		dims = append(dims, int(dimTok.IntValue))
		p.expect(lexer.RBRACK)
	}
	return dims
}

// parseParams parses `'(' [ type ident { ',' type ident } ] ')'`.
func (p *Parser) parseParams() []*ast.Param {
	p.expect(lexer.LPAREN)
	var params []*ast.Param
	if p.cur.Type != lexer.RPAREN {
		params = append(params, p.parseParam())
		for p.cur.Type == lexer.COMMA {
			p.next()
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseParam() *ast.Param {
	tok := p.cur
	if !isTypeKeyword(tok.Type) {
		p.abort("a parameter type")
	}
	declType := declaredType(tok.Type)
	p.next()
	nameTok := p.expect(lexer.IDENT)
	return ast.NewParam(declType, nameTok.Lexeme, tok.Pos)
}

// parseExternDecl parses `'extern' type ident '(' params ')' ';'`.
func (p *Parser) parseExternDecl() ast.Item {
	tok := p.cur
	p.next()

	retTok := p.cur
	if !isTypeKeyword(retTok.Type) {
		p.abort("a return type")
	}
	retType := declaredType(retTok.Type)
	p.next()

	nameTok := p.expect(lexer.IDENT)
	params := p.parseParams()
	p.expectSemi()
	return ast.NewExternDecl(retType, nameTok.Lexeme, params, tok.Pos)
}

// parseFunction parses the parameter list and body of a function whose
// return type and name have already been consumed.
func (p *Parser) parseFunction(retType types.Type, nameTok lexer.Token) ast.Item {
	params := p.parseParams()
	body := p.parseBlock()
	return ast.NewFunction(retType, nameTok.Lexeme, params, body, nameTok.Pos)
}

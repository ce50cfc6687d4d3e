package parser

import (
	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/lexer"
	"github.com/flare-lang/flare/internal/types"
)

// Parser turns a token stream into a list of functions: one per `def` or
// `extern`, plus a synthesised `top-level` wrapper around any bare
// expressions in the input.
type Parser struct {
	lx      *lexer.Lexer
	cur     lexer.Token
	curSpan *diag.Span

	// topLevel is true while parsing statements that belong directly to
	// the input line. Assignments seen in that position become globals.
	// Function bodies, parenthesised expressions and call arguments
	// clear it.
	topLevel bool
}

// New creates a Parser over the given source.
func New(source string) *Parser {
	return &Parser{lx: lexer.New(source), topLevel: true}
}

// Parse parses a whole input into its functions.
func Parse(source string) ([]*ast.Function, error) {
	return New(source).Parse()
}

func (p *Parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	p.curSpan = p.lx.Span()
	return nil
}

func (p *Parser) errHere(msg, desc string) error {
	return diag.Parse(msg, desc, p.curSpan)
}

// Parse consumes the entire input.
func (p *Parser) Parse() ([]*ast.Function, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	var fns []*ast.Function
	var top []*ast.Expr

	for p.cur.Type != lexer.EOF {
		switch p.cur.Type {
		case lexer.COMMENT:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.DEF:
			fn, err := p.parseDef()
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
		case lexer.EXTERN:
			fn, err := p.parseExtern()
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
		default:
			exprs, err := p.parseTopStmts()
			if err != nil {
				return nil, err
			}
			top = append(top, exprs...)
		}
	}

	if len(top) > 0 {
		fns = append(fns, &ast.Function{
			Name:     ast.TopLevelName,
			Body:     top,
			TopLevel: true,
		})
	}
	return fns, nil
}

// parseTopStmts parses a `;`-separated run of bare expressions until the
// next definition or end of input.
func (p *Parser) parseTopStmts() ([]*ast.Expr, error) {
	var exprs []*ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)

		if p.cur.Type != lexer.SEMICOLON {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		// A trailing `;` gives the statement position a Null value.
		if p.cur.Type == lexer.EOF || p.cur.Type == lexer.DEF || p.cur.Type == lexer.EXTERN {
			exprs = append(exprs, ast.New(&ast.NullLit{}, p.curSpan))
			break
		}
	}

	switch p.cur.Type {
	case lexer.EOF, lexer.DEF, lexer.EXTERN, lexer.COMMENT:
		return exprs, nil
	}
	return nil, p.errHere("Unexpected token", "expected ';' between expressions")
}

// parseDef parses `def name |params| { exprs }`.
func (p *Parser) parseDef() (*ast.Function, error) {
	if err := p.advance(); err != nil { // eat 'def'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errHere("Expected function name", "a 'def' must be followed by an identifier")
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != lexer.LBRACE {
		return nil, p.errHere("Expected '{'", "a function body is a braced expression sequence")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	saved := p.topLevel
	p.topLevel = false
	body, err := p.parseExprSeq(lexer.RBRACE)
	p.topLevel = saved
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // eat '}'
		return nil, err
	}

	return &ast.Function{Name: name, Args: params, Body: body}, nil
}

// parseExtern parses `extern name |params|` — a prototype only.
func (p *Parser) parseExtern() (*ast.Function, error) {
	if err := p.advance(); err != nil { // eat 'extern'
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.errHere("Expected function name", "an 'extern' must be followed by an identifier")
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Name: name, Args: params}, nil
}

// parseParams parses a pipe-delimited parameter list `|a: T, b: U|`.
// An empty list may lex as a single `||` token.
func (p *Parser) parseParams() ([]ast.Param, error) {
	if p.cur.Type == lexer.OROR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if p.cur.Type != lexer.PIPE {
		return nil, p.errHere("Expected '|'", "parameter lists are pipe-delimited")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var params []ast.Param
	for p.cur.Type != lexer.PIPE {
		if p.cur.Type != lexer.IDENT {
			return nil, p.errHere("Expected parameter name", "parameters are written `name: Type`")
		}
		pname := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.COLON {
			return nil, p.errHere("Expected ':'", "parameters are written `name: Type`")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		ptype, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname, Type: ptype})

		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // eat closing '|'
		return nil, err
	}
	return params, nil
}

// parseTypeName reads a type written in parameter position: a scalar
// name, `Name[]` for a vector, or bare `[]` for a list.
func (p *Parser) parseTypeName() (types.Type, error) {
	name := ""
	if p.cur.Type == lexer.IDENT {
		name = p.cur.Literal
		if err := p.advance(); err != nil {
			return types.TNull, err
		}
	}
	if p.cur.Type == lexer.LBRACKET {
		if err := p.advance(); err != nil {
			return types.TNull, err
		}
		if p.cur.Type != lexer.RBRACKET {
			return types.TNull, p.errHere("Expected ']'", "vector types are written `Int64[]`, `Float64[]` or `[]`")
		}
		if err := p.advance(); err != nil {
			return types.TNull, err
		}
		name += "[]"
	}

	t, err := types.Parse(name)
	if err != nil {
		return types.TNull, p.errHere("Unknown type name", name)
	}
	return t, nil
}

// parseExprSeq parses `expr { ';' expr }` up to (not consuming) the
// given terminator. An empty sequence and a trailing `;` both yield an
// explicit Null.
func (p *Parser) parseExprSeq(end lexer.TokenType) ([]*ast.Expr, error) {
	if p.cur.Type == end {
		return []*ast.Expr{ast.New(&ast.NullLit{}, p.curSpan)}, nil
	}

	var exprs []*ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)

		if p.cur.Type == lexer.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Type == end {
				exprs = append(exprs, ast.New(&ast.NullLit{}, p.curSpan))
				break
			}
			continue
		}
		if p.cur.Type == end {
			break
		}
		return nil, p.errHere("Unexpected token", "expected ';' between expressions")
	}
	return exprs, nil
}

package parser

import (
	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/lexer"
)

// binops maps operator tokens to their AST operator. `||`/`&&` are the
// boolean spellings of the same Or/And entries in the operator table.
var binops = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:    ast.Add,
	lexer.MINUS:   ast.Sub,
	lexer.STAR:    ast.Mul,
	lexer.SLASH:   ast.Div,
	lexer.PERCENT: ast.Rem,
	lexer.PIPE:    ast.Or,
	lexer.OROR:    ast.Or,
	lexer.AMP:     ast.And,
	lexer.ANDAND:  ast.And,
	lexer.CARET:   ast.Xor,
	lexer.EQ:      ast.Equal,
	lexer.NEQ:     ast.NotEqual,
	lexer.LT:      ast.Less,
	lexer.GT:      ast.Greater,
	lexer.LTE:     ast.LessOrEqual,
	lexer.GTE:     ast.GreaterOrEqual,
}

// parseExpr parses `unary [ binop expr | '=' expr | '.' expr ]`. The
// right operand of a binary operator greedily consumes a full
// expression, so chains fold to the right with equal precedence.
func (p *Parser) parseExpr() (*ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if op, ok := binops[p.cur.Type]; ok {
		opSpan := p.curSpan
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.New(&ast.Binary{Op: op, LHS: lhs, RHS: rhs}, opSpan), nil
	}

	if p.cur.Type == lexer.ASSIGN {
		v, ok := lhs.Body.(*ast.Var)
		if !ok {
			return nil, diag.Parse("Invalid assignment", "only a name can be assigned to", lhs.Span)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.New(&ast.Assign{Name: v.Name, Init: init, Global: p.topLevel}, lhs.Span), nil
	}

	if p.cur.Type == lexer.DOT {
		dotSpan := p.curSpan
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.New(&ast.Dot{LHS: lhs, RHS: rhs}, dotSpan), nil
	}

	return lhs, nil
}

// parseUnary parses a literal, vector literal, identifier expression,
// if-expression or parenthesised expression.
func (p *Parser) parseUnary() (*ast.Expr, error) {
	span := p.curSpan
	switch p.cur.Type {
	case lexer.EOF:
		return nil, p.errHere("Unexpected EOF", "expected an expression")

	case lexer.INT:
		v := p.cur.IntVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(&ast.IntLit{Val: v}, span), nil

	case lexer.FLOAT:
		v := p.cur.FloatVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(&ast.FloatLit{Val: v}, span), nil

	case lexer.BOOL:
		v := p.cur.BoolVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(&ast.BoolLit{Val: v}, span), nil

	case lexer.LBRACKET:
		return p.parseVecLiteral()

	case lexer.IDENT:
		return p.parseIdentExpr()

	case lexer.IF:
		return p.parseIfExpr()

	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		saved := p.topLevel
		p.topLevel = false
		e, err := p.parseExpr()
		p.topLevel = saved
		if err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, p.errHere("Expected ')'", "unterminated parenthesised expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	}

	return nil, p.errHere("Expected expression", "expected a literal, vector, identifier, 'if' or '('")
}

// parseIdentExpr parses a variable reference or, when followed by a
// parenthesised argument list, a call.
func (p *Parser) parseIdentExpr() (*ast.Expr, error) {
	span := p.curSpan
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.cur.Type != lexer.LPAREN {
		return ast.New(&ast.Var{Name: name}, span), nil
	}
	if err := p.advance(); err != nil { // eat '('
		return nil, err
	}

	saved := p.topLevel
	p.topLevel = false
	defer func() { p.topLevel = saved }()

	var args []*ast.Expr
	if p.cur.Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type == lexer.COMMA {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if p.cur.Type != lexer.RPAREN {
		return nil, p.errHere("Expected ')'", "unterminated call argument list")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.New(&ast.Call{Name: name, Args: args}, span), nil
}

// parseIfExpr parses `if expr { exprs } [ else { exprs } ]`.
func (p *Parser) parseIfExpr() (*ast.Expr, error) {
	span := p.curSpan
	if err := p.advance(); err != nil { // eat 'if'
		return nil, err
	}

	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != lexer.LBRACE {
		return nil, p.errHere("Expected '{'", "an 'if' branch is a braced expression sequence")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	then, err := p.parseExprSeq(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // eat '}'
		return nil, err
	}

	var els []*ast.Expr
	if p.cur.Type == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.LBRACE {
			return nil, p.errHere("Expected '{'", "an 'else' branch is a braced expression sequence")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		els, err = p.parseExprSeq(lexer.RBRACE)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil { // eat '}'
			return nil, err
		}
	}

	return ast.New(&ast.Cond{Pred: pred, Then: then, Else: els}, span), nil
}

// parseVecLiteral parses `[ num, ... ]`. If any element is a float the
// whole literal is promoted to a float vector.
func (p *Parser) parseVecLiteral() (*ast.Expr, error) {
	span := p.curSpan
	if err := p.advance(); err != nil { // eat '['
		return nil, err
	}

	var ints []int64
	var floats []float64
	for p.cur.Type != lexer.RBRACKET {
		switch p.cur.Type {
		case lexer.INT:
			if len(floats) > 0 {
				floats = append(floats, float64(p.cur.IntVal))
			} else {
				ints = append(ints, p.cur.IntVal)
			}
		case lexer.FLOAT:
			if len(floats) == 0 {
				for _, v := range ints {
					floats = append(floats, float64(v))
				}
				ints = nil
			}
			floats = append(floats, p.cur.FloatVal)
		default:
			return nil, p.errHere("Expected number", "vector literals hold int and float literals only")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // eat ']'
		return nil, err
	}

	if len(ints) == 0 {
		return ast.New(&ast.VecFloatLit{Elems: floats}, span), nil
	}
	return ast.New(&ast.VecIntLit{Elems: ints}, span), nil
}

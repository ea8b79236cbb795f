package arith

import (
	"errors"
	"strconv"
	"strings"
)

// Expr   = Term { ('+' | '-') Term }
// Term   = Factor { ('*' | '/') Factor }
// Factor = ('+' | '-') Factor | Power
// Power  = Atom [ '^' Factor ]
// Atom   = ( num | '(' Expr ')' ) [ '!' ]

// parser is a cursor over a token list. A parser is used for exactly one
// call to Parse.
type parser struct {
	toks []Token
	k    int
}

// peek returns the current token without consuming it. Past the end of the
// list, the result is an EOF token, so a list missing its terminator parses
// as though it had one.
func (p *parser) peek() Token {
	if p.k >= len(p.toks) {
		tok := Token{Kind: TokenEOF}
		if len(p.toks) > 0 {
			last := p.toks[len(p.toks)-1]
			tok.Pos = last.Pos + len([]rune(last.Text))
		}
		return tok
	}
	return p.toks[p.k]
}

// next consumes and returns the current token. The cursor never moves past an
// EOF token.
func (p *parser) next() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.k++
	}
	return tok
}

// Parse builds the syntax tree of a complete expression from a token list as
// produced by Tokenize. The error, if any, is one of *BracketError,
// *EmptyExpressionError, *TokenError, or *TrailingError, all of which match
// ErrParse.
func Parse(toks []Token) (*Node, error) {
	p := parser{toks: toks}
	n, err := parseexpr(&p)
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Kind {
	case TokenEOF:
		return n, nil
	case TokenClose:
		return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
	default:
		return nil, &TrailingError{Col: tok.Pos, Tok: tok}
	}
}

// ParseString is a shortcut to tokenize and parse a string.
func ParseString(src string) (*Node, error) {
	toks, err := Tokenize(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parseexpr parses a left-associative chain of additions and subtractions.
func parseexpr(p *parser) (*Node, error) {
	n, err := parseterm(p)
	if err != nil {
		return nil, err
	}
	for {
		var kind NodeKind
		switch p.peek().Kind {
		case TokenPlus:
			kind = NodeAdd
		case TokenMinus:
			kind = NodeSub
		default:
			return n, nil
		}
		p.next()
		rhs, err := parseterm(p)
		if err != nil {
			return nil, err
		}
		n = &Node{Kind: kind, Left: n, Right: rhs}
	}
}

// parseterm parses a left-associative chain of multiplications and divisions.
func parseterm(p *parser) (*Node, error) {
	n, err := parsefactor(p)
	if err != nil {
		return nil, err
	}
	for {
		var kind NodeKind
		switch p.peek().Kind {
		case TokenMul:
			kind = NodeMul
		case TokenDiv:
			kind = NodeDiv
		default:
			return n, nil
		}
		p.next()
		rhs, err := parsefactor(p)
		if err != nil {
			return nil, err
		}
		n = &Node{Kind: kind, Left: n, Right: rhs}
	}
}

// parsefactor parses unary prefix operators. The operand of a unary operator
// is a whole factor, so -2^3 is -(2^3).
func parsefactor(p *parser) (*Node, error) {
	var kind NodeKind
	switch p.peek().Kind {
	case TokenPlus:
		kind = NodePlus
	case TokenMinus:
		kind = NodeNeg
	default:
		return parsepow(p)
	}
	p.next()
	x, err := parsefactor(p)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, Left: x}, nil
}

// parsepow parses an atom and an optional exponent. The exponent re-enters
// parsefactor, which makes ^ right-associative and allows x^-y.
func parsepow(p *parser) (*Node, error) {
	n, err := parseatom(p)
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokenPow {
		return n, nil
	}
	p.next()
	rhs, err := parsefactor(p)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NodePow, Left: n, Right: rhs}, nil
}

// parseatom parses a number or parenthesized expression followed by at most
// one factorial operator. A second ! is left for the caller, which reports it
// as trailing input.
func parseatom(p *parser) (*Node, error) {
	var n *Node
	switch tok := p.next(); tok.Kind {
	case TokenNum:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				// An infinite leaf could not be rendered back as a number.
				return nil, &TokenError{Col: tok.Pos, Tok: tok, Reason: "number is too large"}
			}
			return nil, &TokenError{Col: tok.Pos, Tok: tok}
		}
		n = &Node{Kind: NodeNum, Value: v}
	case TokenOpen:
		x, err := parseexpr(p)
		if err != nil {
			return nil, err
		}
		if end := p.next(); end.Kind != TokenClose {
			return nil, &BracketError{Col: end.Pos, Left: tok.Text}
		}
		n = x
	case TokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos}
	case TokenClose:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	default:
		return nil, &TokenError{Col: tok.Pos, Tok: tok}
	}
	if p.peek().Kind == TokenFact {
		p.next()
		n = &Node{Kind: NodeFact, Left: n}
	}
	return n, nil
}

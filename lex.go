package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexeme scanned from an expression.
type Token struct {
	// Kind is the category of the token.
	Kind TokenKind `json:"kind"`
	// Text is the literal text of the token. For numbers, it is normalized so
	// that a decimal point always has a digit on each side. It is empty for
	// EOF tokens.
	Text string `json:"text"`
	// Pos is the 0-based rune offset of the start of the token in the input.
	Pos int `json:"pos"`
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// Equal reports whether two tokens have the same kind and text. Positions are
// not compared.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Text == u.Text
}

// TokenKind is the category of a token.
type TokenKind int

const (
	// TokenEOF indicates the end of the input.
	TokenEOF TokenKind = iota
	// TokenNum is a decimal number.
	TokenNum
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenPow
	// TokenFact is the postfix factorial operator, !.
	TokenFact
	TokenOpen
	TokenClose
)

var tokenKindNames = [...]string{
	TokenEOF:   "EOF",
	TokenNum:   "Number",
	TokenPlus:  "Plus",
	TokenMinus: "Minus",
	TokenMul:   "Mult",
	TokenDiv:   "Div",
	TokenPow:   "Pow",
	TokenFact:  "Factorial",
	TokenOpen:  "OpenParen",
	TokenClose: "CloseParen",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// MarshalText encodes the kind by name, so that tokens serialize readably.
func (k TokenKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return nil, errors.New("arith: invalid token kind " + strconv.Itoa(int(k)))
	}
	return []byte(tokenKindNames[k]), nil
}

// UnmarshalText decodes a kind from its name.
func (k *TokenKind) UnmarshalText(text []byte) error {
	for i, s := range tokenKindNames {
		if s == string(text) {
			*k = TokenKind(i)
			return nil
		}
	}
	return errors.New("arith: unknown token kind " + strconv.Quote(string(text)))
}

// Operators contains the runes which lex as single-character tokens, in the
// order of their kinds in opkinds.
const Operators = "+-*/^!()"

var opkinds = [...]TokenKind{TokenPlus, TokenMinus, TokenMul, TokenDiv, TokenPow, TokenFact, TokenOpen, TokenClose}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// rune is the number of runes read so far.
	rune int
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is an EOF token with a nil error.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.rune}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = TokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Text = Operators[k : k+1]
				tok.Kind = opkinds[k]
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, &LexError{Text: l.buf.String(), Col: tok.Pos, Reason: "unrecognized character"}
		}
	}
}

// scanNum scans a maximal run of digits and decimal points into l.buf and
// normalizes it.
func (l *lexer) scanNum(start int) error {
	dots := 0
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r != '.' && (r < '0' || r > '9') {
			l.unreadRune()
			break
		}
		if r == '.' {
			dots++
		}
		l.buf.WriteRune(r)
	}
	s := l.buf.String()
	if dots == 1 && len(s) == 1 {
		return &LexError{Text: s, Kind: "number", Col: start, Reason: "a lone decimal point is not a valid number"}
	}
	if dots > 1 {
		return &LexError{Text: s, Kind: "number", Col: start, Reason: "a number may contain at most one decimal point"}
	}
	if s[0] == '.' {
		s = "0" + s
	}
	if s[len(s)-1] == '.' {
		s += "0"
	}
	l.buf.Reset()
	l.buf.WriteString(s)
	return nil
}

// Tokenize scans the entire input into a list of tokens. The list always ends
// with exactly one EOF token. Scanning stops at the first invalid token, in
// which case the error is a *LexError (or a read error from src).
func Tokenize(src io.RuneScanner) ([]Token, error) {
	l := lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// TokenizeString is a shortcut to tokenize a string.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src))
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the offending character or number literal.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" for
	// malformed numbers or the empty string if a token kind hadn't been
	// decided.
	Kind string
	// Col is the 0-based rune offset of the start of Text.
	Col int
	// Reason describes what is wrong with the token.
	Reason string
}

func (err *LexError) Error() string {
	pos := "position " + strconv.Itoa(err.Col)
	var s string
	if err.Kind == "" {
		s = "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	} else {
		s = "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
	}
	if err.Reason != "" {
		s += " (" + err.Reason + ")"
	}
	return s
}

func (err *LexError) Pos() int {
	return err.Col
}

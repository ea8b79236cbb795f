package arith

import (
	"errors"
	"strconv"
)

// ErrParse is matched by every error that Parse returns, so that callers can
// distinguish syntax errors from lexical and evaluation errors with errors.Is.
var ErrParse = errors.New("syntax error")

// BracketError is an error indicating an open parenthesis with no matching
// close or a close parenthesis with no matching open. It implements
// InputError.
type BracketError struct {
	// Col is the position of the token where the bracket was expected or found.
	Col int
	// Left is the unclosed open bracket, if any.
	Left string
	// Right is the unmatched close bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "expected closing parenthesis for "+err.Left)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrParse
}

// EmptyExpressionError is an error indicating that an operand was required
// but the input or a parenthesized subexpression ended.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string at
	// the end of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col == 0 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrParse
}

// TokenError is an error indicating a token that cannot begin an operand,
// such as a binary operator where a number was expected, or a number literal
// that does not fit in a float64. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Tok is the unexpected token.
	Tok Token
	// Reason describes why a number token was rejected. It is empty for
	// tokens of the wrong kind.
	Reason string
}

func (err *TokenError) Error() string {
	if err.Reason != "" {
		return errpos(err.Col, "invalid number "+strconv.Quote(err.Tok.Text)+": "+err.Reason)
	}
	return errpos(err.Col, "unexpected "+err.Tok.Kind.String()+" "+strconv.Quote(err.Tok.Text)+" where an operand was expected")
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Is(target error) bool {
	return target == ErrParse
}

// TrailingError is an error indicating tokens following a complete
// expression. It implements InputError.
type TrailingError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Tok is the first unconsumed token.
	Tok Token
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected trailing input "+strconv.Quote(err.Tok.Text))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

func (err *TrailingError) Is(target error) bool {
	return target == ErrParse
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune offset of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*LexError)(nil)
)

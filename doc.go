// Package arith implements a calculator for arithmetic expressions over
// float64.
//
// Evaluation happens in three stages. Tokenize scans text into a list of
// tokens, Parse builds a syntax tree from the tokens, and Eval computes the
// tree's value. EvalString runs all three.
//
// The operators are + - * / ^ and postfix !, with parentheses for grouping.
// Unary + and - bind more loosely than ^, so "-2^3^4" is the same as
// "-(2^(3^4))", and ^ is right-associative. The factorial applies to the
// number or parenthesized expression immediately before it: "1^-2!^3" is
// "1^(-((2!)^3))". A node's String method renders this fully parenthesized
// form.
//
// Division by zero and invalid exponentiations follow IEEE-754, producing
// infinities and NaNs rather than errors. The factorial truncates its operand
// toward zero and reports a Warning if that changed the operand.
package arith

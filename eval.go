package arith

import (
	"errors"
	"io"
	"math"
	"strings"
)

// Result is the outcome of evaluating an expression.
type Result struct {
	// Value is the value of the expression. Division by zero and invalid
	// exponentiations produce infinities and NaNs here rather than errors.
	Value float64
	// Warnings lists the non-fatal diagnostics raised during evaluation, in
	// the order they were raised.
	Warnings []Warning
}

// Warning is a non-fatal diagnostic raised during evaluation.
type Warning struct {
	// Func is the operator that raised the warning, e.g. "!".
	Func string
	// X is the operand as evaluated.
	X float64
	// N is the operand as actually used.
	N float64
}

func (w Warning) String() string {
	return "operand " + fmtnum(w.X) + " of " + w.Func + " is not an integer; computing " + fmtnum(w.N) + w.Func + " instead"
}

// EvalOption is an option for evaluation.
type EvalOption interface {
	evalOption()
}

type warnopt func(Warning)

func (warnopt) evalOption() {}

// OnWarning sets a function to be called with each warning as it is raised.
// Warnings are also collected in the Result regardless.
func OnWarning(f func(Warning)) EvalOption {
	return warnopt(f)
}

// evaluator holds the state of one call to Eval.
type evaluator struct {
	warn     []func(Warning)
	warnings []Warning
}

func (e *evaluator) warning(w Warning) {
	e.warnings = append(e.warnings, w)
	for _, f := range e.warn {
		f(w)
	}
}

// Eval evaluates a syntax tree. The only error is a *DomainError, which
// results from the factorial of a negative number.
func Eval(n *Node, opts ...EvalOption) (Result, error) {
	var e evaluator
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case warnopt:
			if opt != nil {
				e.warn = append(e.warn, opt)
			}
		default:
			panic("arith: unknown option type")
		}
	}
	v, err := n.eval(&e)
	if err != nil {
		return Result{Warnings: e.warnings}, err
	}
	return Result{Value: v, Warnings: e.warnings}, nil
}

// eval computes the node's value.
func (n *Node) eval(e *evaluator) (float64, error) {
	switch n.Kind {
	case NodeNum:
		return n.Value, nil
	case NodePlus:
		return n.Left.eval(e)
	case NodeNeg:
		x, err := n.Left.eval(e)
		return -x, err
	case NodeFact:
		x, err := n.Left.eval(e)
		if err != nil {
			return 0, err
		}
		return factorial(e, x)
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		l, err := n.Left.eval(e)
		if err != nil {
			return 0, err
		}
		r, err := n.Right.eval(e)
		if err != nil {
			return 0, err
		}
		switch n.Kind {
		case NodeAdd:
			return l + r, nil
		case NodeSub:
			return l - r, nil
		case NodeMul:
			return l * r, nil
		case NodeDiv:
			return l / r, nil
		default:
			return math.Pow(l, r), nil
		}
	default:
		panic("arith: invalid AST node " + n.Kind.String())
	}
}

// maxFact is the largest n for which n! is finite in float64.
const maxFact = 170

// factorial computes the factorial of x truncated toward zero, warning if x
// is not already an integer.
func factorial(e *evaluator, x float64) (float64, error) {
	if math.IsNaN(x) {
		return x, nil
	}
	n := math.Trunc(x)
	if n != x {
		e.warning(Warning{Func: "!", X: x, N: n})
	}
	if n < 0 {
		return 0, &DomainError{X: x, N: n, Func: "!"}
	}
	if n > maxFact {
		return math.Inf(1), nil
	}
	r := 1.0
	for k := 2.0; k <= n; k++ {
		r *= k
	}
	return r, nil
}

// ErrDomain is matched by every DomainError.
var ErrDomain = errors.New("argument outside domain")

// DomainError is an error returned when an operator is applied to an operand
// outside its domain.
type DomainError struct {
	// X is the out-of-domain operand as evaluated.
	X float64
	// N is the operand as actually used, after any truncation.
	N float64
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := fmtnum(err.X) + " outside domain of " + err.Func
	if err.Func == "!" {
		r += ": factorial of a negative number is undefined"
	}
	return r
}

func (err *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// EvalReader is a shortcut to tokenize, parse, and evaluate an expression.
func EvalReader(src io.RuneScanner, opts ...EvalOption) (Result, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return Result{}, err
	}
	n, err := Parse(toks)
	if err != nil {
		return Result{}, err
	}
	return Eval(n, opts...)
}

// EvalString is a shortcut to tokenize, parse, and evaluate a string
// expression.
func EvalString(src string, opts ...EvalOption) (Result, error) {
	return EvalReader(strings.NewReader(src), opts...)
}


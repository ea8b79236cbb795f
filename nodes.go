package arith

import (
	"math"
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. Which fields
// are meaningful depends on Kind: Value for NodeNum, Left for unary nodes,
// and both Left and Right for binary nodes. Trees produced by Parse are never
// modified afterward.
type Node struct {
	Kind  NodeKind
	Value float64
	Left  *Node
	Right *Node
}

// NodeKind is the variant of a Node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNum  // Value
	NodePlus // +Left
	NodeNeg  // -Left
	NodeFact // Left!
	NodeAdd  // Left + Right
	NodeSub  // Left - Right
	NodeMul  // Left * Right
	NodeDiv  // Left / Right
	NodePow  // Left ^ Right
)

var nodeKindNames = [...]string{
	NodeNone: "None",
	NodeNum:  "Num",
	NodePlus: "Plus",
	NodeNeg:  "Neg",
	NodeFact: "Fact",
	NodeAdd:  "Add",
	NodeSub:  "Sub",
	NodeMul:  "Mul",
	NodeDiv:  "Div",
	NodePow:  "Pow",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binops maps binary node kinds to their operator text.
var binops = map[NodeKind]byte{
	NodeAdd: '+',
	NodeSub: '-',
	NodeMul: '*',
	NodeDiv: '/',
	NodePow: '^',
}

// Number creates a leaf node. v must be finite and not negative, as every
// number the parser produces is; a negative value is written as a NodeNeg
// over its magnitude.
func Number(v float64) *Node {
	if math.IsInf(v, 0) || math.IsNaN(v) || math.Signbit(v) {
		panic("arith: Number with value " + fmtnum(v) + " that has no literal form")
	}
	return &Node{Kind: NodeNum, Value: v}
}

// Unary creates a node with one operand. kind must be NodePlus, NodeNeg, or
// NodeFact.
func Unary(kind NodeKind, x *Node) *Node {
	switch kind {
	case NodePlus, NodeNeg, NodeFact:
	default:
		panic("arith: Unary with non-unary kind " + kind.String())
	}
	return &Node{Kind: kind, Left: x}
}

// Binary creates a node with two operands. kind must be one of NodeAdd,
// NodeSub, NodeMul, NodeDiv, or NodePow.
func Binary(kind NodeKind, l, r *Node) *Node {
	if _, ok := binops[kind]; !ok {
		panic("arith: Binary with non-binary kind " + kind.String())
	}
	return &Node{Kind: kind, Left: l, Right: r}
}

// String renders the tree with every operator application wrapped in one pair
// of parentheses, e.g. "(1+(2*3))". The result lexes and parses back to an
// identical tree.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	if n.Kind == NodeNum {
		b.WriteString(fmtnum(n.Value))
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.Kind {
	case NodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	case NodePlus:
		b.WriteByte('+')
		n.Left.fmt(b)
	case NodeNeg:
		b.WriteByte('-')
		n.Left.fmt(b)
	case NodeFact:
		n.Left.fmt(b)
		b.WriteByte('!')
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		n.Left.fmt(b)
		b.WriteByte(binops[n.Kind])
		n.Right.fmt(b)
	default:
		panic("arith: invalid node kind " + n.Kind.String() + " after writing " + b.String())
	}
}

// fmtnum formats a number the way the lexer reads numbers: plain decimal,
// never an exponent.
func fmtnum(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Equal reports whether two trees have the same shape, node kinds, and
// number values.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind {
		return false
	}
	if n.Kind == NodeNum {
		return n.Value == m.Value || math.IsNaN(n.Value) && math.IsNaN(m.Value)
	}
	return n.Left.Equal(m.Left) && n.Right.Equal(m.Right)
}

package parser

import (
	"fmt"
	"sort"
)

// Node is the base node of a closure body expression
type Node interface {
	Node()
	String() string
}

// baseNode implements the Node interface, to recuce code duplication
type baseNode struct{}

func (n baseNode) Node() {}

// OperatorNode is a binary arithmetic operation
type OperatorNode struct {
	baseNode

	Operator Operator
	Left     Node
	Right    Node
}

func (on OperatorNode) String() string {
	return fmt.Sprintf("(%s %s %s)", on.Left, on.Operator, on.Right)
}

type Operator string

const (
	OP_ADD Operator = "+"
	OP_SUB Operator = "-"
	OP_MUL Operator = "*"
)

var opsCharToOp = map[string]Operator{
	"+": OP_ADD,
	"-": OP_SUB,
	"*": OP_MUL,
}

// ConstantNode is an integer literal
type ConstantNode struct {
	baseNode

	Value int64
}

func (cn ConstantNode) String() string {
	return fmt.Sprintf("%d", cn.Value)
}

// NameNode refers to a captured value or a call argument
type NameNode struct {
	baseNode

	Name string
}

func (nn NameNode) String() string {
	return nn.Name
}

// Names returns the sorted, de-duplicated identifiers referenced by n
func Names(n Node) []string {
	seen := map[string]struct{}{}
	collectNames(n, seen)

	res := make([]string, 0, len(seen))
	for name := range seen {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func collectNames(n Node, seen map[string]struct{}) {
	switch v := n.(type) {
	case NameNode:
		seen[v.Name] = struct{}{}
	case OperatorNode:
		collectNames(v.Left, seen)
		collectNames(v.Right, seen)
	}
}

// Package ast defines the normalized query syntax tree consumed by the
// DSL compiler.
package ast

import (
	"sort"
	"strings"
)

// Expr represents one node of a normalized query.
type Expr interface {
	exprNode()
}

// CompareOp represents a comparison operator.
type CompareOp int

const (
	OpContains CompareOp = iota // : (contains)
	OpEq                        // = (equals; same semantics as contains)
	OpDoesNotContain            // !: (does not contain)
	OpNe                        // != (not equals; same semantics as does-not-contain)
	OpRegex                     // =~ (regular expression)
	OpGt                        // >
	OpGte                       // >=
	OpLt                        // <
	OpLte                       // <=
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpDoesNotContain:
		return "!:"
	case OpNe:
		return "!="
	case OpRegex:
		return "=~"
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return ":"
	}
}

// AndList is a conjunction of child expressions.
type AndList struct {
	Children []Expr
}

func (*AndList) exprNode() {}

// OrList is a disjunction of child expressions.
type OrList struct {
	Children []Expr
}

func (*OrList) exprNode() {}

// Not negates its child.
type Not struct {
	Child Expr
}

func (*Not) exprNode() {}

// WithList groups children under a common nested document path. The path is
// derived from the children's field names and must agree across all of them.
type WithList struct {
	Children []Expr
}

func (*WithList) exprNode() {}

// Comparison is a leaf condition: field <op> term.
type Comparison struct {
	Field QualifiedField
	Op    CompareOp
	Term  Term
}

func (*Comparison) exprNode() {}

// Linked scopes its child to a different index, reachable from the current
// root through Link.
type Linked struct {
	Link  IndexLink
	Child Expr
}

func (*Linked) exprNode() {}

// NestedPath derives the shared nested path of a WithList's children. The
// nested path of a field is everything before its final dot, so "address.city"
// groups under "address". Returns ok=false when the children disagree or no
// child carries a dotted field.
func NestedPath(children []Expr) (string, bool) {
	path := ""
	for _, child := range children {
		for _, field := range UsedFields(child) {
			idx := strings.LastIndex(field, ".")
			if idx < 0 {
				return "", false
			}
			p := field[:idx]
			if path == "" {
				path = p
			} else if path != p {
				return "", false
			}
		}
	}
	return path, path != ""
}

// UsedFields returns the sorted, de-duplicated canonical field names
// referenced anywhere in the expression.
func UsedFields(expr Expr) []string {
	set := make(map[string]bool)
	collectFields(expr, set)

	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func collectFields(expr Expr, set map[string]bool) {
	switch e := expr.(type) {
	case *AndList:
		for _, c := range e.Children {
			collectFields(c, set)
		}
	case *OrList:
		for _, c := range e.Children {
			collectFields(c, set)
		}
	case *WithList:
		for _, c := range e.Children {
			collectFields(c, set)
		}
	case *Not:
		collectFields(e.Child, set)
	case *Linked:
		collectFields(e.Child, set)
	case *Comparison:
		set[e.Field.FieldName()] = true
	}
}

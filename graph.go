package sqlcraft

import (
	"fmt"
	"reflect"
)

// Values form a tree rooted at a statement, but setters can attach a value
// that is already in use elsewhere. Attaching an ancestor below one of its
// own descendants would make SQL recurse forever, so every setter that adds
// an edge checks refersTo first.

// refersTo reports whether target is node or is reachable from node through
// clauses, predicates, sources, sub-queries and expressions.
func refersTo(node, target any) bool {
	return walk(node, target, make(map[any]bool))
}

func walk(node, target any, seen map[any]bool) bool {
	if isNil(node) {
		return false
	}
	if node == target {
		return true
	}
	// Only pointer values have children.
	if reflect.ValueOf(node).Kind() != reflect.Pointer || seen[node] {
		return false
	}
	seen[node] = true
	for _, child := range children(node) {
		if walk(child, target, seen) {
			return true
		}
	}
	return false
}

// children lists the values a node renders. Leaves return nil.
func children(node any) []any {
	var out []any
	switch n := node.(type) {
	case *Select:
		for _, c := range n.columns {
			out = append(out, c)
		}
		out = append(out, n.from)
		for _, j := range n.joins {
			out = append(out, j)
		}
		out = append(out, n.where, n.groupBy, n.orderBy)
	case *SetOperation:
		out = append(out, n.first, n.second)
	case *From:
		out = append(out, n.source)
	case *Join:
		out = append(out, n.target, n.on)
	case *Where:
		out = append(out, n.predicate)
	case *GroupBy:
		for _, c := range n.columns {
			out = append(out, c)
		}
		out = append(out, n.having)
	case *OrderBy:
		for _, o := range n.items {
			out = append(out, o)
		}
	case *Ordering:
		out = append(out, n.expr)
	case *AliasExpr:
		out = append(out, n.expr)
	case *Subquery:
		out = append(out, n.query)
	case *Condition:
		for _, p := range n.operands {
			out = append(out, p)
		}
	case *InOp:
		if sq, ok := n.needle.(SubQuery); ok {
			out = append(out, sq.Query)
		}
	}
	return out
}

// checkCycle rejects attaching child below parent when child already refers
// to parent.
func checkCycle(field string, parent, child any) error {
	if refersTo(child, parent) {
		return fmt.Errorf("%w: %s refers back to the value it is attached to", ErrInvalidArgument, field)
	}
	return nil
}

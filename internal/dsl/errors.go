package dsl

import "fmt"

// Compilation failures are all fatal: a query that cannot be fully translated
// must never produce a semantically wrong backend query. Each failure class
// below aborts the whole compilation and surfaces to the caller.

// UnsupportedConstructError reports an AST node, term, or opcode combination
// with no defined backend mapping.
type UnsupportedConstructError struct {
	Kind string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Kind)
}

// PathNotFoundError reports that no chain of index links connects the query's
// root index to a linked index. This is a topology defect, not a transient
// condition.
type PathNotFoundError struct {
	Root   string
	Target string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no index link path from %s to %s", e.Root, e.Target)
}

// AmbiguousNestedPathError reports a WITH group whose children do not agree
// on a single nested path.
type AmbiguousNestedPathError struct {
	Node string
}

func (e *AmbiguousNestedPathError) Error() string {
	return fmt.Sprintf("could not determine nested path for %s", e.Node)
}

// CollaboratorError wraps a failed catalog, topology, or visibility lookup.
type CollaboratorError struct {
	Stage string // "catalog", "topology", or "visibility"
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Package dsl compiles a normalized query AST into Elasticsearch Query DSL.
//
// The compiler is a pure tree transform: it reads the AST and the catalog and
// topology snapshots it is handed, allocates its own result tree, and mutates
// nothing. Independent compilations may run concurrently without
// coordination.
package dsl

import (
	"fmt"

	"github.com/sifthq/sift/internal/ast"
)

// docType is the document type marker carried by every subselect clause.
const docType = "_doc"

// IndexOptions is the catalog's view of one index: its canonical backend name
// plus opaque backend options.
type IndexOptions struct {
	IndexName string
	Options   map[string]string
}

// Catalog resolves logical index references against the host system's
// catalog.
type Catalog interface {
	// Resolve maps a logical index name to its backend name and options.
	Resolve(index string) (*IndexOptions, error)

	// Links enumerates the outgoing index links declared on an index.
	Links(index string) ([]ast.IndexLink, error)
}

// VisibilityFilter builds the consistency filter applied at every join
// boundary: the clause restricting a joined index to rows currently visible
// under the host system's consistency rules.
type VisibilityFilter interface {
	Clause(indexName string) (map[string]interface{}, error)
}

// Options controls compilation behavior.
type Options struct {
	// IgnoreVisibility skips visibility-clause injection at join boundaries.
	IgnoreVisibility bool
}

// Compiler translates expressions rooted at a given index into backend query
// trees.
type Compiler struct {
	catalog    Catalog
	visibility VisibilityFilter
	opts       Options
}

// NewCompiler creates a compiler over the given collaborators. visibility may
// be nil only when opts.IgnoreVisibility is set.
func NewCompiler(catalog Catalog, visibility VisibilityFilter, opts Options) *Compiler {
	return &Compiler{catalog: catalog, visibility: visibility, opts: opts}
}

// Compile translates expr, evaluated against the index identified by root,
// into the backend's JSON query tree.
func (c *Compiler) Compile(root ast.IndexLink, expr ast.Expr) (map[string]interface{}, error) {
	return c.exprToDSL(root, expr)
}

func (c *Compiler) exprToDSL(root ast.IndexLink, expr ast.Expr) (map[string]interface{}, error) {
	switch e := expr.(type) {
	case *ast.WithList:
		path, ok := ast.NestedPath(e.Children)
		if !ok {
			return nil, &AmbiguousNestedPathError{Node: ast.Render(e)}
		}
		children, err := c.compileChildren(root, e.Children)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"nested": map[string]interface{}{
				"path": path,
				"query": map[string]interface{}{
					"bool": map[string]interface{}{"must": children},
				},
			},
		}, nil

	case *ast.AndList:
		children, err := c.compileChildren(root, e.Children)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{"must": children},
		}, nil

	case *ast.OrList:
		children, err := c.compileChildren(root, e.Children)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{"should": children},
		}, nil

	case *ast.Not:
		child, err := c.exprToDSL(root, e.Child)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{"must_not": []interface{}{child}},
		}, nil

	case *ast.Comparison:
		return termToDSL(e.Field, e.Term, e.Op)

	case *ast.Linked:
		return c.linkedToDSL(root, e)

	default:
		return nil, &UnsupportedConstructError{Kind: fmt.Sprintf("expression %T", expr)}
	}
}

func (c *Compiler) compileChildren(root ast.IndexLink, children []ast.Expr) ([]interface{}, error) {
	out := make([]interface{}, len(children))
	for i, child := range children {
		dsl, err := c.exprToDSL(root, child)
		if err != nil {
			return nil, err
		}
		out[i] = dsl
	}
	return out, nil
}

// linkedToDSL folds a cross-index subtree into a chain of subselect clauses.
//
// The hop path from root to the target is resolved first. The child is
// compiled against the target index, then each hop is applied from the target
// end back toward the root: the accumulated query gains the hop's visibility
// filter and is wrapped in a subselect bound to the hop's join fields. Each
// joined index carries its own visibility filter because a row folded in from
// another index must itself be a visible row of that index.
func (c *Compiler) linkedToDSL(root ast.IndexLink, e *ast.Linked) (map[string]interface{}, error) {
	if root.Eq(e.Link) {
		// Target is the root itself: no join wrapper.
		return c.exprToDSL(root, e.Child)
	}

	path, err := findPath(root, e.Link.QualifiedIndex, c.catalog.Links)
	if err != nil {
		return nil, err
	}

	current, err := c.exprToDSL(e.Link, e.Child)
	if err != nil {
		return nil, err
	}

	for i := len(path) - 1; i >= 0; i-- {
		hop := path[i]

		opts, err := c.catalog.Resolve(hop.QualifiedIndex)
		if err != nil {
			return nil, &CollaboratorError{Stage: "catalog", Err: err}
		}

		query := current
		if !c.opts.IgnoreVisibility {
			visibility, err := c.visibility.Clause(opts.IndexName)
			if err != nil {
				return nil, &CollaboratorError{Stage: "visibility", Err: err}
			}
			query = map[string]interface{}{
				"bool": map[string]interface{}{
					"must":   []interface{}{current},
					"filter": []interface{}{visibility},
				},
			}
		}

		current = map[string]interface{}{
			"subselect": map[string]interface{}{
				"index":           opts.IndexName,
				"type":            docType,
				"left_fieldname":  hop.LeftField,
				"right_fieldname": hop.RightField,
				"query":           query,
			},
		}
	}

	return current, nil
}

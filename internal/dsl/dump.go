package dsl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sifthq/sift/internal/ast"
)

// DumpQuery compiles expr against root and pretty-prints the resulting
// backend query.
func (c *Compiler) DumpQuery(root ast.IndexLink, expr ast.Expr) (string, error) {
	dsl, err := c.Compile(root, expr)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(dsl, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render query: %w", err)
	}
	return string(out), nil
}

// DebugQuery renders the normalized query, the fields it touches, and its
// syntax tree. A developer-facing entry point, not part of the compile
// contract.
func DebugQuery(expr ast.Expr) (string, error) {
	tree, err := ast.EncodeExpr(expr)
	if err != nil {
		return "", err
	}
	pretty, err := json.MarshalIndent(json.RawMessage(tree), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render syntax tree: %w", err)
	}

	var b strings.Builder
	b.WriteString("Normalized Query:\n   ")
	b.WriteString(ast.Render(expr))
	b.WriteString("\nUsed Fields:\n   ")
	b.WriteString(strings.Join(ast.UsedFields(expr), ", "))
	b.WriteString("\nSyntaxTree:\n   ")
	b.WriteString(strings.ReplaceAll(string(pretty), "\n", "\n   "))
	return b.String(), nil
}

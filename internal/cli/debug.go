package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sifthq/sift/internal/ast"
	"github.com/sifthq/sift/internal/dsl"
)

var debugCmd = &cobra.Command{
	Use:   "debug <query.json>",
	Short: "Show the normalized query, its fields, and its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readQueryInput(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		expr, err := ast.DecodeExpr(data)
		if err != nil {
			return handleError(ErrQueryInvalid, err, "check the tagged JSON encoding of the query tree")
		}

		if isJSONOutput() {
			tree, err := ast.EncodeExpr(expr)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			outputSuccess(map[string]interface{}{
				"normalized":  ast.Render(expr),
				"used_fields": ast.UsedFields(expr),
				"syntax_tree": tree,
			})
			return nil
		}

		out, err := dsl.DebugQuery(expr)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
}

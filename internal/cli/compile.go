package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sifthq/sift/internal/ast"
	"github.com/sifthq/sift/internal/ui"
)

var compileCmd = &cobra.Command{
	Use:   "compile <query.json>",
	Short: "Compile a query tree into Elasticsearch Query DSL",
	Long: `Compile a JSON-encoded query tree into the backend query and print it.

The argument is a file containing the tagged JSON form of a query, or "-" to
read it from stdin. The root index is required; cross-index subtrees are
folded into subselect clauses along the link path from that root.

Examples:
  sift compile --index public.contacts query.json
  cat query.json | sift compile --index public.contacts -
  sift compile --index public.contacts --ignore-visibility query.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootIndex, _ := cmd.Flags().GetString("index")
		if rootIndex == "" {
			return handleErrorMsg(ErrMissingArgument, "specify the root index with --index", "")
		}
		ignoreVisibility, _ := cmd.Flags().GetBool("ignore-visibility")
		compact, _ := cmd.Flags().GetBool("compact")

		data, err := readQueryInput(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		expr, err := ast.DecodeExpr(data)
		if err != nil {
			return handleError(ErrQueryInvalid, err, "check the tagged JSON encoding of the query tree")
		}

		store, err := openCatalog()
		if err != nil {
			return handleError(ErrCatalogError, err, "")
		}
		defer store.Close()

		compiler, err := newCompiler(store, ignoreVisibility)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		compiled, err := compiler.Compile(ast.SelfLink(rootIndex), expr)
		if err != nil {
			return handleError(compileErrorCode(err), err, "")
		}

		if isJSONOutput() {
			outputSuccess(compiled)
			return nil
		}

		var out []byte
		if compact || !ui.NewDisplayContext().IsTTY {
			out, err = json.Marshal(compiled)
		} else {
			out, err = json.MarshalIndent(compiled, "", "  ")
		}
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	compileCmd.Flags().String("index", "", "logical name of the root index")
	compileCmd.Flags().Bool("ignore-visibility", false, "skip visibility filters at join boundaries")
	compileCmd.Flags().Bool("compact", false, "emit compact JSON even on a terminal")
	rootCmd.AddCommand(compileCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sifthq/sift/internal/ui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the index catalog and link topology",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load <topology.yaml>",
	Short: "Load index and link definitions from a topology file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return handleError(ErrCatalogError, err, "")
		}
		defer store.Close()

		if err := store.LoadFile(args[0]); err != nil {
			return handleError(ErrTopologyError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"loaded": args[0]})
			return nil
		}
		fmt.Println(ui.Successf("loaded topology from %s", args[0]))
		return nil
	},
}

var catalogLinksCmd = &cobra.Command{
	Use:   "links <index>",
	Short: "List the outgoing links declared on an index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return handleError(ErrCatalogError, err, "")
		}
		defer store.Close()

		links, err := store.Links(args[0])
		if err != nil {
			return handleError(ErrCatalogError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(links)
			return nil
		}

		if len(links) == 0 {
			fmt.Printf("no links declared on %s\n", ui.IndexName(args[0]))
			return nil
		}
		fmt.Println(ui.Header(args[0]))
		for _, link := range links {
			fmt.Printf("  %s -> %s (%s = %s)\n",
				ui.IndexName(args[0]), ui.IndexName(link.QualifiedIndex),
				link.LeftField, link.RightField)
		}
		return nil
	},
}

var catalogResolveCmd = &cobra.Command{
	Use:   "resolve <index>",
	Short: "Show the backend name and options for an index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return handleError(ErrCatalogError, err, "")
		}
		defer store.Close()

		opts, err := store.Resolve(args[0])
		if err != nil {
			return handleError(ErrIndexNotFound, err,
				"Run 'sift catalog load' to define indexes")
		}

		if isJSONOutput() {
			outputSuccess(opts)
			return nil
		}
		fmt.Printf("%s -> %s\n", ui.IndexName(args[0]), opts.IndexName)
		for k, v := range opts.Options {
			fmt.Printf("  %s = %s\n", k, v)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogLinksCmd)
	catalogCmd.AddCommand(catalogResolveCmd)
	rootCmd.AddCommand(catalogCmd)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sifthq/sift/internal/catalog"
	"github.com/sifthq/sift/internal/dsl"
	"github.com/sifthq/sift/internal/visibility"
)

// readQueryInput reads the raw query bytes from a file argument, or from
// stdin when the argument is "-".
func readQueryInput(arg string) ([]byte, error) {
	var data []byte
	var err error
	if arg == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read query: %w", err)
	}
	return data, nil
}

// openCatalog opens the catalog store at the resolved path.
func openCatalog() (*catalog.Store, error) {
	return catalog.Open(resolvedCatalogPath())
}

// newCompiler builds a compiler over the catalog, honoring the configured
// visibility settings. When no snapshot is configured the filter defaults to
// the widest horizon: every committed row is visible.
func newCompiler(store *catalog.Store, ignoreVisibility bool) (*dsl.Compiler, error) {
	opts := dsl.Options{IgnoreVisibility: ignoreVisibility || cfg.IgnoreVisibility}
	if opts.IgnoreVisibility {
		return dsl.NewCompiler(store, nil, opts), nil
	}

	snapshot := visibility.Snapshot{
		Xmax:       cfg.Snapshot.Xmax,
		ActiveXids: cfg.Snapshot.ActiveXids,
	}
	if snapshot.Xmax == 0 {
		snapshot.Xmax = math.MaxUint64
	}
	filter, err := visibility.New(snapshot)
	if err != nil {
		return nil, err
	}
	return dsl.NewCompiler(store, filter, opts), nil
}

// compileErrorCode maps a compilation failure onto a stable error code.
func compileErrorCode(err error) string {
	var unsupported *dsl.UnsupportedConstructError
	var pathNotFound *dsl.PathNotFoundError
	var ambiguous *dsl.AmbiguousNestedPathError
	var collaborator *dsl.CollaboratorError

	switch {
	case errors.As(err, &unsupported):
		return ErrUnsupportedConstruct
	case errors.As(err, &pathNotFound):
		return ErrPathNotFound
	case errors.As(err, &ambiguous):
		return ErrAmbiguousNestedPath
	case errors.As(err, &collaborator):
		return ErrCollaboratorFailure
	default:
		return ErrInternal
	}
}

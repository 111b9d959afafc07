package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by callers.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Catalog errors
	ErrCatalogError  = "CATALOG_ERROR"
	ErrIndexNotFound = "INDEX_NOT_FOUND"
	ErrTopologyError = "TOPOLOGY_INVALID"

	// Compilation errors
	ErrQueryInvalid         = "QUERY_INVALID"
	ErrUnsupportedConstruct = "UNSUPPORTED_CONSTRUCT"
	ErrPathNotFound         = "PATH_NOT_FOUND"
	ErrAmbiguousNestedPath  = "AMBIGUOUS_NESTED_PATH"
	ErrCollaboratorFailure  = "COLLABORATOR_FAILURE"

	// File errors
	ErrFileReadError = "FILE_READ_ERROR"

	// Input errors
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

package ast

// QualifiedField is a field name qualified by the index it belongs to.
type QualifiedField struct {
	// Index is the logical name of the index the field is qualified against.
	// Empty means the query's root index.
	Index string

	// Field is the document field name, possibly dotted for nested objects
	// ("address.city").
	Field string
}

// FieldName returns the canonical backend field name.
func (f QualifiedField) FieldName() string {
	return f.Field
}

func (f QualifiedField) String() string {
	if f.Index == "" {
		return f.Field
	}
	return f.Index + "." + f.Field
}

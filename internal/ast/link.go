package ast

// IndexLink is a declared join between two indexes: documents in the source
// index whose LeftField matches RightField on documents in QualifiedIndex.
type IndexLink struct {
	// QualifiedIndex is the logical name of the target index.
	QualifiedIndex string

	// LeftField is the joining field on the source side.
	LeftField string

	// RightField is the joining field on the target side.
	RightField string
}

// SelfLink returns the link representing the root index itself: no join, both
// field names empty.
func SelfLink(qualifiedIndex string) IndexLink {
	return IndexLink{QualifiedIndex: qualifiedIndex}
}

// Eq reports whether two links point at the same index. Field bindings are
// intentionally ignored; a link identifies its target.
func (l IndexLink) Eq(other IndexLink) bool {
	return l.QualifiedIndex == other.QualifiedIndex
}

func (l IndexLink) String() string {
	if l.LeftField == "" && l.RightField == "" {
		return l.QualifiedIndex
	}
	return l.LeftField + "=<" + l.QualifiedIndex + ">" + l.RightField
}

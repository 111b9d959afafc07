package ast

// Term is a leaf value in a comparison.
type Term interface {
	termNode()
}

// NullTerm matches documents where the field is absent.
type NullTerm struct{}

func (*NullTerm) termNode() {}

// MatchAllTerm matches documents where the field is present, regardless of
// value.
type MatchAllTerm struct{}

func (*MatchAllTerm) termNode() {}

// StringTerm is an exact value. Range comparisons (>, >=, <, <=) carry their
// bound as a StringTerm.
type StringTerm struct {
	Value string
	Boost *float64
}

func (*StringTerm) termNode() {}

// PhraseTerm is an analyzed phrase.
type PhraseTerm struct {
	Value string
	Boost *float64
}

func (*PhraseTerm) termNode() {}

// PhraseWithWildcardTerm is a phrase containing wildcard characters. Only a
// single trailing '*' is encodable.
type PhraseWithWildcardTerm struct {
	Value string
	Boost *float64
}

func (*PhraseWithWildcardTerm) termNode() {}

// WildcardTerm is a wildcard pattern ('*' and '?').
type WildcardTerm struct {
	Value string
	Boost *float64
}

func (*WildcardTerm) termNode() {}

// FuzzyTerm is a fuzzy match with a prefix length.
type FuzzyTerm struct {
	Value        string
	PrefixLength int
	Boost        *float64
}

func (*FuzzyTerm) termNode() {}

// RangeTerm is an inclusive start..end range.
type RangeTerm struct {
	Start string
	End   string
	Boost *float64
}

func (*RangeTerm) termNode() {}

// RegexTerm is a regular expression.
type RegexTerm struct {
	Value string
	Boost *float64
}

func (*RegexTerm) termNode() {}

// ArrayTerm is a parsed array of member terms with any-of semantics.
type ArrayTerm struct {
	Terms []Term
	Boost *float64
}

func (*ArrayTerm) termNode() {}

// Boost is a convenience constructor for optional boost values.
func Boost(b float64) *float64 { return &b }

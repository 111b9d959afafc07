package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Render returns the normalized query-language form of an expression. Used by
// the debug entry point; the compiler itself never consumes this.
func Render(expr Expr) string {
	switch e := expr.(type) {
	case *AndList:
		return renderList(e.Children, " AND ")
	case *OrList:
		return renderList(e.Children, " OR ")
	case *WithList:
		return renderList(e.Children, " WITH ")
	case *Not:
		return "NOT (" + Render(e.Child) + ")"
	case *Linked:
		return "#link<" + e.Link.String() + ">(" + Render(e.Child) + ")"
	case *Comparison:
		return e.Field.FieldName() + e.Op.String() + RenderTerm(e.Term)
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

func renderList(children []Expr, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = Render(c)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// RenderTerm returns the normalized query-language form of a term.
func RenderTerm(term Term) string {
	switch t := term.(type) {
	case *NullTerm:
		return "NULL"
	case *MatchAllTerm:
		return "*"
	case *StringTerm:
		return quoted(t.Value, t.Boost)
	case *PhraseTerm:
		return quoted(t.Value, t.Boost)
	case *PhraseWithWildcardTerm:
		return quoted(t.Value, t.Boost)
	case *WildcardTerm:
		return quoted(t.Value, t.Boost)
	case *FuzzyTerm:
		return quoted(t.Value, nil) + "~" + strconv.Itoa(t.PrefixLength) + boostSuffix(t.Boost)
	case *RangeTerm:
		return quoted(t.Start, nil) + " /TO/ " + quoted(t.End, nil) + boostSuffix(t.Boost)
	case *RegexTerm:
		return "/" + t.Value + "/" + boostSuffix(t.Boost)
	case *ArrayTerm:
		parts := make([]string, len(t.Terms))
		for i, m := range t.Terms {
			parts[i] = RenderTerm(m)
		}
		return "[" + strings.Join(parts, ",") + "]" + boostSuffix(t.Boost)
	default:
		return fmt.Sprintf("<unknown term %T>", term)
	}
}

func quoted(v string, boost *float64) string {
	return strconv.Quote(v) + boostSuffix(boost)
}

func boostSuffix(boost *float64) string {
	if boost == nil {
		return ""
	}
	return "^" + strconv.FormatFloat(*boost, 'g', -1, 64)
}

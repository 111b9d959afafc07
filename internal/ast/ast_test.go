package ast

import (
	"reflect"
	"testing"
)

func field(name string) QualifiedField {
	return QualifiedField{Field: name}
}

func TestNestedPathAgreement(t *testing.T) {
	children := []Expr{
		&Comparison{Field: field("address.city"), Op: OpContains, Term: &StringTerm{Value: "Oslo"}},
		&Comparison{Field: field("address.zip"), Op: OpContains, Term: &StringTerm{Value: "0150"}},
	}

	path, ok := NestedPath(children)
	if !ok || path != "address" {
		t.Errorf("expected path address, got %q (ok=%t)", path, ok)
	}
}

func TestNestedPathDeepFields(t *testing.T) {
	children := []Expr{
		&Comparison{Field: field("contact.address.city"), Op: OpContains, Term: &StringTerm{Value: "Oslo"}},
		&Comparison{Field: field("contact.address.zip"), Op: OpContains, Term: &StringTerm{Value: "0150"}},
	}

	path, ok := NestedPath(children)
	if !ok || path != "contact.address" {
		t.Errorf("expected path contact.address, got %q (ok=%t)", path, ok)
	}
}

func TestNestedPathDisagreement(t *testing.T) {
	children := []Expr{
		&Comparison{Field: field("address.city"), Op: OpContains, Term: &StringTerm{Value: "Oslo"}},
		&Comparison{Field: field("employer.name"), Op: OpContains, Term: &StringTerm{Value: "Acme"}},
	}

	if _, ok := NestedPath(children); ok {
		t.Errorf("disagreeing paths should not resolve")
	}
}

func TestNestedPathRequiresDottedFields(t *testing.T) {
	children := []Expr{
		&Comparison{Field: field("city"), Op: OpContains, Term: &StringTerm{Value: "Oslo"}},
	}

	if _, ok := NestedPath(children); ok {
		t.Errorf("an undotted field has no nested path")
	}
}

func TestUsedFieldsSortedAndDeduplicated(t *testing.T) {
	expr := &AndList{Children: []Expr{
		&Comparison{Field: field("zeta"), Op: OpContains, Term: &StringTerm{Value: "1"}},
		&Not{Child: &Comparison{Field: field("alpha"), Op: OpEq, Term: &StringTerm{Value: "2"}}},
		&Linked{
			Link:  IndexLink{QualifiedIndex: "public.orgs"},
			Child: &Comparison{Field: field("alpha"), Op: OpEq, Term: &StringTerm{Value: "3"}},
		},
	}}

	got := UsedFields(expr)
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			"comparison",
			&Comparison{Field: field("name"), Op: OpContains, Term: &StringTerm{Value: "john"}},
			`name:"john"`,
		},
		{
			"boosted",
			&Comparison{Field: field("name"), Op: OpEq, Term: &StringTerm{Value: "john", Boost: Boost(2.5)}},
			`name="john"^2.5`,
		},
		{
			"and",
			&AndList{Children: []Expr{
				&Comparison{Field: field("a"), Op: OpGt, Term: &StringTerm{Value: "1"}},
				&Comparison{Field: field("b"), Op: OpLte, Term: &StringTerm{Value: "2"}},
			}},
			`(a>"1" AND b<="2")`,
		},
		{
			"not",
			&Not{Child: &Comparison{Field: field("f"), Op: OpContains, Term: &NullTerm{}}},
			`NOT (f:NULL)`,
		},
		{
			"linked",
			&Linked{
				Link:  IndexLink{QualifiedIndex: "public.orgs", LeftField: "org_id", RightField: "id"},
				Child: &Comparison{Field: field("name"), Op: OpContains, Term: &MatchAllTerm{}},
			},
			`#link<org_id=<public.orgs>id>(name:*)`,
		},
		{
			"array",
			&Comparison{Field: field("tags"), Op: OpContains, Term: &ArrayTerm{Terms: []Term{
				&StringTerm{Value: "a"},
				&WildcardTerm{Value: "b*"},
			}}},
			`tags:["a","b*"]`,
		},
		{
			"range term",
			&Comparison{Field: field("age"), Op: OpContains, Term: &RangeTerm{Start: "1", End: "9"}},
			`age:"1" /TO/ "9"`,
		},
		{
			"regex",
			&Comparison{Field: field("f"), Op: OpRegex, Term: &RegexTerm{Value: "jo.*"}},
			`f=~/jo.*/`,
		},
		{
			"fuzzy",
			&Comparison{Field: field("f"), Op: OpContains, Term: &FuzzyTerm{Value: "john", PrefixLength: 3}},
			`f:"john"~3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.expr); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCompareOpString(t *testing.T) {
	ops := map[CompareOp]string{
		OpContains:       ":",
		OpEq:             "=",
		OpDoesNotContain: "!:",
		OpNe:             "!=",
		OpRegex:          "=~",
		OpGt:             ">",
		OpGte:            ">=",
		OpLt:             "<",
		OpLte:            "<=",
	}
	for op, want := range ops {
		if got := op.String(); got != want {
			t.Errorf("op %d: expected %q, got %q", op, want, got)
		}
	}
}

func TestSelfLink(t *testing.T) {
	link := SelfLink("public.contacts")
	if link.QualifiedIndex != "public.contacts" || link.LeftField != "" || link.RightField != "" {
		t.Errorf("self link should carry only the index name, got %+v", link)
	}
	if !link.Eq(IndexLink{QualifiedIndex: "public.contacts", LeftField: "x", RightField: "y"}) {
		t.Errorf("links to the same index should be equal regardless of fields")
	}
}

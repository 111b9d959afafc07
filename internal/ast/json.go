package ast

import (
	"encoding/json"
	"fmt"
)

// The wire form of an expression is a single-key tagged object, e.g.
//
//	{"and": [...]}
//	{"not": {...}}
//	{"cmp": {"field": "name", "op": ":", "term": {"string": {"value": "x"}}}}
//	{"linked": {"index": "public.orgs", "left_field": "org_id",
//	            "right_field": "id", "expr": {...}}}
//
// Terms follow the same convention: {"string": {...}}, {"null": true}, etc.
// This is the format the CLI accepts in place of a parsed query.

var opNames = map[string]CompareOp{
	":":  OpContains,
	"=":  OpEq,
	"!:": OpDoesNotContain,
	"!=": OpNe,
	"=~": OpRegex,
	">":  OpGt,
	">=": OpGte,
	"<":  OpLt,
	"<=": OpLte,
}

// DecodeExpr parses the tagged JSON form of an expression.
func DecodeExpr(data []byte) (Expr, error) {
	var node map[string]json.RawMessage
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}
	if len(node) != 1 {
		return nil, fmt.Errorf("expression must have exactly one tag, got %d", len(node))
	}

	for tag, raw := range node {
		switch tag {
		case "and":
			children, err := decodeExprList(raw)
			if err != nil {
				return nil, err
			}
			return &AndList{Children: children}, nil
		case "or":
			children, err := decodeExprList(raw)
			if err != nil {
				return nil, err
			}
			return &OrList{Children: children}, nil
		case "with":
			children, err := decodeExprList(raw)
			if err != nil {
				return nil, err
			}
			return &WithList{Children: children}, nil
		case "not":
			child, err := DecodeExpr(raw)
			if err != nil {
				return nil, err
			}
			return &Not{Child: child}, nil
		case "linked":
			var body struct {
				Index      string          `json:"index"`
				LeftField  string          `json:"left_field"`
				RightField string          `json:"right_field"`
				Expr       json.RawMessage `json:"expr"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("invalid linked node: %w", err)
			}
			child, err := DecodeExpr(body.Expr)
			if err != nil {
				return nil, err
			}
			return &Linked{
				Link: IndexLink{
					QualifiedIndex: body.Index,
					LeftField:      body.LeftField,
					RightField:     body.RightField,
				},
				Child: child,
			}, nil
		case "cmp":
			var body struct {
				Index string          `json:"index,omitempty"`
				Field string          `json:"field"`
				Op    string          `json:"op"`
				Term  json.RawMessage `json:"term"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("invalid comparison: %w", err)
			}
			op, ok := opNames[body.Op]
			if !ok {
				return nil, fmt.Errorf("unknown comparison operator %q", body.Op)
			}
			term, err := DecodeTerm(body.Term)
			if err != nil {
				return nil, err
			}
			return &Comparison{
				Field: QualifiedField{Index: body.Index, Field: body.Field},
				Op:    op,
				Term:  term,
			}, nil
		default:
			return nil, fmt.Errorf("unknown expression tag %q", tag)
		}
	}
	return nil, fmt.Errorf("empty expression")
}

func decodeExprList(raw json.RawMessage) ([]Expr, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("invalid expression list: %w", err)
	}
	children := make([]Expr, len(items))
	for i, item := range items {
		child, err := DecodeExpr(item)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

type valueTermJSON struct {
	Value string   `json:"value"`
	Boost *float64 `json:"boost,omitempty"`
}

// DecodeTerm parses the tagged JSON form of a term.
func DecodeTerm(data []byte) (Term, error) {
	var node map[string]json.RawMessage
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid term: %w", err)
	}
	if len(node) != 1 {
		return nil, fmt.Errorf("term must have exactly one tag, got %d", len(node))
	}

	for tag, raw := range node {
		switch tag {
		case "null":
			return &NullTerm{}, nil
		case "match_all":
			return &MatchAllTerm{}, nil
		case "string":
			v, err := decodeValueTerm(raw)
			if err != nil {
				return nil, err
			}
			return &StringTerm{Value: v.Value, Boost: v.Boost}, nil
		case "phrase":
			v, err := decodeValueTerm(raw)
			if err != nil {
				return nil, err
			}
			return &PhraseTerm{Value: v.Value, Boost: v.Boost}, nil
		case "phrase_wildcard":
			v, err := decodeValueTerm(raw)
			if err != nil {
				return nil, err
			}
			return &PhraseWithWildcardTerm{Value: v.Value, Boost: v.Boost}, nil
		case "wildcard":
			v, err := decodeValueTerm(raw)
			if err != nil {
				return nil, err
			}
			return &WildcardTerm{Value: v.Value, Boost: v.Boost}, nil
		case "regex":
			v, err := decodeValueTerm(raw)
			if err != nil {
				return nil, err
			}
			return &RegexTerm{Value: v.Value, Boost: v.Boost}, nil
		case "fuzzy":
			var body struct {
				Value        string   `json:"value"`
				PrefixLength int      `json:"prefix_length"`
				Boost        *float64 `json:"boost,omitempty"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("invalid fuzzy term: %w", err)
			}
			return &FuzzyTerm{Value: body.Value, PrefixLength: body.PrefixLength, Boost: body.Boost}, nil
		case "range":
			var body struct {
				Start string   `json:"start"`
				End   string   `json:"end"`
				Boost *float64 `json:"boost,omitempty"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("invalid range term: %w", err)
			}
			return &RangeTerm{Start: body.Start, End: body.End, Boost: body.Boost}, nil
		case "array":
			var body struct {
				Terms []json.RawMessage `json:"terms"`
				Boost *float64          `json:"boost,omitempty"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("invalid array term: %w", err)
			}
			terms := make([]Term, len(body.Terms))
			for i, m := range body.Terms {
				term, err := DecodeTerm(m)
				if err != nil {
					return nil, err
				}
				terms[i] = term
			}
			return &ArrayTerm{Terms: terms, Boost: body.Boost}, nil
		default:
			return nil, fmt.Errorf("unknown term tag %q", tag)
		}
	}
	return nil, fmt.Errorf("empty term")
}

func decodeValueTerm(raw json.RawMessage) (valueTermJSON, error) {
	var v valueTermJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("invalid term body: %w", err)
	}
	return v, nil
}

// EncodeExpr renders an expression back into its tagged JSON form. Inverse of
// DecodeExpr; used by the debug command's syntax-tree output.
func EncodeExpr(expr Expr) (json.RawMessage, error) {
	switch e := expr.(type) {
	case *AndList:
		return encodeExprList("and", e.Children)
	case *OrList:
		return encodeExprList("or", e.Children)
	case *WithList:
		return encodeExprList("with", e.Children)
	case *Not:
		child, err := EncodeExpr(e.Child)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]json.RawMessage{"not": child})
	case *Linked:
		child, err := EncodeExpr(e.Child)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]interface{}{
			"linked": map[string]interface{}{
				"index":       e.Link.QualifiedIndex,
				"left_field":  e.Link.LeftField,
				"right_field": e.Link.RightField,
				"expr":        child,
			},
		})
	case *Comparison:
		term, err := EncodeTerm(e.Term)
		if err != nil {
			return nil, err
		}
		body := map[string]interface{}{
			"field": e.Field.Field,
			"op":    e.Op.String(),
			"term":  term,
		}
		if e.Field.Index != "" {
			body["index"] = e.Field.Index
		}
		return json.Marshal(map[string]interface{}{"cmp": body})
	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

func encodeExprList(tag string, children []Expr) (json.RawMessage, error) {
	items := make([]json.RawMessage, len(children))
	for i, c := range children {
		item, err := EncodeExpr(c)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return json.Marshal(map[string]interface{}{tag: items})
}

// EncodeTerm renders a term back into its tagged JSON form.
func EncodeTerm(term Term) (json.RawMessage, error) {
	switch t := term.(type) {
	case *NullTerm:
		return json.Marshal(map[string]bool{"null": true})
	case *MatchAllTerm:
		return json.Marshal(map[string]bool{"match_all": true})
	case *StringTerm:
		return encodeValueTerm("string", t.Value, t.Boost)
	case *PhraseTerm:
		return encodeValueTerm("phrase", t.Value, t.Boost)
	case *PhraseWithWildcardTerm:
		return encodeValueTerm("phrase_wildcard", t.Value, t.Boost)
	case *WildcardTerm:
		return encodeValueTerm("wildcard", t.Value, t.Boost)
	case *RegexTerm:
		return encodeValueTerm("regex", t.Value, t.Boost)
	case *FuzzyTerm:
		return json.Marshal(map[string]interface{}{
			"fuzzy": map[string]interface{}{
				"value":         t.Value,
				"prefix_length": t.PrefixLength,
				"boost":         t.Boost,
			},
		})
	case *RangeTerm:
		return json.Marshal(map[string]interface{}{
			"range": map[string]interface{}{
				"start": t.Start,
				"end":   t.End,
				"boost": t.Boost,
			},
		})
	case *ArrayTerm:
		items := make([]json.RawMessage, len(t.Terms))
		for i, m := range t.Terms {
			item, err := EncodeTerm(m)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return json.Marshal(map[string]interface{}{
			"array": map[string]interface{}{"terms": items, "boost": t.Boost},
		})
	default:
		return nil, fmt.Errorf("unknown term type %T", term)
	}
}

func encodeValueTerm(tag, value string, boost *float64) (json.RawMessage, error) {
	body := valueTermJSON{Value: value, Boost: boost}
	return json.Marshal(map[string]valueTermJSON{tag: body})
}

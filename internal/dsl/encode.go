package dsl

import (
	"fmt"
	"strings"

	"github.com/sifthq/sift/internal/ast"
)

// termToDSL encodes one (field, term, opcode) leaf. Dispatch is exhaustive;
// an opcode with no mapping is a fatal compilation error.
func termToDSL(field ast.QualifiedField, term ast.Term, op ast.CompareOp) (map[string]interface{}, error) {
	switch op {
	case ast.OpContains, ast.OpEq:
		return eq(field, term)

	case ast.OpDoesNotContain, ast.OpNe:
		inner, err := eq(field, term)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{"must_not": []interface{}{inner}},
		}, nil

	case ast.OpRegex:
		return regex(field, term)

	case ast.OpGt:
		return rangeBound(field, term, "gt")
	case ast.OpGte:
		return rangeBound(field, term, "gte")
	case ast.OpLt:
		return rangeBound(field, term, "lt")
	case ast.OpLte:
		return rangeBound(field, term, "lte")

	default:
		return nil, &UnsupportedConstructError{Kind: fmt.Sprintf("opcode %s", op)}
	}
}

// eq encodes the equality form of every term variant.
func eq(field ast.QualifiedField, term ast.Term) (map[string]interface{}, error) {
	switch t := term.(type) {
	case *ast.NullTerm:
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": []interface{}{
					map[string]interface{}{
						"exists": map[string]interface{}{"field": field.FieldName()},
					},
				},
			},
		}, nil

	case *ast.MatchAllTerm:
		return map[string]interface{}{
			"exists": map[string]interface{}{"field": field.FieldName()},
		}, nil

	case *ast.StringTerm:
		return map[string]interface{}{
			"term": map[string]interface{}{
				field.FieldName(): map[string]interface{}{
					"value": t.Value,
					"boost": boost(t.Boost),
				},
			},
		}, nil

	case *ast.PhraseTerm:
		return map[string]interface{}{
			"match_phrase": map[string]interface{}{
				field.FieldName(): map[string]interface{}{
					"query": t.Value,
					"boost": boost(t.Boost),
				},
			},
		}, nil

	case *ast.PhraseWithWildcardTerm:
		// Only a single trailing '*' is encodable, as a phrase prefix.
		// Anything else would need proximity-chain expansion, which requires
		// analyzing the phrase against the backend; that is an unsupported
		// construct, never a silent degradation.
		if strings.HasSuffix(t.Value, "*") &&
			strings.Count(t.Value, "*") == 1 &&
			!strings.Contains(t.Value, "?") {
			return map[string]interface{}{
				"match_phrase_prefix": map[string]interface{}{
					field.FieldName(): map[string]interface{}{
						"query": strings.TrimSuffix(t.Value, "*"),
						"boost": boost(t.Boost),
					},
				},
			}, nil
		}
		return nil, &UnsupportedConstructError{
			Kind: fmt.Sprintf("phrase with non-right-truncated wildcard %q", t.Value),
		}

	case *ast.WildcardTerm:
		return map[string]interface{}{
			"wildcard": map[string]interface{}{
				field.FieldName(): map[string]interface{}{
					"value": t.Value,
					"boost": boost(t.Boost),
				},
			},
		}, nil

	case *ast.RegexTerm:
		return regex(field, t)

	case *ast.FuzzyTerm:
		return map[string]interface{}{
			"fuzzy": map[string]interface{}{
				field.FieldName(): map[string]interface{}{
					"value":         t.Value,
					"prefix_length": t.PrefixLength,
					"boost":         boost(t.Boost),
				},
			},
		}, nil

	case *ast.RangeTerm:
		return map[string]interface{}{
			"range": map[string]interface{}{
				field.FieldName(): map[string]interface{}{
					"gte":   t.Start,
					"lte":   t.End,
					"boost": boost(t.Boost),
				},
			},
		}, nil

	case *ast.ArrayTerm:
		return eqArray(field, t)

	default:
		return nil, &UnsupportedConstructError{Kind: fmt.Sprintf("term %T", term)}
	}
}

// eqArray partitions array members: plain strings collapse into one terms
// clause, every other member is encoded individually, and the results combine
// with any-of semantics. A single resulting clause is returned unwrapped.
func eqArray(field ast.QualifiedField, array *ast.ArrayTerm) (map[string]interface{}, error) {
	var values []string
	clauses := make([]interface{}, 0, len(array.Terms))

	for _, member := range array.Terms {
		switch m := member.(type) {
		case *ast.StringTerm:
			values = append(values, m.Value)
		case *ast.PhraseTerm, *ast.PhraseWithWildcardTerm, *ast.WildcardTerm,
			*ast.RegexTerm, *ast.FuzzyTerm:
			clause, err := eq(field, member)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, clause)
		default:
			return nil, &UnsupportedConstructError{
				Kind: fmt.Sprintf("term %T in an array", m),
			}
		}
	}

	if len(values) > 0 {
		clauses = append(clauses, map[string]interface{}{
			"terms": map[string]interface{}{field.FieldName(): values},
		})
	}

	if len(clauses) == 1 {
		return clauses[0].(map[string]interface{}), nil
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{"should": clauses},
	}, nil
}

// rangeBound encodes a single-bound range comparison. Range opcodes carry
// their bound as a StringTerm; any other term kind is a fatal mismatch.
func rangeBound(field ast.QualifiedField, term ast.Term, bound string) (map[string]interface{}, error) {
	t, ok := term.(*ast.StringTerm)
	if !ok {
		return nil, &UnsupportedConstructError{
			Kind: fmt.Sprintf("term %T for a range comparison", term),
		}
	}
	return map[string]interface{}{
		"range": map[string]interface{}{
			field.FieldName(): map[string]interface{}{
				bound:   t.Value,
				"boost": boost(t.Boost),
			},
		},
	}, nil
}

func regex(field ast.QualifiedField, term ast.Term) (map[string]interface{}, error) {
	t, ok := term.(*ast.RegexTerm)
	if !ok {
		return nil, &UnsupportedConstructError{
			Kind: fmt.Sprintf("term %T for a regex comparison", term),
		}
	}
	return map[string]interface{}{
		"regex": map[string]interface{}{
			field.FieldName(): map[string]interface{}{
				"value": t.Value,
				"boost": boost(t.Boost),
			},
		},
	}, nil
}

// boost applies the default boost exactly at encoding time.
func boost(b *float64) float64 {
	if b == nil {
		return 1.0
	}
	return *b
}

// Package visibility builds the per-index consistency filter injected at
// join boundaries.
//
// Documents carry the transaction ids that created and (when deleted) removed
// them in the sift_xmin and sift_xmax fields. A snapshot pins which
// transactions a query is allowed to see; the clause built here restricts a
// joined index to rows visible under that snapshot.
package visibility

import "fmt"

// Field names stamped onto every indexed document by the ingest layer.
const (
	FieldXmin = "sift_xmin"
	FieldXmax = "sift_xmax"
)

// Snapshot pins the transaction horizon for one compilation.
type Snapshot struct {
	// Xmax is the first transaction id not yet visible. Rows created at or
	// after Xmax are invisible.
	Xmax uint64

	// ActiveXids are transactions in flight when the snapshot was taken;
	// their rows are invisible regardless of id.
	ActiveXids []uint64
}

// Filter builds visibility clauses for a fixed snapshot. It implements
// dsl.VisibilityFilter.
type Filter struct {
	snapshot Snapshot
}

// New creates a Filter over the given snapshot.
func New(snapshot Snapshot) (*Filter, error) {
	if snapshot.Xmax == 0 {
		return nil, fmt.Errorf("snapshot xmax must be positive")
	}
	return &Filter{snapshot: snapshot}, nil
}

// Clause returns the filter restricting indexName to rows visible under the
// snapshot. A row is visible when its creating transaction is below the
// horizon and not in flight, and it either has no deleting transaction or
// that deletion is itself not yet visible.
func (f *Filter) Clause(indexName string) (map[string]interface{}, error) {
	created := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				FieldXmin: map[string]interface{}{"lt": f.snapshot.Xmax},
			},
		},
	}
	if len(f.snapshot.ActiveXids) > 0 {
		created = append(created, map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": []interface{}{
					map[string]interface{}{
						"terms": map[string]interface{}{FieldXmin: f.snapshot.ActiveXids},
					},
				},
			},
		})
	}

	notDeleted := []interface{}{
		map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": []interface{}{
					map[string]interface{}{
						"exists": map[string]interface{}{"field": FieldXmax},
					},
				},
			},
		},
		map[string]interface{}{
			"range": map[string]interface{}{
				FieldXmax: map[string]interface{}{"gte": f.snapshot.Xmax},
			},
		},
	}
	if len(f.snapshot.ActiveXids) > 0 {
		notDeleted = append(notDeleted, map[string]interface{}{
			"terms": map[string]interface{}{FieldXmax: f.snapshot.ActiveXids},
		})
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must": created,
			"filter": []interface{}{
				map[string]interface{}{
					"bool": map[string]interface{}{"should": notDeleted},
				},
			},
			"_name": "visibility:" + indexName,
		},
	}, nil
}

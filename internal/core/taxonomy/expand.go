// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/recetario/internal/platform/ctxutil"
	"github.com/taibuivan/recetario/internal/platform/metrics"
)

// Expander computes the descendant closure of a set of term ids.
//
// # Algorithm
//
// Breadth-first walk from the roots. The children of the whole root set are
// fetched in one batch; nodes reached later are fetched on demand, one batch
// per layer, and memoized in a map private to the call. A node enters the
// result (and the queue) only the first time it is seen, so the walk ends
// even if the stored parent links form a cycle.
//
// Nothing is cached between calls.
type Expander struct {
	reader HierarchyReader
}

// NewExpander creates an [Expander] reading children from reader.
func NewExpander(reader HierarchyReader) *Expander {
	return &Expander{reader: reader}
}

/*
Expand returns roots plus every term reachable from them through child links.

Parameters:
  - context: context.Context
  - roots: []int (Duplicates and unknown ids are allowed)

Returns:
  - TermSet: Superset of roots; an empty input yields an empty set
  - error: Storage failures from the hierarchy reader
*/
func (expander *Expander) Expand(context context.Context, roots []int) (TermSet, error) {
	result := NewTermSet(roots...)
	if result.Len() == 0 {
		return result, nil
	}

	queue := result.Sorted()
	lookups := 0

	// Batched prefetch for the whole root set
	children, err := expander.reader.ChildrenOf(context, queue)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: expand prefetch: %w", err)
	}
	lookups++
	if children == nil {
		children = make(map[int][]int)
	}
	fetched := NewTermSet(queue...)

	for len(queue) > 0 {

		// 1. Fill in the children of nodes discovered in the previous layer
		var missing []int
		for _, id := range queue {
			if !fetched.Has(id) {
				missing = append(missing, id)
			}
		}

		if len(missing) > 0 {
			more, err := expander.reader.ChildrenOf(context, missing)
			if err != nil {
				return nil, fmt.Errorf("taxonomy: expand children: %w", err)
			}
			lookups++

			for _, id := range missing {
				fetched.Add(id)
				if kids, found := more[id]; found {
					children[id] = kids
				}
			}
		}

		// 2. Enqueue every unseen child
		var next []int
		for _, id := range queue {
			for _, childID := range children[id] {
				if result.Add(childID) {
					next = append(next, childID)
				}
			}
		}

		queue = next
	}

	metrics.RecordExpansion(result.Len(), lookups)
	ctxutil.GetLogger(context).DebugContext(context, "term_expansion_finished",
		slog.Int("roots", len(roots)),
		slog.Int("expanded", result.Len()),
		slog.Int("lookups", lookups),
	)

	return result, nil
}

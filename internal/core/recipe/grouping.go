// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

// GroupByFacet groups terms by owning facet.
//
// Groups appear in the order their facet is first encountered, and terms keep
// their input order inside a group: [A(f1), B(f2), C(f1)] → f1:[A C], f2:[B].
func GroupByFacet(terms []AssignedTerm) []FacetTerms {
	groups := make([]FacetTerms, 0)
	index := make(map[int]int)

	for _, term := range terms {
		position, found := index[term.FacetID]
		if !found {
			position = len(groups)
			index[term.FacetID] = position
			groups = append(groups, FacetTerms{
				FacetID:   term.FacetID,
				FacetName: term.FacetName,
				Terms:     make([]TermRef, 0, 1),
			})
		}
		groups[position].Terms = append(groups[position].Terms, TermRef{ID: term.ID, Name: term.Name})
	}

	return groups
}

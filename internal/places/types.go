// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

import (
	"slices"
	"sort"
)

// TypeCategory maps a category label to the raw provider place types it represents.
type TypeCategory struct {
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
}

// TypeMap is an ordered list of categories. The order determines the order of the labels
// returned by ParseTypes.
type TypeMap []TypeCategory

// NewTypeMap builds a TypeMap from a label → tags map, ordered by label.
func NewTypeMap(m map[string][]string) TypeMap {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	typeMap := make(TypeMap, 0, len(labels))
	for _, label := range labels {
		typeMap = append(typeMap, TypeCategory{Label: label, Tags: m[label]})
	}
	return typeMap
}

// ParseTypes returns the category labels of typeMap for which a tag appears in types.
//
// A label is added once per matching tag, so a category with two matching tags shows up
// twice. Callers that need a set have to deduplicate themselves.
// TODO: confirm with product whether repeated labels are meant as weighting before
// deduplicating here.
func ParseTypes(types []string, typeMap TypeMap) []string {
	labels := make([]string, 0)
	if types == nil {
		return labels
	}
	for _, category := range typeMap {
		for _, tag := range category.Tags {
			if slices.Contains(types, tag) {
				labels = append(labels, category.Label)
			}
		}
	}
	return labels
}

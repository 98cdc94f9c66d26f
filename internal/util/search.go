// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldForSearch normalizes s (NFKC) and case-folds it so that search
// comparisons ignore case, width variants and composed/decomposed forms.
func FoldForSearch(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

// MatchesQuery reports whether every whitespace-separated term of query
// occurs in at least one of fields. An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	terms := strings.Fields(FoldForSearch(query))
	if len(terms) == 0 {
		return true
	}

	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = FoldForSearch(f)
	}

	for _, term := range terms {
		found := false
		for _, f := range folded {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

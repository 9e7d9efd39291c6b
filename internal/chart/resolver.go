package chart

import "strings"

// Resolver maps requested column names to actual dataset columns. It is a
// pure lookup: repeated calls with the same inputs return the same result.
//
// Precedence, first match wins:
//  1. exact match after normalization
//  2. an available column's normalized form contains the requested string
//  3. the requested string contains an available column's normalized form
//  4. synonym-table lookup, each synonym matched by rules 1-2
//
// Ties within a precedence level break on position in available; callers
// should not rely on tie-breaking beyond "first".
type Resolver struct {
	synonyms map[string][]string
}

// NewResolver returns a Resolver backed by the default synonym table.
func NewResolver() *Resolver {
	return &Resolver{synonyms: DefaultSynonyms}
}

// NewResolverWithSynonyms returns a Resolver with a caller-supplied synonym
// table. A nil table disables synonym matching.
func NewResolverWithSynonyms(synonyms map[string][]string) *Resolver {
	return &Resolver{synonyms: synonyms}
}

// Normalize lower-cases, replaces underscores with spaces, and trims.
// "Invoice_Date" and "invoice date" normalize identically.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}

// Resolve maps requested to a column in available. The second return is
// false when no rule matches or requested is empty.
func (r *Resolver) Resolve(requested string, available []string) (string, bool) {
	want := Normalize(requested)
	if want == "" {
		return "", false
	}

	// 1. exact
	for _, col := range available {
		if Normalize(col) == want {
			return col, true
		}
	}

	// 2. available contains requested ("date" -> "Invoice Date")
	for _, col := range available {
		if strings.Contains(Normalize(col), want) {
			return col, true
		}
	}

	// 3. requested contains available ("order date" -> "Date")
	for _, col := range available {
		if norm := Normalize(col); norm != "" && strings.Contains(want, norm) {
			return col, true
		}
	}

	// 4. synonyms, each candidate matched by rules 1-2
	for _, syn := range r.synonyms[want] {
		synNorm := Normalize(syn)
		for _, col := range available {
			if Normalize(col) == synNorm {
				return col, true
			}
		}
		for _, col := range available {
			if strings.Contains(Normalize(col), synNorm) {
				return col, true
			}
		}
	}

	return "", false
}

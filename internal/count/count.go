// Package count implements word and character counting over compiled
// content trees: a depth-first traversal that consults the classifier,
// tracks which file every text fragment came from, resolves includes, and
// sums the results.
package count

import (
	"strings"
	"unicode/utf8"
)

// Result holds word and character counts for one file or an aggregate.
//
// Words are maximal whitespace-free runs; scripts that do not separate
// words with spaces are not segmented specially, so a run of CJK text
// counts as one word. Characters are Unicode scalar values, not bytes and
// not grapheme clusters.
type Result struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// Add returns the pointwise sum of two results.
func (r Result) Add(o Result) Result {
	return Result{
		Words:      r.Words + o.Words,
		Characters: r.Characters + o.Characters,
	}
}

// Sum returns the exact pointwise sum of a set of results. An empty set
// sums to zero.
func Sum(results []Result) Result {
	var total Result
	for _, r := range results {
		total = total.Add(r)
	}
	return total
}

// Of counts one text. Leading and trailing whitespace produces no tokens.
func Of(text string) Result {
	return Result{
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
}

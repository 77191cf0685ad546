// Package event defines the tagged event stream shared by every stage of
// the parser pipeline (global, block, inline, blend). A single Event type
// with stage-projection predicates plays the role spec'd as separate
// GlobalEvent/BlockEvent/InlineEvent/BlendEvent sub-enums: Go has no sum
// types, and a flat struct with a Kind tag is the idiomatic rendition (it
// also keeps Event Clone-friendly: a plain value with no pointers).
package event

// Range is a half-open [Start, End) byte range into the original input.
// Events never own copies of input bytes; Range is how they reference them.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes spanned by r.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether r spans zero bytes.
func (r Range) Empty() bool { return r.End <= r.Start }

// Content returns the subslice of input spanned by r.
func (r Range) Content(input []byte) []byte { return input[r.Start:r.End] }

// Sub returns the absolute range for the offsets [i, j) taken relative to
// r.Start, e.g. indices into the slice returned by r.Content(input).
func (r Range) Sub(i, j int) Range { return Range{r.Start + i, r.Start + j} }

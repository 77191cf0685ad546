// Package block implements the second parser stage (§4.5): a state machine
// over the global event stream that resolves container nesting,
// continuation rules, and fenced leaves into a block-event stream.
//
// Grounded on scandown.BlockStack: container matching walks the existing
// stack exactly as BlockStack.Scan's matchPrior loop does (one switch arm
// per container kind, each either consuming its marker/indent or breaking
// out to signal "unmatched"), generalized from scandown's CommonMark subset
// to this markup's containers (block quote, ordered/unordered list, list
// item, description list/term/details) and leaves (paragraph, heading,
// thematic break, fenced code block, table).
package block

// containerKind tags an entry on the container stack.
type containerKind int

const (
	noContainer containerKind = iota
	containerBlockQuote
	containerOrderedList
	containerUnorderedList
	containerListItem
	containerDescriptionList
	containerDescriptionTerm
	containerDescriptionDetails
	containerTable
)

// container is one entry of the block parser's container stack. Like
// scandown.Block, a handful of fields are reused across kinds rather than
// giving each kind its own Go type.
type container struct {
	kind containerKind
	id   int // block-id, when enabled

	// width is an item-like's marker width (itemMarkerWidth): the number of
	// leading spaces a continuation line must have to stay inside the item.
	// It is zero for other kinds; block quotes match their own '>' marker.
	width int

	startLine int // line-number metadata

	// table-only: has the table emitted its first row/caption yet.
	tableStarted bool
	// table-only: are we inside a header row (affects cell indicator kind).
	tableInHeaderRow bool
}

// leafKind tags the parser's single "top leaf", distinct from the container
// stack (§3 Stack entries: "Each parser holds at most one 'top leaf' ...
// distinct from the container stack").
type leafKind int

const (
	noLeaf leafKind = iota
	leafParagraph
	leafHeading
	leafCodeBlock
)

// topLeaf holds state for whichever single leaf is currently open.
type topLeaf struct {
	kind leafKind
	id   int

	headingLevel int
	headingDelim byte // '=' (ATX-alike marker char)

	fenceChar  byte
	fenceWidth int

	// codeContentStarted is true once the first code-content line (as
	// opposed to the fence+info-string line) has been emitted, so later
	// lines know to emit a leading NewLine separator first.
	codeContentStarted bool

	startLine int
}

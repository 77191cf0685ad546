package event

import "fmt"

// Event is the single tagged-union value produced by every stage of the
// pipeline. Only the fields relevant to Kind are meaningful; unused fields
// are zero. This mirrors scandown.Block's approach of reusing a handful of
// generic fields (Delim/Width/Indent) across many BlockTypes rather than
// giving every variant its own Go type — the payloads here are small enough,
// and numerous enough, that one flat struct keeps Event a cheap, by-value,
// Clone-friendly type as required by §3's Lifecycle note.
type Event struct {
	Kind Kind

	// Range is the primary byte-range payload: Unparsed/VerbatimEscaping/Text
	// content, WikiLink/RefLink/Dicexp target or expression, a ruby's base
	// text, or a call's name.
	Range Range

	// Name is an optional secondary range: a call argument's name (when
	// HasName is true). Zero otherwise.
	Name    Range
	HasName bool

	// IsClosedForcedly flags a VerbatimEscaping (or, inside the inline
	// stage, a code span) that hit end-of-input/end-of-segment before its
	// natural closer.
	IsClosedForcedly bool

	// IsExtensionCall distinguishes EnterCallOnExtension (true, name led
	// with '#') from EnterCallOnTemplate (false).
	IsExtensionCall bool

	// Level carries a heading's level (1-6) on EnterHeading* events; it is
	// zero on every other event.
	Level int

	// ID is the block-id metadata (monotonically increasing per parser
	// instance) when Options.BlockID is enabled; zero otherwise. Go has no
	// zero-sized conditional field the way the Rust source's
	// `#[cfg(feature = "block-id")]` does, so this is carried as a plain
	// int that callers simply ignore when the feature is off (see
	// DESIGN.md's Open Question decision on feature toggles).
	ID int

	// Line is the 1-based logical line number after a NewLine/VerbatimEscaping
	// event, when Options.LineNumber is enabled.
	Line int

	// StartLine/EndLine bound an ExitBlock's lifetime, when Options.LineNumber
	// is enabled.
	StartLine int
	EndLine   int
}

// Content resolves the Event's primary Range against input, returning nil
// for events with no range payload.
func (e Event) Content(input []byte) []byte {
	switch e.Kind {
	case Unparsed, VerbatimEscaping, Text, EnterWikiLink, EnterRuby, RefLink, Dicexp,
		EnterCallOnTemplate, EnterCallOnExtension:
		return e.Range.Content(input)
	default:
		return nil
	}
}

// NameContent resolves the Event's optional Name range, when HasName is set.
func (e Event) NameContent(input []byte) []byte {
	if !e.HasName {
		return nil
	}
	return e.Name.Content(input)
}

// Format implements fmt.Formatter, producing a terse "Kind" form normally
// and a verbose "Kind field=value ..." form under %+v, in the style of
// scandown.Block.Format.
func (e Event) Format(f fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(f, "%%!%c(event.Event)", verb)
		return
	}
	if !f.Flag('+') {
		fmt.Fprint(f, e.Kind)
		return
	}
	fmt.Fprintf(f, "%v range=[%d,%d)", e.Kind, e.Range.Start, e.Range.End)
	if e.HasName {
		fmt.Fprintf(f, " name=[%d,%d)", e.Name.Start, e.Name.End)
	}
	if e.IsClosedForcedly {
		fmt.Fprint(f, " forced")
	}
	if e.IsExtensionCall {
		fmt.Fprint(f, " extension")
	}
	if e.Level != 0 {
		fmt.Fprintf(f, " level=%d", e.Level)
	}
	if e.ID != 0 {
		fmt.Fprintf(f, " id=%d", e.ID)
	}
}

package block

import "github.com/jcorbin/rotext/event"

// lineToken is one contiguous global-stage event (Unparsed or
// VerbatimEscaping) within the current physical line.
type lineToken struct {
	kind   event.Kind // Unparsed or VerbatimEscaping
	rng    event.Range
	forced bool // VerbatimEscaping only
}

// lineSource buffers one physical line (everything up to and including a
// NewLine, or up to EOF) at a time from an underlying global-stage scanner.
//
// Buffering a full line, rather than staying within a handful of look-ahead
// events, is a deliberate divergence from §5's "bounded look-ahead" framing:
// container/leaf marker recognition (§4.5.2-4.5.4) needs to see a line's
// leading bytes as a unit (an indent count, a marker, a fence run), exactly
// as scandown.BlockStack.Scan does by slicing out `line := data[sol:]`
// before doing any recognition. The *consumer-facing* event queue (below,
// in parser.go) remains bounded, which is what §5 actually constrains.
type lineSource struct {
	g    event.Scanner
	toks []lineToken

	lineAfter  int  // line number after this line's terminator, once known
	hasNewLine bool // false => line ended at EOF, no terminator
	atEOF      bool // true once the underlying scanner is exhausted entirely
}

func newLineSource(g event.Scanner) *lineSource {
	return &lineSource{g: g}
}

// next buffers the next physical line into ls.toks, returning false if
// there is no further line (stream already fully exhausted).
func (ls *lineSource) next() bool {
	if ls.atEOF {
		return false
	}
	ls.toks = ls.toks[:0]
	ls.hasNewLine = false
	for ls.g.Scan() {
		ev := ls.g.Event()
		switch ev.Kind {
		case event.NewLine:
			ls.hasNewLine = true
			ls.lineAfter = ev.Line
			return true
		case event.Unparsed, event.VerbatimEscaping:
			ls.toks = append(ls.toks, lineToken{kind: ev.Kind, rng: ev.Range, forced: ev.IsClosedForcedly})
		}
	}
	ls.atEOF = true
	return len(ls.toks) > 0
}

// empty reports whether the buffered line has no tokens at all (a truly
// blank separator line, as opposed to a line that is blank-looking but
// contains e.g. a zero-length verbatim escape).
func (ls *lineSource) empty() bool { return len(ls.toks) == 0 }

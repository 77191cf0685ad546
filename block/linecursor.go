package block

import "github.com/jcorbin/rotext/event"

// lineCursor walks the tokens of one buffered physical line (see
// lineSource), byte by byte, for marker/indent recognition. It never
// allocates: positions are (token index, byte offset) pairs resolved
// against the shared input slice.
type lineCursor struct {
	input []byte
	toks  []lineToken
	ti    int
	off   int
}

func newLineCursor(input []byte, toks []lineToken) *lineCursor {
	return &lineCursor{input: input, toks: toks}
}

// cursorMark is a saved cursor position, restorable in O(1) (§9's shallow
// snapshot discipline, scoped here to marker back-tracking within a line).
type cursorMark struct{ ti, off int }

func (lc *lineCursor) mark() cursorMark  { return cursorMark{lc.ti, lc.off} }
func (lc *lineCursor) reset(m cursorMark) { lc.ti, lc.off = m.ti, m.off }

// peek returns the next raw byte and true, or (0, false) past the end of
// the line or while positioned at a VerbatimEscaping token: escaped
// content is opaque to marker/indent recognition, so it is never read as
// a candidate marker byte.
func (lc *lineCursor) peek() (byte, bool) {
	if lc.ti >= len(lc.toks) {
		return 0, false
	}
	t := lc.toks[lc.ti]
	if t.kind != event.Unparsed {
		return 0, false
	}
	return lc.input[t.rng.Start+lc.off], true
}

// peekAt peeks n bytes past the current position, within the same
// Unparsed token only. Sufficient for the fixed-width markers this parser
// looks for ("|}", "{{", and similar two-byte sequences).
func (lc *lineCursor) peekAt(n int) byte {
	if lc.ti >= len(lc.toks) {
		return 0
	}
	t := lc.toks[lc.ti]
	if t.kind != event.Unparsed {
		return 0
	}
	pos := t.rng.Start + lc.off + n
	if pos >= t.rng.End {
		return 0
	}
	return lc.input[pos]
}

func (lc *lineCursor) advance() {
	t := lc.toks[lc.ti]
	lc.off++
	if t.rng.Start+lc.off >= t.rng.End {
		lc.ti++
		lc.off = 0
	}
}

// skipSpaces consumes up to max consecutive spaces (or all available, if
// max < 0), returning the count consumed.
func (lc *lineCursor) skipSpaces(max int) int {
	n := 0
	for max < 0 || n < max {
		b, ok := lc.peek()
		if !ok || b != ' ' {
			break
		}
		lc.advance()
		n++
	}
	return n
}

func (lc *lineCursor) atEnd() bool { return lc.ti >= len(lc.toks) }

// absPos returns the cursor's current position as an absolute offset into
// input; at a VerbatimEscaping token or at end of line it resolves to that
// token's start (or the line's end).
func (lc *lineCursor) absPos() int {
	if lc.ti >= len(lc.toks) {
		if len(lc.toks) == 0 {
			return 0
		}
		return lc.toks[len(lc.toks)-1].rng.End
	}
	t := lc.toks[lc.ti]
	if t.kind == event.Unparsed {
		return t.rng.Start + lc.off
	}
	return t.rng.Start
}

// rest returns the tokens from the current position to the end of the
// line, with the first Unparsed token's range trimmed to start at the
// cursor's current byte offset. The caller must not retain the result
// across the next call to next() on the owning lineSource.
func (lc *lineCursor) rest() []lineToken {
	if lc.atEnd() {
		return nil
	}
	out := make([]lineToken, len(lc.toks)-lc.ti)
	copy(out, lc.toks[lc.ti:])
	if out[0].kind == event.Unparsed {
		out[0].rng.Start += lc.off
	}
	return out
}

// lineIsBlank reports whether the tokens remaining from lc's current
// position contain nothing but spaces/tabs (a VerbatimEscaping token,
// even an empty one, always counts as content).
func lineIsBlank(lc *lineCursor) bool {
	for _, t := range lc.rest() {
		if t.kind != event.Unparsed {
			return false
		}
		for i := t.rng.Start; i < t.rng.End; i++ {
			if b := lc.input[i]; b != ' ' && b != '\t' {
				return false
			}
		}
	}
	return true
}

// Package global implements the first parser stage (§4.3): a lexer over
// raw input bytes that resolves escape, comment, and newline semantics
// exactly once, emitting Unparsed/VerbatimEscaping/NewLine events.
//
// Its Scan/Event contract is grounded on scandown.BlockStack.Scan: a single
// stateful scan step that looks at most a few bytes ahead and appends any
// events it decides on to a small pending queue (§5's "≤3 global peek"),
// draining one event per Scan call.
package global

import "github.com/jcorbin/rotext/event"

// Parser is the global-stage lexer. The zero value is not usable; use New.
type Parser struct {
	input      []byte
	pos        int
	trackLine  bool
	line       int
	queue      []event.Event
	cur        event.Event
	reachedEOF bool
}

// New returns a Parser over input, starting the scan at start.
func New(input []byte, start int, opts event.Options) *Parser {
	p := &Parser{
		input:     input,
		pos:       start,
		trackLine: opts.LineNumber,
	}
	if p.trackLine {
		// Line numbers are 1-based; with tracking off, Line stays zero.
		p.line = 1
	}
	return p
}

// Scan advances to the next event, returning false at end of input. The
// global stage never errors (§7: malformed input is never an error), so
// there is no Err method — it satisfies event.Scanner but not event.ErrScanner.
func (p *Parser) Scan() bool {
	if len(p.queue) > 0 {
		p.cur, p.queue = p.queue[0], p.queue[1:]
		return true
	}
	if p.reachedEOF {
		return false
	}
	p.fill()
	if len(p.queue) == 0 {
		p.reachedEOF = true
		return false
	}
	p.cur, p.queue = p.queue[0], p.queue[1:]
	return true
}

// Event returns the event most recently produced by Scan.
func (p *Parser) Event() event.Event { return p.cur }

// Pos returns the current scan position (for callers composing this
// parser).
func (p *Parser) Pos() int { return p.pos }

// fill scans forward from p.pos, appending one or more decided events to
// p.queue. It returns having appended at least one event, unless input is
// exhausted.
func (p *Parser) fill() {
	n := len(p.input)
	start := p.pos
	for p.pos < n {
		c := p.input[p.pos]
		switch {
		case c == '\r' || c == '\n':
			p.flushUnparsed(start)
			p.consumeNewLine()
			p.queue = append(p.queue, event.Event{Kind: event.NewLine, Line: p.line})
			return

		case c == '<' && p.pos+1 < n && p.input[p.pos+1] == '`':
			p.flushUnparsed(start)
			p.scanVerbatim()
			return

		case c == '<' && p.pos+1 < n && p.input[p.pos+1] == '%':
			p.flushUnparsed(start)
			p.skipComment()
			start = p.pos
			continue

		default:
			p.pos++
		}
	}
	p.flushUnparsed(start)
}

// flushUnparsed appends an Unparsed event for input[start:p.pos], if non-empty.
func (p *Parser) flushUnparsed(start int) {
	if p.pos > start {
		p.queue = append(p.queue, event.Event{Kind: event.Unparsed, Range: event.Range{Start: start, End: p.pos}})
	}
}

// consumeNewLine consumes one CR, LF, or CRLF line break at p.pos and bumps
// the line counter.
func (p *Parser) consumeNewLine() {
	n := len(p.input)
	c := p.input[p.pos]
	p.pos++
	if c == '\r' && p.pos < n && p.input[p.pos] == '\n' {
		p.pos++
	}
	if p.trackLine {
		p.line++
	}
}

// scanVerbatim consumes a verbatim escape starting at p.pos (which must be
// '<' followed by one or more backticks), appending its VerbatimEscaping
// event. The closer must use the same backtick count as the opener (§4.3);
// if none is found before EOF the escape is force-closed, spanning to EOF.
func (p *Parser) scanVerbatim() {
	n := len(p.input)
	p.pos++ // consume '<'

	tickStart := p.pos
	for p.pos < n && p.input[p.pos] == '`' {
		p.pos++
	}
	openTicks := p.pos - tickStart
	contentStart := p.pos

	for p.pos < n {
		switch c := p.input[p.pos]; {
		case c == '`':
			runStart := p.pos
			for p.pos < n && p.input[p.pos] == '`' {
				p.pos++
			}
			run := p.pos - runStart
			if run == openTicks && p.pos < n && p.input[p.pos] == '>' {
				contentEnd := runStart
				p.pos++ // consume '>'
				rng := trimVerbatim(event.Range{Start: contentStart, End: contentEnd}, p.input, false)
				p.queue = append(p.queue, event.Event{Kind: event.VerbatimEscaping, Range: rng, Line: p.line})
				return
			}
			// Not a matching closer (wrong count, or not followed by '>'):
			// those backticks are ordinary content; continue scanning.

		case c == '\r' || c == '\n':
			p.consumeNewLine()

		default:
			p.pos++
		}
	}

	// Force-closed: unterminated at EOF.
	rng := trimVerbatim(event.Range{Start: contentStart, End: n}, p.input, true)
	p.queue = append(p.queue, event.Event{Kind: event.VerbatimEscaping, Range: rng, IsClosedForcedly: true, Line: p.line})
}

// trimVerbatim applies the verbatim-escape space-trim rule. Grounded on the
// original Rust source (rotext/src/block/global_mapper/mod.rs), which is
// more precise than spec.md's prose: the leading space is trimmed whenever
// present (regardless of force-close), but the trailing space is trimmed
// only when the escape was *not* force-closed (there being no real closer,
// nothing marks the content's "end" as deliberate). See DESIGN.md's Open
// Question decision for the full rationale.
func trimVerbatim(r event.Range, input []byte, forced bool) event.Range {
	if r.Len() < 2 {
		return r
	}
	start, end := r.Start, r.End
	if input[start] == ' ' {
		start++
	}
	if !forced && input[end-1] == ' ' && end-1 >= start {
		end--
	}
	if start > end {
		start = end
	}
	return event.Range{Start: start, End: end}
}

// skipComment consumes a `<% ... %>` comment silently, without emitting any
// event. Its newlines still advance the line counter (§4.3).
func (p *Parser) skipComment() {
	n := len(p.input)
	p.pos += 2 // consume '<%'
	for p.pos < n {
		switch c := p.input[p.pos]; {
		case c == '%' && p.pos+1 < n && p.input[p.pos+1] == '>':
			p.pos += 2
			return
		case c == '\r' || c == '\n':
			p.consumeNewLine()
		default:
			p.pos++
		}
	}
	// Unterminated comment: silently consumes to EOF, like an unterminated
	// verbatim escape — but emits nothing since comments never do.
}

package block

import (
	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/inline"
)

// dispatchLeaf handles the current line's leaf content: continuing
// whatever top leaf is open, or recognizing a new one (§4.5.4).
func (p *Parser) dispatchLeaf(lc *lineCursor) {
	if p.inTable() && p.tryTableIndicator(lc) {
		return
	}

	switch p.leaf.kind {
	case leafCodeBlock:
		p.feedCodeBlockLine(lc)
		return
	case leafHeading:
		// A heading never spans more than the line that opened it; reaching
		// here with one still recorded as open would be a bookkeeping bug.
		p.closeLeaf()
	case leafParagraph:
		if lineIsBlank(lc) {
			p.closeLeaf()
			return
		}
		p.feedParagraphLine(lc)
		return
	}

	if lineIsBlank(lc) {
		return
	}
	if tryThematicBreak(lc) {
		id := p.nextID()
		p.emit(event.Event{Kind: event.ThematicBreak, ID: id, Line: p.curLine})
		return
	}
	if level, delim, ok := tryHeadingOpen(lc); ok {
		p.openHeading(level, delim)
		p.feedHeadingLine(lc)
		return
	}
	if ch, width, ok := tryCodeFenceOpen(lc); ok {
		p.openCodeBlock(ch, width)
		p.feedInfoString(lc)
		return
	}
	if tryTableOpen(lc) {
		p.openTable()
		return
	}
	if tryBlockCallOpen(lc) {
		p.feedBlockCall(lc)
		return
	}
	p.feedParagraphLine(lc)
}

// --- paragraph ---

func (p *Parser) openParagraph() {
	id := p.nextID()
	p.leaf = topLeaf{kind: leafParagraph, id: id, startLine: p.curLine}
	p.emit(event.Event{Kind: event.EnterParagraph, ID: id, Line: p.curLine})
}

func (p *Parser) feedParagraphLine(lc *lineCursor) {
	if p.leaf.kind != leafParagraph {
		p.openParagraph()
	} else {
		p.emit(event.Event{Kind: event.NewLine, Line: p.curLine})
	}
	p.emitContentTokens(lc.rest(), -1)
}

// --- heading ---

// tryHeadingOpen recognizes an ATX-style opener: 1-6 '=' followed by a
// space (§4.5.4).
func tryHeadingOpen(lc *lineCursor) (level int, delim byte, ok bool) {
	mark := lc.mark()
	n := 0
	for {
		b, has := lc.peek()
		if !has || b != '=' {
			break
		}
		lc.advance()
		n++
	}
	if n < 1 || n > 6 {
		lc.reset(mark)
		return 0, 0, false
	}
	sp, has := lc.peek()
	if !has || sp != ' ' {
		lc.reset(mark)
		return 0, 0, false
	}
	lc.advance()
	return n, '=', true
}

func (p *Parser) openHeading(level int, delim byte) {
	id := p.nextID()
	p.leaf = topLeaf{kind: leafHeading, id: id, headingLevel: level, headingDelim: delim, startLine: p.curLine}
	p.emit(event.Event{Kind: headingEnterKind(level), ID: id, Level: level, Line: p.curLine})
}

func headingEnterKind(level int) event.Kind {
	return event.EnterHeading1 + event.Kind(level-1)
}

// feedHeadingLine consumes the rest of the heading's single line, applying
// the ATX-close rule (§4.5.4/§4.5.5): a trailing run of exactly the
// opener's '=' count, preceded by a space and followed only by
// whitespace to end of line, is the closer and is not content.
func (p *Parser) feedHeadingLine(lc *lineCursor) {
	toks := lc.rest()
	if cutoff, ok := findHeadingClose(toks, p.input, p.leaf.headingLevel); ok {
		p.emitContentTokens(toks, cutoff)
	} else {
		p.emitContentTokens(toks, -1)
	}
	p.closeLeaf()
}

// findHeadingClose looks for the ATX closer within the final token of the
// line (headings are single-line constructs, so the closer — if present —
// always lands in the last content token). It does not look across a
// trailing VerbatimEscaping token: a heading's closer is always literal.
func findHeadingClose(toks []lineToken, input []byte, n int) (contentEnd int, ok bool) {
	if len(toks) == 0 {
		return 0, false
	}
	last := toks[len(toks)-1]
	if last.kind != event.Unparsed {
		return 0, false
	}
	b := input[last.rng.Start:last.rng.End]
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	eqEnd := end
	eqStart := end
	for eqStart > 0 && b[eqStart-1] == '=' {
		eqStart--
	}
	if eqEnd-eqStart != n {
		return 0, false
	}
	if eqStart == 0 || b[eqStart-1] != ' ' {
		return 0, false
	}
	return last.rng.Start + eqStart - 1, true
}

// --- thematic break ---

func tryThematicBreak(lc *lineCursor) bool {
	mark := lc.mark()
	n := 0
	for {
		b, ok := lc.peek()
		if !ok || b != '-' {
			break
		}
		lc.advance()
		n++
	}
	if n < 3 || !lineIsBlank(lc) {
		lc.reset(mark)
		return false
	}
	return true
}

// --- code block ---

func tryCodeFenceOpen(lc *lineCursor) (ch byte, width int, ok bool) {
	mark := lc.mark()
	n := 0
	for {
		b, has := lc.peek()
		if !has || b != '`' {
			break
		}
		lc.advance()
		n++
	}
	if n < 3 {
		lc.reset(mark)
		return 0, 0, false
	}
	return '`', n, true
}

func tryCodeFenceClose(lc *lineCursor, ch byte, width int) bool {
	mark := lc.mark()
	n := 0
	for {
		b, ok := lc.peek()
		if !ok || b != ch {
			break
		}
		lc.advance()
		n++
	}
	if n < width || !lineIsBlank(lc) {
		lc.reset(mark)
		return false
	}
	return true
}

func (p *Parser) openCodeBlock(ch byte, width int) {
	id := p.nextID()
	p.leaf = topLeaf{kind: leafCodeBlock, id: id, fenceChar: ch, fenceWidth: width, startLine: p.curLine}
	p.emit(event.Event{Kind: event.EnterCodeBlock, ID: id, Line: p.curLine})
}

// feedInfoString emits the fence line's trailing info string (as literal
// Text — a code block's info string never receives inline parsing) and
// the Separator indicator dividing it from the code content (§4.5.7).
func (p *Parser) feedInfoString(lc *lineCursor) {
	p.emitCodeContentTokens(lc.rest())
	p.emit(event.Event{Kind: event.IndicateCodeBlockCode, Line: p.curLine})
}

func (p *Parser) feedCodeBlockLine(lc *lineCursor) {
	// The line break since the previous content line is emitted before
	// checking for the closing fence: it belongs to the code block's
	// content regardless of whether this line turns out to be the closer.
	if p.leaf.codeContentStarted {
		p.emit(event.Event{Kind: event.NewLine, Line: p.curLine})
	}
	if tryCodeFenceClose(lc, p.leaf.fenceChar, p.leaf.fenceWidth) {
		p.closeLeaf()
		return
	}
	p.leaf.codeContentStarted = true
	p.emitCodeContentTokens(lc.rest())
}

// --- tables ---

func tryTableOpen(lc *lineCursor) bool {
	mark := lc.mark()
	b1, ok1 := lc.peek()
	if !ok1 || b1 != '{' || lc.peekAt(1) != '|' {
		lc.reset(mark)
		return false
	}
	lc.advance()
	lc.advance()
	return true
}

func (p *Parser) openTable() {
	id := p.nextID()
	if err := p.containers.TryPush(container{kind: containerTable, id: id, startLine: p.curLine}); err != nil {
		p.fail(err)
		return
	}
	p.emit(event.Event{Kind: event.EnterTable, ID: id, Line: p.curLine})
}

func (p *Parser) inTable() bool {
	return p.containers.Len() > 0 && p.containers.At(p.containers.Len()-1).kind == containerTable
}

// tryTableIndicator recognizes a row/cell/caption/close token at the start
// of a line inside an open table (§4.5.6), closing whatever cell paragraph
// was open and, for a caption or a cell, opening a fresh one for its
// content. A row break or a table close opens no paragraph.
func (p *Parser) tryTableIndicator(lc *lineCursor) bool {
	b, ok := lc.peek()
	if !ok {
		return false
	}
	switch b {
	case '!':
		lc.advance()
		p.closeLeaf()
		p.emit(event.Event{Kind: event.IndicateTableHeaderCell, Line: p.curLine})
		p.feedParagraphLine(lc)
		return true
	case '|':
		switch lc.peekAt(1) {
		case '}':
			lc.advance()
			lc.advance()
			p.closeLeaf()
			c, _ := p.containers.Pop()
			p.emit(event.Event{Kind: event.ExitBlock, ID: c.id, StartLine: c.startLine, EndLine: p.curLine})
			return true
		case '+':
			lc.advance()
			lc.advance()
			p.closeLeaf()
			p.emit(event.Event{Kind: event.IndicateTableCaption, Line: p.curLine})
			p.feedParagraphLine(lc)
			return true
		case '-':
			lc.advance()
			lc.advance()
			p.closeLeaf()
			p.emit(event.Event{Kind: event.IndicateTableRow, Line: p.curLine})
			return true
		case '|':
			lc.advance()
			lc.advance()
			p.closeLeaf()
			p.emit(event.Event{Kind: event.IndicateTableDataCell, Line: p.curLine})
			p.feedParagraphLine(lc)
			return true
		default:
			lc.advance()
			p.closeLeaf()
			p.emit(event.Event{Kind: event.IndicateTableDataCell, Line: p.curLine})
			p.feedParagraphLine(lc)
			return true
		}
	default:
		return false
	}
}

// --- calls (block-level "{{ ... }}") ---

func tryBlockCallOpen(lc *lineCursor) bool {
	mark := lc.mark()
	if b, ok := lc.peek(); !ok || b != '{' || lc.peekAt(1) != '{' {
		lc.reset(mark)
		return false
	}
	lc.advance()
	lc.advance()
	return true
}

// feedBlockCall parses a single-line "{{name|arg|...}}" call. Multi-line
// verbatim arguments are out of scope for this rendition (see DESIGN.md);
// a call leaves one Enter/Indicate*/ExitBlock run per line, matching the
// shape of an inline call (§4.6.3) but at block level.
func (p *Parser) feedBlockCall(lc *lineCursor) {
	isExt := false
	if b, ok := lc.peek(); ok && b == '#' {
		isExt = true
		lc.advance()
	}
	nameStart := lc.absPos()
	for {
		b, ok := lc.peek()
		if !ok || b == '|' || (b == '}' && lc.peekAt(1) == '}') {
			break
		}
		lc.advance()
	}
	nameEnd := lc.absPos()

	id := p.nextID()
	kind := event.EnterCallOnTemplate
	if isExt {
		kind = event.EnterCallOnExtension
	}
	p.emit(event.Event{Kind: kind, Range: event.Range{Start: nameStart, End: nameEnd}, ID: id, IsExtensionCall: isExt, Line: p.curLine})

	for {
		b, ok := lc.peek()
		if !ok {
			break
		}
		if b == '}' && lc.peekAt(1) == '}' {
			lc.advance()
			lc.advance()
			break
		}
		if b != '|' {
			lc.advance()
			continue
		}
		lc.advance()
		verbatim := false
		if bb, ok2 := lc.peek(); ok2 && bb == '`' {
			verbatim = true
			lc.advance()
		}
		argStart := lc.absPos()
		for {
			bb, ok2 := lc.peek()
			if !ok2 || bb == '|' || (bb == '}' && lc.peekAt(1) == '}') {
				break
			}
			lc.advance()
		}
		argEnd := lc.absPos()
		if verbatim && argEnd > argStart && p.input[argEnd-1] == '`' {
			argEnd--
		}
		argKind := event.IndicateCallNormalArgument
		if verbatim {
			argKind = event.IndicateCallVerbatimArgument
		}
		p.emit(event.Event{Kind: argKind, Line: p.curLine})
		if argEnd > argStart {
			argRange := event.Range{Start: argStart, End: argEnd}
			if verbatim {
				// Verbatim arguments are raw, not inline-parsed (§4.6.3).
				p.emit(event.Event{Kind: event.Text, Range: argRange, Line: p.curLine})
			} else {
				// Normal arguments are inline-parsed (§4.6.3), same as a
				// call's arguments one level down (scanInlineCall). A
				// block-level call never opens a full inline phase
				// (EnterCallOnTemplate/EnterCallOnExtension aren't in
				// Kind.OpensInlinePhase's set), so blend never hands its
				// content to an inline.Parser on its own; ScanRange does
				// that parsing directly, in isolation, right here.
				evs, err := inline.ScanRange(p.input, argRange, p.opts)
				if err != nil {
					p.fail(err)
					return
				}
				for _, ev := range evs {
					ev.Line = p.curLine
					p.emit(ev)
				}
			}
		}
	}
	p.emit(event.Event{Kind: event.ExitBlock, ID: id, StartLine: p.curLine, EndLine: p.curLine})
}

// --- shared content emission ---

// emitContentTokens emits one event per token in toks as inline-feeding
// leaf content (Unparsed for plain runs, VerbatimEscaping passed through
// unchanged), truncating the final token's range end to cutoff when
// cutoff >= 0.
func (p *Parser) emitContentTokens(toks []lineToken, cutoff int) {
	for i, t := range toks {
		rng := t.rng
		if i == len(toks)-1 && cutoff >= 0 {
			if cutoff <= rng.Start {
				continue
			}
			rng.End = cutoff
		}
		if rng.Empty() {
			continue
		}
		p.emit(event.Event{Kind: t.kind, Range: rng, IsClosedForcedly: t.forced, Line: p.curLine})
	}
}

// emitCodeContentTokens emits toks as code-block content: plain runs
// become Text (code blocks bypass inline parsing entirely, §4.5.7) while
// VerbatimEscaping passes through unchanged.
func (p *Parser) emitCodeContentTokens(toks []lineToken) {
	for _, t := range toks {
		if t.rng.Empty() {
			continue
		}
		k := t.kind
		if k == event.Unparsed {
			k = event.Text
		}
		p.emit(event.Event{Kind: k, Range: t.rng, IsClosedForcedly: t.forced, Line: p.curLine})
	}
}

package inline

import (
	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/stack"
)

// inlineEntry is a stack entry for a paired opener/closer construct that
// can nest with its own kind and with the other paired kinds (§4.6.2):
// Strong, Strikethrough, Emphasis. WikiLink and Ruby are self-contained
// (see scanWikiLink/scanRuby) rather than sharing this stack: their
// content is re-scanned by recursion instead, a scope simplification
// recorded in DESIGN.md.
type inlineEntry struct {
	closeByte byte
}

// scanRange recognizes every inline construct within input[r.Start:r.End],
// emitting Text for literal runs and Enter/Exit/leaf events for recognized
// constructs. Constructs never span two separate upstream Unparsed events:
// each call to scanRange is self-contained, and any delimiter left open at
// the end of r is force-closed immediately (§4.6.5's "force-close at
// segment end", narrowed here to "at range end").
func (p *Parser) scanRange(r event.Range) {
	input := p.input
	i, n := r.Start, r.End
	textStart := i

	var st inlineStack
	st.cap = p.opts.StackCapacity

	flush := func(end int) {
		if end > textStart {
			p.emit(event.Event{Kind: event.Text, Range: event.Range{Start: textStart, End: end}})
		}
	}

	for i < n && !p.aborted {
		b := input[i]

		if b == '[' && i+1 < n {
			switch input[i+1] {
			case '*', '~', '/':
				closeByte := input[i+1]
				flush(i)
				if err := st.push(closeByte); err != nil {
					p.fail(err)
					return
				}
				p.emit(event.Event{Kind: enterKindForDelim(closeByte)})
				i += 2
				textStart = i
				continue

			case '[':
				if newI, pageStart, pageEnd, hasContent, contentStart := scanWikiLink(input, i, n); newI > i {
					flush(i)
					p.emit(event.Event{Kind: event.EnterWikiLink, Range: event.Range{Start: pageStart, End: pageEnd}})
					if hasContent {
						p.scanRange(event.Range{Start: contentStart, End: newI - 2})
						if p.aborted {
							return
						}
					}
					p.emit(event.Event{Kind: event.ExitInline})
					i, textStart = newI, newI
					continue
				}

			case ';':
				if newI, baseStart, baseEnd, hasText, textS, textE := scanRuby(input, i, n); newI > i {
					flush(i)
					p.emit(event.Event{Kind: event.EnterRuby, Range: event.Range{Start: baseStart, End: baseEnd}})
					if hasText {
						p.emit(event.Event{Kind: event.EnterRubyText})
						p.scanRange(event.Range{Start: textS, End: textE})
						if p.aborted {
							return
						}
						p.emit(event.Event{Kind: event.ExitInline})
					}
					p.emit(event.Event{Kind: event.ExitInline})
					i, textStart = newI, newI
					continue
				}

			case '`':
				if newI, cs, ce, forced := scanCodeSpan(input, i, n); newI > i {
					flush(i)
					rng := trimCodeSpan(event.Range{Start: cs, End: ce}, input, forced)
					p.emit(event.Event{Kind: event.EnterCodeSpan})
					p.emit(event.Event{Kind: event.Text, Range: rng, IsClosedForcedly: forced})
					p.emit(event.Event{Kind: event.ExitInline})
					i, textStart = newI, newI
					continue
				}

			case '=':
				if newI, es, ee := scanDicexp(input, i, n); newI > i {
					flush(i)
					p.emit(event.Event{Kind: event.Dicexp, Range: event.Range{Start: es, End: ee}})
					i, textStart = newI, newI
					continue
				}

			case '{':
				// scanInlineCall emits the call's events itself, so any
				// pending text must be flushed before it runs.
				flush(i)
				textStart = i
				if newI, ok := p.scanInlineCall(input, i, n); ok {
					i, textStart = newI, newI
					continue
				}
			}
		}

		if b == '>' && i+1 < n && input[i+1] == '>' {
			if j := scanRefLinkIdent(input, i+2, n); j > i+2 {
				flush(i)
				p.emit(event.Event{Kind: event.RefLink, Range: event.Range{Start: i + 2, End: j}})
				i, textStart = j, j
				continue
			}
		}

		if (b == '*' || b == '~' || b == '/') && i+1 < n && input[i+1] == ']' {
			if idx, ok := st.findFromTop(b); ok {
				flush(i)
				// A closer not at the top pops outward through every
				// shallower entry first (§4.6.2).
				for st.len() > idx {
					st.pop()
					p.emit(event.Event{Kind: event.ExitInline})
				}
				i += 2
				textStart = i
				continue
			}
		}

		i++
	}

	if p.aborted {
		return
	}
	flush(n)
	for st.len() > 0 {
		st.pop()
		p.emit(event.Event{Kind: event.ExitInline})
	}
}

func enterKindForDelim(b byte) event.Kind {
	switch b {
	case '*':
		return event.EnterStrong
	case '~':
		return event.EnterStrikethrough
	case '/':
		return event.EnterEmphasis
	default:
		panic("inline: enterKindForDelim: unhandled delimiter")
	}
}

// inlineStack is a tiny bounded LIFO of close-bytes, mirroring the same
// capacity discipline as stack.Stack but specialized to a single byte
// field: no point paying for a generic instantiation here.
type inlineStack struct {
	items []byte
	cap   int
}

func (s *inlineStack) push(closeByte byte) error {
	if s.cap > 0 && len(s.items) >= s.cap {
		return stack.ErrOutOfSpace
	}
	s.items = append(s.items, closeByte)
	return nil
}

func (s *inlineStack) pop() (byte, bool) {
	if n := len(s.items); n > 0 {
		b := s.items[n-1]
		s.items = s.items[:n-1]
		return b, true
	}
	return 0, false
}

func (s *inlineStack) len() int { return len(s.items) }

func (s *inlineStack) findFromTop(closeByte byte) (int, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] == closeByte {
			return i, true
		}
	}
	return 0, false
}

// scanWikiLink recognizes "[[page]]" or "[[page|content]]" starting at i
// (input[i:i+2] == "[["). It returns newI == i when no closer is found
// before n, signaling "not a wiki-link" (the caller falls back to literal
// scanning of the '[' byte).
func scanWikiLink(input []byte, i, n int) (newI, pageStart, pageEnd int, hasContent bool, contentStart int) {
	pageStart = i + 2
	pipe := -1
	for j := pageStart; j < n; j++ {
		switch {
		case input[j] == '|' && pipe == -1:
			pipe = j
		case input[j] == ']' && j+1 < n && input[j+1] == ']':
			pageEnd = j
			if pipe >= 0 {
				pageEnd, hasContent, contentStart = pipe, true, pipe+1
			}
			return j + 2, pageStart, pageEnd, hasContent, contentStart
		}
	}
	return i, 0, 0, false, 0
}

// scanRuby recognizes "[;base]" or "[;base:text]" starting at i
// (input[i:i+2] == "[;").
func scanRuby(input []byte, i, n int) (newI, baseStart, baseEnd int, hasText bool, textStart, textEnd int) {
	baseStart = i + 2
	colon := -1
	for j := baseStart; j < n; j++ {
		switch {
		case input[j] == ':' && colon == -1:
			colon = j
		case input[j] == ']':
			baseEnd = j
			if colon >= 0 {
				baseEnd, hasText, textStart, textEnd = colon, true, colon+1, j
			}
			return j + 1, baseStart, baseEnd, hasText, textStart, textEnd
		}
	}
	return i, 0, 0, false, 0, 0
}

// scanCodeSpan recognizes "[" + N backticks + content + N backticks + "]"
// starting at i (input[i] == '['), force-closing at n if the matching run
// is never found (§4.6.4, same force-close rationale as verbatim escapes).
func scanCodeSpan(input []byte, i, n int) (newI, contentStart, contentEnd int, forced bool) {
	j := i + 1
	tickStart := j
	for j < n && input[j] == '`' {
		j++
	}
	openTicks := j - tickStart
	if openTicks == 0 {
		return i, 0, 0, false
	}
	contentStart = j
	for j < n {
		if input[j] != '`' {
			j++
			continue
		}
		runStart := j
		for j < n && input[j] == '`' {
			j++
		}
		if j-runStart == openTicks && j < n && input[j] == ']' {
			return j + 1, contentStart, runStart, false
		}
	}
	return n, contentStart, n, true
}

// trimCodeSpan applies the same one-leading/one-trailing-space trim rule
// as verbatim escapes (§4.3's original-source-derived rule): a forced
// close never trims its trailing edge, since there was no closer to
// delimit it.
func trimCodeSpan(r event.Range, input []byte, forced bool) event.Range {
	start, end := r.Start, r.End
	if start < end && input[start] == ' ' {
		start++
	}
	if !forced && end > start && input[end-1] == ' ' {
		end--
	}
	if start > end {
		start = end
	}
	return event.Range{Start: start, End: end}
}

// scanDicexp recognizes "[=expr]" starting at i (input[i] == '[').
func scanDicexp(input []byte, i, n int) (newI, exprStart, exprEnd int) {
	exprStart = i + 2
	for j := exprStart; j < n; j++ {
		if input[j] == ']' {
			return j + 1, exprStart, j
		}
	}
	return i, 0, 0
}

// scanRefLinkIdent consumes a ref-link identifier (letters, digits, '.',
// then an optional '#' followed by digits only) starting at i, returning
// i unchanged if nothing matches.
func scanRefLinkIdent(input []byte, i, n int) int {
	j := i
	seenHash := false
	for j < n {
		b := input[j]
		switch {
		case seenHash:
			if b < '0' || b > '9' {
				return j
			}
		case b == '#':
			seenHash = true
		case isAlnum(b) || b == '.':
		default:
			return j
		}
		j++
	}
	return j
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// scanInlineCall recognizes "[{name|arg|arg}]" (or "[{#name|...}]" for an
// extension call) starting at i (input[i:i+2] == "[{"), mirroring the
// block-level call facility (§4.5.8) one level down. An unterminated name
// is reinterpreted as literal text; an unterminated argument list is
// force-closed instead, since by that point the call has already been
// opened with an ID a caller may be tracking.
func (p *Parser) scanInlineCall(input []byte, i, n int) (newI int, ok bool) {
	j := i + 2
	isExt := false
	if j < n && input[j] == '#' {
		isExt = true
		j++
	}
	nameStart := j
	for j < n && input[j] != '|' && !isCallClose(input, j, n) {
		j++
	}
	if j >= n {
		return i, false
	}
	nameEnd := j

	id := p.nextID()
	kind := event.EnterCallOnTemplate
	if isExt {
		kind = event.EnterCallOnExtension
	}
	p.emit(event.Event{Kind: kind, Range: event.Range{Start: nameStart, End: nameEnd}, ID: id, IsExtensionCall: isExt})

	for j < n {
		if isCallClose(input, j, n) {
			j += 2
			break
		}
		j++ // consume '|'
		verbatim := j < n && input[j] == '`'
		if verbatim {
			j++ // consume the opening '`'
		}
		argStart := j
		for j < n && input[j] != '|' && !isCallClose(input, j, n) {
			j++
		}
		argEnd := j
		if verbatim && argEnd > argStart && input[argEnd-1] == '`' {
			argEnd--
		}
		argKind := event.IndicateCallNormalArgument
		if verbatim {
			argKind = event.IndicateCallVerbatimArgument
		}
		p.emit(event.Event{Kind: argKind})
		if argEnd > argStart {
			if verbatim {
				// Verbatim arguments are raw, not inline-parsed (§4.6.3).
				p.emit(event.Event{Kind: event.Text, Range: event.Range{Start: argStart, End: argEnd}})
			} else {
				// Normal arguments are inline-parsed (§4.6.3: "text/inline-parsed"),
				// same as any other inline-phase content.
				p.scanRange(event.Range{Start: argStart, End: argEnd})
				if p.aborted {
					return j, true
				}
			}
		}
	}
	p.emit(event.Event{Kind: event.ExitInline, ID: id})
	return j, true
}

func isCallClose(input []byte, j, n int) bool {
	return input[j] == '}' && j+1 < n && input[j+1] == ']'
}

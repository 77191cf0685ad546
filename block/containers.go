package block

import "github.com/jcorbin/rotext/event"

// itemMarkerWidth is the fixed width ("marker byte" plus one required
// trailing space) every item-like marker consumes (§4.5.3).
const itemMarkerWidth = 2

// matchContainers walks the existing container stack against the current
// line, consuming whatever marker/indent each entry requires, in order
// from the outermost container in. It returns how many containers (from
// the bottom) matched; anything beyond that is either closed or, for a
// paragraph's lazy continuation, left alone (§4.5.2).
func (p *Parser) matchContainers(lc *lineCursor) int {
	matched := 0
	for i := 0; i < p.containers.Len(); i++ {
		c := p.containers.At(i)
		switch c.kind {
		case containerBlockQuote:
			if !matchBlockQuoteMarker(lc) {
				return matched
			}
		case containerListItem, containerDescriptionTerm, containerDescriptionDetails:
			if lc.skipSpaces(c.width) < c.width {
				return matched
			}
		default:
			// OrderedList/UnorderedList/DescriptionList/Table: pure
			// wrappers with nothing of their own to match at this point;
			// the item-like (or table row/cell indicator) beneath them is
			// what actually consumes the line.
		}
		matched++
	}
	return matched
}

// lineStartsNewContainerMarker reports, without consuming, whether lc's
// current position begins a block-quote or item-like marker. A paragraph
// does not lazily continue across such a line (§4.5.2): the marker instead
// closes the paragraph (and any unmatched ancestors) and opens its own
// container/item-like.
func lineStartsNewContainerMarker(lc *lineCursor) bool {
	mark := lc.mark()
	defer lc.reset(mark)
	if b, ok := lc.peek(); ok && b == '>' {
		return matchBlockQuoteMarker(lc)
	}
	_, _, ok := matchItemMarker(lc)
	return ok
}

// matchBlockQuoteMarker recognizes a '>' followed by a space (which is
// consumed with it) or by the end of the line. Any other byte after the
// '>' (such as the second '>' of a ">>" ref-link) is not a marker, and
// the cursor is left where it was.
func matchBlockQuoteMarker(lc *lineCursor) bool {
	b, ok := lc.peek()
	if !ok || b != '>' {
		return false
	}
	mark := lc.mark()
	lc.advance()
	if sp, ok2 := lc.peek(); ok2 && sp == ' ' {
		lc.advance()
		return true
	}
	if lc.atEnd() {
		return true
	}
	lc.reset(mark)
	return false
}

// matchItemMarker recognizes a new list/description-list item marker at
// lc's current position, consuming the marker and its one required
// trailing space on match.
func matchItemMarker(lc *lineCursor) (listKind, itemKind containerKind, ok bool) {
	b, has := lc.peek()
	if !has {
		return 0, 0, false
	}
	switch b {
	case '#':
		listKind, itemKind = containerOrderedList, containerListItem
	case '*':
		listKind, itemKind = containerUnorderedList, containerListItem
	case ';':
		listKind, itemKind = containerDescriptionList, containerDescriptionTerm
	case ':':
		listKind, itemKind = containerDescriptionList, containerDescriptionDetails
	default:
		return 0, 0, false
	}
	mark := lc.mark()
	lc.advance()
	if sp, ok2 := lc.peek(); !ok2 || sp != ' ' {
		lc.reset(mark)
		return 0, 0, false
	}
	lc.advance()
	return listKind, itemKind, true
}

// closeContainersAbove closes the open leaf (if any) and then any
// containers past index n, LIFO.
func (p *Parser) closeContainersAbove(n int) {
	p.closeLeaf()
	for p.containers.Len() > n && !p.aborted {
		c, _ := p.containers.Pop()
		p.emit(event.Event{Kind: event.ExitBlock, ID: c.id, StartLine: c.startLine, EndLine: p.curLine})
	}
}

// openNewContainers opens new block quotes and/or list/description-list
// item-likes for as many leading markers as the line has, starting right
// after whatever already matched. Two consecutive item markers on one
// line open nested lists (§4.5.3); a matched existing list continues with
// a sibling item instead of a redundant nested one.
func (p *Parser) openNewContainers(lc *lineCursor, matched int) int {
	for matched == p.containers.Len() {
		if b, ok := lc.peek(); ok && b == '>' {
			mark := lc.mark()
			if !matchBlockQuoteMarker(lc) {
				lc.reset(mark)
				break
			}
			p.pushContainer(containerBlockQuote, 0)
			if p.aborted {
				return matched
			}
			matched = p.containers.Len()
			continue
		}

		listKind, itemKind, ok := matchItemMarker(lc)
		if !ok {
			break
		}
		if matched > 0 && p.containers.At(matched-1).kind == listKind {
			p.pushContainer(itemKind, itemMarkerWidth)
			if p.aborted {
				return matched
			}
			matched = p.containers.Len()
			continue
		}
		p.pushContainer(listKind, 0)
		if p.aborted {
			return matched
		}
		p.pushContainer(itemKind, itemMarkerWidth)
		if p.aborted {
			return matched
		}
		matched = p.containers.Len()
	}
	return matched
}

func (p *Parser) pushContainer(kind containerKind, width int) {
	id := p.nextID()
	if err := p.containers.TryPush(container{kind: kind, id: id, width: width, startLine: p.curLine}); err != nil {
		p.fail(err)
		return
	}
	p.emit(event.Event{Kind: enterKindForContainer(kind), ID: id, Line: p.curLine})
}

func enterKindForContainer(kind containerKind) event.Kind {
	switch kind {
	case containerBlockQuote:
		return event.EnterBlockQuote
	case containerOrderedList:
		return event.EnterOrderedList
	case containerUnorderedList:
		return event.EnterUnorderedList
	case containerListItem:
		return event.EnterListItem
	case containerDescriptionList:
		return event.EnterDescriptionList
	case containerDescriptionTerm:
		return event.EnterDescriptionTerm
	case containerDescriptionDetails:
		return event.EnterDescriptionDetails
	case containerTable:
		return event.EnterTable
	default:
		panic("block: enterKindForContainer: unhandled container kind")
	}
}

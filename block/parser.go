package block

import (
	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/global"
	"github.com/jcorbin/rotext/stack"
)

// Parser is the block-stage state machine (§4.5): it turns a global-stage
// event stream into a block-level event stream, resolving container
// nesting, continuation rules, and fenced leaves. The zero value
// is not usable; use New.
type Parser struct {
	input []byte
	opts  event.Options

	ls         *lineSource
	containers stack.Stack[container]
	leaf       topLeaf

	queue []event.Event
	cur   event.Event

	idCounter int
	curLine   int

	err      error
	aborted  bool // true once a push has failed: no more containers close
	closedAll bool
	done     bool
}

// New returns a block Parser reading from input, starting at start.
func New(input []byte, start int, opts event.Options) *Parser {
	g := global.New(input, start, opts)
	p := &Parser{
		input:   input,
		opts:    opts,
		ls:      newLineSource(g),
		curLine: 1,
	}
	p.containers.SetCap(opts.StackCapacity)
	return p
}

// Scan advances to the next block event, returning false at end of input
// or after the one recoverable error (§7) has been surfaced; see Err.
func (p *Parser) Scan() bool {
	for len(p.queue) == 0 {
		if p.done {
			return false
		}
		p.fillQueue()
	}
	p.cur, p.queue = p.queue[0], p.queue[1:]
	return true
}

// Event returns the event most recently produced by Scan.
func (p *Parser) Event() event.Event { return p.cur }

// Err returns the error that ended the stream, if any (§7: the sole
// recoverable error is stack.ErrOutOfSpace).
func (p *Parser) Err() error { return p.err }

func (p *Parser) fillQueue() {
	if !p.ls.next() {
		if p.closedAll {
			p.done = true
			return
		}
		p.closedAll = true
		if !p.aborted {
			p.emitCloseAll()
		}
		return
	}
	p.processLine()
}

// processLine runs container matching, container/item-like opening, and
// leaf dispatch for the physical line just buffered by p.ls.
func (p *Parser) processLine() {
	lc := newLineCursor(p.input, p.ls.toks)

	matched := p.matchContainers(lc)

	if matched < p.containers.Len() && p.leaf.kind == leafParagraph && !lineIsBlank(lc) && !lineStartsNewContainerMarker(lc) {
		// Lazy continuation (§4.5.2): a paragraph continues even though an
		// ancestor container's marker is missing on this line. Containers
		// are left untouched; the line's content simply extends the
		// paragraph.
		p.feedParagraphLine(lc)
		p.advanceLine()
		return
	}

	if matched < p.containers.Len() {
		p.closeContainersAbove(matched)
		if p.aborted {
			return
		}
	}
	matched = p.openNewContainers(lc, matched)
	if p.aborted {
		return
	}

	p.dispatchLeaf(lc)
	p.advanceLine()
}

// advanceLine moves p.curLine to the line number following the line just
// processed, per the global stage's own line-after bookkeeping.
func (p *Parser) advanceLine() {
	if p.ls.hasNewLine {
		p.curLine = p.ls.lineAfter
	}
}

func (p *Parser) closeLeaf() {
	if p.leaf.kind == noLeaf {
		return
	}
	p.emit(event.Event{Kind: event.ExitBlock, ID: p.leaf.id, StartLine: p.leaf.startLine, EndLine: p.curLine})
	p.leaf = topLeaf{}
}

func (p *Parser) emitCloseAll() {
	p.closeLeaf()
	for p.containers.Len() > 0 {
		c, _ := p.containers.Pop()
		p.emit(event.Event{Kind: event.ExitBlock, ID: c.id, StartLine: c.startLine, EndLine: p.curLine})
	}
}

func (p *Parser) fail(err error) {
	p.err = err
	p.aborted = true
	p.done = true
}

// nextID returns the next block-id, or 0 when block-id tracking is
// disabled (§6).
func (p *Parser) nextID() int {
	if !p.opts.BlockID {
		return 0
	}
	p.idCounter++
	return p.idCounter
}

// emit appends ev to the output queue, zeroing line metadata when
// line-number tracking is disabled so a caller never sees stray values
// from this parser's internal bookkeeping (§6).
func (p *Parser) emit(ev event.Event) {
	if !p.opts.LineNumber {
		ev.Line, ev.StartLine, ev.EndLine = 0, 0, 0
	}
	p.queue = append(p.queue, ev)
}

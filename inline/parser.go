// Package inline implements the third parser stage (§4.6): a stack-based
// scanner over the segment of block-output events belonging to one
// inline-accepting leaf, resolving paired-delimiter constructs (strong,
// strikethrough, emphasis, wiki-links, ruby, code spans), ref-link and
// dice-expression leaves, and the inline call facility.
//
// Grounded on the same scandown.BlockStack.Scan-shaped pull contract as
// the block stage. The delimiter stack is a small byte stack of its own
// (inlineStack, scan.go) that applies the same capacity rule as the stack
// package and fails with the same stack.ErrOutOfSpace.
package inline

import "github.com/jcorbin/rotext/event"

// Parser consumes a segment of InlineInput events (Unparsed | VerbatimEscaping
// | NewLine | Text) and emits InlineOutput events. The zero value is not
// usable; use New.
type Parser struct {
	input []byte
	opts  event.Options
	src   event.Scanner

	queue []event.Event
	cur   event.Event

	idCounter int
	err       error
	aborted   bool
	done      bool
}

// New returns an inline Parser pulling InlineInput events from src. input
// must be the same byte slice the upstream block stage (and its global
// stage) scanned, since events carry ranges into it.
func New(src event.Scanner, input []byte, opts event.Options) *Parser {
	return &Parser{input: input, opts: opts, src: src}
}

// Scan advances to the next inline event, returning false once src is
// exhausted (the segment has ended) or after a stack-capacity error.
func (p *Parser) Scan() bool {
	for len(p.queue) == 0 {
		if p.done {
			return false
		}
		if !p.src.Scan() {
			if esc, ok := p.src.(event.ErrScanner); ok {
				p.err = esc.Err()
			}
			p.done = true
			return false
		}
		p.consume(p.src.Event())
	}
	p.cur, p.queue = p.queue[0], p.queue[1:]
	return true
}

// Event returns the event most recently produced by Scan.
func (p *Parser) Event() event.Event { return p.cur }

// Err returns the error that ended the stream, if any: either this
// parser's own stack-capacity error, or one propagated from src.
func (p *Parser) Err() error { return p.err }

func (p *Parser) consume(ev event.Event) {
	switch ev.Kind {
	case event.Unparsed:
		p.scanRange(ev.Range)
	case event.VerbatimEscaping, event.NewLine, event.Text:
		p.emit(ev)
	}
}

func (p *Parser) emit(ev event.Event) { p.queue = append(p.queue, ev) }

func (p *Parser) fail(err error) {
	p.err = err
	p.aborted = true
	p.done = true
}

// nextID returns the next call-id, or 0 when block-id tracking is
// disabled; inline calls share the same monotonic counter concept as
// block-level constructs (§6), scoped to this parser instance.
func (p *Parser) nextID() int {
	if !p.opts.BlockID {
		return 0
	}
	p.idCounter++
	return p.idCounter
}

// ScanRange inline-parses a single byte range in isolation, with no
// surrounding segment, returning the resulting events. This is how a
// block-level call's normal argument (§4.6.3: "text/inline-parsed") gets
// inline-parsed even though the call itself never opens a full inline
// phase (block.Parser has no active inline.Parser of its own to delegate
// to, unlike an inline-level call nested inside one).
func ScanRange(input []byte, r event.Range, opts event.Options) ([]event.Event, error) {
	p := &Parser{input: input, opts: opts}
	p.scanRange(r)
	return p.queue, p.err
}
